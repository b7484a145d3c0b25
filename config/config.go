package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig
	Logger      LoggerConfig

	// Quick-add parser
	QuickAdd QuickAddConfig

	// Background jobs
	Timezone string // default IANA timezone for job schedules
	Jobs     []JobEntry
}

type EnvironmentConfig struct {
	Name string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// QuickAddConfig configures the natural-language task parser.
type QuickAddConfig struct {
	DisabledSections []string // matched tokens (lowercase) the parser must ignore
	Projects         []string // known project names, preferred over generic #token matches
	Labels           []string // known label names
}

// JobEntry describes one scheduled background job from the jobs table.
type JobEntry struct {
	ID         string
	Expression string // 5-field cron expression
	Timezone   string // optional, overrides the global default
	Handler    string // handler name resolved by internal/jobs
	RunOnInit  bool
	AutoStart  bool
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	cfg.Timezone = viper.GetString("timezone")
	if tz := viper.GetString("tz"); tz != "" {
		cfg.Timezone = tz
	}

	cfg.QuickAdd.DisabledSections = stringList("quickadd.disabled_sections")
	cfg.QuickAdd.Projects = stringList("quickadd.projects")
	cfg.QuickAdd.Labels = stringList("quickadd.labels")

	// Jobs table
	if viper.IsSet("jobs") {
		jobsRaw := viper.Get("jobs")
		if jobsList, ok := jobsRaw.([]interface{}); ok {
			for _, j := range jobsList {
				if jobMap, ok := j.(map[string]interface{}); ok {
					entry := JobEntry{
						ID:         getStringFromMap(jobMap, "id"),
						Expression: getStringFromMap(jobMap, "expression"),
						Timezone:   getStringFromMap(jobMap, "timezone"),
						Handler:    getStringFromMap(jobMap, "handler"),
						RunOnInit:  getBoolFromMap(jobMap, "run_on_init", false),
						AutoStart:  getBoolFromMap(jobMap, "auto_start", true),
					}
					if entry.Timezone == "" {
						entry.Timezone = cfg.Timezone
					}
					cfg.Jobs = append(cfg.Jobs, entry)
				}
			}
		}
	}

	for _, j := range cfg.Jobs {
		if j.ID == "" || j.Expression == "" || j.Handler == "" {
			return nil, fmt.Errorf("jobs entry must set id, expression and handler (got id=%q)", j.ID)
		}
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("timezone", "UTC")
}

// stringList reads a key that may be a native YAML list or a comma-separated
// string (the latter is what env overrides produce).
func stringList(key string) []string {
	slice := viper.GetStringSlice(key)
	if len(slice) > 1 || (len(slice) == 1 && !strings.Contains(slice[0], ",")) {
		return slice
	}
	raw := viper.GetString(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func getStringFromMap(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string, def bool) bool {
	if v, ok := m[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}
