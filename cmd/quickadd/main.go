package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dohsimpson/TaskTrove-sub016/config"
	"github.com/dohsimpson/TaskTrove-sub016/pkg/log"
	"github.com/dohsimpson/TaskTrove-sub016/pkg/quickadd"
	"github.com/dohsimpson/TaskTrove-sub016/pkg/rrule"
)

// task is the materialized draft printed to stdout.
type task struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Priority   int        `json:"priority,omitempty"`
	Project    string     `json:"project,omitempty"`
	Labels     []string   `json:"labels,omitempty"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
	Time       string     `json:"time,omitempty"`
	Estimation int        `json:"estimation,omitempty"`
	Recurring  string     `json:"recurring,omitempty"`
}

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx := context.Background()

	text := strings.Join(os.Args[1:], " ")
	if strings.TrimSpace(text) == "" {
		fmt.Println("Usage: quickadd <task text>")
		os.Exit(2)
	}

	draft := quickadd.Parse(text, parseOptions(cfg))
	logger.Debugf(ctx, "parsed %q into draft %+v", text, draft)

	out := task{
		ID:         uuid.NewString(),
		Title:      draft.Title,
		Priority:   draft.Priority,
		Project:    draft.Project,
		Labels:     draft.Labels,
		DueDate:    draft.DueDate,
		Time:       draft.Time,
		Estimation: draft.Estimation,
		Recurring:  draft.Recurring,
	}

	// A recurring draft without an explicit date anchors on its first
	// occurrence so the schedule has somewhere to start.
	if out.Recurring != "" && out.DueDate == nil {
		if a := rrule.NextAnchor(out.Recurring, time.Now()); a != nil {
			out.DueDate = &a.DueDate
			if out.Time == "" {
				out.Time = a.Time
			}
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Errorf(ctx, "encoding draft: %v", err)
		os.Exit(1)
	}
}

func parseOptions(cfg *config.Config) quickadd.Options {
	opts := quickadd.Options{
		Disabled: make(map[string]bool, len(cfg.QuickAdd.DisabledSections)),
	}
	for _, s := range cfg.QuickAdd.DisabledSections {
		opts.Disabled[strings.ToLower(s)] = true
	}
	for _, p := range cfg.QuickAdd.Projects {
		opts.Projects = append(opts.Projects, quickadd.Candidate{Name: p})
	}
	for _, l := range cfg.QuickAdd.Labels {
		opts.Labels = append(opts.Labels, quickadd.Candidate{Name: l})
	}
	return opts
}
