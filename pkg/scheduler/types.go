// Package scheduler runs registered jobs on cron schedules with failure
// isolation: a panicking or erroring handler never takes down its
// neighbours or the scheduler itself.
package scheduler

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrDuplicateJob is returned by Register when the job id is already
	// registered and RegisterOptions.Replace is false.
	ErrDuplicateJob = errors.New("scheduler: job already registered")

	// ErrUnknownJob is returned by operations addressing a job id that is
	// not registered.
	ErrUnknownJob = errors.New("scheduler: unknown job")
)

// Handler is the unit of work a job runs. The context is cancelled when the
// job is stopped or the scheduler shuts down.
type Handler func(ctx context.Context) error

// ScheduleType selects how a Schedule expression is interpreted.
type ScheduleType string

const (
	// ScheduleCron is a standard five-field cron expression.
	ScheduleCron ScheduleType = "cron"
)

// Schedule describes when a job fires. Timezone is an IANA name; empty
// means the host's local time.
type Schedule struct {
	Type       ScheduleType
	Expression string
	Timezone   string
}

// JobConfig declares a job. AutoStart and RunOnInit control startup
// behavior: a nil AutoStart means true, RunOnInit fires the handler once
// immediately on registration regardless of the schedule.
type JobConfig struct {
	ID        string
	Schedule  Schedule
	Handler   Handler
	RunOnInit bool
	AutoStart *bool
}

func (c JobConfig) autoStart() bool {
	return c.AutoStart == nil || *c.AutoStart
}

// RegisterOptions tunes Register. Replace atomically swaps an existing job
// with the same id instead of failing with ErrDuplicateJob.
type RegisterOptions struct {
	Replace bool
}

// JobInfo is a read-only snapshot of one registered job. AutoStart echoes
// the registration flag; Running is whether the schedule is live right now.
type JobInfo struct {
	ID        string
	Schedule  Schedule
	AutoStart bool
	Running   bool
	NextRun   time.Time
	LastRun   time.Time
	LastError string
}
