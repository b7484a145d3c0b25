package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dohsimpson/TaskTrove-sub016/pkg/log"
)

// Engine turns a Schedule into a running Handle that invokes run at each
// occurrence. Implementations own their timing; the scheduler only starts
// and stops handles.
type Engine interface {
	Schedule(s Schedule, run func()) (Handle, error)
}

// Handle is one scheduled job's timer loop.
type Handle interface {
	// Start launches the loop. Calling Start on a running handle is a no-op.
	Start()
	// Stop halts the loop and waits for an in-flight wait to unwind. The
	// handle can be started again afterwards.
	Stop()
	// Next reports the occurrence the loop is currently waiting for; zero
	// when stopped.
	Next() time.Time
}

// Clock abstracts wall time so engine tests can drive the wait loop
// deterministically.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time                         { return time.Now() }
func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// maxWait caps a single timer sleep. Long gaps are covered by repeated
// short waits that re-read the clock on wake, so suspend/resume and NTP
// steps cannot leave a job firing at a stale deadline.
const maxWait = time.Minute

// CronEngine schedules standard five-field cron expressions via
// robfig/cron's parser. The expression is parsed once at Schedule time, so
// malformed expressions surface as registration errors.
type CronEngine struct {
	logger log.Logger
	clock  Clock
}

// NewCronEngine returns an Engine driven by the system clock.
func NewCronEngine(logger log.Logger) *CronEngine {
	return &CronEngine{logger: logger, clock: systemClock{}}
}

func (e *CronEngine) Schedule(s Schedule, run func()) (Handle, error) {
	if s.Type != ScheduleCron {
		return nil, fmt.Errorf("scheduler: unsupported schedule type %q", s.Type)
	}

	expr := s.Expression
	if s.Timezone != "" {
		if _, err := time.LoadLocation(s.Timezone); err != nil {
			return nil, fmt.Errorf("scheduler: timezone %q: %w", s.Timezone, err)
		}
		expr = "CRON_TZ=" + s.Timezone + " " + expr
	}

	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("scheduler: expression %q: %w", s.Expression, err)
	}

	return &cronHandle{
		sched:  sched,
		run:    run,
		clock:  e.clock,
		logger: e.logger,
	}, nil
}

// cronHandle drives one job's wait loop. All state transitions go through
// the stop channel; the loop itself owns next.
type cronHandle struct {
	sched  cron.Schedule
	run    func()
	clock  Clock
	logger log.Logger

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
	next time.Time
}

func (h *cronHandle) setNext(t time.Time) {
	h.mu.Lock()
	h.next = t
	h.mu.Unlock()
}

// Start and Stop are safe for concurrent use: the channel fields are only
// touched under the handle mutex, and each Stop claims the channels it
// closes so overlapping calls cannot double-close.
func (h *cronHandle) Start() {
	h.mu.Lock()
	if h.stop != nil {
		h.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	h.stop = stop
	h.done = done
	h.next = h.sched.Next(h.clock.Now())
	h.mu.Unlock()

	go h.loop(stop, done)
}

func (h *cronHandle) Stop() {
	h.mu.Lock()
	stop, done := h.stop, h.done
	h.stop = nil
	h.done = nil
	h.mu.Unlock()
	if stop == nil {
		return
	}

	close(stop)
	<-done
}

func (h *cronHandle) Next() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.next
}

func (h *cronHandle) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer func() {
		h.mu.Lock()
		// Stop nils the channels before waiting on done; skip the reset
		// when a newer Start already installed its own next.
		if h.stop == nil {
			h.next = time.Time{}
		}
		h.mu.Unlock()
	}()

	for {
		next := h.Next()
		if next.IsZero() {
			return
		}

		wait := next.Sub(h.clock.Now())
		if wait > maxWait {
			wait = maxWait
		}
		if wait < 0 {
			wait = 0
		}

		select {
		case <-stop:
			return
		case <-h.clock.After(wait):
		}

		// Re-check against the clock: a capped wait wakes early, and the
		// clock may have moved under us while asleep.
		if h.clock.Now().Before(next) {
			continue
		}

		h.run()
		h.setNext(h.sched.Next(h.clock.Now()))
		h.logger.Debugf(context.Background(), "scheduler: next occurrence at %s", h.Next())
	}
}
