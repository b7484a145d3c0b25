package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dohsimpson/TaskTrove-sub016/pkg/log"
)

// Scheduler owns a registry of cron jobs behind a scheduler-wide on/off
// switch: Register only records jobs, Start brings the auto-start ones up,
// Stop pauses everything without forgetting it. All methods are safe for
// concurrent use; handler execution happens outside the registry lock.
type Scheduler struct {
	engine Engine
	logger log.Logger

	mu      sync.Mutex
	jobs    map[string]*job
	order   []string
	started bool

	ctx    context.Context
	cancel context.CancelFunc
}

// job is one registry entry. lastRun/lastErr are snapshots for ListJobs.
type job struct {
	cfg       JobConfig
	handle    Handle
	handleID  string
	autoStart bool
	running   bool

	mu      sync.Mutex
	lastRun time.Time
	lastErr string
}

// New builds a Scheduler on the given engine. ctx bounds every handler
// invocation; cancelling it (or calling Shutdown) stops all jobs. The
// scheduler begins stopped: nothing fires until Start.
func New(ctx context.Context, engine Engine, logger log.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(ctx)
	return &Scheduler{
		engine: engine,
		logger: logger,
		jobs:   make(map[string]*job),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Register adds a job. Its handle starts immediately only when the
// scheduler is already started and AutoStart is not explicitly false;
// otherwise it waits for Start. With opts.Replace the previous job under
// the same id is stopped before the replacement schedule is created, so
// the two never run side by side; without Replace a duplicate id fails
// with ErrDuplicateJob. RunOnInit fires the handler once synchronously
// before Register returns, regardless of the started state.
func (s *Scheduler) Register(cfg JobConfig, opts RegisterOptions) error {
	if cfg.ID == "" {
		return fmt.Errorf("scheduler: empty job id")
	}
	if cfg.Handler == nil {
		return fmt.Errorf("scheduler: job %q: nil handler", cfg.ID)
	}

	s.mu.Lock()
	prev, exists := s.jobs[cfg.ID]
	if exists && !opts.Replace {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrDuplicateJob, cfg.ID)
	}
	if exists {
		delete(s.jobs, cfg.ID)
	}
	s.mu.Unlock()

	// old handle down before the new schedule exists
	if exists {
		prev.handle.Stop()
	}

	j := &job{cfg: cfg, handleID: uuid.NewString(), autoStart: cfg.autoStart()}
	handle, err := s.engine.Schedule(cfg.Schedule, func() { s.invoke(j) })
	if err != nil {
		if exists {
			// keep the old job registered, just no longer scheduled
			s.mu.Lock()
			prev.running = false
			s.jobs[cfg.ID] = prev
			s.mu.Unlock()
		}
		return fmt.Errorf("scheduler: job %q: %w", cfg.ID, err)
	}
	j.handle = handle

	s.mu.Lock()
	s.jobs[cfg.ID] = j
	if !exists {
		s.order = append(s.order, cfg.ID)
	}
	start := s.started && j.autoStart
	if start {
		j.running = true
	}
	s.mu.Unlock()

	if start {
		handle.Start()
	}

	s.logger.Infof(s.ctx, "scheduler: registered job %s (handle %s, auto_start=%t)", cfg.ID, j.handleID, j.autoStart)

	if cfg.RunOnInit {
		s.invoke(j)
	}
	return nil
}

// Unregister stops a job and removes it from the registry. An unknown id
// is a no-op reported as false.
func (s *Scheduler) Unregister(id string) bool {
	s.mu.Lock()
	j, ok := s.jobs[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.jobs, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	j.handle.Stop()
	s.logger.Infof(s.ctx, "scheduler: unregistered job %s", id)
	return true
}

// Start brings the scheduler up: every registered job with auto-start on
// (and every job registered from now on, unless it opts out) gets its
// schedule started. Starting a started scheduler is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	var toStart []*job
	for _, id := range s.order {
		j := s.jobs[id]
		if j.autoStart && !j.running {
			j.running = true
			toStart = append(toStart, j)
		}
	}
	s.mu.Unlock()

	for _, j := range toStart {
		j.handle.Start()
	}
	s.logger.Infof(s.ctx, "scheduler: started %d job(s)", len(toStart))
}

// Stop pauses every running job but keeps the registry; Start resumes.
// Stopping a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	var toStop []*job
	for _, id := range s.order {
		j := s.jobs[id]
		if j.running {
			j.running = false
			toStop = append(toStop, j)
		}
	}
	s.mu.Unlock()

	for _, j := range toStop {
		j.handle.Stop()
	}
	s.logger.Infof(s.ctx, "scheduler: stopped %d job(s)", len(toStop))
}

// IsRunning reports whether the scheduler is started.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// RunNow fires the handler immediately, off-schedule, whether or not the
// scheduler is started. Handler errors are logged and swallowed like
// scheduled ones; RunNow only fails when the id is unknown.
func (s *Scheduler) RunNow(id string) error {
	s.mu.Lock()
	j, ok := s.jobs[id]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, id)
	}

	s.invoke(j)
	return nil
}

// ListJobs snapshots every registered job in registration order.
func (s *Scheduler) ListJobs() []JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := make([]JobInfo, 0, len(s.order))
	for _, id := range s.order {
		j := s.jobs[id]
		j.mu.Lock()
		infos = append(infos, JobInfo{
			ID:        j.cfg.ID,
			Schedule:  j.cfg.Schedule,
			AutoStart: j.autoStart,
			Running:   j.running,
			NextRun:   j.handle.Next(),
			LastRun:   j.lastRun,
			LastError: j.lastErr,
		})
		j.mu.Unlock()
	}
	return infos
}

// Shutdown stops every job and cancels in-flight handlers. Unlike Stop it
// is terminal: the handler context is gone.
func (s *Scheduler) Shutdown() {
	s.Stop()
	s.cancel()
	s.logger.Info(s.ctx, "scheduler: shut down")
}

// invoke runs one handler with panic recovery. A failing job records its
// error and keeps its schedule; nothing propagates to other jobs.
func (s *Scheduler) invoke(j *job) {
	defer func() {
		if r := recover(); r != nil {
			s.recordRun(j, fmt.Errorf("panic: %v", r))
			s.logger.Errorf(s.ctx, "scheduler: job %s (handle %s) panicked: %v", j.cfg.ID, j.handleID, r)
		}
	}()

	err := j.cfg.Handler(s.ctx)
	s.recordRun(j, err)
	if err != nil {
		s.logger.Errorf(s.ctx, "scheduler: job %s (handle %s) failed: %v", j.cfg.ID, j.handleID, err)
	}
}

func (s *Scheduler) recordRun(j *job, err error) {
	j.mu.Lock()
	j.lastRun = time.Now()
	j.lastErr = ""
	if err != nil {
		j.lastErr = err.Error()
	}
	j.mu.Unlock()
}
