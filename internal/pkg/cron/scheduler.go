package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

type job struct {
	name     string
	interval time.Duration
	run      func(ctx context.Context) error
}

// Scheduler runs registered jobs on fixed intervals until stopped. Each job
// gets its own goroutine and fires once immediately on Start.
type Scheduler struct {
	mu      sync.Mutex
	jobs    []job
	cancel  context.CancelFunc
	done    sync.WaitGroup
	started bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// AddJob registers a job. Must be called before Start.
func (s *Scheduler) AddJob(name string, interval time.Duration, run func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, job{name: name, interval: interval, run: run})
	slog.Info("cron job registered", "name", name, "interval", interval)
}

// Start launches one goroutine per registered job.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	for _, j := range s.jobs {
		s.done.Add(1)
		go func(j job) {
			defer s.done.Done()
			s.loop(ctx, j)
		}(j)
	}

	slog.Info("cron scheduler started", "jobs", len(s.jobs))
}

// Stop cancels all job contexts and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	s.done.Wait()
	slog.Info("cron scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, j job) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	s.fire(ctx, j)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fire(ctx, j)
		}
	}
}

// fire runs one job execution. A panicking job is logged and skipped; it
// must not take the scheduler (or the process) down with it.
func (s *Scheduler) fire(ctx context.Context, j job) {
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("cron job panicked", "name", j.name, "panic", fmt.Sprint(r))
		}
	}()

	if err := j.run(ctx); err != nil {
		slog.Error("cron job failed", "name", j.name, "error", err, "duration", time.Since(started))
		return
	}
	slog.Debug("cron job completed", "name", j.name, "duration", time.Since(started))
}
