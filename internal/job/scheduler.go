// Package job runs the periodic refresh loops that feed the snapshot store.
package job

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Refresher is one schedulable unit of work.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Job is a named periodic task. Invocations never overlap with themselves:
// a tick that fires while the previous run is still in flight is skipped
// and counted.
type Job struct {
	name      string
	interval  time.Duration
	refresher Refresher

	running atomic.Bool
	runs    atomic.Int64
	skipped atomic.Int64
}

// Runs reports how many invocations have started.
func (j *Job) Runs() int64 { return j.runs.Load() }

// Skipped reports how many ticks were dropped because a run was in flight.
func (j *Job) Skipped() int64 { return j.skipped.Load() }

// Scheduler owns the set of periodic jobs. Each job gets its own goroutine
// and its own ticker; intervals are independent of each other.
type Scheduler struct {
	tracer trace.Tracer
	jobs   []*Job
}

func NewScheduler(tracer trace.Tracer) *Scheduler {
	return &Scheduler{tracer: tracer}
}

// Add registers a job. Must be called before Start.
func (s *Scheduler) Add(name string, interval time.Duration, r Refresher) *Job {
	j := &Job{name: name, interval: interval, refresher: r}
	s.jobs = append(s.jobs, j)
	return j
}

// Start launches all job loops and blocks until ctx is cancelled. Every job
// runs once immediately so the store is populated before the first tick.
func (s *Scheduler) Start(ctx context.Context) {
	log.Printf("scheduler starting %d jobs", len(s.jobs))
	for _, j := range s.jobs {
		go s.loop(ctx, j)
	}
	<-ctx.Done()
	log.Println("scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, j *Job) {
	s.tick(ctx, j)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx, j)
		}
	}
}

// tick starts one invocation unless the previous one is still running. The
// work runs on its own goroutine so a slow run delays nothing but its own
// successor.
func (s *Scheduler) tick(ctx context.Context, j *Job) {
	if !j.running.CompareAndSwap(false, true) {
		n := j.skipped.Add(1)
		log.Printf("job %s still running, skipping tick (skipped=%d)", j.name, n)
		return
	}
	j.runs.Add(1)

	go func() {
		defer j.running.Store(false)
		defer func() {
			if r := recover(); r != nil {
				log.Printf("job %s panicked: %v", j.name, r)
			}
		}()

		runCtx, span := s.tracer.Start(ctx, "job."+j.name)
		defer span.End()

		if err := j.refresher.Refresh(runCtx); err != nil {
			log.Printf("job %s error: %v", j.name, err)
		}
	}()
}
