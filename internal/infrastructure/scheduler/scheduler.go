// Package scheduler runs the service's periodic maintenance jobs. The
// only recurring work the dashboard needs is sweeping orphaned upload
// spool files, so the scheduler is a plain interval runner.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/spj-hub/placement-analytics/pkg/logger"
)

// Job defines the interface that all scheduled jobs must implement.
type Job interface {
	// Name returns the unique name of the job.
	Name() string

	// Run executes the job. The context is cancelled when the scheduler
	// is stopping or the job timeout elapses.
	Run(ctx context.Context) error
}

// entry pairs a job with its interval.
type entry struct {
	job      Job
	interval time.Duration
}

// Scheduler executes registered jobs on fixed intervals.
type Scheduler struct {
	log        *logger.Logger
	jobTimeout time.Duration

	mu      sync.Mutex
	entries []entry
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a new scheduler.
func New(log *logger.Logger, jobTimeout time.Duration) *Scheduler {
	if jobTimeout <= 0 {
		jobTimeout = 5 * time.Minute
	}
	return &Scheduler{
		log:        log.With(logger.Component("scheduler")),
		jobTimeout: jobTimeout,
	}
}

// Register adds a job to run every interval. Must be called before Start.
func (s *Scheduler) Register(job Job, interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry{job: job, interval: interval})
}

// Start launches one ticker goroutine per registered job.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true

	ctx, s.cancel = context.WithCancel(ctx)

	for _, e := range s.entries {
		s.wg.Add(1)
		go s.runLoop(ctx, e)
	}

	s.log.Info("scheduler started", logger.Int("jobs", len(s.entries)))
}

// Stop cancels all job loops and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel := s.cancel
	s.mu.Unlock()

	cancel()
	s.wg.Wait()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) runLoop(ctx context.Context, e entry) {
	defer s.wg.Done()

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runJob(ctx, e.job)
		}
	}
}

func (s *Scheduler) runJob(ctx context.Context, job Job) {
	jobCtx, cancel := context.WithTimeout(ctx, s.jobTimeout)
	defer cancel()

	start := time.Now()
	if err := job.Run(jobCtx); err != nil {
		s.log.Error("job failed",
			logger.String("job", job.Name()),
			logger.Latency(time.Since(start)),
			logger.Err(err))
		return
	}

	s.log.Debug("job completed",
		logger.String("job", job.Name()),
		logger.Latency(time.Since(start)))
}
