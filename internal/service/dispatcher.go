package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/betabounty/betabounty-api/internal/core"
	"github.com/betabounty/betabounty-api/internal/domain/model"
	"github.com/betabounty/betabounty-api/internal/observability/metrics"
	"github.com/betabounty/betabounty-api/internal/observability/statsd"
)

// HandlerFunc processes one claimed job. The payload has already been decoded
// into the typed struct for the job's type. Returning an error re-enters the
// retry path; handlers must be idempotent because a crash between claim and
// completion can redeliver the job.
type HandlerFunc func(ctx context.Context, job *model.Job, payload any) error

// HandlerRegistry maps job types to their handlers.
type HandlerRegistry map[model.JobType]HandlerFunc

// DispatcherConfig carries the tunables of a batch run.
type DispatcherConfig struct {
	// BatchLimit caps how many jobs one run may claim.
	BatchLimit int
	// Concurrency bounds parallel handler execution within a batch.
	Concurrency int
	// LeaseSeconds is how long a claim holds before the job is eligible for
	// requeue by lease recovery.
	LeaseSeconds int
}

// Sanitize applies guardrails to zero or out-of-range values.
func (c *DispatcherConfig) Sanitize() {
	if c.BatchLimit <= 0 {
		c.BatchLimit = 50
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
	if c.LeaseSeconds <= 0 {
		c.LeaseSeconds = 60
	}
}

// DispatcherServiceOptions groups dependencies for DispatcherService.
type DispatcherServiceOptions struct {
	Store    core.JobStore   // Required: job persistence and claiming
	Handlers HandlerRegistry // Required: one handler per job type
	Config   DispatcherConfig
	Logger   *slog.Logger // Optional: structured logger
	Metrics  statsd.Sink  // Optional: job lifecycle metrics
}

// DispatcherService drains due jobs in priority order and hands each to its
// type-specific handler, applying retry, backoff and dead-lettering through
// the job store. Runs are externally triggered; the service holds no
// background goroutines of its own.
type DispatcherService struct {
	store    core.JobStore
	handlers HandlerRegistry
	cfg      DispatcherConfig
	logger   *slog.Logger
	metrics  statsd.Sink
}

// NewDispatcherService constructs a new DispatcherService.
func NewDispatcherService(opts DispatcherServiceOptions) (*DispatcherService, error) {
	if opts.Store == nil {
		return nil, errors.New("JobStore is required")
	}
	if len(opts.Handlers) == 0 {
		return nil, errors.New("at least one handler is required")
	}

	cfg := opts.Config
	cfg.Sanitize()

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "dispatcher")
	}

	return &DispatcherService{
		store:    opts.Store,
		handlers: opts.Handlers,
		cfg:      cfg,
		logger:   logger,
		metrics:  opts.Metrics,
	}, nil
}

// RunBatch recovers expired leases, then claims and executes up to limit due
// jobs. Claims are strictly ordered; execution is parallel up to the
// configured concurrency. A limit <= 0 falls back to the configured batch
// limit. The returned result carries per-status queue counts taken after the
// run.
func (s *DispatcherService) RunBatch(ctx context.Context, limit int) (*model.BatchResult, error) {
	if limit <= 0 || limit > s.cfg.BatchLimit {
		limit = s.cfg.BatchLimit
	}
	start := time.Now()

	requeued, err := s.store.RequeueExpired(ctx)
	if err != nil {
		return nil, fmt.Errorf("requeue expired jobs: %w", err)
	}
	if requeued > 0 && s.logger != nil {
		s.logger.WarnContext(ctx, "requeued jobs with expired leases", "count", requeued)
	}

	var processed, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)

	for i := 0; i < limit; i++ {
		job, claimErr := s.store.ClaimNext(ctx, s.cfg.LeaseSeconds)
		if errors.Is(claimErr, model.ErrNoJobsAvailable) {
			break
		}
		if claimErr != nil {
			// Drain what was already claimed before surfacing the error.
			if waitErr := g.Wait(); waitErr != nil {
				return nil, waitErr
			}
			return nil, fmt.Errorf("claim next job: %w", claimErr)
		}

		g.Go(func() error {
			if s.execute(gctx, job) {
				processed.Add(1)
			} else {
				failed.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("job stats: %w", err)
	}

	result := &model.BatchResult{
		Processed: int(processed.Load()),
		Failed:    int(failed.Load()),
		Stats:     *stats,
	}
	metrics.EmitBatch(s.metrics, result.Processed, result.Failed, time.Since(start))

	if s.logger != nil {
		s.logger.InfoContext(ctx, "batch run finished",
			"processed", result.Processed,
			"failed", result.Failed,
			"pending", stats.Pending,
			"dead", stats.Dead,
		)
	}
	return result, nil
}

// execute runs one claimed job end to end and reports whether it completed.
func (s *DispatcherService) execute(ctx context.Context, job *model.Job) bool {
	start := time.Now()

	payload, err := model.DecodePayload(job.Type, job.Payload)
	if err != nil {
		// An undecodable payload can never succeed; park it terminally
		// instead of burning retries.
		s.finish(ctx, job, start, err, true)
		return false
	}

	handler, ok := s.handlers[job.Type]
	if !ok {
		s.finish(ctx, job, start, fmt.Errorf("no handler registered for job type %s", job.Type), true)
		return false
	}

	if err := handler(ctx, job, payload); err != nil {
		s.finish(ctx, job, start, err, false)
		return false
	}

	ok, err = s.store.Complete(ctx, job.ID)
	if err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "complete job", "job_id", job.ID, "error", err)
		}
		return false
	}
	if !ok && s.logger != nil {
		// Lease expired mid-run and the job was reclaimed. The handler is
		// idempotent, so the duplicate execution is harmless.
		s.logger.WarnContext(ctx, "job completed after losing its lease", "job_id", job.ID, "type", job.Type)
	}

	metrics.EmitJobLifecycle(s.metrics, metrics.JobMetric{
		JobType:    string(job.Type),
		Transition: "completed",
		Result:     metrics.ResultSuccess,
		Duration:   time.Since(start),
	})
	return true
}

// finish records a failed execution, terminally or through the retry path.
func (s *DispatcherService) finish(ctx context.Context, job *model.Job, start time.Time, execErr error, terminal bool) {
	transition := "retried"
	result := metrics.ResultError

	if terminal {
		transition = "failed"
		if _, err := s.store.MarkFailed(ctx, job.ID, execErr.Error()); err != nil && s.logger != nil {
			s.logger.ErrorContext(ctx, "mark job failed", "job_id", job.ID, "error", err)
		}
	} else {
		status, err := s.store.Fail(ctx, job.ID, execErr.Error())
		if err != nil && s.logger != nil {
			s.logger.ErrorContext(ctx, "fail job", "job_id", job.ID, "error", err)
		}
		if status == model.JobStatusDead {
			transition = "dead"
			result = metrics.ResultDead
		}
	}

	if s.logger != nil {
		s.logger.WarnContext(ctx, "job execution failed",
			"job_id", job.ID,
			"type", job.Type,
			"attempts", job.Attempts,
			"transition", transition,
			"error", execErr,
		)
	}
	metrics.EmitJobLifecycle(s.metrics, metrics.JobMetric{
		JobType:    string(job.Type),
		Transition: transition,
		Result:     result,
		Duration:   time.Since(start),
	})
}

// Retry resets a failed or dead job to pending through the store.
func (s *DispatcherService) Retry(ctx context.Context, id string, resetAttempts bool) (*model.Job, error) {
	job, err := s.store.Retry(ctx, id, resetAttempts)
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "job reset to pending", "job_id", id, "reset_attempts", resetAttempts)
	}
	return job, nil
}

// GetJob retrieves a job by id for operator inspection.
func (s *DispatcherService) GetJob(ctx context.Context, id string) (*model.Job, error) {
	return s.store.GetByID(ctx, id)
}

// Stats returns per-status queue counts.
func (s *DispatcherService) Stats(ctx context.Context) (*model.JobStats, error) {
	return s.store.Stats(ctx)
}
