package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/betabounty/betabounty-api/internal/data/pgxutil"
	"github.com/betabounty/betabounty-api/internal/domain/model"
)

// SQL used by ClaimNext to atomically claim the next due job. The claim is a
// single conditional update guarded by the pending status: an overlapping
// dispatcher invocation that selects the same row loses the SKIP LOCKED race
// and moves on.
const claimNextUpdateSQL = `
  WITH cte AS (
    SELECT id FROM jobs
    WHERE status = 'pending' AND scheduled_at <= $1
    ORDER BY priority_rank DESC, scheduled_at ASC, created_at ASC
    LIMIT 1
    FOR UPDATE SKIP LOCKED
  )
  UPDATE jobs j
  SET
    status = 'processing',
    started_at = COALESCE(j.started_at, $2),
    lease_expires_at = $3,
    updated_at = $4
  FROM cte
  WHERE j.id = cte.id AND j.status = 'pending'
  RETURNING j.id, j.type, j.status, j.priority, j.payload, j.attempts, j.max_attempts, j.scheduled_at, j.started_at, j.completed_at, j.failed_at, j.last_error, j.lease_expires_at, j.created_at, j.updated_at`

// Enqueue persists a job in pending with its schedule time (default now).
func (r *JobRepo) Enqueue(ctx context.Context, req *model.EnqueueJobRequest) (*model.Job, error) {
	if req == nil {
		return nil, errors.New("enqueue job request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var job *model.Job
	err := pgxutil.WithSQLTx(ctx, r.DB, pgxutil.SQLTxConfig{
		Fn: func(tx *sql.Tx) error {
			var insertErr error
			job, insertErr = r.enqueueInTx(ctx, tx, req)
			return insertErr
		},
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

// EnqueueBatch persists a set of jobs atomically: either every job is written
// or none is.
func (r *JobRepo) EnqueueBatch(ctx context.Context, reqs []*model.EnqueueJobRequest) ([]*model.Job, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	for _, req := range reqs {
		if req == nil {
			return nil, errors.New("enqueue job request is required")
		}
		if err := req.Validate(); err != nil {
			return nil, err
		}
	}

	jobs := make([]*model.Job, 0, len(reqs))
	err := pgxutil.WithSQLTx(ctx, r.DB, pgxutil.SQLTxConfig{
		Fn: func(tx *sql.Tx) error {
			for _, req := range reqs {
				job, insertErr := r.enqueueInTx(ctx, tx, req)
				if insertErr != nil {
					return insertErr
				}
				jobs = append(jobs, job)
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// EnqueueInTx inserts a job within an existing SQL transaction, so callers can
// couple job creation with their own writes.
func (r *JobRepo) EnqueueInTx(ctx context.Context, tx *sql.Tx, req *model.EnqueueJobRequest) (*model.Job, error) {
	if tx == nil {
		return nil, errors.New("transaction is required")
	}
	if req == nil {
		return nil, errors.New("enqueue job request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return r.enqueueInTx(ctx, tx, req)
}

func (r *JobRepo) enqueueInTx(ctx context.Context, tx *sql.Tx, req *model.EnqueueJobRequest) (*model.Job, error) {
	priority := req.Priority
	if priority == "" {
		priority = model.JobPriorityMedium
	}

	maxAttempts := req.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = r.cfg.DefaultMaxAttempts
	}

	scheduledAt := r.timeProvider.Now().UTC()
	if req.ScheduledAt != nil {
		scheduledAt = req.ScheduledAt.UTC()
	}

	row := tx.QueryRowContext(ctx, `
      INSERT INTO jobs(type, status, priority, priority_rank, payload, max_attempts, scheduled_at)
      VALUES ($1, 'pending', $2, $3, $4, $5, $6)
      RETURNING `+jobColumns,
		req.Type, priority, priority.Rank(), []byte(req.Payload), maxAttempts, scheduledAt,
	)

	job, err := scanJobFromRow(row)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	return job, nil
}

// ClaimNext atomically claims the next due pending job in priority order
// (high before medium before low), breaking ties by scheduled time then
// creation order. Returns model.ErrNoJobsAvailable when nothing is eligible.
func (r *JobRepo) ClaimNext(ctx context.Context, leaseSeconds int) (*model.Job, error) {
	if leaseSeconds < minClaimLeaseSeconds {
		leaseSeconds = defaultClaimLeaseSeconds
	}

	var job *model.Job
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Opts: &sql.TxOptions{Isolation: sql.LevelReadCommitted},
		Fn: func(tx pgx.Tx) error {
			currentTime := r.timeProvider.Now()
			leaseExpiresAt := currentTime.Add(time.Duration(leaseSeconds) * time.Second)

			rows, qerr := tx.Query(
				ctx,
				claimNextUpdateSQL,
				currentTime.UTC(),
				currentTime.UTC(),
				leaseExpiresAt.UTC(),
				currentTime.UTC(),
			)
			if qerr != nil {
				return fmt.Errorf("claim job: %w", qerr)
			}
			defer rows.Close()

			j, cerr := collectJobFromRows(rows)
			if errors.Is(cerr, pgx.ErrNoRows) {
				return model.ErrNoJobsAvailable
			}
			if cerr != nil {
				return fmt.Errorf("claim job: %w", cerr)
			}
			job = j
			return nil
		},
	})
	if err != nil {
		if errors.Is(err, model.ErrNoJobsAvailable) {
			return nil, model.ErrNoJobsAvailable
		}
		return nil, err
	}
	return job, nil
}

// Advisory lock namespace for RequeueExpired so overlapping dispatcher
// invocations do not race the recovery sweep.
const (
	advisoryLockDispatchMajor   int64 = 1001
	advisoryLockDispatchRequeue int64 = 1
)

// RequeueExpired returns processing jobs whose lease expired to pending.
// This bounds the redelivery window after a crash between claim and
// completion; handlers must therefore be idempotent.
func (r *JobRepo) RequeueExpired(ctx context.Context) (int64, error) {
	var rowsAffected int64
	err := pgxutil.WithSQLTx(ctx, r.DB, pgxutil.SQLTxConfig{
		Fn: func(tx *sql.Tx) error {
			var locked bool
			if err := tx.QueryRowContext(ctx,
				"SELECT pg_try_advisory_xact_lock($1::integer, $2::integer)",
				advisoryLockDispatchMajor, advisoryLockDispatchRequeue,
			).Scan(&locked); err != nil {
				return fmt.Errorf("acquire advisory lock: %w", err)
			}
			if !locked {
				rowsAffected = 0
				return nil
			}

			currentTime := r.timeProvider.Now()
			res, err := tx.ExecContext(ctx, `
          UPDATE jobs
          SET status = 'pending', lease_expires_at = NULL, updated_at = $1
          WHERE status = 'processing'
            AND lease_expires_at IS NOT NULL
            AND lease_expires_at < $1
        `, currentTime.UTC())
			if err != nil {
				return fmt.Errorf("requeue expired: %w", err)
			}
			ra, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("rows affected: %w", err)
			}
			rowsAffected = ra
			return nil
		},
	})
	if err != nil {
		return 0, err
	}
	return rowsAffected, nil
}

// Complete marks a processing job completed. Returns false when the job was
// not in processing anymore (for example after a lease-expiry requeue).
func (r *JobRepo) Complete(ctx context.Context, id string) (bool, error) {
	currentTime := r.timeProvider.Now().UTC()

	res, err := r.DB.ExecContext(ctx, `
		UPDATE jobs
		SET status = 'completed',
		    completed_at = $2,
		    updated_at = $2,
		    lease_expires_at = NULL,
		    last_error = NULL
		WHERE id = $1 AND status = 'processing'
	`, id, currentTime)
	if err != nil {
		return false, fmt.Errorf("complete job: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("complete rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// Fail records a handler failure: attempts is bumped (capped at max_attempts
// so the attempts <= max_attempts invariant survives operator retries), and
// the job either reschedules with exponential backoff or dead-letters once
// the ceiling is reached. Dead jobs keep their error message and remain
// queryable indefinitely.
// The returned status is pending or dead, or empty when the job was not in
// processing (lost lease).
func (r *JobRepo) Fail(ctx context.Context, id, errMsg string) (model.JobStatus, error) {
	currentTime := r.timeProvider.Now()
	baseSeconds := r.cfg.RetryBaseDelay.Seconds()
	maxSeconds := r.cfg.RetryMaxDelay.Seconds()

	query := `
      UPDATE jobs
      SET
        last_error = $2,
        attempts = LEAST(attempts + 1, max_attempts),
        status = CASE WHEN attempts + 1 >= max_attempts THEN 'dead' ELSE 'pending' END,
        failed_at = CASE WHEN attempts + 1 >= max_attempts THEN $3::timestamptz ELSE NULL END,
        lease_expires_at = NULL,
        scheduled_at = CASE WHEN attempts + 1 >= max_attempts THEN scheduled_at
                            ELSE $3::timestamptz + make_interval(secs =>
                                 LEAST($4::double precision * power(2, LEAST(attempts + 1, $6)), $5::double precision)) END,
        updated_at = $3
      WHERE id = $1 AND status = 'processing'
      RETURNING status
    `

	var status model.JobStatus
	err := r.DB.QueryRowContext(ctx, query,
		id, errMsg, currentTime.UTC(), baseSeconds, maxSeconds, maxBackoffExponentAllowed,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("fail job: %w", err)
	}

	if status == model.JobStatusDead && r.logger != nil {
		r.logger.WarnContext(ctx, "job dead-lettered", "job_id", id, "error", errMsg)
	}
	return status, nil
}

// MarkFailed terminally fails a processing job without entering the retry
// path. Used for faults a retry can never fix, such as an undecodable
// payload.
func (r *JobRepo) MarkFailed(ctx context.Context, id, errMsg string) (bool, error) {
	currentTime := r.timeProvider.Now().UTC()

	res, err := r.DB.ExecContext(ctx, `
		UPDATE jobs
		SET status = 'failed',
		    last_error = $2,
		    failed_at = $3,
		    lease_expires_at = NULL,
		    updated_at = $3
		WHERE id = $1 AND status = 'processing'
	`, id, errMsg, currentTime)
	if err != nil {
		return false, fmt.Errorf("mark job failed: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark failed rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// Retry resets a failed or dead job back to pending, clearing its error
// state. Whether the attempt counter resets is the caller's policy choice.
func (r *JobRepo) Retry(ctx context.Context, id string, resetAttempts bool) (*model.Job, error) {
	currentTime := r.timeProvider.Now().UTC()

	row := r.DB.QueryRowContext(ctx, `
		UPDATE jobs
		SET status = 'pending',
		    attempts = CASE WHEN $2 THEN 0 ELSE attempts END,
		    last_error = NULL,
		    failed_at = NULL,
		    scheduled_at = $3,
		    updated_at = $3
		WHERE id = $1 AND status IN ('failed', 'dead')
		RETURNING `+jobColumns,
		id, resetAttempts, currentTime,
	)

	job, err := scanJobFromRow(row)
	if err == nil {
		return job, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("retry job: %w", err)
	}

	// Distinguish a missing job from one in the wrong status.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, ErrJobNotRetryable
}

// GetByID retrieves a job by its ID.
func (r *JobRepo) GetByID(ctx context.Context, id string) (*model.Job, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE id = $1
	`, id)

	job, err := scanJobFromRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// Stats returns counts of jobs per status.
func (r *JobRepo) Stats(ctx context.Context) (*model.JobStats, error) {
	var s model.JobStats
	err := r.DB.QueryRowContext(ctx, `
  SELECT
    count(*) FILTER (WHERE status = 'pending')    AS pending,
    count(*) FILTER (WHERE status = 'processing') AS processing,
    count(*) FILTER (WHERE status = 'completed')  AS completed,
    count(*) FILTER (WHERE status = 'failed')     AS failed,
    count(*) FILTER (WHERE status = 'dead')       AS dead
  FROM jobs
  `).Scan(
		&s.Pending,
		&s.Processing,
		&s.Completed,
		&s.Failed,
		&s.Dead,
	)
	if err != nil {
		return nil, fmt.Errorf("get job stats: %w", err)
	}
	return &s, nil
}
