package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nexfest/festhub/internal/domain/job"
	"github.com/nexfest/festhub/internal/observability"
)

type JobsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewJobsRepo(pool *pgxpool.Pool, prom *observability.Prom) *JobsRepo {
	return &JobsRepo{pool: pool, prom: prom}
}

func (r *JobsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// insertJobTx enqueues a job as part of a caller-owned transaction so the
// job row commits or rolls back together with the business write. Jobs with
// an idempotency key already present are silently skipped.
func insertJobTx(ctx context.Context, tx pgx.Tx, j job.Job) error {
	_, err := tx.Exec(ctx, `
	INSERT INTO jobs (id, type, payload, status, attempts, max_attempts, run_at, idempotency_key, created_at, updated_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	ON CONFLICT (idempotency_key) DO NOTHING
	`, j.ID, j.Type, j.Payload, j.Status, j.Attempts, j.MaxAttempts, j.RunAt, j.IdempotencyKey, j.CreatedAt, j.UpdatedAt)
	return err
}

func (r *JobsRepo) Create(ctx context.Context, req job.CreateRequest) (job.Job, error) {
	j := job.New(req)

	err := r.observe("jobs.create", func() error {
		tx, err := r.pool.Begin(ctx)

		if err != nil {
			return err
		}

		defer tx.Rollback(ctx)

		if err := insertJobTx(ctx, tx, j); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})

	if err != nil {
		return job.Job{}, err
	}

	return j, nil
}

// ClaimNext picks the oldest runnable pending job and flips it to processing
// under FOR UPDATE SKIP LOCKED, so concurrent workers never claim the same
// row. Returns ErrJobNotFound when the queue is empty.
func (r *JobsRepo) ClaimNext(ctx context.Context, workerID string) (job.Job, error) {
	var j job.Job

	err := r.observe("jobs.claim_next", func() error {
		tx, err := r.pool.Begin(ctx)

		if err != nil {
			return err
		}

		defer tx.Rollback(ctx)

		var id string

		err = tx.QueryRow(ctx, `
		SELECT id FROM jobs
		WHERE status = 'pending' AND run_at <= NOW()
		ORDER BY run_at ASC, created_at ASC
		LIMIT 1
		FOR UPDATE SKIP LOCKED
		`).Scan(&id)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return job.ErrJobNotFound
			}
			return err
		}

		err = tx.QueryRow(ctx, `
		UPDATE jobs
		SET status = 'processing', attempts = attempts + 1, locked_at = NOW(), locked_by = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, type, payload, status, attempts, max_attempts, run_at, locked_at, locked_by, last_error, idempotency_key, created_at, updated_at
		`, id, workerID).
			Scan(&j.ID, &j.Type, &j.Payload, &j.Status, &j.Attempts, &j.MaxAttempts, &j.RunAt,
				&j.LockedAt, &j.LockedBy, &j.LastError, &j.IdempotencyKey, &j.CreatedAt, &j.UpdatedAt)

		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	})

	if err != nil {
		return job.Job{}, err
	}

	return j, nil
}

func (r *JobsRepo) MarkDone(ctx context.Context, id string) error {
	return r.observe("jobs.mark_done", func() error {
		_, err := r.pool.Exec(ctx, `
		UPDATE jobs
		SET status = 'done', locked_at = NULL, locked_by = NULL, last_error = NULL, updated_at = NOW()
		WHERE id = $1
		`, id)
		return err
	})
}

func (r *JobsRepo) MarkFailed(ctx context.Context, id string, lastError string) error {
	return r.observe("jobs.mark_failed", func() error {
		_, err := r.pool.Exec(ctx, `
		UPDATE jobs
		SET status = 'failed', locked_at = NULL, locked_by = NULL, last_error = $2, updated_at = NOW()
		WHERE id = $1
		`, id, lastError)
		return err
	})
}

// Reschedule returns a processing job to pending with a future run_at, used
// for retry with backoff after a transient failure.
func (r *JobsRepo) Reschedule(ctx context.Context, id string, runAt time.Time, lastError string) error {
	return r.observe("jobs.reschedule", func() error {
		_, err := r.pool.Exec(ctx, `
		UPDATE jobs
		SET status = 'pending', locked_at = NULL, locked_by = NULL, run_at = $2, last_error = $3, updated_at = NOW()
		WHERE id = $1
		`, id, runAt, lastError)
		return err
	})
}

// RequeueStaleProcessing rescues jobs whose worker died mid-flight. Anything
// locked longer than olderThan goes back to pending without burning an
// attempt beyond the one already counted at claim time.
func (r *JobsRepo) RequeueStaleProcessing(ctx context.Context, olderThan time.Duration) (int64, error) {
	var n int64

	err := r.observe("jobs.requeue_stale", func() error {
		tag, err := r.pool.Exec(ctx, `
		UPDATE jobs
		SET status = 'pending', locked_at = NULL, locked_by = NULL, updated_at = NOW()
		WHERE status = 'processing' AND locked_at < NOW() - $1::interval
		`, olderThan.String())

		if err != nil {
			return err
		}

		n = tag.RowsAffected()
		return nil
	})

	return n, err
}

func (r *JobsRepo) GetByID(ctx context.Context, id string) (job.Job, error) {
	var j job.Job

	err := r.observe("jobs.get_by_id", func() error {
		return r.pool.QueryRow(ctx, `
		SELECT id, type, payload, status, attempts, max_attempts, run_at, locked_at, locked_by, last_error, idempotency_key, created_at, updated_at
		FROM jobs
		WHERE id = $1
		`, id).
			Scan(&j.ID, &j.Type, &j.Payload, &j.Status, &j.Attempts, &j.MaxAttempts, &j.RunAt,
				&j.LockedAt, &j.LockedBy, &j.LastError, &j.IdempotencyKey, &j.CreatedAt, &j.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrJobNotFound
		}
		return job.Job{}, err
	}

	return j, nil
}

func (r *JobsRepo) List(ctx context.Context, status string, page, limit int) ([]job.Job, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	offset := (page - 1) * limit

	where := ""
	countArgs := []interface{}{}
	listArgs := []interface{}{}

	if status != "" {
		where = " WHERE status = $1"
		countArgs = append(countArgs, status)
		listArgs = append(listArgs, status, limit, offset)
	} else {
		listArgs = append(listArgs, limit, offset)
	}

	limitSQL := " ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2"

	if status != "" {
		limitSQL = " ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3"
	}

	var total int
	var rows pgx.Rows
	var err error

	err = r.observe("jobs.list", func() error {
		if e := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM jobs"+where, countArgs...).Scan(&total); e != nil {
			return e
		}

		rows, err = r.pool.Query(ctx, `
		SELECT id, type, payload, status, attempts, max_attempts, run_at, locked_at, locked_by, last_error, idempotency_key, created_at, updated_at
		FROM jobs`+where+limitSQL, listArgs...)
		return err
	})

	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	out := make([]job.Job, 0)

	for rows.Next() {
		var j job.Job

		err = rows.Scan(&j.ID, &j.Type, &j.Payload, &j.Status, &j.Attempts, &j.MaxAttempts, &j.RunAt,
			&j.LockedAt, &j.LockedBy, &j.LastError, &j.IdempotencyKey, &j.CreatedAt, &j.UpdatedAt)

		if err != nil {
			return nil, 0, err
		}

		out = append(out, j)
	}

	return out, total, rows.Err()
}

// Retry puts a failed job back on the queue with a fresh attempt budget.
func (r *JobsRepo) Retry(ctx context.Context, id string) (job.Job, error) {
	var j job.Job

	err := r.observe("jobs.retry", func() error {
		return r.pool.QueryRow(ctx, `
		UPDATE jobs
		SET status = 'pending', attempts = 0, run_at = NOW(), locked_at = NULL, locked_by = NULL, last_error = NULL, updated_at = NOW()
		WHERE id = $1 AND status = 'failed'
		RETURNING id, type, payload, status, attempts, max_attempts, run_at, locked_at, locked_by, last_error, idempotency_key, created_at, updated_at
		`, id).
			Scan(&j.ID, &j.Type, &j.Payload, &j.Status, &j.Attempts, &j.MaxAttempts, &j.RunAt,
				&j.LockedAt, &j.LockedBy, &j.LastError, &j.IdempotencyKey, &j.CreatedAt, &j.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrJobNotFound
		}
		return job.Job{}, err
	}

	return j, nil
}
