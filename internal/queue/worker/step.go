package worker

import (
	"context"
	"errors"
	"time"

	"github.com/nexfest/festhub/internal/domain/job"
	"github.com/nexfest/festhub/internal/jobs"
	"github.com/nexfest/festhub/internal/notifications"
)

// Handlers maps job types to their side effects.
type Handlers struct {
	Notifier notifications.Notifier
}

// ProcessOne claims and executes at most one job. The bool reports whether a
// job was claimed, so the caller knows to keep draining or go idle.
func (w *Worker) ProcessOne(ctx context.Context) (bool, error) {
	claimCtx, cancel := context.WithTimeout(ctx, 2*time.Second)

	j, err := w.repo.ClaimNext(claimCtx, w.cfg.WorkerID)
	cancel()

	if err != nil {
		if errors.Is(err, job.ErrJobNotFound) {
			return false, nil
		}

		return false, err
	}

	if w.metrics != nil {
		w.metrics.IncClaimed()
	}

	if w.prom != nil {
		w.prom.JobsInFlight.Inc()
		defer w.prom.JobsInFlight.Dec()
	}

	start := time.Now()

	err = w.execute(ctx, j)

	elapsed := time.Since(start)

	if w.metrics != nil {
		w.metrics.ObserveDuration(elapsed)
	}

	if err != nil {
		result := w.handleFailure(ctx, j, err)
		w.observeResult(j.Type, elapsed, result)
		return true, nil
	}

	err = w.repo.MarkDone(ctx, j.ID)

	if err != nil {
		_ = w.repo.MarkFailed(ctx, j.ID, "mark_done_failed: "+err.Error())
		return true, err
	}

	if w.metrics != nil {
		w.metrics.IncDone()
	}

	w.observeResult(j.Type, elapsed, "done")

	w.log.Info("job done", "job_id", j.ID, "type", j.Type, "attempt", j.Attempts, "took", elapsed)

	return true, nil
}

func (w *Worker) execute(ctx context.Context, j job.Job) error {
	t := jobs.JobType(j.Type)

	payload, err := jobs.DecodePayload(t, j.Payload)

	if err != nil {
		return err
	}

	switch p := payload.(type) {
	case jobs.RegistrationConfirmationPayload:
		return w.handlers.Notifier.SendRegistrationConfirmation(ctx, notifications.SendRegistrationConfirmationInput{
			Email:          p.Email,
			Name:           p.Name,
			EventID:        p.EventID,
			RegistrationID: p.RegistrationID,
		})
	case jobs.OrderConfirmationPayload:
		return w.handlers.Notifier.SendOrderConfirmation(ctx, notifications.SendOrderConfirmationInput{
			Email:     p.Email,
			Name:      p.Name,
			OrderID:   p.OrderID,
			ProductID: p.ProductID,
			Amount:    p.Amount,
		})
	default:
		return errUnknownJobType
	}
}

// handleFailure retries with backoff until the attempt budget runs out, then
// parks the job as failed for manual inspection. Returns the result label.
func (w *Worker) handleFailure(ctx context.Context, j job.Job, execErr error) string {
	// decode errors and unknown types never succeed on retry
	permanent := errors.Is(execErr, errUnknownJobType) ||
		errors.Is(execErr, jobs.ErrInvalidJobType) ||
		errors.Is(execErr, jobs.ErrInvalidJobPayload)

	if permanent || j.Attempts >= j.MaxAttempts {
		if err := w.repo.MarkFailed(ctx, j.ID, execErr.Error()); err != nil {
			w.log.Error("mark failed errored", "job_id", j.ID, "err", err)
			return "failed"
		}

		if w.metrics != nil {
			w.metrics.IncFailed()
			if !permanent {
				w.metrics.IncDeadLettered()
			}
		}

		w.log.Error("job failed permanently", "job_id", j.ID, "type", j.Type, "attempt", j.Attempts, "err", execErr)
		return "failed"
	}

	delay := ExponentialBackoff(j.Attempts)
	runAt := time.Now().UTC().Add(delay)

	if err := w.repo.Reschedule(ctx, j.ID, runAt, execErr.Error()); err != nil {
		w.log.Error("reschedule errored", "job_id", j.ID, "err", err)
		return "retry"
	}

	if w.metrics != nil {
		w.metrics.IncRetried()
	}

	w.log.Warn("job rescheduled", "job_id", j.ID, "type", j.Type, "attempt", j.Attempts, "retry_in", delay, "err", execErr)

	return "retry"
}

func (w *Worker) observeResult(jobType string, elapsed time.Duration, result string) {
	if w.prom == nil {
		return
	}

	w.prom.JobResults.WithLabelValues(jobType, result).Inc()
	w.prom.JobDuration.WithLabelValues(jobType, result).Observe(elapsed.Seconds())
}
