// Package worker drains the Postgres-backed job queue. Claiming uses
// FOR UPDATE SKIP LOCKED in the repo, so any number of worker processes can
// run side by side. A Redis nudge shortens the pickup latency; plain polling
// is the fallback when Redis is down or a nudge is lost.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/nexfest/festhub/internal/domain/job"
	"github.com/nexfest/festhub/internal/observability"
)

type JobsRepository interface {
	ClaimNext(ctx context.Context, workerID string) (job.Job, error)
	MarkDone(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, lastError string) error
	Reschedule(ctx context.Context, id string, runAt time.Time, lastError string) error
	RequeueStaleProcessing(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Nudger is the optional Redis wake-up channel.
type Nudger interface {
	WaitNudge(ctx context.Context, timeout time.Duration) (bool, error)
}

type Config struct {
	WorkerID     string
	PollInterval time.Duration
	StaleAfter   time.Duration
}

type Worker struct {
	cfg      Config
	repo     JobsRepository
	handlers *Handlers
	nudger   Nudger
	log      *slog.Logger
	metrics  *observability.JobMetrics
	prom     *observability.Prom

	readyMu sync.RWMutex
	ready   bool
}

func New(cfg Config, repo JobsRepository, handlers *Handlers, nudger Nudger, log *slog.Logger, metrics *observability.JobMetrics, prom *observability.Prom) *Worker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = 5 * time.Minute
	}

	return &Worker{
		cfg:      cfg,
		repo:     repo,
		handlers: handlers,
		nudger:   nudger,
		log:      log,
		metrics:  metrics,
		prom:     prom,
	}
}

func (w *Worker) Run(ctx context.Context) error {
	w.setReady(true)
	defer w.setReady(false)

	staleTicker := time.NewTicker(w.cfg.StaleAfter / 2)
	defer staleTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("worker received shutdown signal", "worker_id", w.cfg.WorkerID)
			return nil
		case <-staleTicker.C:
			n, err := w.repo.RequeueStaleProcessing(ctx, w.cfg.StaleAfter)

			if err != nil {
				w.log.Error("requeue stale failed", "err", err)
			} else if n > 0 {
				w.log.Warn("requeued stale jobs", "count", n)
			}
		default:
		}

		processed, err := w.ProcessOne(ctx)

		if err != nil {
			w.log.Error("process job failed", "err", err)
		}

		if processed {
			// drain the queue back to back while work is available
			continue
		}

		w.idle(ctx)
	}
}

// idle waits for the next poll tick or a Redis nudge, whichever lands first.
func (w *Worker) idle(ctx context.Context) {
	if w.nudger != nil {
		_, err := w.nudger.WaitNudge(ctx, w.cfg.PollInterval)

		if err == nil || ctx.Err() != nil {
			return
		}

		w.log.Warn("nudge wait failed, falling back to polling", "err", err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(w.cfg.PollInterval):
	}
}

func (w *Worker) setReady(v bool) {
	w.readyMu.Lock()
	w.ready = v
	w.readyMu.Unlock()
}

var errUnknownJobType = errors.New("unknown job type")
