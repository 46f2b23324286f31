package worker_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/nexfest/festhub/internal/domain/job"
	"github.com/nexfest/festhub/internal/jobs"
	"github.com/nexfest/festhub/internal/notifications"
	"github.com/nexfest/festhub/internal/observability"
	"github.com/nexfest/festhub/internal/queue/worker"
)

type fakeJobsRepo struct {
	claimFn func(ctx context.Context, workerID string) (job.Job, error)

	doneIDs      []string
	failed       map[string]string
	rescheduled  map[string]time.Time
	staleCalls   int
	staleReqeued int64
}

func newFakeJobsRepo() *fakeJobsRepo {
	return &fakeJobsRepo{
		failed:      make(map[string]string),
		rescheduled: make(map[string]time.Time),
	}
}

func (f *fakeJobsRepo) ClaimNext(ctx context.Context, workerID string) (job.Job, error) {
	if f.claimFn != nil {
		return f.claimFn(ctx, workerID)
	}
	return job.Job{}, job.ErrJobNotFound
}

func (f *fakeJobsRepo) MarkDone(ctx context.Context, id string) error {
	f.doneIDs = append(f.doneIDs, id)
	return nil
}

func (f *fakeJobsRepo) MarkFailed(ctx context.Context, id string, lastError string) error {
	f.failed[id] = lastError
	return nil
}

func (f *fakeJobsRepo) Reschedule(ctx context.Context, id string, runAt time.Time, lastError string) error {
	f.rescheduled[id] = runAt
	return nil
}

func (f *fakeJobsRepo) RequeueStaleProcessing(ctx context.Context, olderThan time.Duration) (int64, error) {
	f.staleCalls++
	return f.staleReqeued, nil
}

type fakeNotifier struct {
	regCalls   []notifications.SendRegistrationConfirmationInput
	orderCalls []notifications.SendOrderConfirmationInput
	err        error
}

func (f *fakeNotifier) SendRegistrationConfirmation(ctx context.Context, in notifications.SendRegistrationConfirmationInput) error {
	f.regCalls = append(f.regCalls, in)
	return f.err
}

func (f *fakeNotifier) SendOrderConfirmation(ctx context.Context, in notifications.SendOrderConfirmationInput) error {
	f.orderCalls = append(f.orderCalls, in)
	return f.err
}

func newTestWorker(repo worker.JobsRepository, n notifications.Notifier) *worker.Worker {
	return worker.New(
		worker.Config{WorkerID: "test-1"},
		repo,
		&worker.Handlers{Notifier: n},
		nil,
		slog.New(slog.DiscardHandler),
		observability.NewJobMetrics(),
		nil,
	)
}

func registrationJob(t *testing.T, attempts, maxAttempts int) job.Job {
	t.Helper()

	raw, err := jobs.EncodePayload(jobs.JobSendRegistrationConfirmation, jobs.RegistrationConfirmationPayload{
		RegistrationID: "r-1",
		EventID:        "e-1",
		Email:          "asha@example.com",
		Name:           "Asha",
	})
	if err != nil {
		t.Fatalf("encode payload: %v", err)
	}

	return job.Job{
		ID:          "j-1",
		Type:        string(jobs.JobSendRegistrationConfirmation),
		Payload:     raw,
		Status:      job.StatusProcessing,
		Attempts:    attempts,
		MaxAttempts: maxAttempts,
	}
}

func TestProcessOneNoWork(t *testing.T) {
	repo := newFakeJobsRepo()
	w := newTestWorker(repo, &fakeNotifier{})

	claimed, err := w.ProcessOne(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if claimed {
		t.Fatal("nothing to claim, claimed must be false")
	}
}

func TestProcessOneSuccess(t *testing.T) {
	repo := newFakeJobsRepo()
	j := registrationJob(t, 1, 10)
	repo.claimFn = func(ctx context.Context, workerID string) (job.Job, error) {
		return j, nil
	}

	n := &fakeNotifier{}
	w := newTestWorker(repo, n)

	claimed, err := w.ProcessOne(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !claimed {
		t.Fatal("expected the job to be claimed")
	}

	if len(n.regCalls) != 1 {
		t.Fatalf("notifier called %d times, want 1", len(n.regCalls))
	}

	if n.regCalls[0].RegistrationID != "r-1" || n.regCalls[0].Email != "asha@example.com" {
		t.Fatalf("notifier got wrong input: %+v", n.regCalls[0])
	}

	if len(repo.doneIDs) != 1 || repo.doneIDs[0] != "j-1" {
		t.Fatalf("MarkDone not called for j-1, done=%v", repo.doneIDs)
	}
}

func TestProcessOneRetriesTransientFailure(t *testing.T) {
	repo := newFakeJobsRepo()
	j := registrationJob(t, 2, 10)
	repo.claimFn = func(ctx context.Context, workerID string) (job.Job, error) {
		return j, nil
	}

	n := &fakeNotifier{err: errors.New("smtp timeout")}
	w := newTestWorker(repo, n)

	claimed, err := w.ProcessOne(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !claimed {
		t.Fatal("expected the job to be claimed")
	}

	runAt, ok := repo.rescheduled["j-1"]
	if !ok {
		t.Fatal("transient failure must reschedule the job")
	}

	if !runAt.After(time.Now().UTC()) {
		t.Fatalf("reschedule time %v is not in the future", runAt)
	}

	if _, ok := repo.failed["j-1"]; ok {
		t.Fatal("transient failure must not mark the job failed")
	}
}

func TestProcessOneDeadLettersAtAttemptBudget(t *testing.T) {
	repo := newFakeJobsRepo()
	j := registrationJob(t, 10, 10)
	repo.claimFn = func(ctx context.Context, workerID string) (job.Job, error) {
		return j, nil
	}

	n := &fakeNotifier{err: errors.New("smtp timeout")}
	w := newTestWorker(repo, n)

	if _, err := w.ProcessOne(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lastErr, ok := repo.failed["j-1"]
	if !ok {
		t.Fatal("exhausted job must be marked failed")
	}

	if lastErr != "smtp timeout" {
		t.Fatalf("last_error=%q, want the execution error", lastErr)
	}

	if len(repo.rescheduled) != 0 {
		t.Fatal("exhausted job must not be rescheduled")
	}
}

func TestProcessOneFailsFastOnBadPayload(t *testing.T) {
	repo := newFakeJobsRepo()
	repo.claimFn = func(ctx context.Context, workerID string) (job.Job, error) {
		return job.Job{
			ID:          "j-bad",
			Type:        string(jobs.JobSendOrderConfirmation),
			Payload:     json.RawMessage("{"),
			Attempts:    1,
			MaxAttempts: 10,
		}, nil
	}

	n := &fakeNotifier{}
	w := newTestWorker(repo, n)

	if _, err := w.ProcessOne(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := repo.failed["j-bad"]; !ok {
		t.Fatal("undecodable payload must be marked failed immediately")
	}

	if len(repo.rescheduled) != 0 {
		t.Fatal("undecodable payload must never be retried")
	}

	if len(n.orderCalls) != 0 {
		t.Fatal("notifier must not be called for a bad payload")
	}
}

func TestProcessOneFailsFastOnUnknownType(t *testing.T) {
	repo := newFakeJobsRepo()
	repo.claimFn = func(ctx context.Context, workerID string) (job.Job, error) {
		return job.Job{
			ID:          "j-odd",
			Type:        "mystery.job",
			Payload:     json.RawMessage("{}"),
			Attempts:    1,
			MaxAttempts: 10,
		}, nil
	}

	w := newTestWorker(repo, &fakeNotifier{})

	if _, err := w.ProcessOne(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := repo.failed["j-odd"]; !ok {
		t.Fatal("unknown job type must be marked failed immediately")
	}

	if len(repo.rescheduled) != 0 {
		t.Fatal("unknown job type must never be retried")
	}
}
