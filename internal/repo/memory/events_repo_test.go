package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/nexfest/festhub/internal/domain/event"
	"github.com/nexfest/festhub/internal/repo/memory"
)

func intp(v int) *int { return &v }

func feesp(fees []event.FeeInput) *[]event.FeeInput { return &fees }

func createEvent(t *testing.T, r *memory.EventsRepo, fees ...event.FeeInput) event.Event {
	t.Helper()

	e, err := r.Create(context.Background(), event.CreateEventRequest{
		EventName:  "Street Play",
		CategoryID: "cat-drama",
		EventDate:  time.Date(2026, 10, 3, 17, 0, 0, 0, time.UTC),
		Fees:       fees,
	})

	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	return e
}

func feeIDSet(fees []event.Fee) map[string]bool {
	out := make(map[string]bool, len(fees))
	for _, f := range fees {
		out[f.FeeID] = true
	}
	return out
}

func TestFeeReplacementMintsNewIDs(t *testing.T) {
	r := memory.NewEventsRepo()
	ctx := context.Background()

	e := createEvent(t, r,
		event.FeeInput{Type: event.ParticipationSolo, Price: 100},
		event.FeeInput{Type: event.ParticipationGroup, Price: 500, Min: intp(4), Max: intp(8)},
	)

	before, err := r.GetByID(ctx, e.EventID)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}

	if len(before.Fees) != 2 {
		t.Fatalf("expected 2 fees after create, got %d", len(before.Fees))
	}

	oldIDs := feeIDSet(before.Fees)

	// submit the same tiers again; the rows are still replaced wholesale
	_, err = r.Update(ctx, event.UpdateEventRequest{
		EventID: e.EventID,
		Fees: feesp([]event.FeeInput{
			{Type: event.ParticipationSolo, Price: 100},
			{Type: event.ParticipationGroup, Price: 500, Min: intp(4), Max: intp(8)},
		}),
	})
	if err != nil {
		t.Fatalf("update event: %v", err)
	}

	after, err := r.GetByID(ctx, e.EventID)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}

	if len(after.Fees) != 2 {
		t.Fatalf("expected 2 fees after replacement, got %d", len(after.Fees))
	}

	for _, f := range after.Fees {
		if oldIDs[f.FeeID] {
			t.Fatalf("fee id %s survived a replacement", f.FeeID)
		}
	}

	if got := r.FeeRowCount(); got != 2 {
		t.Fatalf("replacement leaked fee rows: total %d, want 2", got)
	}
}

func TestFeeReplacementWithEmptySliceClearsFees(t *testing.T) {
	r := memory.NewEventsRepo()
	ctx := context.Background()

	e := createEvent(t, r, event.FeeInput{Type: event.ParticipationDuet, Price: 150, Max: intp(2)})

	_, err := r.Update(ctx, event.UpdateEventRequest{
		EventID: e.EventID,
		Fees:    feesp([]event.FeeInput{}),
	})
	if err != nil {
		t.Fatalf("update event: %v", err)
	}

	got, err := r.GetByID(ctx, e.EventID)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}

	if len(got.Fees) != 0 {
		t.Fatalf("expected no fees, got %d", len(got.Fees))
	}

	if r.FeeRowCount() != 0 {
		t.Fatalf("cleared fees left %d rows behind", r.FeeRowCount())
	}
}

func TestUpdateWithoutFeesKeyLeavesFeesUntouched(t *testing.T) {
	r := memory.NewEventsRepo()
	ctx := context.Background()

	e := createEvent(t, r, event.FeeInput{Type: event.ParticipationSolo, Price: 75})

	fingerprint := r.DumpFeeIDs(e.EventID)

	name := "Street Play Finals"
	_, err := r.Update(ctx, event.UpdateEventRequest{EventID: e.EventID, EventName: &name})
	if err != nil {
		t.Fatalf("update event: %v", err)
	}

	if got := r.DumpFeeIDs(e.EventID); got != fingerprint {
		t.Fatalf("scalar update changed fee links: before %s, after %s", fingerprint, got)
	}

	got, err := r.GetByID(ctx, e.EventID)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}

	if got.EventName != name {
		t.Fatalf("event name not updated, got %q", got.EventName)
	}
}

func TestDeleteCascadesFeeRows(t *testing.T) {
	r := memory.NewEventsRepo()
	ctx := context.Background()

	keep := createEvent(t, r, event.FeeInput{Type: event.ParticipationSolo, Price: 50})
	gone := createEvent(t, r,
		event.FeeInput{Type: event.ParticipationSolo, Price: 60},
		event.FeeInput{Type: event.ParticipationDuet, Price: 110, Max: intp(2)},
	)

	if err := r.Delete(ctx, gone.EventID); err != nil {
		t.Fatalf("delete event: %v", err)
	}

	if _, err := r.GetByID(ctx, gone.EventID); err != event.ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	if r.FeeRowCount() != 1 {
		t.Fatalf("cascade left %d fee rows, want 1", r.FeeRowCount())
	}

	// the surviving event still lists its fee
	left, err := r.GetByID(ctx, keep.EventID)
	if err != nil {
		t.Fatalf("get surviving event: %v", err)
	}

	if len(left.Fees) != 1 {
		t.Fatalf("surviving event lost its fees, got %d", len(left.Fees))
	}

	// deleting twice is fine
	if err := r.Delete(ctx, gone.EventID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestFeeDefaultsAndOrdering(t *testing.T) {
	r := memory.NewEventsRepo()
	ctx := context.Background()

	e := createEvent(t, r,
		event.FeeInput{Type: event.ParticipationSolo, Price: 80},
		event.FeeInput{Type: event.ParticipationGroup, Price: 400, Min: intp(3), Max: intp(6)},
		event.FeeInput{Type: event.ParticipationDuet, Price: 140, Max: intp(2)},
	)

	got, err := r.GetByID(ctx, e.EventID)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}

	if len(got.Fees) != 3 {
		t.Fatalf("expected 3 fees, got %d", len(got.Fees))
	}

	// listing is ordered by participation type
	wantOrder := []string{event.ParticipationDuet, event.ParticipationGroup, event.ParticipationSolo}
	for i, f := range got.Fees {
		if f.ParticipationType != wantOrder[i] {
			t.Fatalf("fee %d has type %q, want %q", i, f.ParticipationType, wantOrder[i])
		}
	}

	for _, f := range got.Fees {
		if f.ParticipationType == event.ParticipationSolo {
			if f.MinMembers != 1 || f.MaxMembers != 1 {
				t.Fatalf("solo fee defaults wrong: min=%d max=%d", f.MinMembers, f.MaxMembers)
			}
		}
	}
}
