// Package memory holds in-memory repository implementations used by handler
// unit tests and the fee synchronization property tests. They mirror the
// observable semantics of the Postgres repos without a database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nexfest/festhub/internal/domain/event"
)

type EventsRepo struct {
	mu     sync.RWMutex
	events map[string]event.Event
	// fees and links are kept separate so the repo reproduces the real
	// delete-all / insert-new behavior, including fee rows orphaned by a
	// replaced link set.
	fees  map[string]event.Fee
	links map[string][]string // event_id -> fee_ids
}

func NewEventsRepo() *EventsRepo {
	return &EventsRepo{
		events: make(map[string]event.Event),
		fees:   make(map[string]event.Fee),
		links:  make(map[string][]string),
	}
}

func (r *EventsRepo) List(ctx context.Context) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]event.Event, 0, len(r.events))

	for _, e := range r.events {
		out = append(out, r.withFeesLocked(e))
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].EventDate.Equal(out[j].EventDate) {
			return out[i].EventDate.Before(out[j].EventDate)
		}
		return out[i].EventID < out[j].EventID
	})

	return out, nil
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.events[id]

	if !ok {
		return event.Event{}, event.ErrNotFound
	}

	return r.withFeesLocked(e), nil
}

func (r *EventsRepo) Create(ctx context.Context, req event.CreateEventRequest) (event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := event.NewFromCreateRequest(req)

	r.events[e.EventID] = e

	r.insertFeesLocked(e.EventID, req.Fees)

	return e, nil
}

func (r *EventsRepo) Update(ctx context.Context, req event.UpdateEventRequest) (event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.events[req.EventID]

	if !ok {
		return event.Event{}, event.ErrNotFound
	}

	if req.EventName != nil {
		e.EventName = *req.EventName
	}
	if req.CategoryID != nil {
		e.CategoryID = *req.CategoryID
	}
	if req.EventDate != nil {
		e.EventDate = *req.EventDate
	}
	if req.EventPicture != nil {
		e.EventPicture = *req.EventPicture
	}
	if req.Rulebook != nil {
		e.Rulebook = *req.Rulebook
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.IsRegistrationOpen != nil {
		e.IsRegistrationOpen = *req.IsRegistrationOpen
	}
	if req.IsDauFree != nil {
		e.IsDauFree = *req.IsDauFree
	}

	if req.HasScalarUpdates() {
		e.UpdatedAt = time.Now().UTC()
	}

	if req.Fees != nil {
		// delete-all / insert-new: old fee rows vanish, new ids are minted
		for _, feeID := range r.links[req.EventID] {
			delete(r.fees, feeID)
		}

		delete(r.links, req.EventID)

		r.insertFeesLocked(req.EventID, *req.Fees)
	}

	r.events[req.EventID] = e

	return e, nil
}

func (r *EventsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// cascade like the schema does; fee rows linked to the event go too
	for _, feeID := range r.links[id] {
		delete(r.fees, feeID)
	}

	delete(r.links, id)
	delete(r.events, id)

	return nil
}

func (r *EventsRepo) insertFeesLocked(eventID string, inputs []event.FeeInput) {
	for _, in := range inputs {
		f := event.NewFeeFromInput(in)
		r.fees[f.FeeID] = f
		r.links[eventID] = append(r.links[eventID], f.FeeID)
	}
}

func (r *EventsRepo) withFeesLocked(e event.Event) event.Event {
	fees := make([]event.Fee, 0, len(r.links[e.EventID]))

	for _, feeID := range r.links[e.EventID] {
		if f, ok := r.fees[feeID]; ok {
			fees = append(fees, f)
		}
	}

	sort.Slice(fees, func(i, j int) bool {
		if fees[i].ParticipationType != fees[j].ParticipationType {
			return fees[i].ParticipationType < fees[j].ParticipationType
		}
		return fees[i].FeeID < fees[j].FeeID
	})

	if len(fees) > 0 {
		e.Fees = fees
	} else {
		e.Fees = nil
	}

	return e
}

// FeeRowCount reports how many fee rows exist in total, linked or not. The
// sync tests use it to prove replacement never leaks rows.
func (r *EventsRepo) FeeRowCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.fees)
}

// DumpFeeIDs returns a stable fingerprint of the linked fee ids for an event.
func (r *EventsRepo) DumpFeeIDs(eventID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := append([]string{}, r.links[eventID]...)

	sort.Strings(ids)

	return fmt.Sprintf("[%s]", strings.Join(ids, ","))
}
