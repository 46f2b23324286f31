package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nexfest/festhub/internal/domain/event"
	"github.com/nexfest/festhub/internal/http/handlers"
)

// Make sure Gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

// Fake repository implementation of the handlers.EventsRepository interface

type fakeEventsRepo struct {
	listFn   func(ctx context.Context) ([]event.Event, error)
	getFn    func(ctx context.Context, id string) (event.Event, error)
	createFn func(ctx context.Context, req event.CreateEventRequest) (event.Event, error)
	updateFn func(ctx context.Context, req event.UpdateEventRequest) (event.Event, error)
	deleteFn func(ctx context.Context, id string) error

	updateCalls int
	deleteCalls int
}

func (f *fakeEventsRepo) List(ctx context.Context) ([]event.Event, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return []event.Event{}, nil
}

func (f *fakeEventsRepo) GetByID(ctx context.Context, id string) (event.Event, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return event.Event{}, nil
}

func (f *fakeEventsRepo) Create(ctx context.Context, req event.CreateEventRequest) (event.Event, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return event.Event{}, nil
}

func (f *fakeEventsRepo) Update(ctx context.Context, req event.UpdateEventRequest) (event.Event, error) {
	f.updateCalls++
	if f.updateFn != nil {
		return f.updateFn(ctx, req)
	}
	return event.Event{}, nil
}

func (f *fakeEventsRepo) Delete(ctx context.Context, id string) error {
	f.deleteCalls++
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

// small helper to mount one handler per test

func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, h)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestCreateEvent(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name       string
		body       string
		createFn   func(ctx context.Context, req event.CreateEventRequest) (event.Event, error)
		wantStatus int
	}{
		{
			name: "success",
			body: `{"event_name":"Battle of Bands","category_id":"cat-1","event_date":"2026-10-02T18:00:00Z",
			        "fees":[{"type":"solo","price":100},{"type":"group","price":400,"min":3,"max":6}]}`,
			createFn: func(ctx context.Context, req event.CreateEventRequest) (event.Event, error) {
				if len(req.Fees) != 2 {
					t.Fatalf("expected 2 fee inputs, got %d", len(req.Fees))
				}
				e := event.NewFromCreateRequest(req)
				e.CreatedAt = now
				return e, nil
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing required fields",
			body:       `{"event_name":"X"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid fee type",
			body:       `{"event_name":"Solo Dance","category_id":"cat-1","event_date":"2026-10-02T18:00:00Z","fees":[{"type":"quartet","price":10}]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "repo failure forwards error string",
			body: `{"event_name":"Quiz","category_id":"cat-1","event_date":"2026-10-02T18:00:00Z"}`,
			createFn: func(ctx context.Context, req event.CreateEventRequest) (event.Event, error) {
				return event.Event{}, errors.New("duplicate key value violates unique constraint")
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeEventsRepo{createFn: tc.createFn}
			h := handlers.NewEventsHandler(repo, nil)
			r := setupRouter(http.MethodPost, "/api/admin/events", h.Create)

			w := doJSON(t, r, http.MethodPost, "/api/admin/events", tc.body)

			if w.Code != tc.wantStatus {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tc.wantStatus, w.Body.String())
			}

			if tc.wantStatus == http.StatusCreated {
				var resp struct {
					Success bool        `json:"success"`
					Event   event.Event `json:"event"`
				}

				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("unmarshal response: %v", err)
				}

				if !resp.Success {
					t.Fatal("expected success=true")
				}

				if resp.Event.EventName != "Battle of Bands" {
					t.Fatalf("unexpected event name %q", resp.Event.EventName)
				}

				if !resp.Event.IsRegistrationOpen {
					t.Fatal("is_registration_open should default to true")
				}
			}

			if tc.wantStatus == http.StatusInternalServerError {
				var resp struct {
					Error string `json:"error"`
				}

				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("unmarshal response: %v", err)
				}

				if resp.Error != "duplicate key value violates unique constraint" {
					t.Fatalf("raw error string not forwarded, got %q", resp.Error)
				}
			}
		})
	}
}

func TestUpdateEvent(t *testing.T) {
	t.Run("missing event_id is rejected before the repo", func(t *testing.T) {
		repo := &fakeEventsRepo{}
		h := handlers.NewEventsHandler(repo, nil)
		r := setupRouter(http.MethodPut, "/api/admin/events", h.Update)

		w := doJSON(t, r, http.MethodPut, "/api/admin/events", `{"event_name":"Renamed"}`)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("got status %d, want 400, body=%s", w.Code, w.Body.String())
		}

		var resp struct {
			Error string `json:"error"`
		}

		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}

		if resp.Error != "Event ID required" {
			t.Fatalf("got error %q, want %q", resp.Error, "Event ID required")
		}

		if repo.updateCalls != 0 {
			t.Fatalf("repo.Update called %d times, want 0", repo.updateCalls)
		}
	})

	t.Run("unknown id maps to 404", func(t *testing.T) {
		repo := &fakeEventsRepo{
			updateFn: func(ctx context.Context, req event.UpdateEventRequest) (event.Event, error) {
				return event.Event{}, event.ErrNotFound
			},
		}
		h := handlers.NewEventsHandler(repo, nil)
		r := setupRouter(http.MethodPut, "/api/admin/events", h.Update)

		w := doJSON(t, r, http.MethodPut, "/api/admin/events", `{"event_id":"`+uuid.NewString()+`","event_name":"Renamed"}`)

		if w.Code != http.StatusNotFound {
			t.Fatalf("got status %d, want 404, body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("fees key is passed through even when empty", func(t *testing.T) {
		var got event.UpdateEventRequest

		repo := &fakeEventsRepo{
			updateFn: func(ctx context.Context, req event.UpdateEventRequest) (event.Event, error) {
				got = req
				return event.Event{EventID: req.EventID}, nil
			},
		}
		h := handlers.NewEventsHandler(repo, nil)
		r := setupRouter(http.MethodPut, "/api/admin/events", h.Update)

		w := doJSON(t, r, http.MethodPut, "/api/admin/events", `{"event_id":"e-1","fees":[]}`)

		if w.Code != http.StatusOK {
			t.Fatalf("got status %d, want 200, body=%s", w.Code, w.Body.String())
		}

		if got.Fees == nil {
			t.Fatal("empty fees array must reach the repo as non-nil")
		}

		if len(*got.Fees) != 0 {
			t.Fatalf("expected empty fee inputs, got %d", len(*got.Fees))
		}
	})
}

func TestDeleteEvent(t *testing.T) {
	t.Run("missing id", func(t *testing.T) {
		repo := &fakeEventsRepo{}
		h := handlers.NewEventsHandler(repo, nil)
		r := setupRouter(http.MethodDelete, "/api/admin/events", h.Delete)

		req := httptest.NewRequest(http.MethodDelete, "/api/admin/events", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("got status %d, want 400", w.Code)
		}

		var resp struct {
			Error string `json:"error"`
		}

		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}

		if resp.Error != "ID required" {
			t.Fatalf("got error %q, want %q", resp.Error, "ID required")
		}

		if repo.deleteCalls != 0 {
			t.Fatalf("repo.Delete called %d times, want 0", repo.deleteCalls)
		}
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		repo := &fakeEventsRepo{
			deleteFn: func(ctx context.Context, id string) error {
				// zero rows affected is not an error in the repo
				return nil
			},
		}
		h := handlers.NewEventsHandler(repo, nil)
		r := setupRouter(http.MethodDelete, "/api/admin/events", h.Delete)

		for i := 0; i < 2; i++ {
			req := httptest.NewRequest(http.MethodDelete, "/api/admin/events?id=gone", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("pass %d: got status %d, want 200", i, w.Code)
			}

			var resp struct {
				Success bool `json:"success"`
			}

			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}

			if !resp.Success {
				t.Fatal("expected success=true")
			}
		}
	})
}
