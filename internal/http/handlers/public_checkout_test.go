package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/nexfest/festhub/internal/domain/merchandise"
	"github.com/nexfest/festhub/internal/domain/registration"
	"github.com/nexfest/festhub/internal/http/handlers"
)

type fakeRegistrationsRepo struct {
	createFn func(ctx context.Context, req registration.CreateRegistrationRequest) (registration.Registration, error)
}

func (f *fakeRegistrationsRepo) Create(ctx context.Context, req registration.CreateRegistrationRequest) (registration.Registration, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return registration.Registration{}, nil
}

type fakeOrdersRepo struct {
	createFn func(ctx context.Context, req merchandise.CreateOrderRequest) (merchandise.Order, error)
}

func (f *fakeOrdersRepo) Create(ctx context.Context, req merchandise.CreateOrderRequest) (merchandise.Order, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return merchandise.Order{}, nil
}

type fakeNudger struct {
	calls int
}

func (f *fakeNudger) Nudge(ctx context.Context) error {
	f.calls++
	return nil
}

const registrationBody = `{"event_id":"e-1","fee_id":"f-1","name":"Asha","email":"asha@example.com"}`

func TestCreateRegistrationStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		repoErr    error
		wantStatus int
	}{
		{name: "event missing", repoErr: registration.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "registration closed", repoErr: registration.ErrRegistrationClosed, wantStatus: http.StatusConflict},
		{name: "fee not linked", repoErr: registration.ErrFeeNotLinked, wantStatus: http.StatusBadRequest},
		{name: "team size out of bounds", repoErr: registration.ErrTeamSize, wantStatus: http.StatusBadRequest},
		{name: "storage failure", repoErr: errors.New("connection refused"), wantStatus: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeRegistrationsRepo{
				createFn: func(ctx context.Context, req registration.CreateRegistrationRequest) (registration.Registration, error) {
					return registration.Registration{}, tc.repoErr
				},
			}
			nudger := &fakeNudger{}
			h := handlers.NewRegistrationsHandler(repo, nudger)
			r := setupRouter(http.MethodPost, "/api/registrations", h.Create)

			w := doJSON(t, r, http.MethodPost, "/api/registrations", registrationBody)

			if w.Code != tc.wantStatus {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tc.wantStatus, w.Body.String())
			}

			if nudger.calls != 0 {
				t.Fatal("a failed write must not nudge the worker")
			}
		})
	}
}

func TestCreateRegistrationSuccessNudgesWorker(t *testing.T) {
	repo := &fakeRegistrationsRepo{
		createFn: func(ctx context.Context, req registration.CreateRegistrationRequest) (registration.Registration, error) {
			reg := registration.NewFromCreateRequest(req)
			return reg, nil
		},
	}
	nudger := &fakeNudger{}
	h := handlers.NewRegistrationsHandler(repo, nudger)
	r := setupRouter(http.MethodPost, "/api/registrations", h.Create)

	w := doJSON(t, r, http.MethodPost, "/api/registrations", registrationBody)

	if w.Code != http.StatusCreated {
		t.Fatalf("got status %d, want 201, body=%s", w.Code, w.Body.String())
	}

	if nudger.calls != 1 {
		t.Fatalf("nudger called %d times, want 1", nudger.calls)
	}

	var resp struct {
		Success      bool                      `json:"success"`
		Registration registration.Registration `json:"registration"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if !resp.Success || resp.Registration.PaymentStatus != "pending" {
		t.Fatalf("unexpected envelope: %s", w.Body.String())
	}
}

func TestCreateRegistrationWorksWithoutNudger(t *testing.T) {
	h := handlers.NewRegistrationsHandler(&fakeRegistrationsRepo{}, nil)
	r := setupRouter(http.MethodPost, "/api/registrations", h.Create)

	w := doJSON(t, r, http.MethodPost, "/api/registrations", registrationBody)

	if w.Code != http.StatusCreated {
		t.Fatalf("got status %d, want 201, body=%s", w.Code, w.Body.String())
	}
}

const orderBody = `{"product_id":"p-1","quantity":2,"name":"Asha","email":"asha@example.com","payment_method":"upi"}`

func TestCreateOrderStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		repoErr    error
		wantStatus int
	}{
		{name: "product missing", repoErr: merchandise.ErrProductNotFound, wantStatus: http.StatusNotFound},
		{name: "product unavailable", repoErr: merchandise.ErrUnavailable, wantStatus: http.StatusConflict},
		{name: "out of stock", repoErr: merchandise.ErrOutOfStock, wantStatus: http.StatusConflict},
		{name: "storage failure", repoErr: errors.New("connection refused"), wantStatus: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeOrdersRepo{
				createFn: func(ctx context.Context, req merchandise.CreateOrderRequest) (merchandise.Order, error) {
					return merchandise.Order{}, tc.repoErr
				},
			}
			nudger := &fakeNudger{}
			h := handlers.NewOrdersHandler(repo, nudger)
			r := setupRouter(http.MethodPost, "/api/orders", h.Create)

			w := doJSON(t, r, http.MethodPost, "/api/orders", orderBody)

			if w.Code != tc.wantStatus {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tc.wantStatus, w.Body.String())
			}

			if nudger.calls != 0 {
				t.Fatal("a failed write must not nudge the worker")
			}
		})
	}
}

func TestCreateOrderReturnsServerComputedAmount(t *testing.T) {
	repo := &fakeOrdersRepo{
		createFn: func(ctx context.Context, req merchandise.CreateOrderRequest) (merchandise.Order, error) {
			return merchandise.Order{
				OrderID:       "o-1",
				ProductID:     req.ProductID,
				Quantity:      req.Quantity,
				Amount:        598, // price * quantity, never client supplied
				PaymentStatus: "pending",
			}, nil
		},
	}
	h := handlers.NewOrdersHandler(repo, &fakeNudger{})
	r := setupRouter(http.MethodPost, "/api/orders", h.Create)

	w := doJSON(t, r, http.MethodPost, "/api/orders", orderBody)

	if w.Code != http.StatusCreated {
		t.Fatalf("got status %d, want 201, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool              `json:"success"`
		Order   merchandise.Order `json:"order"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if resp.Order.Amount != 598 {
		t.Fatalf("amount=%v, want 598", resp.Order.Amount)
	}
}
