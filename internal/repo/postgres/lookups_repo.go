package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nexfest/festhub/internal/domain/lookup"
	"github.com/nexfest/festhub/internal/observability"
)

type LookupsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewLookupsRepo(pool *pgxpool.Pool, prom *observability.Prom) *LookupsRepo {
	return &LookupsRepo{pool: pool, prom: prom}
}

func (r *LookupsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *LookupsRepo) ListAccommodationTypes(ctx context.Context) ([]lookup.AccommodationType, error) {
	var rows pgx.Rows
	var err error

	err = r.observe("lookups.list_accommodation_types", func() error {
		rows, err = r.pool.Query(ctx, `
		SELECT accommodation_type_id, name, COALESCE(description, ''), price_per_night, created_at, updated_at
		FROM accommodation_types
		ORDER BY price_per_night ASC, name ASC
		`)
		return err
	})

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]lookup.AccommodationType, 0)

	for rows.Next() {
		var a lookup.AccommodationType

		err = rows.Scan(&a.AccommodationTypeID, &a.Name, &a.Description, &a.PricePerNight, &a.CreatedAt, &a.UpdatedAt)

		if err != nil {
			return nil, err
		}

		out = append(out, a)
	}

	return out, rows.Err()
}

func (r *LookupsRepo) CreateAccommodationType(ctx context.Context, req lookup.CreateAccommodationTypeRequest) (lookup.AccommodationType, error) {
	now := time.Now().UTC()

	a := lookup.AccommodationType{
		AccommodationTypeID: uuid.NewString(),
		Name:                req.Name,
		Description:         req.Description,
		PricePerNight:       req.PricePerNight,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	err := r.observe("lookups.create_accommodation_type", func() error {
		_, e := r.pool.Exec(ctx, `
		INSERT INTO accommodation_types (accommodation_type_id, name, description, price_per_night, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		`, a.AccommodationTypeID, a.Name, a.Description, a.PricePerNight, a.CreatedAt, a.UpdatedAt)
		return e
	})

	if err != nil {
		return lookup.AccommodationType{}, err
	}

	return a, nil
}

func (r *LookupsRepo) DeleteAccommodationType(ctx context.Context, id string) error {
	return r.observe("lookups.delete_accommodation_type", func() error {
		_, err := r.pool.Exec(ctx, `DELETE FROM accommodation_types WHERE accommodation_type_id = $1`, id)
		return err
	})
}

func (r *LookupsRepo) ListPaymentMethods(ctx context.Context) ([]lookup.PaymentMethod, error) {
	var rows pgx.Rows
	var err error

	err = r.observe("lookups.list_payment_methods", func() error {
		rows, err = r.pool.Query(ctx, `
		SELECT payment_method_id, name, is_enabled, created_at, updated_at
		FROM payment_methods
		ORDER BY name ASC
		`)
		return err
	})

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]lookup.PaymentMethod, 0)

	for rows.Next() {
		var p lookup.PaymentMethod

		err = rows.Scan(&p.PaymentMethodID, &p.Name, &p.IsEnabled, &p.CreatedAt, &p.UpdatedAt)

		if err != nil {
			return nil, err
		}

		out = append(out, p)
	}

	return out, rows.Err()
}

func (r *LookupsRepo) CreatePaymentMethod(ctx context.Context, req lookup.CreatePaymentMethodRequest) (lookup.PaymentMethod, error) {
	now := time.Now().UTC()

	enabled := true
	if req.IsEnabled != nil {
		enabled = *req.IsEnabled
	}

	p := lookup.PaymentMethod{
		PaymentMethodID: uuid.NewString(),
		Name:            req.Name,
		IsEnabled:       enabled,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := r.observe("lookups.create_payment_method", func() error {
		_, e := r.pool.Exec(ctx, `
		INSERT INTO payment_methods (payment_method_id, name, is_enabled, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)
		`, p.PaymentMethodID, p.Name, p.IsEnabled, p.CreatedAt, p.UpdatedAt)
		return e
	})

	if err != nil {
		return lookup.PaymentMethod{}, err
	}

	return p, nil
}

func (r *LookupsRepo) DeletePaymentMethod(ctx context.Context, id string) error {
	return r.observe("lookups.delete_payment_method", func() error {
		_, err := r.pool.Exec(ctx, `DELETE FROM payment_methods WHERE payment_method_id = $1`, id)
		return err
	})
}
