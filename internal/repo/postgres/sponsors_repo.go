package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nexfest/festhub/internal/domain/sponsor"
	"github.com/nexfest/festhub/internal/observability"
)

type SponsorsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewSponsorsRepo(pool *pgxpool.Pool, prom *observability.Prom) *SponsorsRepo {
	return &SponsorsRepo{pool: pool, prom: prom}
}

func (r *SponsorsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *SponsorsRepo) List(ctx context.Context) ([]sponsor.Sponsor, error) {
	var rows pgx.Rows
	var err error

	err = r.observe("sponsors.list", func() error {
		rows, err = r.pool.Query(ctx, `
		SELECT sponsor_id, sponsor_name, COALESCE(tier, ''), COALESCE(logo, ''), COALESCE(website, ''),
		       created_at, updated_at
		FROM sponsors
		ORDER BY sponsor_name ASC
		`)
		return err
	})

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]sponsor.Sponsor, 0)

	for rows.Next() {
		var s sponsor.Sponsor

		err = rows.Scan(&s.SponsorID, &s.SponsorName, &s.Tier, &s.Logo, &s.Website, &s.CreatedAt, &s.UpdatedAt)

		if err != nil {
			return nil, err
		}

		out = append(out, s)
	}

	return out, rows.Err()
}

func (r *SponsorsRepo) Create(ctx context.Context, req sponsor.CreateSponsorRequest) (sponsor.Sponsor, error) {
	now := time.Now().UTC()

	s := sponsor.Sponsor{
		SponsorID:   uuid.NewString(),
		SponsorName: req.SponsorName,
		Tier:        req.Tier,
		Logo:        req.Logo,
		Website:     req.Website,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := r.observe("sponsors.create", func() error {
		_, e := r.pool.Exec(ctx, `
		INSERT INTO sponsors (sponsor_id, sponsor_name, tier, logo, website, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, s.SponsorID, s.SponsorName, s.Tier, s.Logo, s.Website, s.CreatedAt, s.UpdatedAt)
		return e
	})

	if err != nil {
		return sponsor.Sponsor{}, err
	}

	return s, nil
}

func (r *SponsorsRepo) Update(ctx context.Context, req sponsor.UpdateSponsorRequest) (sponsor.Sponsor, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{req.SponsorID}

	argsPosition := 2

	add := func(col string, v interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, argsPosition))
		args = append(args, v)
		argsPosition++
	}

	if req.SponsorName != nil {
		add("sponsor_name", *req.SponsorName)
	}
	if req.Tier != nil {
		add("tier", *req.Tier)
	}
	if req.Logo != nil {
		add("logo", *req.Logo)
	}
	if req.Website != nil {
		add("website", *req.Website)
	}

	query := "UPDATE sponsors SET " + strings.Join(sets, ", ") +
		` WHERE sponsor_id = $1
		RETURNING sponsor_id, sponsor_name, COALESCE(tier, ''), COALESCE(logo, ''), COALESCE(website, ''), created_at, updated_at`

	var s sponsor.Sponsor

	err := r.observe("sponsors.update", func() error {
		return r.pool.QueryRow(ctx, query, args...).
			Scan(&s.SponsorID, &s.SponsorName, &s.Tier, &s.Logo, &s.Website, &s.CreatedAt, &s.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sponsor.Sponsor{}, sponsor.ErrNotFound
		}
		return sponsor.Sponsor{}, err
	}

	return s, nil
}

func (r *SponsorsRepo) Delete(ctx context.Context, id string) error {
	return r.observe("sponsors.delete", func() error {
		_, err := r.pool.Exec(ctx, `DELETE FROM sponsors WHERE sponsor_id = $1`, id)
		return err
	})
}
