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
	"github.com/nexfest/festhub/internal/domain/concert"
	"github.com/nexfest/festhub/internal/observability"
)

type ConcertsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewConcertsRepo(pool *pgxpool.Pool, prom *observability.Prom) *ConcertsRepo {
	return &ConcertsRepo{pool: pool, prom: prom}
}

func (r *ConcertsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *ConcertsRepo) List(ctx context.Context) ([]concert.Concert, error) {
	var rows pgx.Rows
	var err error

	err = r.observe("concerts.list", func() error {
		rows, err = r.pool.Query(ctx, `
		SELECT co.concert_id, co.concert_name, co.concert_date, COALESCE(co.venue, ''),
		       co.artist_id, COALESCE(a.artist_name, ''), co.ticket_price,
		       co.created_at, co.updated_at
		FROM concerts co
		LEFT JOIN artists a ON a.artist_id = co.artist_id
		ORDER BY co.concert_date ASC, co.concert_id ASC
		`)
		return err
	})

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]concert.Concert, 0)

	for rows.Next() {
		var c concert.Concert

		err = rows.Scan(&c.ConcertID, &c.ConcertName, &c.ConcertDate, &c.Venue,
			&c.ArtistID, &c.ArtistName, &c.TicketPrice,
			&c.CreatedAt, &c.UpdatedAt)

		if err != nil {
			return nil, err
		}

		out = append(out, c)
	}

	return out, rows.Err()
}

func (r *ConcertsRepo) Create(ctx context.Context, req concert.CreateConcertRequest) (concert.Concert, error) {
	now := time.Now().UTC()

	c := concert.Concert{
		ConcertID:   uuid.NewString(),
		ConcertName: req.ConcertName,
		ConcertDate: req.ConcertDate,
		Venue:       req.Venue,
		ArtistID:    req.ArtistID,
		TicketPrice: req.TicketPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := r.observe("concerts.create", func() error {
		_, e := r.pool.Exec(ctx, `
		INSERT INTO concerts (concert_id, concert_name, concert_date, venue, artist_id, ticket_price, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`, c.ConcertID, c.ConcertName, c.ConcertDate, c.Venue, c.ArtistID, c.TicketPrice, c.CreatedAt, c.UpdatedAt)
		return e
	})

	if err != nil {
		return concert.Concert{}, err
	}

	return c, nil
}

func (r *ConcertsRepo) Update(ctx context.Context, req concert.UpdateConcertRequest) (concert.Concert, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{req.ConcertID}

	argsPosition := 2

	add := func(col string, v interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, argsPosition))
		args = append(args, v)
		argsPosition++
	}

	if req.ConcertName != nil {
		add("concert_name", *req.ConcertName)
	}
	if req.ConcertDate != nil {
		add("concert_date", *req.ConcertDate)
	}
	if req.Venue != nil {
		add("venue", *req.Venue)
	}
	if req.ArtistID != nil {
		add("artist_id", *req.ArtistID)
	}
	if req.TicketPrice != nil {
		add("ticket_price", *req.TicketPrice)
	}

	query := "UPDATE concerts SET " + strings.Join(sets, ", ") +
		` WHERE concert_id = $1
		RETURNING concert_id, concert_name, concert_date, COALESCE(venue, ''), artist_id, ticket_price, created_at, updated_at`

	var c concert.Concert

	err := r.observe("concerts.update", func() error {
		return r.pool.QueryRow(ctx, query, args...).
			Scan(&c.ConcertID, &c.ConcertName, &c.ConcertDate, &c.Venue, &c.ArtistID, &c.TicketPrice, &c.CreatedAt, &c.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return concert.Concert{}, concert.ErrNotFound
		}
		return concert.Concert{}, err
	}

	return c, nil
}

func (r *ConcertsRepo) Delete(ctx context.Context, id string) error {
	return r.observe("concerts.delete", func() error {
		_, err := r.pool.Exec(ctx, `DELETE FROM concerts WHERE concert_id = $1`, id)
		return err
	})
}

// Artists

func (r *ConcertsRepo) ListArtists(ctx context.Context) ([]concert.Artist, error) {
	var rows pgx.Rows
	var err error

	err = r.observe("artists.list", func() error {
		rows, err = r.pool.Query(ctx, `
		SELECT artist_id, artist_name, COALESCE(genre, ''), COALESCE(picture, ''), created_at, updated_at
		FROM artists
		ORDER BY artist_name ASC
		`)
		return err
	})

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]concert.Artist, 0)

	for rows.Next() {
		var a concert.Artist

		err = rows.Scan(&a.ArtistID, &a.ArtistName, &a.Genre, &a.Picture, &a.CreatedAt, &a.UpdatedAt)

		if err != nil {
			return nil, err
		}

		out = append(out, a)
	}

	return out, rows.Err()
}

func (r *ConcertsRepo) CreateArtist(ctx context.Context, req concert.CreateArtistRequest) (concert.Artist, error) {
	now := time.Now().UTC()

	a := concert.Artist{
		ArtistID:   uuid.NewString(),
		ArtistName: req.ArtistName,
		Genre:      req.Genre,
		Picture:    req.Picture,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := r.observe("artists.create", func() error {
		_, e := r.pool.Exec(ctx, `
		INSERT INTO artists (artist_id, artist_name, genre, picture, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		`, a.ArtistID, a.ArtistName, a.Genre, a.Picture, a.CreatedAt, a.UpdatedAt)
		return e
	})

	if err != nil {
		return concert.Artist{}, err
	}

	return a, nil
}

func (r *ConcertsRepo) UpdateArtist(ctx context.Context, req concert.UpdateArtistRequest) (concert.Artist, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{req.ArtistID}

	argsPosition := 2

	add := func(col string, v interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, argsPosition))
		args = append(args, v)
		argsPosition++
	}

	if req.ArtistName != nil {
		add("artist_name", *req.ArtistName)
	}
	if req.Genre != nil {
		add("genre", *req.Genre)
	}
	if req.Picture != nil {
		add("picture", *req.Picture)
	}

	query := "UPDATE artists SET " + strings.Join(sets, ", ") +
		` WHERE artist_id = $1
		RETURNING artist_id, artist_name, COALESCE(genre, ''), COALESCE(picture, ''), created_at, updated_at`

	var a concert.Artist

	err := r.observe("artists.update", func() error {
		return r.pool.QueryRow(ctx, query, args...).
			Scan(&a.ArtistID, &a.ArtistName, &a.Genre, &a.Picture, &a.CreatedAt, &a.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return concert.Artist{}, concert.ErrArtistNotFound
		}
		return concert.Artist{}, err
	}

	return a, nil
}

func (r *ConcertsRepo) DeleteArtist(ctx context.Context, id string) error {
	return r.observe("artists.delete", func() error {
		_, err := r.pool.Exec(ctx, `DELETE FROM artists WHERE artist_id = $1`, id)
		return err
	})
}
