package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nexfest/festhub/internal/domain/event"
	"github.com/nexfest/festhub/internal/observability"
)

type EventsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewEventsRepo(pool *pgxpool.Pool, prom *observability.Prom) *EventsRepo {
	return &EventsRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *EventsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// List returns every event joined with its category name and fee tiers.
func (r *EventsRepo) List(ctx context.Context) ([]event.Event, error) {
	var rows pgx.Rows
	var err error

	err = r.observe("events.list", func() error {
		rows, err = r.pool.Query(ctx, `
		SELECT e.event_id, e.event_name, e.category_id, COALESCE(c.category_name, ''),
		       e.event_date, COALESCE(e.event_picture, ''), COALESCE(e.rulebook, ''),
		       COALESCE(e.description, ''), e.is_registration_open, e.is_dau_free,
		       e.created_at, e.updated_at
		FROM events e
		LEFT JOIN event_categories c ON c.category_id = e.category_id
		ORDER BY e.event_date ASC, e.event_id ASC
		`)
		return err
	})

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]event.Event, 0)

	for rows.Next() {
		var e event.Event

		err = rows.Scan(&e.EventID, &e.EventName, &e.CategoryID, &e.CategoryName,
			&e.EventDate, &e.EventPicture, &e.Rulebook,
			&e.Description, &e.IsRegistrationOpen, &e.IsDauFree,
			&e.CreatedAt, &e.UpdatedAt)

		if err != nil {
			return nil, err
		}

		out = append(out, e)
	}

	err = rows.Err()

	if err != nil {
		return nil, err
	}

	err = r.attachFees(ctx, out)

	if err != nil {
		return nil, err
	}

	return out, nil
}

// attachFees loads the fee tiers for a batch of events in one query.
func (r *EventsRepo) attachFees(ctx context.Context, events []event.Event) error {
	if len(events) == 0 {
		return nil
	}

	ids := make([]string, 0, len(events))
	index := make(map[string]int, len(events))

	for i, e := range events {
		ids = append(ids, e.EventID)
		index[e.EventID] = i
	}

	var rows pgx.Rows
	var err error

	err = r.observe("events.attach_fees", func() error {
		rows, err = r.pool.Query(ctx, `
		SELECT ef.event_id, f.fee_id, f.participation_type, f.price, f.min_members, f.max_members
		FROM event_fees ef
		JOIN fees f ON f.fee_id = ef.fee_id
		WHERE ef.event_id = ANY($1)
		ORDER BY f.participation_type ASC, f.fee_id ASC
		`, ids)
		return err
	})

	if err != nil {
		return err
	}

	defer rows.Close()

	for rows.Next() {
		var eventID string
		var f event.Fee

		err = rows.Scan(&eventID, &f.FeeID, &f.ParticipationType, &f.Price, &f.MinMembers, &f.MaxMembers)

		if err != nil {
			return err
		}

		if i, ok := index[eventID]; ok {
			events[i].Fees = append(events[i].Fees, f)
		}
	}

	return rows.Err()
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (event.Event, error) {
	var e event.Event

	err := r.observe("events.get_by_id", func() error {
		return r.pool.QueryRow(ctx, `
		SELECT e.event_id, e.event_name, e.category_id, COALESCE(c.category_name, ''),
		       e.event_date, COALESCE(e.event_picture, ''), COALESCE(e.rulebook, ''),
		       COALESCE(e.description, ''), e.is_registration_open, e.is_dau_free,
		       e.created_at, e.updated_at
		FROM events e
		LEFT JOIN event_categories c ON c.category_id = e.category_id
		WHERE e.event_id = $1
		`, id).Scan(&e.EventID, &e.EventName, &e.CategoryID, &e.CategoryName,
			&e.EventDate, &e.EventPicture, &e.Rulebook,
			&e.Description, &e.IsRegistrationOpen, &e.IsDauFree,
			&e.CreatedAt, &e.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrNotFound
		}
		return event.Event{}, err
	}

	batch := []event.Event{e}

	err = r.attachFees(ctx, batch)

	if err != nil {
		return event.Event{}, err
	}

	return batch[0], nil
}

// Create inserts the event row plus one fee row and one link row per
// supplied tier. The whole sequence runs in one transaction so a fee
// insert failure does not strand a fee-less event.
func (r *EventsRepo) Create(ctx context.Context, req event.CreateEventRequest) (created event.Event, err error) {
	e := event.NewFromCreateRequest(req)

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return
	}

	defer func() { _ = tx.Rollback(ctx) }()

	err = r.observe("events.create.insert_event", func() error {
		_, e2 := tx.Exec(ctx, `
		INSERT INTO events (event_id, event_name, category_id, event_date, event_picture,
		                    rulebook, description, is_registration_open, is_dau_free,
		                    created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		`, e.EventID, e.EventName, e.CategoryID, e.EventDate, e.EventPicture,
			e.Rulebook, e.Description, e.IsRegistrationOpen, e.IsDauFree,
			e.CreatedAt, e.UpdatedAt)
		return e2
	})

	if err != nil {
		return
	}

	if len(req.Fees) > 0 {
		err = r.insertFeesTx(ctx, tx, e.EventID, req.Fees)

		if err != nil {
			return
		}
	}

	err = tx.Commit(ctx)

	if err != nil {
		return
	}

	// create response echoes the event only, not the fee rows
	created = e
	return
}

func (r *EventsRepo) insertFeesTx(ctx context.Context, tx pgx.Tx, eventID string, inputs []event.FeeInput) error {
	for _, in := range inputs {
		f := event.NewFeeFromInput(in)

		err := r.observe("events.fees.insert_fee", func() error {
			_, e := tx.Exec(ctx, `
			INSERT INTO fees (fee_id, participation_type, price, min_members, max_members)
			VALUES ($1,$2,$3,$4,$5)
			`, f.FeeID, f.ParticipationType, f.Price, f.MinMembers, f.MaxMembers)
			return e
		})

		if err != nil {
			return err
		}

		err = r.observe("events.fees.insert_link", func() error {
			_, e := tx.Exec(ctx, `
			INSERT INTO event_fees (event_id, fee_id)
			VALUES ($1,$2)
			`, eventID, f.FeeID)
			return e
		})

		if err != nil {
			return err
		}
	}

	return nil
}

// Update applies whatever scalar fields are present. If the fees key was
// sent at all it also replaces the event's fee set wholesale: the previously
// linked fee rows are deleted outright and fresh rows inserted with new
// fee_ids. There is deliberately no upsert-by-type; registrations holding
// an old fee_id dangle after a fee edit, which is the documented contract.
func (r *EventsRepo) Update(ctx context.Context, req event.UpdateEventRequest) (updated event.Event, err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return
	}

	defer func() { _ = tx.Rollback(ctx) }()

	if req.HasScalarUpdates() {
		err = r.updateScalarsTx(ctx, tx, req)

		if err != nil {
			return
		}
	}

	if req.Fees != nil {
		err = r.replaceFeesTx(ctx, tx, req.EventID, *req.Fees)

		if err != nil {
			return
		}
	}

	var e event.Event

	err = r.observe("events.update.reload", func() error {
		return tx.QueryRow(ctx, `
		SELECT e.event_id, e.event_name, e.category_id, COALESCE(c.category_name, ''),
		       e.event_date, COALESCE(e.event_picture, ''), COALESCE(e.rulebook, ''),
		       COALESCE(e.description, ''), e.is_registration_open, e.is_dau_free,
		       e.created_at, e.updated_at
		FROM events e
		LEFT JOIN event_categories c ON c.category_id = e.category_id
		WHERE e.event_id = $1
		`, req.EventID).Scan(&e.EventID, &e.EventName, &e.CategoryID, &e.CategoryName,
			&e.EventDate, &e.EventPicture, &e.Rulebook,
			&e.Description, &e.IsRegistrationOpen, &e.IsDauFree,
			&e.CreatedAt, &e.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = event.ErrNotFound
		}
		return
	}

	err = tx.Commit(ctx)

	if err != nil {
		return
	}

	updated = e
	return
}

func (r *EventsRepo) updateScalarsTx(ctx context.Context, tx pgx.Tx, req event.UpdateEventRequest) error {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{req.EventID}

	argsPosition := 2

	add := func(col string, v interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, argsPosition))
		args = append(args, v)
		argsPosition++
	}

	if req.EventName != nil {
		add("event_name", *req.EventName)
	}
	if req.CategoryID != nil {
		add("category_id", *req.CategoryID)
	}
	if req.EventDate != nil {
		add("event_date", *req.EventDate)
	}
	if req.EventPicture != nil {
		add("event_picture", *req.EventPicture)
	}
	if req.Rulebook != nil {
		add("rulebook", *req.Rulebook)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.IsRegistrationOpen != nil {
		add("is_registration_open", *req.IsRegistrationOpen)
	}
	if req.IsDauFree != nil {
		add("is_dau_free", *req.IsDauFree)
	}

	query := "UPDATE events SET " + strings.Join(sets, ", ") + " WHERE event_id = $1"

	return r.observe("events.update.scalars", func() error {
		_, err := tx.Exec(ctx, query, args...)
		return err
	})
}

// replaceFeesTx is the delete-all / insert-new half of the fee sync.
func (r *EventsRepo) replaceFeesTx(ctx context.Context, tx pgx.Tx, eventID string, inputs []event.FeeInput) error {
	// collect the fee ids currently linked to this event
	var feeIDs []string

	err := r.observe("events.fees.lookup_links", func() error {
		rows, e := tx.Query(ctx, `SELECT fee_id FROM event_fees WHERE event_id = $1`, eventID)

		if e != nil {
			return e
		}

		defer rows.Close()

		for rows.Next() {
			var id string

			if e := rows.Scan(&id); e != nil {
				return e
			}
			feeIDs = append(feeIDs, id)
		}

		return rows.Err()
	})

	if err != nil {
		return err
	}

	if len(feeIDs) > 0 {
		// deleting the fee row cascades away the event_fees link
		err = r.observe("events.fees.delete_old", func() error {
			_, e := tx.Exec(ctx, `DELETE FROM fees WHERE fee_id = ANY($1)`, feeIDs)
			return e
		})

		if err != nil {
			return err
		}
	}

	if len(inputs) > 0 {
		return r.insertFeesTx(ctx, tx, eventID, inputs)
	}

	return nil
}

// Delete removes the event row; fee and link cleanup is left to the
// database's ON DELETE CASCADE. Deleting an id that no longer exists is
// not an error.
func (r *EventsRepo) Delete(ctx context.Context, id string) error {
	return r.observe("events.delete", func() error {
		_, err := r.pool.Exec(ctx, `DELETE FROM events WHERE event_id = $1`, id)
		return err
	})
}
