package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nexfest/festhub/internal/domain/job"
	"github.com/nexfest/festhub/internal/domain/registration"
	"github.com/nexfest/festhub/internal/jobs"
	"github.com/nexfest/festhub/internal/observability"
)

type RegistrationsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewRegistrationsRepo(pool *pgxpool.Pool, prom *observability.Prom) *RegistrationsRepo {
	return &RegistrationsRepo{pool: pool, prom: prom}
}

func (r *RegistrationsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// Create registers a participant inside a single transaction. The event row
// is locked FOR UPDATE so a concurrent close of registrations is observed,
// the chosen fee must be linked to the event, and when the fee admits more
// than one member a team plus its members are created alongside the
// registration. A confirmation job is enqueued in the same transaction.
func (r *RegistrationsRepo) Create(ctx context.Context, req registration.CreateRegistrationRequest) (registration.Registration, error) {
	reg := registration.NewFromCreateRequest(req)

	err := r.observe("registrations.create", func() error {
		tx, err := r.pool.Begin(ctx)

		if err != nil {
			return err
		}

		defer tx.Rollback(ctx)

		var open bool
		var eventName string

		err = tx.QueryRow(ctx, `
		SELECT event_name, is_registration_open
		FROM events
		WHERE event_id = $1
		FOR UPDATE
		`, req.EventID).Scan(&eventName, &open)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return registration.ErrNotFound
			}
			return err
		}

		if !open {
			return registration.ErrRegistrationClosed
		}

		var minMembers, maxMembers int

		err = tx.QueryRow(ctx, `
		SELECT f.min_members, f.max_members
		FROM event_fees ef
		JOIN fees f ON f.fee_id = ef.fee_id
		WHERE ef.event_id = $1 AND ef.fee_id = $2
		`, req.EventID, req.FeeID).Scan(&minMembers, &maxMembers)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return registration.ErrFeeNotLinked
			}
			return err
		}

		// The registrant counts as a member, so a solo fee with no
		// explicit members list is a size of one.
		size := 1 + len(req.Members)

		if size < minMembers || size > maxMembers {
			return registration.ErrTeamSize
		}

		if maxMembers > 1 {
			teamName := req.TeamName

			if teamName == "" {
				teamName = req.Name
			}

			teamID := uuid.NewString()

			_, err = tx.Exec(ctx, `
			INSERT INTO teams (team_id, team_name, event_id, created_at)
			VALUES ($1,$2,$3,NOW())
			`, teamID, teamName, req.EventID)

			if err != nil {
				return err
			}

			for _, m := range req.Members {
				_, err = tx.Exec(ctx, `
				INSERT INTO team_members (member_id, team_id, name, email, created_at)
				VALUES ($1,$2,$3,$4,NOW())
				`, uuid.NewString(), teamID, m.Name, m.Email)

				if err != nil {
					return err
				}
			}

			reg.TeamID = &teamID
		}

		reg.EventName = eventName

		_, err = tx.Exec(ctx, `
		INSERT INTO registrations (registration_id, event_id, fee_id, name, email, phone, college, payment_status, team_id, accommodation_type_id, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		`, reg.RegistrationID, reg.EventID, reg.FeeID, reg.Name, reg.Email, reg.Phone, reg.College,
			reg.PaymentStatus, reg.TeamID, reg.AccommodationTypeID, reg.CreatedAt)

		if err != nil {
			return err
		}

		payload, err := jobs.EncodePayload(jobs.JobSendRegistrationConfirmation, jobs.RegistrationConfirmationPayload{
			RegistrationID: reg.RegistrationID,
			EventID:        reg.EventID,
			Email:          reg.Email,
			Name:           reg.Name,
			RequestedAt:    reg.CreatedAt,
		})

		if err != nil {
			return err
		}

		key := "registration.confirmation:" + reg.RegistrationID

		j := job.New(job.CreateRequest{
			Type:           string(jobs.JobSendRegistrationConfirmation),
			Payload:        payload,
			IdempotencyKey: &key,
		})

		if err := insertJobTx(ctx, tx, j); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})

	if err != nil {
		return registration.Registration{}, err
	}

	return reg, nil
}

func (r *RegistrationsRepo) List(ctx context.Context, filter registration.ListFilter) ([]registration.Registration, int, error) {
	page := filter.Page
	limit := filter.Limit

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	offset := (page - 1) * limit

	where := []string{}
	args := []interface{}{}

	argsPosition := 1

	add := func(cond string, v interface{}) {
		where = append(where, fmt.Sprintf(cond, argsPosition))
		args = append(args, v)
		argsPosition++
	}

	if filter.EventID != nil {
		add("r.event_id = $%d", *filter.EventID)
	}
	if filter.PaymentStatus != nil {
		add("r.payment_status = $%d", *filter.PaymentStatus)
	}

	whereSQL := ""

	if len(where) > 0 {
		whereSQL = " WHERE " + where[0]
		for _, w := range where[1:] {
			whereSQL += " AND " + w
		}
	}

	countQuery := "SELECT COUNT(*) FROM registrations r" + whereSQL

	listQuery := `
	SELECT r.registration_id, r.event_id, COALESCE(e.event_name, ''), r.fee_id,
	       r.name, r.email, COALESCE(r.phone, ''), COALESCE(r.college, ''),
	       r.payment_status, r.team_id, r.accommodation_type_id, r.created_at
	FROM registrations r
	LEFT JOIN events e ON e.event_id = r.event_id` + whereSQL +
		fmt.Sprintf(" ORDER BY r.created_at DESC, r.registration_id DESC LIMIT $%d OFFSET $%d", argsPosition, argsPosition+1)

	listArgs := append(append([]interface{}{}, args...), limit, offset)

	var total int
	var rows pgx.Rows
	var err error

	err = r.observe("registrations.list", func() error {
		if e := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); e != nil {
			return e
		}

		rows, err = r.pool.Query(ctx, listQuery, listArgs...)
		return err
	})

	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	out := make([]registration.Registration, 0)

	for rows.Next() {
		var reg registration.Registration

		err = rows.Scan(&reg.RegistrationID, &reg.EventID, &reg.EventName, &reg.FeeID,
			&reg.Name, &reg.Email, &reg.Phone, &reg.College,
			&reg.PaymentStatus, &reg.TeamID, &reg.AccommodationTypeID, &reg.CreatedAt)

		if err != nil {
			return nil, 0, err
		}

		out = append(out, reg)
	}

	return out, total, rows.Err()
}

