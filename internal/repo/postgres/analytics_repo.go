package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nexfest/festhub/internal/observability"
)

// DashboardStats backs the admin overview page.
type DashboardStats struct {
	TotalEvents            int     `json:"total_events"`
	TotalRegistrations     int     `json:"total_registrations"`
	PendingRegistrations   int     `json:"pending_registrations"`
	TotalOrders            int     `json:"total_orders"`
	RegistrationRevenue    float64 `json:"registration_revenue"`
	MerchandiseRevenue     float64 `json:"merchandise_revenue"`
	RegistrationsLast7Days int     `json:"registrations_last_7_days"`
	OrdersLast7Days        int     `json:"orders_last_7_days"`
}

type EventRegistrationCount struct {
	EventID   string `json:"event_id"`
	EventName string `json:"event_name"`
	Count     int    `json:"count"`
}

type AnalyticsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewAnalyticsRepo(pool *pgxpool.Pool, prom *observability.Prom) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool, prom: prom}
}

func (r *AnalyticsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *AnalyticsRepo) Dashboard(ctx context.Context) (DashboardStats, error) {
	var s DashboardStats

	err := r.observe("analytics.dashboard", func() error {
		return r.pool.QueryRow(ctx, `
		SELECT
		  (SELECT COUNT(*) FROM events),
		  (SELECT COUNT(*) FROM registrations),
		  (SELECT COUNT(*) FROM registrations WHERE payment_status = 'pending'),
		  (SELECT COUNT(*) FROM merchandise_orders),
		  (SELECT COALESCE(SUM(f.price), 0)
		     FROM registrations r JOIN fees f ON f.fee_id = r.fee_id
		    WHERE r.payment_status = 'done'),
		  (SELECT COALESCE(SUM(amount), 0) FROM merchandise_orders WHERE payment_status = 'done'),
		  (SELECT COUNT(*) FROM registrations WHERE created_at >= NOW() - INTERVAL '7 days'),
		  (SELECT COUNT(*) FROM merchandise_orders WHERE created_at >= NOW() - INTERVAL '7 days')
		`).Scan(&s.TotalEvents, &s.TotalRegistrations, &s.PendingRegistrations, &s.TotalOrders,
			&s.RegistrationRevenue, &s.MerchandiseRevenue, &s.RegistrationsLast7Days, &s.OrdersLast7Days)
	})

	if err != nil {
		return DashboardStats{}, err
	}

	return s, nil
}

func (r *AnalyticsRepo) RegistrationsByEvent(ctx context.Context) ([]EventRegistrationCount, error) {
	var out []EventRegistrationCount

	err := r.observe("analytics.registrations_by_event", func() error {
		rows, err := r.pool.Query(ctx, `
		SELECT e.event_id, e.event_name, COUNT(r.registration_id)
		FROM events e
		LEFT JOIN registrations r ON r.event_id = e.event_id
		GROUP BY e.event_id, e.event_name
		ORDER BY COUNT(r.registration_id) DESC, e.event_name ASC
		`)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]EventRegistrationCount, 0)

		for rows.Next() {
			var c EventRegistrationCount

			if err := rows.Scan(&c.EventID, &c.EventName, &c.Count); err != nil {
				return err
			}

			out = append(out, c)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}
