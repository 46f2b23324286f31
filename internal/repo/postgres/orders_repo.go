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
	"github.com/nexfest/festhub/internal/domain/job"
	"github.com/nexfest/festhub/internal/domain/merchandise"
	"github.com/nexfest/festhub/internal/jobs"
	"github.com/nexfest/festhub/internal/observability"
)

type OrdersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewOrdersRepo(pool *pgxpool.Pool, prom *observability.Prom) *OrdersRepo {
	return &OrdersRepo{pool: pool, prom: prom}
}

func (r *OrdersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// Create places an order inside a single transaction. The product row is
// locked FOR UPDATE so concurrent checkouts cannot oversell the stock, the
// amount is computed from the stored price, and a confirmation job is
// enqueued atomically with the order row.
func (r *OrdersRepo) Create(ctx context.Context, req merchandise.CreateOrderRequest) (merchandise.Order, error) {
	var o merchandise.Order

	err := r.observe("orders.create", func() error {
		tx, err := r.pool.Begin(ctx)

		if err != nil {
			return err
		}

		defer tx.Rollback(ctx)

		var price float64
		var stock int
		var available bool
		var productName string

		err = tx.QueryRow(ctx, `
		SELECT name, price, stock, is_available
		FROM merchandise_products
		WHERE product_id = $1
		FOR UPDATE
		`, req.ProductID).Scan(&productName, &price, &stock, &available)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return merchandise.ErrProductNotFound
			}
			return err
		}

		if !available {
			return merchandise.ErrUnavailable
		}

		if stock < req.Quantity {
			return merchandise.ErrOutOfStock
		}

		_, err = tx.Exec(ctx, `
		UPDATE merchandise_products SET stock = stock - $2, updated_at = NOW()
		WHERE product_id = $1
		`, req.ProductID, req.Quantity)

		if err != nil {
			return err
		}

		o = merchandise.Order{
			OrderID:       uuid.NewString(),
			ProductID:     req.ProductID,
			ProductName:   productName,
			Quantity:      req.Quantity,
			Size:          req.Size,
			Name:          req.Name,
			Email:         req.Email,
			Phone:         req.Phone,
			Amount:        price * float64(req.Quantity),
			PaymentMethod: req.PaymentMethod,
			PaymentStatus: merchandise.PaymentPending,
			CreatedAt:     time.Now().UTC(),
		}

		_, err = tx.Exec(ctx, `
		INSERT INTO merchandise_orders (order_id, product_id, quantity, size, name, email, phone, amount, payment_method, payment_status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		`, o.OrderID, o.ProductID, o.Quantity, o.Size, o.Name, o.Email, o.Phone, o.Amount, o.PaymentMethod, o.PaymentStatus, o.CreatedAt)

		if err != nil {
			return err
		}

		payload, err := jobs.EncodePayload(jobs.JobSendOrderConfirmation, jobs.OrderConfirmationPayload{
			OrderID:     o.OrderID,
			ProductID:   o.ProductID,
			Email:       o.Email,
			Name:        o.Name,
			Amount:      o.Amount,
			RequestedAt: o.CreatedAt,
		})

		if err != nil {
			return err
		}

		key := "order.confirmation:" + o.OrderID

		j := job.New(job.CreateRequest{
			Type:           string(jobs.JobSendOrderConfirmation),
			Payload:        payload,
			IdempotencyKey: &key,
		})

		if err := insertJobTx(ctx, tx, j); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})

	if err != nil {
		return merchandise.Order{}, err
	}

	return o, nil
}

func (r *OrdersRepo) List(ctx context.Context, page, limit int) ([]merchandise.Order, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	offset := (page - 1) * limit

	var total int
	var rows pgx.Rows
	var err error

	err = r.observe("orders.list", func() error {
		if e := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM merchandise_orders`).Scan(&total); e != nil {
			return e
		}

		rows, err = r.pool.Query(ctx, `
		SELECT o.order_id, o.product_id, COALESCE(p.name, ''), o.quantity, COALESCE(o.size, ''),
		       o.name, o.email, COALESCE(o.phone, ''), o.amount, o.payment_method, o.payment_status, o.created_at
		FROM merchandise_orders o
		LEFT JOIN merchandise_products p ON p.product_id = o.product_id
		ORDER BY o.created_at DESC, o.order_id DESC
		LIMIT $1 OFFSET $2
		`, limit, offset)
		return err
	})

	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	out := make([]merchandise.Order, 0)

	for rows.Next() {
		var o merchandise.Order

		err = rows.Scan(&o.OrderID, &o.ProductID, &o.ProductName, &o.Quantity, &o.Size,
			&o.Name, &o.Email, &o.Phone, &o.Amount, &o.PaymentMethod, &o.PaymentStatus, &o.CreatedAt)

		if err != nil {
			return nil, 0, err
		}

		out = append(out, o)
	}

	return out, total, rows.Err()
}

func (r *OrdersRepo) Update(ctx context.Context, req merchandise.UpdateOrderRequest) (merchandise.Order, error) {
	sets := []string{}
	args := []interface{}{req.OrderID}

	argsPosition := 2

	add := func(col string, v interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, argsPosition))
		args = append(args, v)
		argsPosition++
	}

	if req.PaymentStatus != nil {
		add("payment_status", *req.PaymentStatus)
	}

	if len(sets) == 0 {
		sets = append(sets, "payment_status = payment_status")
	}

	query := "UPDATE merchandise_orders SET " + strings.Join(sets, ", ") +
		` WHERE order_id = $1
		RETURNING order_id, product_id, quantity, COALESCE(size, ''), name, email, COALESCE(phone, ''), amount, payment_method, payment_status, created_at`

	var o merchandise.Order

	err := r.observe("orders.update", func() error {
		return r.pool.QueryRow(ctx, query, args...).
			Scan(&o.OrderID, &o.ProductID, &o.Quantity, &o.Size, &o.Name, &o.Email, &o.Phone,
				&o.Amount, &o.PaymentMethod, &o.PaymentStatus, &o.CreatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return merchandise.Order{}, merchandise.ErrOrderNotFound
		}
		return merchandise.Order{}, err
	}

	return o, nil
}

func (r *OrdersRepo) Delete(ctx context.Context, id string) error {
	return r.observe("orders.delete", func() error {
		_, err := r.pool.Exec(ctx, `DELETE FROM merchandise_orders WHERE order_id = $1`, id)
		return err
	})
}
