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
	"github.com/nexfest/festhub/internal/domain/merchandise"
	"github.com/nexfest/festhub/internal/observability"
)

type MerchandiseRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewMerchandiseRepo(pool *pgxpool.Pool, prom *observability.Prom) *MerchandiseRepo {
	return &MerchandiseRepo{pool: pool, prom: prom}
}

func (r *MerchandiseRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *MerchandiseRepo) ListProducts(ctx context.Context) ([]merchandise.Product, error) {
	var rows pgx.Rows
	var err error

	err = r.observe("merchandise.list_products", func() error {
		rows, err = r.pool.Query(ctx, `
		SELECT product_id, name, COALESCE(description, ''), price, sizes, COALESCE(image, ''),
		       stock, is_available, created_at, updated_at
		FROM merchandise_products
		ORDER BY name ASC
		`)
		return err
	})

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]merchandise.Product, 0)

	for rows.Next() {
		var p merchandise.Product

		err = rows.Scan(&p.ProductID, &p.Name, &p.Description, &p.Price, &p.Sizes, &p.Image,
			&p.Stock, &p.IsAvailable, &p.CreatedAt, &p.UpdatedAt)

		if err != nil {
			return nil, err
		}

		out = append(out, p)
	}

	return out, rows.Err()
}

func (r *MerchandiseRepo) CreateProduct(ctx context.Context, req merchandise.CreateProductRequest) (merchandise.Product, error) {
	now := time.Now().UTC()

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	p := merchandise.Product{
		ProductID:   uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Sizes:       req.Sizes,
		Image:       req.Image,
		Stock:       req.Stock,
		IsAvailable: available,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := r.observe("merchandise.create_product", func() error {
		_, e := r.pool.Exec(ctx, `
		INSERT INTO merchandise_products (product_id, name, description, price, sizes, image, stock, is_available, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		`, p.ProductID, p.Name, p.Description, p.Price, p.Sizes, p.Image, p.Stock, p.IsAvailable, p.CreatedAt, p.UpdatedAt)
		return e
	})

	if err != nil {
		return merchandise.Product{}, err
	}

	return p, nil
}

func (r *MerchandiseRepo) UpdateProduct(ctx context.Context, req merchandise.UpdateProductRequest) (merchandise.Product, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{req.ProductID}

	argsPosition := 2

	add := func(col string, v interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, argsPosition))
		args = append(args, v)
		argsPosition++
	}

	if req.Name != nil {
		add("name", *req.Name)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.Price != nil {
		add("price", *req.Price)
	}
	if req.Sizes != nil {
		add("sizes", *req.Sizes)
	}
	if req.Image != nil {
		add("image", *req.Image)
	}
	if req.Stock != nil {
		add("stock", *req.Stock)
	}
	if req.IsAvailable != nil {
		add("is_available", *req.IsAvailable)
	}

	query := "UPDATE merchandise_products SET " + strings.Join(sets, ", ") +
		` WHERE product_id = $1
		RETURNING product_id, name, COALESCE(description, ''), price, sizes, COALESCE(image, ''), stock, is_available, created_at, updated_at`

	var p merchandise.Product

	err := r.observe("merchandise.update_product", func() error {
		return r.pool.QueryRow(ctx, query, args...).
			Scan(&p.ProductID, &p.Name, &p.Description, &p.Price, &p.Sizes, &p.Image,
				&p.Stock, &p.IsAvailable, &p.CreatedAt, &p.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return merchandise.Product{}, merchandise.ErrProductNotFound
		}
		return merchandise.Product{}, err
	}

	return p, nil
}

func (r *MerchandiseRepo) DeleteProduct(ctx context.Context, id string) error {
	return r.observe("merchandise.delete_product", func() error {
		_, err := r.pool.Exec(ctx, `DELETE FROM merchandise_products WHERE product_id = $1`, id)
		return err
	})
}
