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
	"github.com/nexfest/festhub/internal/domain/category"
	"github.com/nexfest/festhub/internal/observability"
)

type CategoriesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewCategoriesRepo(pool *pgxpool.Pool, prom *observability.Prom) *CategoriesRepo {
	return &CategoriesRepo{pool: pool, prom: prom}
}

func (r *CategoriesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *CategoriesRepo) List(ctx context.Context) ([]category.Category, error) {
	var rows pgx.Rows
	var err error

	err = r.observe("categories.list", func() error {
		rows, err = r.pool.Query(ctx, `
		SELECT category_id, category_name, COALESCE(description, ''), COALESCE(category_image, ''),
		       created_at, updated_at
		FROM event_categories
		ORDER BY category_name ASC
		`)
		return err
	})

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]category.Category, 0)

	for rows.Next() {
		var c category.Category

		err = rows.Scan(&c.CategoryID, &c.CategoryName, &c.Description, &c.CategoryImage, &c.CreatedAt, &c.UpdatedAt)

		if err != nil {
			return nil, err
		}

		out = append(out, c)
	}

	return out, rows.Err()
}

func (r *CategoriesRepo) Create(ctx context.Context, req category.CreateCategoryRequest) (category.Category, error) {
	now := time.Now().UTC()

	c := category.Category{
		CategoryID:    uuid.NewString(),
		CategoryName:  req.CategoryName,
		Description:   req.Description,
		CategoryImage: req.CategoryImage,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := r.observe("categories.create", func() error {
		_, e := r.pool.Exec(ctx, `
		INSERT INTO event_categories (category_id, category_name, description, category_image, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		`, c.CategoryID, c.CategoryName, c.Description, c.CategoryImage, c.CreatedAt, c.UpdatedAt)
		return e
	})

	if err != nil {
		return category.Category{}, err
	}

	return c, nil
}

func (r *CategoriesRepo) Update(ctx context.Context, req category.UpdateCategoryRequest) (category.Category, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{req.CategoryID}

	argsPosition := 2

	add := func(col string, v interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, argsPosition))
		args = append(args, v)
		argsPosition++
	}

	if req.CategoryName != nil {
		add("category_name", *req.CategoryName)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.CategoryImage != nil {
		add("category_image", *req.CategoryImage)
	}

	query := "UPDATE event_categories SET " + strings.Join(sets, ", ") +
		` WHERE category_id = $1
		RETURNING category_id, category_name, COALESCE(description, ''), COALESCE(category_image, ''), created_at, updated_at`

	var c category.Category

	err := r.observe("categories.update", func() error {
		return r.pool.QueryRow(ctx, query, args...).
			Scan(&c.CategoryID, &c.CategoryName, &c.Description, &c.CategoryImage, &c.CreatedAt, &c.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category.Category{}, category.ErrNotFound
		}
		return category.Category{}, err
	}

	return c, nil
}

func (r *CategoriesRepo) Delete(ctx context.Context, id string) error {
	return r.observe("categories.delete", func() error {
		_, err := r.pool.Exec(ctx, `DELETE FROM event_categories WHERE category_id = $1`, id)
		return err
	})
}
