package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var ErrEmailAlreadyUsed = errors.New("email already in use")

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return false
}

func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return true
	}
	return false
}
