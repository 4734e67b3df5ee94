package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a requested record does not exist in the database.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate")
	// ErrInvalidReference is returned when a foreign key rejects a write.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrUnsupportedOrder is returned when a listing is asked to sort by an unknown column.
	ErrUnsupportedOrder = errors.New("unsupported order column")
)

// PostgreSQL SQLSTATE codes mapped onto the sentinels above.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidTextRepr     = "22P02"
)

// mapError translates driver errors into repository sentinels. Malformed
// UUIDs are reported as ErrNotFound since no row can carry them.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicate
		case pgForeignKeyViolation:
			return ErrInvalidReference
		case pgInvalidTextRepr:
			return ErrNotFound
		}
	}
	return err
}
