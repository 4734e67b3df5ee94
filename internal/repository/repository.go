package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rolodex/rolodex/internal/model"
)

// NewPool creates a PostgreSQL connection pool and verifies connectivity.
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// orderColumns maps the sortable columns of a listing to qualified SQL names.
// Every map must contain "id", which is used as the tie breaker.
type orderColumns map[string]string

// orderClause renders an ORDER BY clause for opts. An empty OrderBy selects
// def; a column outside cols is rejected with ErrUnsupportedOrder.
func orderClause(opts model.ListOptions, cols orderColumns, def model.ListOptions) (string, error) {
	if opts.OrderBy == "" {
		opts.OrderBy = def.OrderBy
		opts.Descending = def.Descending
	}
	col, ok := cols[opts.OrderBy]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedOrder, opts.OrderBy)
	}
	dir := "ASC"
	if opts.Descending {
		dir = "DESC"
	}
	return "ORDER BY " + col + " " + dir + ", " + cols["id"] + " " + dir, nil
}
