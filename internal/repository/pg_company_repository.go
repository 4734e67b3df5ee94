package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rolodex/rolodex/internal/model"
)

// PgCompanyRepository is the PostgreSQL implementation of CompanyRepository.
type PgCompanyRepository struct {
	pool *pgxpool.Pool
}

// NewPgCompanyRepository creates a PgCompanyRepository backed by the given pool.
func NewPgCompanyRepository(pool *pgxpool.Pool) *PgCompanyRepository {
	return &PgCompanyRepository{pool: pool}
}

var _ CompanyRepository = (*PgCompanyRepository)(nil)

var companyOrderColumns = orderColumns{
	"id":         "id",
	"name":       "name",
	"industry":   "industry",
	"created_at": "created_at",
}

// DefaultCompanyOrder sorts companies alphabetically.
var DefaultCompanyOrder = model.ListOptions{OrderBy: "name"}

const companySelectCols = `id, user_id, name, COALESCE(industry, ''), COALESCE(website, ''),
	COALESCE(description, ''), created_at, updated_at`

func scanCompany(scan func(...any) error) (*model.Company, error) {
	var c model.Company
	if err := scan(&c.ID, &c.UserID, &c.Name, &c.Industry, &c.Website, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

// List returns the companies owned by userID.
func (r *PgCompanyRepository) List(ctx context.Context, userID string, opts model.ListOptions) ([]*model.Company, error) {
	order, err := orderClause(opts, companyOrderColumns, DefaultCompanyOrder)
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+companySelectCols+` FROM companies WHERE user_id = $1 `+order, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	companies := []*model.Company{}
	for rows.Next() {
		c, err := scanCompany(rows.Scan)
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// GetByID returns the company with the given id.
func (r *PgCompanyRepository) GetByID(ctx context.Context, id string) (*model.Company, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+companySelectCols+` FROM companies WHERE id = $1`, id)
	return scanCompany(row.Scan)
}

// Create inserts company and populates its ID and timestamps.
func (r *PgCompanyRepository) Create(ctx context.Context, company *model.Company) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO companies (user_id, name, industry, website, description)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''))
		 RETURNING id, created_at, updated_at`,
		company.UserID, company.Name, company.Industry, company.Website, company.Description,
	).Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt)
	return mapError(err)
}

// Delete removes the company. Contacts pointing at it keep existing with a
// NULL company_id (ON DELETE SET NULL).
func (r *PgCompanyRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM companies WHERE id=$1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
