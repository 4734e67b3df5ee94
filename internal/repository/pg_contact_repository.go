package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rolodex/rolodex/internal/model"
)

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

var contactOrderColumns = orderColumns{
	"id":         "c.id",
	"name":       "c.name",
	"email":      "c.email",
	"created_at": "c.created_at",
}

// DefaultContactOrder lists the newest contacts first.
var DefaultContactOrder = model.ListOptions{OrderBy: "created_at", Descending: true}

const contactSelectCols = `c.id, c.user_id, c.name, c.email, COALESCE(c.phone, ''), c.company_id,
	COALESCE(c.notes, ''), c.created_at, c.updated_at`

// List returns the contacts owned by userID. With opts.WithCompany the linked
// company's summary columns are joined in; the join is restricted to the same
// owner so another user's company is never surfaced.
func (r *PgContactRepository) List(ctx context.Context, userID string, opts model.ListOptions) ([]*model.Contact, error) {
	order, err := orderClause(opts, contactOrderColumns, DefaultContactOrder)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + contactSelectCols + `,
		co.id, co.name, COALESCE(co.industry, ''), COALESCE(co.website, '')
		FROM contacts c
		LEFT JOIN companies co ON co.id = c.company_id AND co.user_id = c.user_id
		WHERE c.user_id = $1 ` + order

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	contacts := []*model.Contact{}
	for rows.Next() {
		var c model.Contact
		var coID, coName *string
		var coIndustry, coWebsite string
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.CompanyID,
			&c.Notes, &c.CreatedAt, &c.UpdatedAt,
			&coID, &coName, &coIndustry, &coWebsite); err != nil {
			return nil, err
		}
		if opts.WithCompany && coID != nil {
			c.Company = &model.CompanySummary{ID: *coID, Industry: coIndustry, Website: coWebsite}
			if coName != nil {
				c.Company.Name = *coName
			}
		}
		contacts = append(contacts, &c)
	}
	return contacts, rows.Err()
}

// GetByID returns a single contact without the company join.
func (r *PgContactRepository) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	var c model.Contact
	err := r.pool.QueryRow(ctx,
		`SELECT `+contactSelectCols+` FROM contacts c WHERE c.id = $1`, id,
	).Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.CompanyID, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

// Create inserts contact and populates its ID and timestamps from RETURNING.
func (r *PgContactRepository) Create(ctx context.Context, contact *model.Contact) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO contacts (user_id, name, email, phone, company_id, notes)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''))
		 RETURNING id, created_at, updated_at`,
		contact.UserID, contact.Name, contact.Email, contact.Phone, contact.CompanyID, contact.Notes,
	).Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)
	return mapError(err)
}

// Update overwrites every writable column of contact.
func (r *PgContactRepository) Update(ctx context.Context, contact *model.Contact) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE contacts
		 SET name=$1, email=$2, phone=NULLIF($3, ''), company_id=$4, notes=NULLIF($5, ''), updated_at=NOW()
		 WHERE id=$6
		 RETURNING updated_at`,
		contact.Name, contact.Email, contact.Phone, contact.CompanyID, contact.Notes, contact.ID,
	).Scan(&contact.UpdatedAt)
	return mapError(err)
}

// Delete removes the contact with the given id.
func (r *PgContactRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id=$1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
