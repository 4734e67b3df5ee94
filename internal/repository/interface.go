package repository

import (
	"context"

	"github.com/rolodex/rolodex/internal/model"
)

// DB reports database liveness.
type DB interface {
	Ping(ctx context.Context) error
}

// UserRepository persists password accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
}

// ContactRepository persists contacts. List is always scoped to one owner.
type ContactRepository interface {
	List(ctx context.Context, userID string, opts model.ListOptions) ([]*model.Contact, error)
	GetByID(ctx context.Context, id string) (*model.Contact, error)
	Create(ctx context.Context, contact *model.Contact) error
	Update(ctx context.Context, contact *model.Contact) error
	Delete(ctx context.Context, id string) error
}

// CompanyRepository persists companies. There is no Update: companies are
// immutable once created.
type CompanyRepository interface {
	List(ctx context.Context, userID string, opts model.ListOptions) ([]*model.Company, error)
	GetByID(ctx context.Context, id string) (*model.Company, error)
	Create(ctx context.Context, company *model.Company) error
	Delete(ctx context.Context, id string) error
}
