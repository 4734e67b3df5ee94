package service

import (
	"context"

	"github.com/rolodex/rolodex/internal/model"
	"github.com/rolodex/rolodex/internal/repository"
)

// ---------------------------------------------------------------------------
// Mock repositories shared by the service tests
// ---------------------------------------------------------------------------

type mockContactRepository struct {
	listFunc    func(ctx context.Context, userID string, opts model.ListOptions) ([]*model.Contact, error)
	getByIDFunc func(ctx context.Context, id string) (*model.Contact, error)
	createFunc  func(ctx context.Context, contact *model.Contact) error
	updateFunc  func(ctx context.Context, contact *model.Contact) error
	deleteFunc  func(ctx context.Context, id string) error
}

func (m *mockContactRepository) List(ctx context.Context, userID string, opts model.ListOptions) ([]*model.Contact, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, opts)
	}
	return nil, nil
}
func (m *mockContactRepository) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}
func (m *mockContactRepository) Create(ctx context.Context, contact *model.Contact) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, contact)
	}
	return nil
}
func (m *mockContactRepository) Update(ctx context.Context, contact *model.Contact) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, contact)
	}
	return nil
}
func (m *mockContactRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockCompanyRepository struct {
	listFunc    func(ctx context.Context, userID string, opts model.ListOptions) ([]*model.Company, error)
	getByIDFunc func(ctx context.Context, id string) (*model.Company, error)
	createFunc  func(ctx context.Context, company *model.Company) error
	deleteFunc  func(ctx context.Context, id string) error
}

func (m *mockCompanyRepository) List(ctx context.Context, userID string, opts model.ListOptions) ([]*model.Company, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, opts)
	}
	return nil, nil
}
func (m *mockCompanyRepository) GetByID(ctx context.Context, id string) (*model.Company, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}
func (m *mockCompanyRepository) Create(ctx context.Context, company *model.Company) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, company)
	}
	return nil
}
func (m *mockCompanyRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockUserRepository struct {
	findByIDFunc    func(ctx context.Context, id string) (*model.User, error)
	findByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	createFunc      func(ctx context.Context, user *model.User) error
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}
func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, repository.ErrNotFound
}
func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = "new-user"
	return nil
}

type mockSessionRepository struct {
	createFunc         func(ctx context.Context, s *model.Session) error
	findByIDFunc       func(ctx context.Context, id string) (*model.Session, error)
	deleteByIDFunc     func(ctx context.Context, id string) error
	deleteByUserIDFunc func(ctx context.Context, userID string) error
	deleteExpiredFunc  func(ctx context.Context) (int64, error)
}

func (m *mockSessionRepository) Create(ctx context.Context, s *model.Session) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, s)
	}
	return nil
}
func (m *mockSessionRepository) FindByID(ctx context.Context, id string) (*model.Session, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}
func (m *mockSessionRepository) DeleteByID(ctx context.Context, id string) error {
	if m.deleteByIDFunc != nil {
		return m.deleteByIDFunc(ctx, id)
	}
	return nil
}
func (m *mockSessionRepository) DeleteByUserID(ctx context.Context, userID string) error {
	if m.deleteByUserIDFunc != nil {
		return m.deleteByUserIDFunc(ctx, userID)
	}
	return nil
}
func (m *mockSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	if m.deleteExpiredFunc != nil {
		return m.deleteExpiredFunc(ctx)
	}
	return 0, nil
}

func strPtr(s string) *string { return &s }
