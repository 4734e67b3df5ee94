package service

import (
	"context"
	"strings"

	"github.com/rolodex/rolodex/internal/model"
	"github.com/rolodex/rolodex/internal/repository"
)

// CompanyService is the business logic for a user's companies. Companies can
// be created and deleted but not edited.
type CompanyService interface {
	List(ctx context.Context, userID string, opts model.ListOptions) ([]*model.Company, error)
	Create(ctx context.Context, userID string, in model.CompanyInput) (*model.Company, error)
	Delete(ctx context.Context, id, userID string) error
}

// CompanyServiceImpl is the CompanyService implementation.
type CompanyServiceImpl struct {
	repo repository.CompanyRepository
}

// NewCompanyService creates a CompanyServiceImpl.
func NewCompanyService(repo repository.CompanyRepository) CompanyService {
	return &CompanyServiceImpl{repo: repo}
}

// List returns the user's companies.
func (s *CompanyServiceImpl) List(ctx context.Context, userID string, opts model.ListOptions) ([]*model.Company, error) {
	return s.repo.List(ctx, userID, opts)
}

// Create validates in and stores a company owned by userID.
func (s *CompanyServiceImpl) Create(ctx context.Context, userID string, in model.CompanyInput) (*model.Company, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	company := &model.Company{
		UserID:      userID,
		Name:        in.Name,
		Industry:    in.Industry,
		Website:     in.Website,
		Description: in.Description,
	}
	if err := s.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// Delete removes the company (owner only). Contacts linked to it are kept
// and lose their company reference.
func (s *CompanyServiceImpl) Delete(ctx context.Context, id, userID string) error {
	company, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if company.UserID != userID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
