package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rolodex/rolodex/internal/model"
	"github.com/rolodex/rolodex/internal/repository"
)

// ContactService is the business logic for a user's contacts.
type ContactService interface {
	List(ctx context.Context, userID string, opts model.ListOptions) ([]*model.Contact, error)
	Create(ctx context.Context, userID string, in model.ContactInput) (*model.Contact, error)
	Update(ctx context.Context, id, userID string, in model.ContactInput) (*model.Contact, error)
	Delete(ctx context.Context, id, userID string) error
}

// ContactServiceImpl is the ContactService implementation.
type ContactServiceImpl struct {
	contacts  repository.ContactRepository
	companies repository.CompanyRepository
}

// NewContactService creates a ContactServiceImpl. Company lookups are used to
// check that a contact only links to one of its owner's companies.
func NewContactService(contacts repository.ContactRepository, companies repository.CompanyRepository) ContactService {
	return &ContactServiceImpl{contacts: contacts, companies: companies}
}

// List returns the user's contacts.
func (s *ContactServiceImpl) List(ctx context.Context, userID string, opts model.ListOptions) ([]*model.Contact, error) {
	return s.contacts.List(ctx, userID, opts)
}

// Create validates in and stores a new contact owned by userID.
func (s *ContactServiceImpl) Create(ctx context.Context, userID string, in model.ContactInput) (*model.Contact, error) {
	in = normalizeContactInput(in)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	company, err := s.companyFor(ctx, userID, in.CompanyID)
	if err != nil {
		return nil, err
	}

	contact := &model.Contact{
		UserID:    userID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		CompanyID: in.CompanyID,
		Notes:     in.Notes,
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			return nil, ErrInvalidCompany
		}
		return nil, err
	}
	contact.Company = company
	return contact, nil
}

// Update overwrites every writable field of the contact (owner only).
func (s *ContactServiceImpl) Update(ctx context.Context, id, userID string, in model.ContactInput) (*model.Contact, error) {
	in = normalizeContactInput(in)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact.UserID != userID {
		return nil, ErrForbidden
	}
	company, err := s.companyFor(ctx, userID, in.CompanyID)
	if err != nil {
		return nil, err
	}

	contact.Name = in.Name
	contact.Email = in.Email
	contact.Phone = in.Phone
	contact.CompanyID = in.CompanyID
	contact.Notes = in.Notes
	if err := s.contacts.Update(ctx, contact); err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			return nil, ErrInvalidCompany
		}
		return nil, err
	}
	contact.Company = company
	return contact, nil
}

// Delete removes the contact (owner only).
func (s *ContactServiceImpl) Delete(ctx context.Context, id, userID string) error {
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if contact.UserID != userID {
		return ErrForbidden
	}
	return s.contacts.Delete(ctx, id)
}

// companyFor resolves an optional company reference, which must name one of
// userID's companies.
func (s *ContactServiceImpl) companyFor(ctx context.Context, userID string, companyID *string) (*model.CompanySummary, error) {
	if companyID == nil {
		return nil, nil
	}
	company, err := s.companies.GetByID(ctx, *companyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCompany
		}
		return nil, err
	}
	if company.UserID != userID {
		return nil, ErrInvalidCompany
	}
	summary := company.Summary()
	return &summary, nil
}

// normalizeContactInput trims required fields and turns an empty company
// selection into a NULL reference.
func normalizeContactInput(in model.ContactInput) model.ContactInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.CompanyID = model.NormalizeCompanyID(in.CompanyID)
	return in
}
