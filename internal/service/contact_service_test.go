package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rolodex/rolodex/internal/model"
	"github.com/rolodex/rolodex/internal/repository"
)

func companiesOwnedBy(userID string, ids ...string) *mockCompanyRepository {
	return &mockCompanyRepository{
		getByIDFunc: func(_ context.Context, id string) (*model.Company, error) {
			for _, known := range ids {
				if id == known {
					return &model.Company{ID: id, UserID: userID, Name: "Acme", Industry: "Tech"}, nil
				}
			}
			return nil, repository.ErrNotFound
		},
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestContactService_Create_EmptyCompanyBecomesNull(t *testing.T) {
	var saved *model.Contact
	contacts := &mockContactRepository{
		createFunc: func(_ context.Context, c *model.Contact) error {
			saved = c
			c.ID = "ct1"
			return nil
		},
	}
	svc := NewContactService(contacts, &mockCompanyRepository{})

	got, err := svc.Create(context.Background(), "u1", model.ContactInput{
		Name: "Jo", Email: "jo@x.com", CompanyID: strPtr(""),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.CompanyID != nil {
		t.Errorf("expected nil company_id, got %q", *saved.CompanyID)
	}
	if saved.UserID != "u1" {
		t.Errorf("expected owner u1, got %q", saved.UserID)
	}
	if got.ID != "ct1" || got.Company != nil {
		t.Errorf("unexpected contact: %+v", got)
	}
}

func TestContactService_Create_LinksOwnedCompany(t *testing.T) {
	svc := NewContactService(&mockContactRepository{}, companiesOwnedBy("u1", "co1"))

	got, err := svc.Create(context.Background(), "u1", model.ContactInput{
		Name: "Jo", Email: "jo@x.com", CompanyID: strPtr("co1"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Company == nil || got.Company.Name != "Acme" {
		t.Errorf("expected joined company Acme, got %+v", got.Company)
	}
}

func TestContactService_Create_RejectsForeignCompany(t *testing.T) {
	called := false
	contacts := &mockContactRepository{
		createFunc: func(_ context.Context, _ *model.Contact) error {
			called = true
			return nil
		},
	}
	svc := NewContactService(contacts, companiesOwnedBy("someone-else", "co1"))

	_, err := svc.Create(context.Background(), "u1", model.ContactInput{
		Name: "Jo", Email: "jo@x.com", CompanyID: strPtr("co1"),
	})
	if !errors.Is(err, ErrInvalidCompany) {
		t.Errorf("expected ErrInvalidCompany, got %v", err)
	}
	if called {
		t.Error("store should not be written")
	}
}

func TestContactService_Create_RejectsUnknownCompany(t *testing.T) {
	svc := NewContactService(&mockContactRepository{}, companiesOwnedBy("u1"))

	_, err := svc.Create(context.Background(), "u1", model.ContactInput{
		Name: "Jo", Email: "jo@x.com", CompanyID: strPtr("missing"),
	})
	if !errors.Is(err, ErrInvalidCompany) {
		t.Errorf("expected ErrInvalidCompany, got %v", err)
	}
}

func TestContactService_Create_RequiresNameAndEmail(t *testing.T) {
	svc := NewContactService(&mockContactRepository{
		createFunc: func(_ context.Context, _ *model.Contact) error {
			t.Error("store should not be written")
			return nil
		},
	}, &mockCompanyRepository{})

	_, err := svc.Create(context.Background(), "u1", model.ContactInput{Name: "  ", Email: "jo@x.com"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["name"]; !ok {
		t.Errorf("expected name field error, got %v", verr.Fields)
	}

	_, err = svc.Create(context.Background(), "u1", model.ContactInput{Name: "Jo"})
	if !errors.As(err, &verr) || verr.Fields["email"] == "" {
		t.Errorf("expected email field error, got %v", err)
	}
}

func TestContactService_Create_ForeignKeyRaceMapsToInvalidCompany(t *testing.T) {
	contacts := &mockContactRepository{
		createFunc: func(_ context.Context, _ *model.Contact) error {
			return repository.ErrInvalidReference
		},
	}
	svc := NewContactService(contacts, companiesOwnedBy("u1", "co1"))

	_, err := svc.Create(context.Background(), "u1", model.ContactInput{
		Name: "Jo", Email: "jo@x.com", CompanyID: strPtr("co1"),
	})
	if !errors.Is(err, ErrInvalidCompany) {
		t.Errorf("expected ErrInvalidCompany, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Update / Delete
// ---------------------------------------------------------------------------

func TestContactService_Update_OwnerOnly(t *testing.T) {
	contacts := &mockContactRepository{
		getByIDFunc: func(_ context.Context, id string) (*model.Contact, error) {
			return &model.Contact{ID: id, UserID: "owner"}, nil
		},
		updateFunc: func(_ context.Context, _ *model.Contact) error {
			t.Error("update should not be called")
			return nil
		},
	}
	svc := NewContactService(contacts, &mockCompanyRepository{})

	_, err := svc.Update(context.Background(), "ct1", "intruder", model.ContactInput{Name: "Jo", Email: "jo@x.com"})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestContactService_Update_WritesAllFields(t *testing.T) {
	var updated *model.Contact
	contacts := &mockContactRepository{
		getByIDFunc: func(_ context.Context, id string) (*model.Contact, error) {
			return &model.Contact{ID: id, UserID: "u1", Name: "Old", Email: "old@x.com", CompanyID: strPtr("co1")}, nil
		},
		updateFunc: func(_ context.Context, c *model.Contact) error {
			updated = c
			return nil
		},
	}
	svc := NewContactService(contacts, companiesOwnedBy("u1", "co1"))

	_, err := svc.Update(context.Background(), "ct1", "u1", model.ContactInput{
		Name: "New", Email: "new@x.com", Phone: "555", CompanyID: strPtr(""), Notes: "n",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "New" || updated.Email != "new@x.com" || updated.Phone != "555" || updated.Notes != "n" {
		t.Errorf("unexpected update: %+v", updated)
	}
	if updated.CompanyID != nil {
		t.Errorf("expected company cleared, got %q", *updated.CompanyID)
	}
}

func TestContactService_Update_NotFound(t *testing.T) {
	svc := NewContactService(&mockContactRepository{}, &mockCompanyRepository{})
	_, err := svc.Update(context.Background(), "missing", "u1", model.ContactInput{Name: "Jo", Email: "jo@x.com"})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestContactService_Delete_OwnerOnly(t *testing.T) {
	deleted := ""
	contacts := &mockContactRepository{
		getByIDFunc: func(_ context.Context, id string) (*model.Contact, error) {
			return &model.Contact{ID: id, UserID: "u1"}, nil
		},
		deleteFunc: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	svc := NewContactService(contacts, &mockCompanyRepository{})

	if err := svc.Delete(context.Background(), "ct1", "u2"); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if deleted != "" {
		t.Fatal("foreign delete must not reach the store")
	}
	if err := svc.Delete(context.Background(), "ct1", "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "ct1" {
		t.Errorf("expected ct1 deleted, got %q", deleted)
	}
}

func TestContactService_List_PassesOptions(t *testing.T) {
	var gotOpts model.ListOptions
	contacts := &mockContactRepository{
		listFunc: func(_ context.Context, userID string, opts model.ListOptions) ([]*model.Contact, error) {
			if userID != "u1" {
				t.Errorf("expected u1, got %q", userID)
			}
			gotOpts = opts
			return []*model.Contact{{ID: "a"}}, nil
		},
	}
	svc := NewContactService(contacts, &mockCompanyRepository{})

	opts := model.ListOptions{OrderBy: "created_at", Descending: true, WithCompany: true}
	got, err := svc.List(context.Background(), "u1", opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || gotOpts != opts {
		t.Errorf("unexpected result %v / %+v", got, gotOpts)
	}
}
