package handler

import (
	"context"
	"net/http"

	"github.com/rolodex/rolodex/internal/model"
	"github.com/rolodex/rolodex/pkg/auth"
)

// ---------------------------------------------------------------------------
// Mock services
// ---------------------------------------------------------------------------

type mockContactService struct {
	listFunc   func(ctx context.Context, userID string, opts model.ListOptions) ([]*model.Contact, error)
	createFunc func(ctx context.Context, userID string, in model.ContactInput) (*model.Contact, error)
	updateFunc func(ctx context.Context, id, userID string, in model.ContactInput) (*model.Contact, error)
	deleteFunc func(ctx context.Context, id, userID string) error
}

func (m *mockContactService) List(ctx context.Context, userID string, opts model.ListOptions) ([]*model.Contact, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, opts)
	}
	return nil, nil
}
func (m *mockContactService) Create(ctx context.Context, userID string, in model.ContactInput) (*model.Contact, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, in)
	}
	return &model.Contact{ID: "new"}, nil
}
func (m *mockContactService) Update(ctx context.Context, id, userID string, in model.ContactInput) (*model.Contact, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, userID, in)
	}
	return &model.Contact{ID: id}, nil
}
func (m *mockContactService) Delete(ctx context.Context, id, userID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id, userID)
	}
	return nil
}

type mockCompanyService struct {
	listFunc   func(ctx context.Context, userID string, opts model.ListOptions) ([]*model.Company, error)
	createFunc func(ctx context.Context, userID string, in model.CompanyInput) (*model.Company, error)
	deleteFunc func(ctx context.Context, id, userID string) error
}

func (m *mockCompanyService) List(ctx context.Context, userID string, opts model.ListOptions) ([]*model.Company, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, opts)
	}
	return nil, nil
}
func (m *mockCompanyService) Create(ctx context.Context, userID string, in model.CompanyInput) (*model.Company, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, in)
	}
	return &model.Company{ID: "new"}, nil
}
func (m *mockCompanyService) Delete(ctx context.Context, id, userID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id, userID)
	}
	return nil
}

type mockAuthService struct {
	signUpFunc      func(ctx context.Context, creds model.Credentials) (*model.AuthSession, error)
	signInFunc      func(ctx context.Context, creds model.Credentials) (*model.AuthSession, error)
	signOutFunc     func(ctx context.Context, token string) error
	signOutAllFunc  func(ctx context.Context, userID string) error
	currentUserFunc func(ctx context.Context, userID string) (*model.User, error)
}

func (m *mockAuthService) SignUp(ctx context.Context, creds model.Credentials) (*model.AuthSession, error) {
	if m.signUpFunc != nil {
		return m.signUpFunc(ctx, creds)
	}
	return nil, nil
}
func (m *mockAuthService) SignIn(ctx context.Context, creds model.Credentials) (*model.AuthSession, error) {
	if m.signInFunc != nil {
		return m.signInFunc(ctx, creds)
	}
	return nil, nil
}
func (m *mockAuthService) SignOut(ctx context.Context, token string) error {
	if m.signOutFunc != nil {
		return m.signOutFunc(ctx, token)
	}
	return nil
}
func (m *mockAuthService) SignOutAll(ctx context.Context, userID string) error {
	if m.signOutAllFunc != nil {
		return m.signOutAllFunc(ctx, userID)
	}
	return nil
}
func (m *mockAuthService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	if m.currentUserFunc != nil {
		return m.currentUserFunc(ctx, userID)
	}
	return &model.User{ID: userID}, nil
}

// asUser attaches an authenticated user ID to req.
func asUser(req *http.Request, userID string) *http.Request {
	return req.WithContext(auth.WithUserID(req.Context(), userID))
}

const testContactID = "6f1c2d4e-8a9b-4c3d-9e8f-0a1b2c3d4e5f"
