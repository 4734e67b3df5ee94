package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rolodex/rolodex/internal/model"
	"github.com/rolodex/rolodex/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles password accounts and their sessions.
type AuthService interface {
	SignUp(ctx context.Context, creds model.Credentials) (*model.AuthSession, error)
	SignIn(ctx context.Context, creds model.Credentials) (*model.AuthSession, error)
	SignOut(ctx context.Context, token string) error
	SignOutAll(ctx context.Context, userID string) error
	CurrentUser(ctx context.Context, userID string) (*model.User, error)
}

// SessionIssuer creates and revokes sessions. *SessionService implements it.
type SessionIssuer interface {
	CreateSession(ctx context.Context, userID string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteAllSessions(ctx context.Context, userID string) error
}

// AuthServiceImpl is the AuthService implementation.
type AuthServiceImpl struct {
	users    repository.UserRepository
	sessions SessionIssuer
	hashCost int
}

// NewAuthService creates an AuthServiceImpl.
func NewAuthService(users repository.UserRepository, sessions SessionIssuer) AuthService {
	return &AuthServiceImpl{users: users, sessions: sessions, hashCost: bcrypt.DefaultCost}
}

// SignUp registers a new account and opens a session for it.
func (s *AuthServiceImpl) SignUp(ctx context.Context, creds model.Credentials) (*model.AuthSession, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if err := validateStruct(creds); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, creds.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &model.User{Email: creds.Email, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	slog.Info("new user created", "user_id", user.ID)

	return s.open(ctx, user)
}

// SignIn verifies the password and opens a session. Unknown emails and wrong
// passwords yield the same ErrInvalidCredentials.
func (s *AuthServiceImpl) SignIn(ctx context.Context, creds model.Credentials) (*model.AuthSession, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.users.FindByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		slog.Debug("password mismatch", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}
	return s.open(ctx, user)
}

// SignOut revokes the session behind token.
func (s *AuthServiceImpl) SignOut(ctx context.Context, token string) error {
	return s.sessions.DeleteSession(ctx, token)
}

// SignOutAll revokes every session of userID, signing out all devices.
func (s *AuthServiceImpl) SignOutAll(ctx context.Context, userID string) error {
	if err := s.sessions.DeleteAllSessions(ctx, userID); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	slog.Info("all sessions revoked", "user_id", userID)
	return nil
}

// CurrentUser returns the account of an authenticated user.
func (s *AuthServiceImpl) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthServiceImpl) open(ctx context.Context, user *model.User) (*model.AuthSession, error) {
	session, err := s.sessions.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &model.AuthSession{
		AccessToken: session.Token,
		ExpiresAt:   session.ExpiresAt,
		User:        user,
	}, nil
}
