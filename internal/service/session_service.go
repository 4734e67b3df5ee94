package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rolodex/rolodex/internal/model"
	"github.com/rolodex/rolodex/internal/repository"
	"github.com/rolodex/rolodex/pkg/auth"
)

// SessionService manages DB-backed user sessions.
// Implements auth.SessionValidator.
type SessionService struct {
	repo   repository.SessionRepository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionService creates a SessionService signing tokens with secret.
// A zero ttl selects auth.SessionDuration.
func NewSessionService(repo repository.SessionRepository, secret []byte, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = auth.SessionDuration
	}
	return &SessionService{repo: repo, secret: secret, ttl: ttl, now: time.Now}
}

var _ auth.SessionValidator = (*SessionService)(nil)

// CreateSession stores a new session row for userID and returns it with its signed token.
func (s *SessionService) CreateSession(ctx context.Context, userID string) (*model.Session, error) {
	now := s.now()
	session := &model.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	token, err := auth.CreateSessionToken(session.ID, userID, session.ExpiresAt, s.secret)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, session); err != nil {
		slog.Error("session insert failed", "error", err, "user_id", userID)
		return nil, err
	}
	session.Token = token
	slog.Debug("session created", "user_id", userID, "session_id", session.ID, "expires_at", session.ExpiresAt)
	return session, nil
}

// ValidateSession verifies token and returns the owning user ID. The token
// must be correctly signed and its session row must still exist and not be
// expired.
func (s *SessionService) ValidateSession(ctx context.Context, token string) (string, error) {
	claims, err := auth.VerifySessionToken(token, s.secret)
	if err != nil {
		return "", ErrInvalidSession
	}
	session, err := s.repo.FindByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidSession
		}
		return "", err
	}
	if session.UserID != claims.UserID {
		return "", ErrInvalidSession
	}
	if s.now().After(session.ExpiresAt) {
		_ = s.repo.DeleteByID(ctx, session.ID)
		return "", ErrInvalidSession
	}
	return session.UserID, nil
}

// DeleteSession revokes the session named by token. Tokens that no longer
// verify are ignored: there is nothing left to revoke.
func (s *SessionService) DeleteSession(ctx context.Context, token string) error {
	claims, err := auth.VerifySessionToken(token, s.secret)
	if err != nil {
		return nil
	}
	return s.repo.DeleteByID(ctx, claims.SessionID)
}

// DeleteAllSessions revokes every session of userID.
func (s *SessionService) DeleteAllSessions(ctx context.Context, userID string) error {
	return s.repo.DeleteByUserID(ctx, userID)
}

// PurgeExpired deletes expired session rows and returns how many were removed.
func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx)
}
