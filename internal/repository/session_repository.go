package repository

import (
	"context"

	"github.com/rolodex/rolodex/internal/model"
)

// SessionRepository handles persistence for user sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *model.Session) error
	FindByID(ctx context.Context, id string) (*model.Session, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
