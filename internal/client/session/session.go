// Package session is the client-side auth collaborator. It signs users in
// and out against the server, persists the session token locally, and
// broadcasts session changes to subscribers.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rolodex/rolodex/internal/client/api"
	"github.com/rolodex/rolodex/internal/model"
)

// User is the authenticated identity.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is a signed-in user and the token that proves it.
type Session struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        User      `json:"user"`
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Event names a session change.
type Event int

const (
	EventSignedIn Event = iota + 1
	EventSignedOut
)

func (e Event) String() string {
	switch e {
	case EventSignedIn:
		return "SIGNED_IN"
	case EventSignedOut:
		return "SIGNED_OUT"
	default:
		return "UNKNOWN"
	}
}

// Listener receives session changes. The session is nil after sign-out.
type Listener func(Event, *Session)

// Backend is the server API the manager drives. *api.Client implements it.
type Backend interface {
	SignIn(ctx context.Context, creds model.Credentials) (*model.AuthSession, error)
	SignUp(ctx context.Context, creds model.Credentials) (*model.AuthSession, error)
	SignOut(ctx context.Context) error
	CurrentUser(ctx context.Context) (*model.User, error)
	SetToken(token string)
}

var _ Backend = (*api.Client)(nil)

// Manager implements the auth collaborator used by the gate and workspace.
type Manager struct {
	backend Backend
	store   Store
	now     func() time.Time

	mu        sync.Mutex
	listeners map[int]Listener
	nextID    int
}

// NewManager creates a Manager persisting sessions in store.
func NewManager(backend Backend, store Store) *Manager {
	return &Manager{
		backend:   backend,
		store:     store,
		now:       time.Now,
		listeners: make(map[int]Listener),
	}
}

// Subscription is returned by OnAuthStateChange.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// NewSubscription wraps cancel so that it runs at most once.
func NewSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel}
}

// Unsubscribe stops delivery. Calling it more than once is a no-op.
func (s *Subscription) Unsubscribe() {
	s.once.Do(s.cancel)
}

// OnAuthStateChange registers fn for every subsequent session change.
func (m *Manager) OnAuthStateChange(fn Listener) *Subscription {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return NewSubscription(func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	})
}

// GetSession returns the persisted session if the server still accepts it.
// A missing, expired or rejected token yields (nil, nil); the stored token is
// discarded in the latter two cases.
func (m *Manager) GetSession(ctx context.Context) (*Session, error) {
	sess, err := m.store.LoadSession(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.AccessToken == "" {
		return nil, nil
	}
	if sess.Expired(m.now()) {
		slog.Debug("stored session expired", "expires_at", sess.ExpiresAt)
		return nil, m.forget(ctx)
	}

	m.backend.SetToken(sess.AccessToken)
	user, err := m.backend.CurrentUser(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			slog.Info("stored session rejected by server")
			return nil, m.forget(ctx)
		}
		return nil, fmt.Errorf("verify session: %w", err)
	}
	sess.User = User{ID: user.ID, Email: user.Email}
	return sess, nil
}

// SignIn authenticates with email and password.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return m.open(ctx, m.backend.SignIn, email, password)
}

// SignUp creates an account and signs it in.
func (m *Manager) SignUp(ctx context.Context, email, password string) (*Session, error) {
	return m.open(ctx, m.backend.SignUp, email, password)
}

// SignOut revokes the session on the server, forgets it locally and notifies
// subscribers. A token the server no longer knows counts as signed out.
func (m *Manager) SignOut(ctx context.Context) error {
	if err := m.backend.SignOut(ctx); err != nil && !api.IsUnauthorized(err) {
		return err
	}
	if err := m.forget(ctx); err != nil {
		return err
	}
	m.emit(EventSignedOut, nil)
	return nil
}

func (m *Manager) open(
	ctx context.Context,
	call func(context.Context, model.Credentials) (*model.AuthSession, error),
	email, password string,
) (*Session, error) {
	auth, err := call(ctx, model.Credentials{Email: strings.TrimSpace(email), Password: password})
	if err != nil {
		return nil, err
	}
	if auth.User == nil || auth.AccessToken == "" {
		return nil, errors.New("server returned an incomplete session")
	}
	sess := &Session{
		AccessToken: auth.AccessToken,
		ExpiresAt:   auth.ExpiresAt,
		User:        User{ID: auth.User.ID, Email: auth.User.Email},
	}
	if err := m.store.SaveSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	m.backend.SetToken(sess.AccessToken)
	slog.Info("signed in", "user_id", sess.User.ID)
	m.emit(EventSignedIn, sess)
	return sess, nil
}

func (m *Manager) forget(ctx context.Context) error {
	m.backend.SetToken("")
	if err := m.store.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (m *Manager) emit(ev Event, sess *Session) {
	m.mu.Lock()
	fns := make([]Listener, 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(ev, sess)
	}
}
