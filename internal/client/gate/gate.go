// Package gate decides whether a signed-in session exists and which view
// the terminal client should show: a loading notice, the credential-entry
// flow, or the record workspace.
package gate

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rolodex/rolodex/internal/client/session"
)

// View is the screen the gate routes to.
type View int

const (
	ViewLoading View = iota
	ViewCredentials
	ViewWorkspace
)

func (v View) String() string {
	switch v {
	case ViewLoading:
		return "loading"
	case ViewCredentials:
		return "credentials"
	case ViewWorkspace:
		return "workspace"
	default:
		return "unknown"
	}
}

// Authenticator is the auth collaborator. *session.Manager implements it.
type Authenticator interface {
	GetSession(ctx context.Context) (*session.Session, error)
	OnAuthStateChange(fn session.Listener) *session.Subscription
	SignIn(ctx context.Context, email, password string) (*session.Session, error)
	SignUp(ctx context.Context, email, password string) (*session.Session, error)
}

var _ Authenticator = (*session.Manager)(nil)

// Option configures a Gate.
type Option func(*Gate)

// WithViewListener registers fn to be called after every view or session
// change. fn runs outside the gate's lock and may call back into the gate.
func WithViewListener(fn func(View, *session.Session)) Option {
	return func(g *Gate) { g.onView = fn }
}

// WithLogger replaces slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gate) { g.logger = l }
}

// Gate holds the current session and derives the active view from it.
type Gate struct {
	auth   Authenticator
	logger *slog.Logger
	onView func(View, *session.Session)

	mu      sync.Mutex
	loading bool
	session *session.Session
	changes int
	closed  bool
	sub     *session.Subscription

	closeOnce sync.Once
}

// New creates a Gate in the loading state. Call Start to resolve it.
func New(auth Authenticator, opts ...Option) *Gate {
	g := &Gate{auth: auth, logger: slog.Default(), loading: true}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Start subscribes to session changes and then asks for the current
// session. A retrieval error is logged and treated as signed out. If a
// change notification arrives while the query is in flight, the
// notification wins.
func (g *Gate) Start(ctx context.Context) {
	sub := g.auth.OnAuthStateChange(g.handleChange)

	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		sub.Unsubscribe()
		return
	}
	g.sub = sub
	seen := g.changes
	g.mu.Unlock()

	sess, err := g.auth.GetSession(ctx)
	if err != nil {
		g.logger.Error("session retrieval failed", "error", err)
		sess = nil
	}

	g.mu.Lock()
	if g.closed || g.changes != seen {
		g.mu.Unlock()
		return
	}
	g.session = sess
	g.loading = false
	view := g.viewLocked()
	g.mu.Unlock()

	g.notify(view, sess)
}

func (g *Gate) handleChange(ev session.Event, sess *session.Session) {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.changes++
	g.session = sess
	g.loading = false
	view := g.viewLocked()
	g.mu.Unlock()

	g.logger.Debug("session changed", "event", ev.String(), "view", view.String())
	g.notify(view, sess)
}

func (g *Gate) notify(view View, sess *session.Session) {
	if g.onView != nil {
		g.onView(view, sess)
	}
}

// View returns the screen to render.
func (g *Gate) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.viewLocked()
}

func (g *Gate) viewLocked() View {
	switch {
	case g.loading:
		return ViewLoading
	case g.session == nil:
		return ViewCredentials
	default:
		return ViewWorkspace
	}
}

// Session returns the held session, or nil when signed out or loading.
func (g *Gate) Session() *session.Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session
}

// Principal returns the signed-in user, to be handed to the workspace.
func (g *Gate) Principal() (session.User, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session == nil {
		return session.User{}, false
	}
	return g.session.User, true
}

// Close stops listening for session changes. It is safe to call repeatedly.
func (g *Gate) Close() {
	g.closeOnce.Do(func() {
		g.mu.Lock()
		g.closed = true
		sub := g.sub
		g.mu.Unlock()
		if sub != nil {
			sub.Unsubscribe()
		}
	})
}
