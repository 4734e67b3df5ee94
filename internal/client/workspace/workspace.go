// Package workspace holds the signed-in user's local copies of their
// contacts and companies, the create and edit drafts, the search term and
// the active tab, and keeps them in step with the record store.
//
// Creates and updates are followed by a re-fetch of the affected
// collection. Deletes remove the record locally without a re-fetch, so a
// delete that fails on the client after succeeding on the server leaves
// the local copy stale until the next refresh.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rolodex/rolodex/internal/client/api"
	"github.com/rolodex/rolodex/internal/client/session"
	"github.com/rolodex/rolodex/internal/model"
)

var (
	// ErrNotFound is returned for ids not present in the local collection.
	ErrNotFound = errors.New("record not found")
	// ErrNotEditing is returned by edit operations when no row is in edit mode.
	ErrNotEditing = errors.New("no contact is being edited")
)

var (
	contactListOptions = model.ListOptions{OrderBy: "created_at", Descending: true, WithCompany: true}
	companyListOptions = model.ListOptions{OrderBy: "name"}
)

// Store is the record store adapter. *api.Client implements it.
type Store interface {
	ListContacts(ctx context.Context, opts model.ListOptions) ([]model.Contact, error)
	InsertContact(ctx context.Context, in model.ContactInput) (*model.Contact, error)
	UpdateContact(ctx context.Context, id string, in model.ContactInput) (*model.Contact, error)
	DeleteContact(ctx context.Context, id string) error
	ListCompanies(ctx context.Context, opts model.ListOptions) ([]model.Company, error)
	InsertCompany(ctx context.Context, in model.CompanyInput) (*model.Company, error)
	DeleteCompany(ctx context.Context, id string) error
}

var _ Store = (*api.Client)(nil)

// SignOuter ends the session. *session.Manager implements it.
type SignOuter interface {
	SignOut(ctx context.Context) error
}

var _ SignOuter = (*session.Manager)(nil)

// Deps are the collaborators of a Workspace. Notifier, Confirmer and Logger
// are optional.
type Deps struct {
	Store     Store
	Auth      SignOuter
	Notifier  Notifier
	Confirmer Confirmer
	Logger    *slog.Logger
}

// Stats are the counts behind the "N of M contacts" line.
type Stats struct {
	Visible   int
	Contacts  int
	Companies int
}

type editSlot struct {
	id    string
	draft ContactDraft
}

// Workspace is safe for concurrent use. Store calls and notices are made
// without holding its lock.
type Workspace struct {
	principal session.User
	store     Store
	auth      SignOuter
	notifier  Notifier
	confirmer Confirmer
	logger    *slog.Logger

	mu                sync.Mutex
	contacts          []model.Contact
	companies         []model.Company
	loadingContacts   bool
	loadingCompanies  bool
	submitting        bool
	submittingCompany bool
	contactDraft      ContactDraft
	companyDraft      CompanyDraft
	edit              *editSlot
	search            string
	tab               Tab
	closed            bool
}

// New creates a Workspace for principal. Both collections start empty and
// loading until Mount.
func New(principal session.User, deps Deps) *Workspace {
	w := &Workspace{
		principal:        principal,
		store:            deps.Store,
		auth:             deps.Auth,
		notifier:         deps.Notifier,
		confirmer:        deps.Confirmer,
		logger:           deps.Logger,
		contacts:         []model.Contact{},
		companies:        []model.Company{},
		loadingContacts:  true,
		loadingCompanies: true,
		tab:              TabContacts,
	}
	if w.notifier == nil {
		w.notifier = discardNotifier{}
	}
	if w.confirmer == nil {
		w.confirmer = declineAll{}
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	w.logger = w.logger.With("user_id", principal.ID)
	return w
}

// Principal returns the user the workspace belongs to.
func (w *Workspace) Principal() session.User {
	return w.principal
}

// Mount loads both collections concurrently and waits for both. The first
// error is returned; each failure has already been notified.
func (w *Workspace) Mount(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return w.FetchContacts(ctx) })
	g.Go(func() error { return w.FetchCompanies(ctx) })
	return g.Wait()
}

// FetchContacts replaces the local contacts with the store's, newest first,
// each joined with its company summary. On failure the previous contacts
// are kept.
func (w *Workspace) FetchContacts(ctx context.Context) error {
	w.mu.Lock()
	w.loadingContacts = true
	w.mu.Unlock()

	contacts, err := w.store.ListContacts(ctx, contactListOptions)

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.loadingContacts = false
	if err == nil {
		if contacts == nil {
			contacts = []model.Contact{}
		}
		w.contacts = contacts
	}
	w.mu.Unlock()

	if err != nil {
		w.fail("load contacts", err)
		return err
	}
	return nil
}

// FetchCompanies replaces the local companies with the store's, by name.
// On failure the previous companies are kept.
func (w *Workspace) FetchCompanies(ctx context.Context) error {
	w.mu.Lock()
	w.loadingCompanies = true
	w.mu.Unlock()

	companies, err := w.store.ListCompanies(ctx, companyListOptions)

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.loadingCompanies = false
	if err == nil {
		if companies == nil {
			companies = []model.Company{}
		}
		w.companies = companies
	}
	w.mu.Unlock()

	if err != nil {
		w.fail("load companies", err)
		return err
	}
	return nil
}

// Loading reports the per-collection fetch flags.
func (w *Workspace) Loading() (contacts, companies bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loadingContacts, w.loadingCompanies
}

// Contacts returns a copy of the local contacts.
func (w *Workspace) Contacts() []model.Contact {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.contacts)
}

// Companies returns a copy of the local companies.
func (w *Workspace) Companies() []model.Company {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.companies)
}

// Stats returns the visible, total contact and company counts.
func (w *Workspace) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Stats{
		Visible:   len(Filter(w.contacts, w.search)),
		Contacts:  len(w.contacts),
		Companies: len(w.companies),
	}
}

// SignOut asks the auth collaborator to end the session. The switch back to
// the credentials view arrives through the gate's subscription.
func (w *Workspace) SignOut(ctx context.Context) error {
	if err := w.auth.SignOut(ctx); err != nil {
		w.fail("sign out", err)
		return err
	}
	return nil
}

// Close detaches the workspace. Results of operations that settle later
// are discarded and no further notices are shown.
func (w *Workspace) Close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
}

func (w *Workspace) isClosed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// fail logs err and notifies the user that action failed. Validation
// failures are user input, not faults, and are not logged.
func (w *Workspace) fail(action string, err error) {
	if w.isClosed() {
		return
	}
	if !errors.Is(err, ErrValidation) {
		w.logger.Error(action+" failed", "error", err)
	}
	w.notifier.Notify(Notice{Level: LevelError, Action: action, Message: err.Error()})
}

func (w *Workspace) info(action, format string, args ...any) {
	if w.isClosed() {
		return
	}
	w.notifier.Notify(Notice{Level: LevelInfo, Action: action, Message: fmt.Sprintf(format, args...)})
}
