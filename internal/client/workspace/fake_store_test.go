package workspace

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rolodex/rolodex/internal/model"
)

var errBoom = errors.New("boom")

// fakeStore is an in-memory Store. Contacts are listed newest first with the
// company joined, companies by name.
type fakeStore struct {
	mu        sync.Mutex
	seq       int
	now       time.Time
	contacts  []model.Contact
	companies []model.Company
	calls     []string
	fail      map[string]error
	// listContactsHook runs inside ListContacts before it returns.
	listContactsHook func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		now:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		fail: map[string]error{},
	}
}

func (s *fakeStore) record(op string) error {
	s.calls = append(s.calls, op)
	return s.fail[op]
}

func (s *fakeStore) nextID(prefix string) string {
	s.seq++
	s.now = s.now.Add(time.Minute)
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *fakeStore) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.calls)
}

func (s *fakeStore) ListContacts(_ context.Context, opts model.ListOptions) ([]model.Contact, error) {
	s.mu.Lock()
	if err := s.record("ListContacts"); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	out := make([]model.Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		if opts.WithCompany && c.CompanyID != nil {
			for _, co := range s.companies {
				if co.ID == *c.CompanyID {
					sum := co.Summary()
					c.Company = &sum
				}
			}
		}
		out = append(out, c)
	}
	slices.SortStableFunc(out, func(a, b model.Contact) int { return b.CreatedAt.Compare(a.CreatedAt) })
	hook := s.listContactsHook
	s.mu.Unlock()
	if hook != nil {
		hook()
	}
	return out, nil
}

func (s *fakeStore) InsertContact(_ context.Context, in model.ContactInput) (*model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("InsertContact"); err != nil {
		return nil, err
	}
	c := model.Contact{
		ID: s.nextID("contact"), Name: in.Name, Email: in.Email, Phone: in.Phone,
		CompanyID: in.CompanyID, Notes: in.Notes,
	}
	c.CreatedAt, c.UpdatedAt = s.now, s.now
	s.contacts = append(s.contacts, c)
	return &c, nil
}

func (s *fakeStore) UpdateContact(_ context.Context, id string, in model.ContactInput) (*model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("UpdateContact"); err != nil {
		return nil, err
	}
	for i := range s.contacts {
		if s.contacts[i].ID == id {
			c := &s.contacts[i]
			c.Name, c.Email, c.Phone, c.CompanyID, c.Notes = in.Name, in.Email, in.Phone, in.CompanyID, in.Notes
			out := *c
			return &out, nil
		}
	}
	return nil, errors.New("not found")
}

func (s *fakeStore) DeleteContact(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("DeleteContact"); err != nil {
		return err
	}
	s.contacts = slices.DeleteFunc(s.contacts, func(c model.Contact) bool { return c.ID == id })
	return nil
}

func (s *fakeStore) ListCompanies(context.Context, model.ListOptions) ([]model.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("ListCompanies"); err != nil {
		return nil, err
	}
	out := slices.Clone(s.companies)
	slices.SortStableFunc(out, func(a, b model.Company) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return out, nil
}

func (s *fakeStore) InsertCompany(_ context.Context, in model.CompanyInput) (*model.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("InsertCompany"); err != nil {
		return nil, err
	}
	c := model.Company{
		ID: s.nextID("company"), Name: in.Name, Industry: in.Industry,
		Website: in.Website, Description: in.Description,
	}
	c.CreatedAt, c.UpdatedAt = s.now, s.now
	s.companies = append(s.companies, c)
	return &c, nil
}

func (s *fakeStore) DeleteCompany(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("DeleteCompany"); err != nil {
		return err
	}
	s.companies = slices.DeleteFunc(s.companies, func(c model.Company) bool { return c.ID == id })
	for i := range s.contacts {
		if s.contacts[i].CompanyID != nil && *s.contacts[i].CompanyID == id {
			s.contacts[i].CompanyID = nil
		}
	}
	return nil
}

// seedContact adds a contact directly, bypassing call recording.
func (s *fakeStore) seedContact(name, email string) model.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := model.Contact{ID: s.nextID("contact"), Name: name, Email: email}
	c.CreatedAt, c.UpdatedAt = s.now, s.now
	s.contacts = append(s.contacts, c)
	return c
}

func (s *fakeStore) contact(id string) (model.Contact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.contacts {
		if c.ID == id {
			return c, true
		}
	}
	return model.Contact{}, false
}

// notices collects notifications.
type notices struct {
	mu   sync.Mutex
	list []Notice
}

func (n *notices) Notify(x Notice) {
	n.mu.Lock()
	n.list = append(n.list, x)
	n.mu.Unlock()
}

func (n *notices) All() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.list)
}

func (n *notices) Errors() []Notice {
	var out []Notice
	for _, x := range n.All() {
		if x.Level == LevelError {
			out = append(out, x)
		}
	}
	return out
}

type fakeSignOut struct{ err error }

func (f *fakeSignOut) SignOut(context.Context) error { return f.err }
