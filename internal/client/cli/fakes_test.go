package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rolodex/rolodex/internal/client/session"
	"github.com/rolodex/rolodex/internal/model"
)

// fakeAuth accepts one account and notifies listeners like session.Manager.
type fakeAuth struct {
	mu        sync.Mutex
	email     string
	password  string
	current   *session.Session
	listeners map[int]session.Listener
	next      int
}

func newFakeAuth(email, password string) *fakeAuth {
	return &fakeAuth{email: email, password: password, listeners: map[int]session.Listener{}}
}

func (f *fakeAuth) GetSession(context.Context) (*session.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current, nil
}

func (f *fakeAuth) OnAuthStateChange(fn session.Listener) *session.Subscription {
	f.mu.Lock()
	id := f.next
	f.next++
	f.listeners[id] = fn
	f.mu.Unlock()
	return session.NewSubscription(func() {
		f.mu.Lock()
		delete(f.listeners, id)
		f.mu.Unlock()
	})
}

func (f *fakeAuth) SignIn(_ context.Context, email, password string) (*session.Session, error) {
	if email != f.email || password != f.password {
		return nil, errors.New("invalid email or password")
	}
	return f.open(email), nil
}

func (f *fakeAuth) SignUp(_ context.Context, email, password string) (*session.Session, error) {
	if email == f.email {
		return nil, errors.New("email already registered")
	}
	f.mu.Lock()
	f.email, f.password = email, password
	f.mu.Unlock()
	return f.open(email), nil
}

func (f *fakeAuth) SignOut(context.Context) error {
	f.mu.Lock()
	f.current = nil
	f.mu.Unlock()
	f.emit(session.EventSignedOut, nil)
	return nil
}

func (f *fakeAuth) open(email string) *session.Session {
	s := &session.Session{
		AccessToken: "token",
		ExpiresAt:   time.Now().Add(time.Hour),
		User:        session.User{ID: "user-" + email, Email: email},
	}
	f.mu.Lock()
	f.current = s
	f.mu.Unlock()
	f.emit(session.EventSignedIn, s)
	return s
}

func (f *fakeAuth) emit(ev session.Event, s *session.Session) {
	f.mu.Lock()
	ls := make([]session.Listener, 0, len(f.listeners))
	for _, l := range f.listeners {
		ls = append(ls, l)
	}
	f.mu.Unlock()
	for _, l := range ls {
		l(ev, s)
	}
}

// memStore is a minimal in-memory record store.
type memStore struct {
	mu        sync.Mutex
	seq       int
	contacts  []model.Contact
	companies []model.Company
}

func (s *memStore) id(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *memStore) ListContacts(context.Context, model.ListOptions) ([]model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Contact, 0, len(s.contacts))
	for i := len(s.contacts) - 1; i >= 0; i-- {
		c := s.contacts[i]
		if c.CompanyID != nil {
			for _, co := range s.companies {
				if co.ID == *c.CompanyID {
					sum := co.Summary()
					c.Company = &sum
				}
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *memStore) InsertContact(_ context.Context, in model.ContactInput) (*model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := model.Contact{ID: s.id("contact"), Name: in.Name, Email: in.Email, Phone: in.Phone, CompanyID: in.CompanyID, Notes: in.Notes}
	s.contacts = append(s.contacts, c)
	return &c, nil
}

func (s *memStore) UpdateContact(_ context.Context, id string, in model.ContactInput) (*model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
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

func (s *memStore) DeleteContact(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts = slices.DeleteFunc(s.contacts, func(c model.Contact) bool { return c.ID == id })
	return nil
}

func (s *memStore) ListCompanies(context.Context, model.ListOptions) ([]model.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.companies), nil
}

func (s *memStore) InsertCompany(_ context.Context, in model.CompanyInput) (*model.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := model.Company{ID: s.id("company"), Name: in.Name, Industry: in.Industry, Website: in.Website, Description: in.Description}
	s.companies = append(s.companies, c)
	return &c, nil
}

func (s *memStore) DeleteCompany(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies = slices.DeleteFunc(s.companies, func(c model.Company) bool { return c.ID == id })
	return nil
}
