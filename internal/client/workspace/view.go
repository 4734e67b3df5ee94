package workspace

import (
	"fmt"
	"strings"

	"github.com/rolodex/rolodex/internal/model"
)

// Tab is the active half of the workspace.
type Tab int

const (
	TabContacts Tab = iota
	TabCompanies
)

func (t Tab) String() string {
	if t == TabCompanies {
		return "companies"
	}
	return "contacts"
}

// ParseTab parses "contacts" or "companies".
func ParseTab(s string) (Tab, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "contacts":
		return TabContacts, nil
	case "companies":
		return TabCompanies, nil
	}
	return TabContacts, fmt.Errorf("unknown tab %q", s)
}

// ActiveTab returns the active tab.
func (w *Workspace) ActiveTab() Tab {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tab
}

// SwitchTab changes the active tab. Nothing is fetched and no draft is lost.
func (w *Workspace) SwitchTab(t Tab) {
	w.mu.Lock()
	w.tab = t
	w.mu.Unlock()
}

// SetSearch sets the search term.
func (w *Workspace) SetSearch(term string) {
	w.mu.Lock()
	w.search = term
	w.mu.Unlock()
}

// ClearSearch empties the search term.
func (w *Workspace) ClearSearch() {
	w.SetSearch("")
}

// Search returns the current search term.
func (w *Workspace) Search() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.search
}

// Visible returns the contacts matching the current search term.
func (w *Workspace) Visible() []model.Contact {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Filter(w.contacts, w.search)
}
