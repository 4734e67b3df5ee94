package workspace

import (
	"context"
	"fmt"
	"slices"

	"github.com/rolodex/rolodex/internal/model"
)

// DeleteContact asks for confirmation and deletes contact id. A declined
// confirmation is a no-op and returns nil. On success the contact is
// removed from the local collection without a re-fetch; on failure the
// collection is left as it was.
func (w *Workspace) DeleteContact(ctx context.Context, id string) error {
	const action = "delete contact"

	w.mu.Lock()
	i := slices.IndexFunc(w.contacts, func(c model.Contact) bool { return c.ID == id })
	var name string
	if i >= 0 {
		name = w.contacts[i].Name
	}
	w.mu.Unlock()
	if i < 0 {
		return ErrNotFound
	}

	if !w.confirmer.Confirm(fmt.Sprintf("Delete contact %q? This cannot be undone.", name)) {
		return nil
	}
	if err := w.store.DeleteContact(ctx, id); err != nil {
		w.fail(action, err)
		return err
	}

	w.mu.Lock()
	if !w.closed {
		w.contacts = slices.DeleteFunc(slices.Clone(w.contacts), func(c model.Contact) bool { return c.ID == id })
		if w.edit != nil && w.edit.id == id {
			w.edit = nil
		}
	}
	w.mu.Unlock()

	w.info(action, "Contact %q deleted.", name)
	return nil
}

// DeleteCompany asks for confirmation and deletes company id, removing it
// locally on success. Contacts linked to it are left as they are until the
// next contacts fetch.
func (w *Workspace) DeleteCompany(ctx context.Context, id string) error {
	const action = "delete company"

	w.mu.Lock()
	i := slices.IndexFunc(w.companies, func(c model.Company) bool { return c.ID == id })
	var name string
	if i >= 0 {
		name = w.companies[i].Name
	}
	w.mu.Unlock()
	if i < 0 {
		return ErrNotFound
	}

	if !w.confirmer.Confirm(fmt.Sprintf("Delete company %q? This cannot be undone.", name)) {
		return nil
	}
	if err := w.store.DeleteCompany(ctx, id); err != nil {
		w.fail(action, err)
		return err
	}

	w.mu.Lock()
	if !w.closed {
		w.companies = slices.DeleteFunc(slices.Clone(w.companies), func(c model.Company) bool { return c.ID == id })
	}
	w.mu.Unlock()

	w.info(action, "Company %q deleted.", name)
	return nil
}
