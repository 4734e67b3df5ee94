package workspace

import (
	"context"
	"slices"

	"github.com/rolodex/rolodex/internal/model"
)

// StartEdit snapshots contact id into the edit slot. There is a single slot:
// starting an edit on another row replaces it.
func (w *Workspace) StartEdit(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := slices.IndexFunc(w.contacts, func(c model.Contact) bool { return c.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	w.edit = &editSlot{id: id, draft: draftFromContact(w.contacts[i])}
	return nil
}

// Editing returns the id of the contact in edit mode.
func (w *Workspace) Editing() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.edit == nil {
		return "", false
	}
	return w.edit.id, true
}

// EditDraft returns the edit slot's target id and draft.
func (w *Workspace) EditDraft() (string, ContactDraft, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.edit == nil {
		return "", ContactDraft{}, false
	}
	return w.edit.id, w.edit.draft, true
}

// SetEditField changes one field of the edit draft. The displayed contact
// is not touched until SaveEdit.
func (w *Workspace) SetEditField(f Field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.edit == nil {
		return ErrNotEditing
	}
	return w.edit.draft.set(f, value)
}

// CancelEdit discards the edit slot without writing.
func (w *Workspace) CancelEdit() {
	w.mu.Lock()
	w.edit = nil
	w.mu.Unlock()
}

// SaveEdit validates the edit draft and writes all of its fields to the
// target contact. On success edit mode ends and contacts are re-fetched. On
// failure the slot is kept so the save can be retried.
func (w *Workspace) SaveEdit(ctx context.Context) error {
	const action = "update contact"

	id, draft, ok := w.EditDraft()
	if !ok {
		return ErrNotEditing
	}
	if err := draft.validate(); err != nil {
		w.fail(action, err)
		return err
	}

	if _, err := w.store.UpdateContact(ctx, id, draft.Input()); err != nil {
		w.fail(action, err)
		return err
	}

	w.mu.Lock()
	if w.edit != nil && w.edit.id == id {
		w.edit = nil
	}
	w.mu.Unlock()

	w.info(action, "Contact %q updated.", draft.Name)
	_ = w.FetchContacts(ctx)
	return nil
}
