package workspace

import "context"

// ContactDraft returns the create-contact form contents.
func (w *Workspace) ContactDraft() ContactDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.contactDraft
}

// SetContactField sets one field of the create-contact form.
func (w *Workspace) SetContactField(f Field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.contactDraft.set(f, value)
}

// CompanyDraft returns the create-company form contents.
func (w *Workspace) CompanyDraft() CompanyDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.companyDraft
}

// SetCompanyField sets one field of the create-company form.
func (w *Workspace) SetCompanyField(f Field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.companyDraft.set(f, value)
}

// Submitting reports whether a contact create is in flight.
func (w *Workspace) Submitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitting
}

// SubmittingCompany reports whether a company create is in flight.
func (w *Workspace) SubmittingCompany() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submittingCompany
}

// SubmitContact validates the create-contact draft and writes it. On
// success the draft is reset and contacts are re-fetched after the write.
// A blank name or email fails with a *ValidationError and the store is not
// called.
func (w *Workspace) SubmitContact(ctx context.Context) error {
	const action = "create contact"

	draft := w.ContactDraft()
	if err := draft.validate(); err != nil {
		w.fail(action, err)
		return err
	}

	w.setSubmitting(&w.submitting, true)
	_, err := w.store.InsertContact(ctx, draft.Input())
	w.setSubmitting(&w.submitting, false)
	if err != nil {
		w.fail(action, err)
		return err
	}

	w.mu.Lock()
	if w.contactDraft == draft {
		w.contactDraft = ContactDraft{}
	}
	w.mu.Unlock()

	w.info(action, "Contact %q created.", draft.Name)
	_ = w.FetchContacts(ctx)
	return nil
}

// SubmitCompany validates the create-company draft and writes it. On
// success the draft is reset and companies are re-fetched after the write.
func (w *Workspace) SubmitCompany(ctx context.Context) error {
	const action = "create company"

	draft := w.CompanyDraft()
	if err := draft.validate(); err != nil {
		w.fail(action, err)
		return err
	}

	w.setSubmitting(&w.submittingCompany, true)
	_, err := w.store.InsertCompany(ctx, draft.Input())
	w.setSubmitting(&w.submittingCompany, false)
	if err != nil {
		w.fail(action, err)
		return err
	}

	w.mu.Lock()
	if w.companyDraft == draft {
		w.companyDraft = CompanyDraft{}
	}
	w.mu.Unlock()

	w.info(action, "Company %q created.", draft.Name)
	_ = w.FetchCompanies(ctx)
	return nil
}

func (w *Workspace) setSubmitting(flag *bool, v bool) {
	w.mu.Lock()
	*flag = v
	w.mu.Unlock()
}
