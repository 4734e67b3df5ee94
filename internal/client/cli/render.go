package cli

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/rolodex/rolodex/internal/client/workspace"
	"github.com/rolodex/rolodex/internal/model"
)

func (a *App) printList() {
	if a.ws.ActiveTab() == workspace.TabCompanies {
		a.printCompanies()
		return
	}
	a.printContacts()
}

func (a *App) printContacts() {
	if contacts, _ := a.ws.Loading(); contacts {
		a.println("Loading contacts...")
		return
	}
	visible := a.ws.Visible()
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	for i, c := range visible {
		fmt.Fprintf(tw, "%d.\t%s\t%s\t%s\t%s\t%s\n", i+1, c.Name, c.Email, c.Phone, c.CompanyName(), c.Notes)
	}
	tw.Flush()
	a.printf("%s", buf.String())
	a.printStats()
}

func (a *App) printCompanies() {
	if _, companies := a.ws.Loading(); companies {
		a.println("Loading companies...")
		return
	}
	companies := a.ws.Companies()
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	for i, c := range companies {
		fmt.Fprintf(tw, "%d.\t%s\t%s\t%s\t%s\n", i+1, c.Name, c.Industry, c.Website, c.Description)
	}
	tw.Flush()
	a.printf("%s%d companies\n", buf.String(), len(companies))
}

func (a *App) printStats() {
	s := a.ws.Stats()
	if search := a.ws.Search(); search != "" {
		a.printf("Showing %d of %d contacts matching %q, %d companies\n", s.Visible, s.Contacts, search, s.Companies)
		return
	}
	a.printf("%d contacts, %d companies\n", s.Contacts, s.Companies)
}

func (a *App) printEditDraft() {
	id, d, ok := a.ws.EditDraft()
	if !ok {
		return
	}
	company := d.CompanyID
	for _, c := range a.ws.Companies() {
		if c.ID == d.CompanyID {
			company = c.Name
		}
	}
	a.printf("Editing %s\n  name: %s\n  email: %s\n  phone: %s\n  company_id: %s\n  notes: %s\n",
		id, d.Name, d.Email, d.Phone, company, d.Notes)
}

// contactAt resolves a 1-based row number against the visible contacts.
func (a *App) contactAt(arg string) (model.Contact, bool) {
	visible := a.ws.Visible()
	n, ok := a.rowNumber(arg, len(visible))
	if !ok {
		return model.Contact{}, false
	}
	return visible[n-1], true
}
