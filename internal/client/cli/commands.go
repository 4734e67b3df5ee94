package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/rolodex/rolodex/internal/client/gate"
	"github.com/rolodex/rolodex/internal/client/workspace"
)

const credentialsHelp = `Commands:
  signin [email]   sign in with an existing account
  signup [email]   create an account
  mode             switch between sign in and sign up
  help             show this help
  exit             leave`

const workspaceHelp = `Commands:
  tab contacts|companies   switch tabs
  list                     show the active tab
  new                      create a contact
  newcompany               create a company
  edit <n>                 edit contact n
  set <field> <value>      change a field of the contact being edited
  save | cancel            finish editing
  delete <n>               delete row n of the active tab
  search <term> | clear    filter contacts
  refresh                  reload contacts and companies
  whoami                   show the signed-in user
  signout                  sign out
  help | exit`

// splitCommand returns the lower-cased first word of line and the rest of
// the line with surrounding space trimmed.
func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	cmd, rest, _ := strings.Cut(line, " ")
	return strings.ToLower(cmd), strings.TrimSpace(rest)
}

func (a *App) credentialsCommand(ctx context.Context, cmd, rest string) {
	switch cmd {
	case "help":
		a.println(credentialsHelp)
	case "mode":
		a.printf("Mode: %s\n", a.creds.Toggle())
	case "signin":
		a.submitCredentials(ctx, gate.ModeSignIn, rest)
	case "signup":
		a.submitCredentials(ctx, gate.ModeSignUp, rest)
	default:
		a.printf("Unknown command %q. Type 'help'.\n", cmd)
	}
}

func (a *App) submitCredentials(ctx context.Context, mode gate.Mode, email string) {
	if a.creds.Mode() != mode {
		a.creds.Toggle()
	}
	if email == "" {
		v, err := a.ask("Email")
		if err != nil {
			return
		}
		email = v
	}
	password, err := a.askPassword()
	if err != nil {
		a.Notify(workspace.Notice{Level: workspace.LevelError, Action: mode.String(), Message: err.Error()})
		return
	}
	a.creds.SetEmail(email)
	a.creds.SetPassword(password)

	msg, err := a.creds.Submit(ctx)
	if err != nil {
		a.Notify(workspace.Notice{Level: workspace.LevelError, Action: mode.String(), Message: err.Error()})
		return
	}
	a.println(msg)
}

func (a *App) workspaceCommand(ctx context.Context, cmd, rest string) {
	ws := a.ws
	switch cmd {
	case "help":
		a.println(workspaceHelp)
	case "tab":
		tab, err := workspace.ParseTab(rest)
		if err != nil {
			a.println(err.Error())
			return
		}
		ws.SwitchTab(tab)
		a.printList()
	case "list", "ls":
		a.printList()
	case "new":
		a.newContact(ctx)
	case "newcompany":
		a.newCompany(ctx)
	case "edit":
		c, ok := a.contactAt(rest)
		if !ok {
			return
		}
		if err := ws.StartEdit(c.ID); err != nil {
			a.println(err.Error())
			return
		}
		a.printEditDraft()
	case "set":
		a.setEditField(rest)
	case "save":
		if err := ws.SaveEdit(ctx); errors.Is(err, workspace.ErrNotEditing) {
			a.println(err.Error())
		}
	case "cancel":
		ws.CancelEdit()
		a.println("Edit cancelled.")
	case "delete", "rm":
		a.deleteRow(ctx, rest)
	case "search":
		ws.SetSearch(rest)
		a.printContacts()
	case "clear":
		ws.ClearSearch()
		a.printContacts()
	case "refresh":
		_ = ws.Mount(ctx)
		a.printStats()
	case "whoami":
		a.println(ws.Principal().Email)
	case "signout":
		_ = ws.SignOut(ctx)
	default:
		a.printf("Unknown command %q. Type 'help'.\n", cmd)
	}
}

func (a *App) newContact(ctx context.Context) {
	for _, f := range workspace.ContactFields {
		var (
			v   string
			err error
		)
		if f == workspace.FieldCompany {
			v, err = a.askCompany()
		} else {
			v, err = a.ask(fieldLabel(f))
		}
		if err != nil {
			return
		}
		if err := a.ws.SetContactField(f, v); err != nil {
			a.println(err.Error())
			return
		}
	}
	_ = a.ws.SubmitContact(ctx)
}

func (a *App) newCompany(ctx context.Context) {
	for _, f := range workspace.CompanyFields {
		v, err := a.ask(fieldLabel(f))
		if err != nil {
			return
		}
		if err := a.ws.SetCompanyField(f, v); err != nil {
			a.println(err.Error())
			return
		}
	}
	_ = a.ws.SubmitCompany(ctx)
}

// askCompany lists the companies and returns the chosen id, or "" for none.
func (a *App) askCompany() (string, error) {
	companies := a.ws.Companies()
	if len(companies) == 0 {
		return "", nil
	}
	for i, c := range companies {
		a.printf("  %d. %s\n", i+1, c.Name)
	}
	for {
		v, err := a.ask("Company number (blank for none)")
		if err != nil || v == "" {
			return "", err
		}
		if id, ok := a.companyID(v); ok {
			return id, nil
		}
		a.println("No such company.")
	}
}

// companyID resolves a company selection given as a list number or an id.
func (a *App) companyID(v string) (string, bool) {
	switch strings.ToLower(v) {
	case "", "none", "-":
		return "", true
	}
	companies := a.ws.Companies()
	if n, err := strconv.Atoi(v); err == nil {
		if n < 1 || n > len(companies) {
			return "", false
		}
		return companies[n-1].ID, true
	}
	for _, c := range companies {
		if c.ID == v {
			return c.ID, true
		}
	}
	return "", false
}

func (a *App) setEditField(rest string) {
	name, value, _ := strings.Cut(rest, " ")
	f := workspace.Field(strings.ToLower(name))
	if f == "company" {
		f = workspace.FieldCompany
	}
	if f == workspace.FieldCompany {
		id, ok := a.companyID(strings.TrimSpace(value))
		if !ok {
			a.println("No such company.")
			return
		}
		value = id
	}
	if err := a.ws.SetEditField(f, strings.TrimSpace(value)); err != nil {
		a.println(err.Error())
		return
	}
	a.printEditDraft()
}

func (a *App) deleteRow(ctx context.Context, rest string) {
	if a.ws.ActiveTab() == workspace.TabCompanies {
		companies := a.ws.Companies()
		n, ok := a.rowNumber(rest, len(companies))
		if !ok {
			return
		}
		_ = a.ws.DeleteCompany(ctx, companies[n-1].ID)
		return
	}
	c, ok := a.contactAt(rest)
	if !ok {
		return
	}
	_ = a.ws.DeleteContact(ctx, c.ID)
}

func (a *App) rowNumber(arg string, size int) (int, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > size {
		a.printf("Expected a row number between 1 and %d.\n", size)
		return 0, false
	}
	return n, true
}

func fieldLabel(f workspace.Field) string {
	switch f {
	case workspace.FieldName:
		return "Name"
	case workspace.FieldEmail:
		return "Email"
	case workspace.FieldPhone:
		return "Phone"
	case workspace.FieldCompany:
		return "Company"
	case workspace.FieldNotes:
		return "Notes"
	case workspace.FieldIndustry:
		return "Industry"
	case workspace.FieldWebsite:
		return "Website"
	case workspace.FieldDescription:
		return "Description"
	}
	return string(f)
}
