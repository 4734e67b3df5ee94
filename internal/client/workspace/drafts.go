package workspace

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rolodex/rolodex/internal/model"
)

var (
	// ErrValidation is wrapped by every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrUnknownField is returned when setting a field a draft does not have.
	ErrUnknownField = errors.New("unknown field")
)

// ValidationError reports required fields left blank. It is detected before
// any call to the store.
type ValidationError struct {
	Fields  []Field
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Field names a draft form field. Values match the JSON field names.
type Field string

const (
	FieldName        Field = "name"
	FieldEmail       Field = "email"
	FieldPhone       Field = "phone"
	FieldCompany     Field = "company_id"
	FieldNotes       Field = "notes"
	FieldIndustry    Field = "industry"
	FieldWebsite     Field = "website"
	FieldDescription Field = "description"
)

// ContactFields lists the fields of a contact draft in form order.
var ContactFields = []Field{FieldName, FieldEmail, FieldPhone, FieldCompany, FieldNotes}

// CompanyFields lists the fields of a company draft in form order.
var CompanyFields = []Field{FieldName, FieldIndustry, FieldWebsite, FieldDescription}

// ContactDraft is the unsaved contents of the create or edit contact form.
// CompanyID is "" when no company is selected.
type ContactDraft struct {
	Name      string
	Email     string
	Phone     string
	CompanyID string
	Notes     string
}

// draftFromContact snapshots c into a draft.
func draftFromContact(c model.Contact) ContactDraft {
	d := ContactDraft{Name: c.Name, Email: c.Email, Phone: c.Phone, Notes: c.Notes}
	if c.CompanyID != nil {
		d.CompanyID = *c.CompanyID
	}
	return d
}

// Input converts the draft into a write payload. An empty company selection
// becomes a null reference.
func (d ContactDraft) Input() model.ContactInput {
	return model.ContactInput{
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		CompanyID: model.NormalizeCompanyID(&d.CompanyID),
		Notes:     d.Notes,
	}
}

// Get returns the value of f.
func (d ContactDraft) Get(f Field) (string, error) {
	switch f {
	case FieldName:
		return d.Name, nil
	case FieldEmail:
		return d.Email, nil
	case FieldPhone:
		return d.Phone, nil
	case FieldCompany:
		return d.CompanyID, nil
	case FieldNotes:
		return d.Notes, nil
	}
	return "", fmt.Errorf("%w %q for contact", ErrUnknownField, f)
}

func (d *ContactDraft) set(f Field, v string) error {
	switch f {
	case FieldName:
		d.Name = v
	case FieldEmail:
		d.Email = v
	case FieldPhone:
		d.Phone = v
	case FieldCompany:
		d.CompanyID = v
	case FieldNotes:
		d.Notes = v
	default:
		return fmt.Errorf("%w %q for contact", ErrUnknownField, f)
	}
	return nil
}

func (d ContactDraft) validate() error {
	var missing []Field
	if strings.TrimSpace(d.Name) == "" {
		missing = append(missing, FieldName)
	}
	if strings.TrimSpace(d.Email) == "" {
		missing = append(missing, FieldEmail)
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing, Message: "name and email are required"}
	}
	return nil
}

// CompanyDraft is the unsaved contents of the create company form.
type CompanyDraft struct {
	Name        string
	Industry    string
	Website     string
	Description string
}

// Input converts the draft into a write payload.
func (d CompanyDraft) Input() model.CompanyInput {
	return model.CompanyInput{
		Name:        d.Name,
		Industry:    d.Industry,
		Website:     d.Website,
		Description: d.Description,
	}
}

func (d *CompanyDraft) set(f Field, v string) error {
	switch f {
	case FieldName:
		d.Name = v
	case FieldIndustry:
		d.Industry = v
	case FieldWebsite:
		d.Website = v
	case FieldDescription:
		d.Description = v
	default:
		return fmt.Errorf("%w %q for company", ErrUnknownField, f)
	}
	return nil
}

func (d CompanyDraft) validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return &ValidationError{Fields: []Field{FieldName}, Message: "company name is required"}
	}
	return nil
}
