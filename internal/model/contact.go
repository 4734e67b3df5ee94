package model

import (
	"strings"
	"time"
)

// Contact is a person owned by a single user, optionally linked to a company.
type Contact struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	CompanyID *string         `json:"company_id"` // null when the contact has no company
	Notes     string          `json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Company   *CompanySummary `json:"company,omitempty"` // populated by joined listings
}

// CompanySummary is the subset of company columns surfaced alongside a contact.
type CompanySummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Website  string `json:"website"`
}

// ContactInput is the writable part of a contact.
type ContactInput struct {
	Name      string  `json:"name" validate:"required"`
	Email     string  `json:"email" validate:"required"`
	Phone     string  `json:"phone"`
	CompanyID *string `json:"company_id"`
	Notes     string  `json:"notes"`
}

// Input returns the writable fields of c.
func (c *Contact) Input() ContactInput {
	return ContactInput{
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CompanyID: c.CompanyID,
		Notes:     c.Notes,
	}
}

// CompanyName returns the joined company's name, or "" when there is none.
func (c *Contact) CompanyName() string {
	if c.Company == nil {
		return ""
	}
	return c.Company.Name
}

// NormalizeCompanyID maps an empty or blank company selection to nil.
func NormalizeCompanyID(id *string) *string {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil
	}
	v := strings.TrimSpace(*id)
	return &v
}
