package model

import "time"

// Company is an organisation contacts can be linked to. Companies are never
// updated after creation.
type Company struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Industry    string    `json:"industry"`
	Website     string    `json:"website"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CompanyInput is the writable part of a company.
type CompanyInput struct {
	Name        string `json:"name" validate:"required"`
	Industry    string `json:"industry"`
	Website     string `json:"website"`
	Description string `json:"description"`
}

// Summary returns the fields joined onto contacts.
func (c *Company) Summary() CompanySummary {
	return CompanySummary{ID: c.ID, Name: c.Name, Industry: c.Industry, Website: c.Website}
}
