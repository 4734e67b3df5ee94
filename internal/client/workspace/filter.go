package workspace

import (
	"strings"

	"github.com/rolodex/rolodex/internal/model"
)

// Filter returns the contacts matching term, in their original order. A
// contact matches when term is a case-insensitive substring of its name,
// email, linked company name or notes, or a plain substring of its phone.
// An empty term matches everything. The input slice is never modified.
func Filter(contacts []model.Contact, term string) []model.Contact {
	out := make([]model.Contact, 0, len(contacts))
	if term == "" {
		return append(out, contacts...)
	}
	lower := strings.ToLower(term)
	for _, c := range contacts {
		if matches(c, term, lower) {
			out = append(out, c)
		}
	}
	return out
}

func matches(c model.Contact, term, lower string) bool {
	return strings.Contains(strings.ToLower(c.Name), lower) ||
		strings.Contains(strings.ToLower(c.Email), lower) ||
		(c.Phone != "" && strings.Contains(c.Phone, term)) ||
		(c.Company != nil && strings.Contains(strings.ToLower(c.Company.Name), lower)) ||
		(c.Notes != "" && strings.Contains(strings.ToLower(c.Notes), lower))
}
