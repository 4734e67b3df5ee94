package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rolodex/rolodex/internal/model"
	"github.com/rolodex/rolodex/internal/service"
	"github.com/rolodex/rolodex/pkg/auth"
)

// ContactHandler serves the contacts collection of the authenticated user.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// List handles GET /api/contacts.
// Query params: order=<column>.<asc|desc>, embed=company.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	opts, ok := parseListOptions(w, r)
	if !ok {
		return
	}
	contacts, err := h.contactService.List(r.Context(), userID, opts)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if contacts == nil {
		contacts = []*model.Contact{}
	}
	writeJSON(w, http.StatusOK, contacts)
}

// Create handles POST /api/contacts.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var in model.ContactInput
	if !decodeJSON(w, r, &in) {
		return
	}
	contact, err := h.contactService.Create(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, contact)
}

// Update handles PUT /api/contacts/{id}. Every writable field is replaced.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in model.ContactInput
	if !decodeJSON(w, r, &in) {
		return
	}
	contact, err := h.contactService.Update(r.Context(), id, userID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

// Delete handles DELETE /api/contacts/{id}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.contactService.Delete(r.Context(), id, userID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return "", false
	}
	return userID, true
}

// pathID reads the {id} path value. Malformed ids cannot name a row, so they
// are reported as not found.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusNotFound, "not_found", "record not found")
		return "", false
	}
	return id, true
}

// parseListOptions reads order=<column>.<asc|desc> and embed=company.
// Column names are checked against an allowlist by the repository.
func parseListOptions(w http.ResponseWriter, r *http.Request) (model.ListOptions, bool) {
	q := r.URL.Query()
	var opts model.ListOptions
	if order := q.Get("order"); order != "" {
		col, dir, _ := strings.Cut(order, ".")
		switch dir {
		case "", "asc":
		case "desc":
			opts.Descending = true
		default:
			writeError(w, http.StatusBadRequest, "invalid_order", "order direction must be asc or desc")
			return opts, false
		}
		opts.OrderBy = col
	}
	for _, e := range strings.Split(q.Get("embed"), ",") {
		if strings.TrimSpace(e) == "company" {
			opts.WithCompany = true
		}
	}
	return opts, true
}
