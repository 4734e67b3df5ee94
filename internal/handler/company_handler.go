package handler

import (
	"net/http"

	"github.com/rolodex/rolodex/internal/model"
	"github.com/rolodex/rolodex/internal/service"
)

// CompanyHandler serves the companies collection of the authenticated user.
type CompanyHandler struct {
	companyService service.CompanyService
}

func NewCompanyHandler(companyService service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// List handles GET /api/companies.
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	opts, ok := parseListOptions(w, r)
	if !ok {
		return
	}
	companies, err := h.companyService.List(r.Context(), userID, opts)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if companies == nil {
		companies = []*model.Company{}
	}
	writeJSON(w, http.StatusOK, companies)
}

// Create handles POST /api/companies.
func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var in model.CompanyInput
	if !decodeJSON(w, r, &in) {
		return
	}
	company, err := h.companyService.Create(r.Context(), userID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, company)
}

// Delete handles DELETE /api/companies/{id}. Linked contacts keep existing
// with a null company reference.
func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.companyService.Delete(r.Context(), id, userID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
