package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mpopescu/phonebook/pkg/validator"

	"github.com/mpopescu/phonebook/internal/domain"
	"github.com/mpopescu/phonebook/internal/service"
)

// ContactHandler handles HTTP requests for the contact collection.
type ContactHandler struct {
	service *service.ContactService
}

// NewContactHandler creates a new contact HTTP handler.
func NewContactHandler(svc *service.ContactService) *ContactHandler {
	return &ContactHandler{service: svc}
}

// ContactRequest is the JSON request body for creating a contact.
type ContactRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

// UpdateContactRequest is the JSON request body for a single-contact update.
// The update replaces all three fields, so no per-field validation applies.
type UpdateContactRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
}

// List handles GET /api/contacts
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	order := domain.ParseSortOrder(r.URL.Query().Get("order"))
	filter := r.URL.Query().Get("filter")

	contacts, err := h.service.List(r.Context(), order, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if contacts == nil {
		contacts = []domain.Contact{}
	}

	writeJSON(w, http.StatusOK, contacts)
}

// Get handles GET /api/contacts/{id}
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	contact, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, contact)
}

// Create handles POST /api/contacts
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, respBadRequest)
		return
	}

	if err := validator.Validate(req); err != nil {
		writeJSON(w, http.StatusBadRequest, respBadRequest)
		return
	}

	contact, err := h.service.Create(r.Context(), service.ContactInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, contact)
}

// Update handles PUT /api/contacts/{id}
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req UpdateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, respBadRequest)
		return
	}

	contact, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), service.ContactInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, contact)
}

// BulkUpdate handles PUT /api/contacts (no id in the path). The body must be
// an array of entries, each carrying its own identifier; anything else is a
// bad request.
func (h *ContactHandler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var entries []service.BulkUpdateEntry
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		writeJSON(w, http.StatusBadRequest, respBadRequest)
		return
	}
	// A JSON null decodes into a nil slice without error, but it is not a
	// sequence. An explicit empty array stays a valid no-op request.
	if entries == nil {
		writeJSON(w, http.StatusBadRequest, respBadRequest)
		return
	}

	updated, err := h.service.BulkUpdate(r.Context(), entries)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/contacts/{id}
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteCollection handles DELETE /api/contacts without an id, which the
// contract rejects outright.
func (h *ContactHandler) DeleteCollection(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusBadRequest, respBadRequest)
}
