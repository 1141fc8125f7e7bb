package http

import (
	"encoding/json"
	"net/http"

	"github.com/mpopescu/phonebook/pkg/validator"

	"github.com/mpopescu/phonebook/internal/service"
)

// AuthHandler handles HTTP requests for the login endpoint.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// LoginRequest is the JSON request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the JSON response body for a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, respBadRequest)
		return
	}

	if err := validator.Validate(req); err != nil {
		writeJSON(w, http.StatusBadRequest, respBadRequest)
		return
	}

	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}

// MethodNotAllowed handles GET/PUT/DELETE /api/login. The contract for the
// login path is fixed at 400 for every verb except POST.
func (h *AuthHandler) MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusBadRequest, respBadRequest)
}
