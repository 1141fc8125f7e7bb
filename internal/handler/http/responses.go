package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/mpopescu/phonebook/pkg/errors"
	"github.com/mpopescu/phonebook/pkg/logger"
)

// errorBody is one of the five fixed error payloads the API returns.
// The set is closed; handlers never emit any other error shape.
type errorBody struct {
	Error string `json:"error"`
}

var (
	respUnauthorized  = errorBody{Error: "Unauthorized"}
	respBadRequest    = errorBody{Error: "Bad request"}
	respNotFound      = errorBody{Error: "Entity not found"}
	respServerError   = errorBody{Error: "Server error"}
	respAlreadyExists = errorBody{Error: "Entity already exists"}
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error from the service layer onto the response catalog.
// Duplicate entities are reported with status 400, not 409; that is the fixed
// API contract. Anything outside the taxonomy is a server error: the cause is
// logged and never leaks to the caller.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperrors.ErrAlreadyExists):
		writeJSON(w, http.StatusBadRequest, respAlreadyExists)
	case errors.Is(err, apperrors.ErrNotFound):
		writeJSON(w, http.StatusNotFound, respNotFound)
	case errors.Is(err, apperrors.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, respBadRequest)
	case errors.Is(err, apperrors.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, respUnauthorized)
	default:
		logger.FromContext(r.Context()).ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		writeJSON(w, http.StatusInternalServerError, respServerError)
	}
}
