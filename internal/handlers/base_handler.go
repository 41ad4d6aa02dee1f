package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Sanyam-Ahuja/study-manager/internal/models"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// RespondDomainError maps a service error to an HTTP response. Domain errors
// get their fixed message and status; anything else is a backend failure and
// responds with a generic 500 so driver error text never reaches clients.
func (h *BaseHandler) RespondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrMissingCredentials):
		h.RespondError(w, http.StatusBadRequest, models.ErrMissingCredentials.Error())
	case errors.Is(err, models.ErrDuplicateUser):
		h.RespondError(w, http.StatusBadRequest, models.ErrDuplicateUser.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		h.RespondError(w, http.StatusBadRequest, models.ErrInvalidCredentials.Error())
	case errors.Is(err, models.ErrNotFound):
		h.RespondError(w, http.StatusNotFound, models.ErrNotFound.Error())
	default:
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
