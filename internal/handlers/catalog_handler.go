package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Sanyam-Ahuja/study-manager/internal/models"
)

// CatalogService defines the catalog browsing operations the handler needs
type CatalogService interface {
	// ListSubjects returns all subjects ordered by name.
	ListSubjects(ctx context.Context) ([]models.Subject, error)
	// ListChapters returns a subject's chapters ordered by name.
	ListChapters(ctx context.Context, subjectID int) ([]models.Chapter, error)
}

// CatalogHandler serves the shared subject and chapter catalog
type CatalogHandler struct {
	BaseHandler
	service CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(service CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers catalog routes on the router
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/subjects", h.ListSubjects)
	r.Get("/subjects/{id}/chapters", h.ListChapters)
}

// ListSubjects godoc
// @Summary List subjects
// @Description Returns every subject in the catalog
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Subject
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/subjects [get]
func (h *CatalogHandler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.service.ListSubjects(r.Context())
	if err != nil {
		h.Logger.Error("failed to list subjects", zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, subjects)
}

// ListChapters godoc
// @Summary List chapters of a subject
// @Description Returns the chapters belonging to one subject
// @Tags catalog
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {array} models.Chapter
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/subjects/{id}/chapters [get]
func (h *CatalogHandler) ListChapters(w http.ResponseWriter, r *http.Request) {
	subjectID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid subject id")
		return
	}

	chapters, err := h.service.ListChapters(r.Context(), subjectID)
	if err != nil {
		h.Logger.Error("failed to list chapters", zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, chapters)
}
