package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Sanyam-Ahuja/study-manager/internal/auth/middleware"
	"github.com/Sanyam-Ahuja/study-manager/internal/models"
)

// LectureService defines the per-user lecture operations the handler needs
type LectureService interface {
	// ListLectures returns the user's lectures for a chapter, ordered by name.
	ListLectures(ctx context.Context, chapterID, userID int) ([]models.LectureProgressItem, error)
	// ToggleWatched flips the watched flag on one of the user's lectures.
	// A lecture that does not exist or belongs to another user is reported
	// as models.ErrNotFound.
	ToggleWatched(ctx context.Context, lectureID, userID int) (*models.ToggleResponse, error)
	// ChapterDuration aggregates watched and total seconds over a chapter.
	ChapterDuration(ctx context.Context, chapterID, userID int) (*models.DurationSummary, error)
	// SubjectDuration aggregates watched and total seconds over a subject.
	SubjectDuration(ctx context.Context, subjectID, userID int) (*models.DurationSummary, error)
}

// LectureHandler serves per-user lecture progress and duration summaries
type LectureHandler struct {
	BaseHandler
	service LectureService
}

// NewLectureHandler creates a new LectureHandler
func NewLectureHandler(service LectureService, logger *zap.Logger) *LectureHandler {
	return &LectureHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers lecture routes on the router
func (h *LectureHandler) RegisterRoutes(r chi.Router) {
	r.Get("/chapters/{id}/lectures", h.ListLectures)
	r.Put("/lectures/{id}/toggle-watched", h.ToggleWatched)
	r.Get("/chapters/{id}/duration", h.ChapterDuration)
	r.Get("/subjects/{id}/duration", h.SubjectDuration)
}

// userID pulls the authenticated user id set by the auth middleware. A
// missing id means the route was mounted outside the authed group.
func (h *LectureHandler) userID(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user id missing from request context", zap.String("path", r.URL.Path))
		h.RespondError(w, http.StatusUnauthorized, "access denied")
		return 0, false
	}
	return userID, true
}

// ListLectures godoc
// @Summary List lectures of a chapter
// @Description Returns the authenticated user's lectures for a chapter, with watched state
// @Tags lectures
// @Produce json
// @Param id path int true "Chapter ID"
// @Success 200 {array} models.LectureProgressItem
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/chapters/{id}/lectures [get]
func (h *LectureHandler) ListLectures(w http.ResponseWriter, r *http.Request) {
	chapterID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid chapter id")
		return
	}

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	lectures, err := h.service.ListLectures(r.Context(), chapterID, userID)
	if err != nil {
		h.Logger.Error("failed to list lectures", zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, lectures)
}

// ToggleWatched godoc
// @Summary Toggle a lecture's watched flag
// @Description Flips the watched state of one of the authenticated user's lectures
// @Tags lectures
// @Produce json
// @Param id path int true "Lecture ID"
// @Success 200 {object} models.ToggleResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/lectures/{id}/toggle-watched [put]
func (h *LectureHandler) ToggleWatched(w http.ResponseWriter, r *http.Request) {
	lectureID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lecture id")
		return
	}

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	toggled, err := h.service.ToggleWatched(r.Context(), lectureID, userID)
	if err != nil {
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, toggled)
}

// ChapterDuration godoc
// @Summary Chapter duration summary
// @Description Returns watched and total seconds across the user's lectures in a chapter
// @Tags lectures
// @Produce json
// @Param id path int true "Chapter ID"
// @Success 200 {object} models.DurationSummary
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/chapters/{id}/duration [get]
func (h *LectureHandler) ChapterDuration(w http.ResponseWriter, r *http.Request) {
	chapterID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid chapter id")
		return
	}

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	summary, err := h.service.ChapterDuration(r.Context(), chapterID, userID)
	if err != nil {
		h.Logger.Error("failed to aggregate chapter duration", zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, summary)
}

// SubjectDuration godoc
// @Summary Subject duration summary
// @Description Returns watched and total seconds across the user's lectures in a subject
// @Tags lectures
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} models.DurationSummary
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/subjects/{id}/duration [get]
func (h *LectureHandler) SubjectDuration(w http.ResponseWriter, r *http.Request) {
	subjectID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid subject id")
		return
	}

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	summary, err := h.service.SubjectDuration(r.Context(), subjectID, userID)
	if err != nil {
		h.Logger.Error("failed to aggregate subject duration", zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, summary)
}
