package handler

import (
	"net/http"

	"github.com/mcoot/progressjournal/internal/api/middleware"
	"github.com/mcoot/progressjournal/internal/api/response"
	"github.com/mcoot/progressjournal/internal/services/progress"
)

// ProgressHandler handles achievement and challenge catalogue endpoints
type ProgressHandler struct {
	progress *progress.Service
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progress *progress.Service) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

// Get handles GET /api/v1/progress
func (h *ProgressHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetUsername(r.Context())

	report, err := h.progress.Report(r.Context(), username)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ProgressResponse{
		Counts:  report.Counts,
		Targets: report.Targets,
	})
}

// Challenges handles GET /api/v1/challenges
func (h *ProgressHandler) Challenges(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.ChallengesResponse{
		Challenges: h.progress.Challenges(),
		Featured:   h.progress.FeaturedChallenge(),
	})
}
