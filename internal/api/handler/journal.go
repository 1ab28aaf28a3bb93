package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/progressjournal/internal/api/middleware"
	"github.com/mcoot/progressjournal/internal/api/request"
	"github.com/mcoot/progressjournal/internal/api/response"
	"github.com/mcoot/progressjournal/internal/model"
	"github.com/mcoot/progressjournal/internal/services/records"
)

// JournalHandler handles activity log endpoints
type JournalHandler struct {
	records *records.Service
}

// NewJournalHandler creates a new journal handler
func NewJournalHandler(records *records.Service) *JournalHandler {
	return &JournalHandler{records: records}
}

// GetLog handles GET /api/v1/journal
func (h *JournalHandler) GetLog(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetUsername(r.Context())

	log, err := h.records.LoadLog(r.Context(), username)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, log)
}

// GetCategory handles GET /api/v1/journal/{category}
func (h *JournalHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetUsername(r.Context())

	category, err := model.ParseCategory(mux.Vars(r)["category"])
	if err != nil {
		WriteError(w, err)
		return
	}

	entries, err := h.records.LoadCategory(r.Context(), username, category)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CategoryResponse{
		Category: category,
		Entries:  entries,
	})
}

// Append handles POST /api/v1/journal/{category}
func (h *JournalHandler) Append(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetUsername(r.Context())

	category, err := model.ParseCategory(mux.Vars(r)["category"])
	if err != nil {
		WriteError(w, err)
		return
	}

	entry, err := request.DecodeEntry(r.Body, category)
	if err != nil {
		if errors.Is(err, model.ErrInvalidEntry) {
			WriteError(w, err)
			return
		}
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.records.Append(r.Context(), username, entry); err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, response.EntryResponse{
		Category: category,
		Entry:    entry,
	})
}

// CompleteGoal handles POST /api/v1/journal/goals/{index}/complete
func (h *JournalHandler) CompleteGoal(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetUsername(r.Context())

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		WriteError(w, NewInvalidRequestError("goal index must be an integer"))
		return
	}

	if err := h.records.CompleteGoal(r.Context(), username, index); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
