package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/progressjournal/internal/api/middleware"
	"github.com/mcoot/progressjournal/internal/api/request"
	"github.com/mcoot/progressjournal/internal/api/response"
	"github.com/mcoot/progressjournal/internal/services/auth"
	"github.com/mcoot/progressjournal/internal/services/records"
)

// AccountHandler handles registration, login and session endpoints
type AccountHandler struct {
	authService *auth.Service
	records     *records.Service
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(authService *auth.Service, records *records.Service) *AccountHandler {
	return &AccountHandler{
		authService: authService,
		records:     records,
	}
}

// Register handles POST /api/v1/accounts/register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	session, err := h.authService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, response.AuthResponseFromSession(session))
}

// Login handles POST /api/v1/accounts/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// Logout handles POST /api/v1/accounts/logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session != nil {
		h.authService.InvalidateSession(session.Token)
	}
	response.NoContent(w)
}

// GetMe handles GET /api/v1/accounts/me
func (h *AccountHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	exists, err := h.records.Exists(r.Context(), session.Username)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MeResponse{
		Username:  session.Username,
		Email:     session.Email,
		Exists:    exists,
		ExpiresAt: session.ExpiresAt,
	})
}
