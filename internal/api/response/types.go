package response

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mcoot/progressjournal/internal/model"
	"github.com/mcoot/progressjournal/internal/services/auth"
)

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Username:     s.Username,
		Email:        s.Email,
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt,
	}
}

// MeResponse describes the authenticated account
type MeResponse struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Exists    bool      `json:"exists"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CategoryResponse lists one category of a journal
type CategoryResponse struct {
	Category model.Category `json:"category"`
	Entries  []model.Entry  `json:"entries"`
}

// EntryResponse is a newly recorded entry
type EntryResponse struct {
	Category model.Category `json:"category"`
	Entry    model.Entry    `json:"entry"`
}

// ProgressResponse carries achievement counts and the badge targets
type ProgressResponse struct {
	Counts  model.AchievementCounts `json:"counts"`
	Targets model.BadgeTargets      `json:"targets"`
}

// ChallengesResponse is the suggested challenge catalogue
type ChallengesResponse struct {
	Challenges []string `json:"challenges"`
	Featured   string   `json:"featured"`
}

// JSON writes data as the response body with the given status
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Created writes a 201 with data as the body
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
