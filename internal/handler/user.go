// Package handler contains the HTTP layer: one handler struct per
// resource. Each handler decodes the request, delegates to exactly one
// service call, and translates the result (or the domain error) into an
// HTTP response. No business rules live here.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/wordecho/internal/auth"
	"github.com/sakif/wordecho/internal/model"
	"github.com/sakif/wordecho/internal/service"
)

// UserHandler manages CRUD operations for user accounts.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler. Dependencies are injected; the
// handler has no knowledge of how they're constructed.
func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// createUserRequest is the JSON body for POST /api/users/.
type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleCreate registers a new local user.
//
// HTTP: POST /api/users/
// BODY: {"name":"John Doe","email":"john@example.com","password":"123456"}
//
// Responds 200 with the created record — id and created_at are assigned
// by the repository, and the password hash never appears in the JSON
// (the model's `json:"-"` tag guarantees it).
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid user JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "validation_error", Message: "invalid JSON body",
		})
		return
	}

	user, err := h.users.Create(r.Context(), req.Name, req.Email, req.Password, model.ProviderLocal)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleList returns all users.
//
// HTTP: GET /api/users/
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if users == nil {
		// Encode [] rather than null for an empty table
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// HandleMe returns the currently authenticated user's profile.
//
// HTTP: GET /api/users/me
// Auth: Required (RequireAuth middleware sets userID in context)
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		// Should never happen on a RequireAuth-protected route, but be safe.
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized", Message: "valid authentication required",
		})
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleUpdate applies a partial update to a user's profile.
//
// HTTP: PUT /api/users/{id}
// BODY: {"name":"..."} and/or {"email":"..."} — absent fields are untouched.
//
// Responds 404 (via writeError) when the ID doesn't exist. That mapping
// is part of the API contract: an unknown ID is the client's mistake,
// never a server error.
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var update model.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.logger.Warn("invalid user update JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "validation_error", Message: "invalid JSON body",
		})
		return
	}

	user, err := h.users.Update(r.Context(), id, update)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleDelete removes a user account.
//
// HTTP: DELETE /api/users/{id}
//
// Responds 200 {"success":true} on success, 404 when the ID doesn't exist.
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.users.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
