package handler

// RESPONSE HELPERS:
// These functions standardise how we send JSON responses and errors.
//
// CONSISTENT ERROR FORMAT:
// Every error response from the API has the same shape:
//   {"error": "not_found", "message": "blog not found with id abc123"}
//
// This makes it easy for the frontend to parse errors — it always knows
// what fields to expect, regardless of whether it's a 400, 401, 404, or 500.
//
// ONE TRANSLATION BOUNDARY:
// writeError is the single place where domain errors become HTTP status
// codes. Every handler funnels its failures through it, so unexpected
// faults become a generic 500 on every route — there is no route with its
// own ad-hoc catch-all policy.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/wordecho/internal/apperror"
)

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`   // Machine-readable error type (e.g., "not_found")
	Message string `json:"message"` // Human-readable description
}

// writeJSON sends a JSON response with the given status code.
//
// HEADER ORDER MATTERS:
// Headers and status code MUST be set BEFORE writing the body. Once
// Encode writes the first byte, the headers are sent and any later header
// changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent — we can only log it. Rare: usually
			// means the data has an unencodable type like a channel.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to the appropriate HTTP status code and sends it.
//
// ERROR MAPPING:
// The service layer returns apperror.ErrValidation, apperror.ErrNotFound,
// etc. — it knows nothing about HTTP. This function maps those to 400,
// 404, and so on. errors.Is() walks the whole wrapped chain (via Unwrap),
// so a repository error wrapped twice by the service still matches.
//
// The 401 branch adds the WWW-Authenticate: Bearer challenge header, per
// RFC 6750 — the token endpoint's contract requires it.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError

	// errors.As() walks the chain and fills appErr if it finds an *AppError.
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest // 400
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized // 401
			errorType = "unauthorized"
			w.Header().Set("WWW-Authenticate", "Bearer")
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound // 404
			errorType = "not_found"
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden // 403
			errorType = "forbidden"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict // 409
			errorType = "conflict"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
		})
		return
	}

	// Unknown error — return a generic 500.
	// NEVER expose internal error details to the client: the raw message
	// might contain SQL fragments, file paths, or other sensitive info.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
