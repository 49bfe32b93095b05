package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/wordecho/internal/service"
)

// ContactHandler accepts contact-form submissions.
type ContactHandler struct {
	contact *service.ContactService
	logger  *slog.Logger
}

// NewContactHandler creates a ContactHandler.
func NewContactHandler(contact *service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{contact: contact, logger: logger}
}

// contactRequest is the JSON body for POST /api/contact/.
// Phone is a pointer so "absent" and "empty string" are distinguishable;
// an absent phone is stored as NULL.
type contactRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone,omitempty"`
	Message string  `json:"message"`
}

// HandleSubmit stores a contact message.
//
// HTTP: POST /api/contact/
//
// Responds 200 with a fixed acknowledgement message. The stored record
// is not echoed back — the sender has no use for our internal ID.
func (h *ContactHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid contact JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "validation_error", Message: "invalid JSON body",
		})
		return
	}

	if _, err := h.contact.Submit(r.Context(), req.Name, req.Email, req.Message, req.Phone); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Contact message received successfully.",
	})
}
