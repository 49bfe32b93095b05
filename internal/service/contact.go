package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/wordecho/internal/apperror"
	"github.com/sakif/wordecho/internal/model"
	"github.com/sakif/wordecho/internal/repository"
)

const MaxMessageLength = 5000

// ContactService handles contact-form submissions.
type ContactService struct {
	repo   repository.ContactRepository
	logger *slog.Logger
}

// NewContactService creates a ContactService.
func NewContactService(repo repository.ContactRepository, logger *slog.Logger) *ContactService {
	return &ContactService{
		repo:   repo,
		logger: logger,
	}
}

// Submit validates and stores a contact message. Phone is optional and
// stays nil when the form omits it.
func (s *ContactService) Submit(ctx context.Context, name, email, message string, phone *string) (*model.ContactMessage, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)

	if name == "" {
		return nil, apperror.ValidationFailed("name", "name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperror.ValidationFailed("email", "a valid email is required")
	}
	if message == "" {
		return nil, apperror.ValidationFailed("message", "message is required")
	}
	if len(message) > MaxMessageLength {
		return nil, apperror.ValidationFailed("message",
			fmt.Sprintf("message must be %d characters or less", MaxMessageLength))
	}

	msg := &model.ContactMessage{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Message: message,
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		s.logger.Error("failed to store contact message",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("storing contact message: %w", err)
	}

	s.logger.Info("contact message received", slog.String("id", msg.ID))
	return msg, nil
}
