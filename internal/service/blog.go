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

const (
	MaxTitleLength   = 200
	MaxContentLength = 100000 // ~100KB of post content

	DefaultBlogListLimit = 10
	MaxBlogListLimit     = 100
)

// BlogService handles business logic for blog posts.
type BlogService struct {
	repo   repository.BlogRepository
	logger *slog.Logger
}

// NewBlogService creates a BlogService.
func NewBlogService(repo repository.BlogRepository, logger *slog.Logger) *BlogService {
	return &BlogService{
		repo:   repo,
		logger: logger,
	}
}

// Create validates and saves a new blog post owned by userID.
func (s *BlogService) Create(ctx context.Context, title, content, userID string) (*model.Blog, error) {
	title = strings.TrimSpace(title)

	if title == "" {
		return nil, apperror.ValidationFailed("title", "blog title is required")
	}
	if len(title) > MaxTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("blog title must be %d characters or less", MaxTitleLength))
	}
	if len(content) > MaxContentLength {
		return nil, apperror.ValidationFailed("content",
			fmt.Sprintf("content must be %d characters or less", MaxContentLength))
	}
	if userID == "" {
		return nil, apperror.ValidationFailed("user_id", "owner is required")
	}

	blog := &model.Blog{
		Title:   title,
		Content: content,
		UserID:  userID,
	}

	if err := s.repo.Create(ctx, blog); err != nil {
		s.logger.Error("failed to create blog",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating blog: %w", err)
	}

	s.logger.Info("blog created",
		slog.String("id", blog.ID),
		slog.String("userID", blog.UserID),
	)

	return blog, nil
}

// GetByID retrieves a blog post by its ID.
// Returns apperror.ErrNotFound if the post doesn't exist.
func (s *BlogService) GetByID(ctx context.Context, id string) (*model.Blog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "blog ID is required")
	}
	return s.repo.GetByID(ctx, id)
}

// List retrieves blog posts with pagination.
//
// skip/limit are the query-parameter names the API exposes; they map to
// OFFSET/LIMIT. The service clamps them to a sane range so callers can't
// request a million rows.
func (s *BlogService) List(ctx context.Context, skip, limit int) ([]model.Blog, error) {
	if limit <= 0 {
		limit = DefaultBlogListLimit
	}
	if limit > MaxBlogListLimit {
		limit = MaxBlogListLimit
	}
	if skip < 0 {
		skip = 0
	}

	blogs, err := s.repo.List(ctx, repository.ListOptions{
		Limit:  limit,
		Offset: skip,
	})
	if err != nil {
		s.logger.Error("failed to list blogs", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing blogs: %w", err)
	}

	return blogs, nil
}

// Update modifies a blog post on behalf of userID.
//
// OWNERSHIP:
// The repository's UPDATE matches on id AND user_id in one predicate, so
// a post that exists but belongs to someone else comes back as NotFound —
// exactly like a post that doesn't exist. We deliberately do NOT
// distinguish the two: answering 403 would confirm to a prodding caller
// which IDs exist.
func (s *BlogService) Update(ctx context.Context, id, title, content, userID string) (*model.Blog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "blog ID is required")
	}
	if userID == "" {
		return nil, apperror.ValidationFailed("user_id", "owner is required")
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "blog title is required")
	}
	if len(title) > MaxTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("blog title must be %d characters or less", MaxTitleLength))
	}
	if len(content) > MaxContentLength {
		return nil, apperror.ValidationFailed("content",
			fmt.Sprintf("content must be %d characters or less", MaxContentLength))
	}

	blog := &model.Blog{
		ID:      id,
		Title:   title,
		Content: content,
		UserID:  userID,
	}

	if err := s.repo.Update(ctx, blog); err != nil {
		return nil, err
	}

	// The ownership predicate matched, so a fresh read is safe and gives
	// the caller the canonical stored record (CreatedAt included).
	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("blog updated",
		slog.String("id", id),
		slog.String("userID", userID),
	)

	return updated, nil
}

// Delete removes a blog post on behalf of userID, with the same
// ownership-folded-into-predicate behavior as Update.
func (s *BlogService) Delete(ctx context.Context, id, userID string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "blog ID is required")
	}
	if userID == "" {
		return apperror.ValidationFailed("user_id", "owner is required")
	}

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.logger.Info("blog deleted", slog.String("id", id))
	return nil
}
