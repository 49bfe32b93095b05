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

const MaxCommentLength = 2000

// CommentService handles business logic for comments on blog posts.
//
// It depends on the blog repository as well as the comment repository:
// creating or listing comments first confirms the target blog exists, so
// unknown blog IDs surface as a clean NotFound instead of a foreign-key
// constraint error bubbling up from the driver.
type CommentService struct {
	comments repository.CommentRepository
	blogs    repository.BlogRepository
	logger   *slog.Logger
}

// NewCommentService creates a CommentService.
func NewCommentService(comments repository.CommentRepository, blogs repository.BlogRepository, logger *slog.Logger) *CommentService {
	return &CommentService{
		comments: comments,
		blogs:    blogs,
		logger:   logger,
	}
}

// Create attaches a new comment by userID to the given blog post.
func (s *CommentService) Create(ctx context.Context, blogID, userID, content string) (*model.Comment, error) {
	blogID = strings.TrimSpace(blogID)
	if blogID == "" {
		return nil, apperror.ValidationFailed("blog_id", "blog ID is required")
	}
	if userID == "" {
		return nil, apperror.ValidationFailed("user_id", "author is required")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.ValidationFailed("content", "comment content is required")
	}
	if len(content) > MaxCommentLength {
		return nil, apperror.ValidationFailed("content",
			fmt.Sprintf("comment must be %d characters or less", MaxCommentLength))
	}

	// Confirm the blog exists — NotFound propagates as-is.
	if _, err := s.blogs.GetByID(ctx, blogID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		Content: content,
		BlogID:  blogID,
		UserID:  userID,
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		s.logger.Error("failed to create comment",
			slog.String("blogID", blogID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	s.logger.Info("comment created",
		slog.String("id", comment.ID),
		slog.String("blogID", blogID),
	)

	return comment, nil
}

// GetByID retrieves a single comment.
func (s *CommentService) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "comment ID is required")
	}
	return s.comments.GetByID(ctx, id)
}

// ListForBlog returns all comments on a blog post, oldest first.
// Returns NotFound if the blog itself doesn't exist; an existing blog
// with no comments yields an empty list.
func (s *CommentService) ListForBlog(ctx context.Context, blogID string) ([]model.Comment, error) {
	blogID = strings.TrimSpace(blogID)
	if blogID == "" {
		return nil, apperror.ValidationFailed("blog_id", "blog ID is required")
	}

	if _, err := s.blogs.GetByID(ctx, blogID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListForBlog(ctx, blogID)
	if err != nil {
		s.logger.Error("failed to list comments",
			slog.String("blogID", blogID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing comments: %w", err)
	}

	return comments, nil
}
