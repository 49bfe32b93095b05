// Package repository defines the storage interfaces the service layer
// depends on. The sqlite subpackage implements them; tests substitute
// in-memory fakes. Services program against these interfaces and never
// import a concrete database package.
package repository

import (
	"context"

	"github.com/sakif/wordecho/internal/model"
)

// ListOptions controls offset-based pagination for list queries.
type ListOptions struct {
	Limit  int
	Offset int
}

// UserRepository persists user accounts.
//
// Update performs a full-row write of the mutable fields (name, email);
// the service layer is responsible for merging a partial update into the
// stored record first. Delete reports NotFound when no row matched.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
}

// BlogRepository persists blog posts.
//
// Update and Delete match on id AND user_id in a single predicate — the
// ownership check is part of the query, so a blog that exists but belongs
// to someone else reports NotFound, same as one that doesn't exist.
type BlogRepository interface {
	Create(ctx context.Context, blog *model.Blog) error
	GetByID(ctx context.Context, id string) (*model.Blog, error)
	List(ctx context.Context, opts ListOptions) ([]model.Blog, error)
	Update(ctx context.Context, blog *model.Blog) error
	Delete(ctx context.Context, id, userID string) error
}

// CommentRepository persists comments attached to blog posts.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	ListForBlog(ctx context.Context, blogID string) ([]model.Comment, error)
}

// ContactRepository persists contact-form submissions. Write-only:
// no exposed operation reads, updates, or deletes these records.
type ContactRepository interface {
	Create(ctx context.Context, msg *model.ContactMessage) error
}
