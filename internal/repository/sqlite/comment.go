package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/wordecho/internal/apperror"
	"github.com/sakif/wordecho/internal/model"
	"github.com/sakif/wordecho/internal/repository"
)

// CommentDB implements repository.CommentRepository on top of the shared pool.
type CommentDB struct {
	conn *sql.DB
}

var _ repository.CommentRepository = (*CommentDB)(nil)

// Create inserts a comment attached to a blog post. The comments.blog_id
// foreign key (enforced because PRAGMA foreign_keys=ON) rejects comments
// on blogs that don't exist.
func (c *CommentDB) Create(ctx context.Context, comment *model.Comment) error {
	comment.ID = xid.New().String()
	comment.CreatedAt = time.Now()

	_, err := c.conn.ExecContext(ctx,
		`INSERT INTO comments (id, content, blog_id, user_id, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		comment.ID,
		comment.Content,
		comment.BlogID,
		comment.UserID,
		comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating comment: %w", err)
	}

	return nil
}

// GetByID retrieves a single comment.
func (c *CommentDB) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	var comment model.Comment

	err := c.conn.QueryRowContext(ctx,
		`SELECT id, content, blog_id, user_id, created_at
		 FROM comments
		 WHERE id = ?`,
		id,
	).Scan(
		&comment.ID,
		&comment.Content,
		&comment.BlogID,
		&comment.UserID,
		&comment.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("comment", id)
		}
		return nil, fmt.Errorf("sqlite: getting comment %s: %w", id, err)
	}

	return &comment, nil
}

// ListForBlog returns all comments on a blog post, oldest first.
// An existing blog with no comments yields an empty slice, not an error.
func (c *CommentDB) ListForBlog(ctx context.Context, blogID string) ([]model.Comment, error) {
	rows, err := c.conn.QueryContext(ctx,
		`SELECT id, content, blog_id, user_id, created_at
		 FROM comments
		 WHERE blog_id = ?
		 ORDER BY created_at, id`,
		blogID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing comments for blog %s: %w", blogID, err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var comment model.Comment
		if err := rows.Scan(
			&comment.ID, &comment.Content, &comment.BlogID,
			&comment.UserID, &comment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning comment row: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating comments: %w", err)
	}

	return comments, nil
}
