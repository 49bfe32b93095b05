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

// BlogDB implements repository.BlogRepository on top of the shared pool.
type BlogDB struct {
	conn *sql.DB
}

var _ repository.BlogRepository = (*BlogDB)(nil)

// Create inserts a new blog post. The repository assigns the ID and both
// timestamps; the caller's struct is updated in place.
//
// PARAMETERIZED QUERIES (the ? placeholders):
// NEVER build SQL strings with fmt.Sprintf or string concatenation —
// that creates SQL injection vulnerabilities. The driver escapes
// placeholder values safely.
func (b *BlogDB) Create(ctx context.Context, blog *model.Blog) error {
	blog.ID = xid.New().String()

	now := time.Now()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	_, err := b.conn.ExecContext(ctx,
		`INSERT INTO blogs (id, title, content, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		blog.ID,
		blog.Title,
		blog.Content,
		blog.UserID,
		blog.CreatedAt,
		blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating blog: %w", err)
	}

	return nil
}

// GetByID retrieves a single blog post by its ID.
//
// sql.ErrNoRows is NOT really an error — it just means "no matching row
// exists". We translate it to our app's NotFound error so the handler
// knows to return 404. This is a common pattern: translate database
// errors into domain errors.
func (b *BlogDB) GetByID(ctx context.Context, id string) (*model.Blog, error) {
	var blog model.Blog

	err := b.conn.QueryRowContext(ctx,
		`SELECT id, title, content, user_id, created_at, updated_at
		 FROM blogs
		 WHERE id = ?`,
		id,
	).Scan(
		&blog.ID,
		&blog.Title,
		&blog.Content,
		&blog.UserID,
		&blog.CreatedAt,
		&blog.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("blog", id)
		}
		return nil, fmt.Errorf("sqlite: getting blog %s: %w", id, err)
	}

	return &blog, nil
}

// List retrieves blog posts with offset-based pagination, oldest first.
//
// LIMIT/OFFSET pagination:
// LIMIT N = return at most N rows; OFFSET M = skip the first M rows.
// skip=0, limit=10 therefore returns at most 10 posts starting from the
// first one ever written. The service clamps the values before we get here,
// but defaults are applied again defensively for direct callers.
func (b *BlogDB) List(ctx context.Context, opts repository.ListOptions) ([]model.Blog, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 10 // Default page size
	}
	if limit > 100 {
		limit = 100 // Maximum page size — prevent fetching the entire table
	}

	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := b.conn.QueryContext(ctx,
		`SELECT id, title, content, user_id, created_at, updated_at
		 FROM blogs
		 ORDER BY created_at, id
		 LIMIT ? OFFSET ?`,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing blogs: %w", err)
	}
	// CRITICAL: always close rows — they hold a pooled connection.
	defer rows.Close()

	blogs := make([]model.Blog, 0, limit)

	for rows.Next() {
		var blog model.Blog
		if err := rows.Scan(
			&blog.ID, &blog.Title, &blog.Content, &blog.UserID,
			&blog.CreatedAt, &blog.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning blog row: %w", err)
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating blogs: %w", err)
	}

	return blogs, nil
}

// Update modifies an existing blog post — but only if it belongs to the
// user named on the struct.
//
// OWNERSHIP FOLDED INTO THE PREDICATE:
// The WHERE clause matches on id AND user_id in one statement. If the blog
// doesn't exist, zero rows are affected. If it exists but belongs to
// someone else, zero rows are affected too. Both cases surface as
// NotFound — the caller can't tell which IDs exist but aren't theirs.
func (b *BlogDB) Update(ctx context.Context, blog *model.Blog) error {
	blog.UpdatedAt = time.Now()

	result, err := b.conn.ExecContext(ctx,
		`UPDATE blogs
		 SET title = ?, content = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		blog.Title,
		blog.Content,
		blog.UpdatedAt,
		blog.ID,
		blog.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating blog %s: %w", blog.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("blog", blog.ID)
	}

	return nil
}

// Delete removes a blog post, with the same id+user_id ownership predicate
// as Update.
func (b *BlogDB) Delete(ctx context.Context, id, userID string) error {
	result, err := b.conn.ExecContext(ctx,
		`DELETE FROM blogs WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting blog %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("blog", id)
	}

	return nil
}
