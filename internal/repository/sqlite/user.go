package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/wordecho/internal/apperror"
	"github.com/sakif/wordecho/internal/model"
	"github.com/sakif/wordecho/internal/repository"
)

// UserDB implements repository.UserRepository on top of the shared pool.
type UserDB struct {
	conn *sql.DB
}

// compile-time check that *UserDB implements repository.UserRepository
var _ repository.UserRepository = (*UserDB)(nil)

// Create inserts a new user.
//
// ID GENERATION WITH xid:
// xid generates globally unique IDs that are 20 chars, URL-safe, and
// sortable by creation time (they start with a timestamp).
// Example: "cv37rs3pp9olc6atsptg".
//
// POINTER RECEIVER ON THE MODEL:
// We take *model.User so we can modify the caller's struct — after
// Create(), it carries the generated ID and CreatedAt.
//
// The users.email column is UNIQUE, so inserting a duplicate email fails
// at the database level; we translate that constraint violation to a
// Conflict error the handler can map to 409.
func (u *UserDB) Create(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()
	user.CreatedAt = time.Now()
	if user.OAuthProvider == "" {
		user.OAuthProvider = model.ProviderLocal
	}

	_, err := u.conn.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password, oauth_provider, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash, // nil pointer becomes SQL NULL
		user.OAuthProvider,
		user.CreatedAt,
	)
	if err != nil {
		// modernc.org/sqlite reports constraint violations in the error text;
		// database/sql has no portable typed error for them.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperror.Conflict("user", user.Email)
		}
		return fmt.Errorf("sqlite: inserting user (email=%s): %w", user.Email, err)
	}

	return nil
}

// GetByID retrieves a user by their internal ID.
// Returns apperror.ErrNotFound if no user exists with that ID.
func (u *UserDB) GetByID(ctx context.Context, id string) (*model.User, error) {
	return u.getWhere(ctx, "id = ?", id)
}

// GetByEmail retrieves a user by email. Email is UNIQUE, so at most one
// row can match. Used by password login and by the OAuth callback's
// find-or-create step.
func (u *UserDB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return u.getWhere(ctx, "email = ?", email)
}

// getWhere runs the shared single-row SELECT with the given predicate.
func (u *UserDB) getWhere(ctx context.Context, where string, arg any) (*model.User, error) {
	var user model.User

	err := u.conn.QueryRowContext(ctx,
		`SELECT id, name, email, password, oauth_provider, created_at
		 FROM users WHERE `+where,
		arg,
	).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash, // Scan into *string handles NULL as nil
		&user.OAuthProvider,
		&user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", fmt.Sprintf("%v", arg))
		}
		return nil, fmt.Errorf("sqlite: getting user (%v): %w", arg, err)
	}

	return &user, nil
}

// List returns every user, oldest first. The users endpoint has no
// pagination — it mirrors the original API surface.
func (u *UserDB) List(ctx context.Context) ([]model.User, error) {
	rows, err := u.conn.QueryContext(ctx,
		`SELECT id, name, email, password, oauth_provider, created_at
		 FROM users
		 ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	// sql.Rows holds a pooled connection — always close it.
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var usr model.User
		if err := rows.Scan(
			&usr.ID, &usr.Name, &usr.Email, &usr.PasswordHash,
			&usr.OAuthProvider, &usr.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, usr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating users: %w", err)
	}

	return users, nil
}

// Update writes the mutable profile fields (name, email).
//
// The service layer has already merged the partial update into a fetched
// record, so this is a plain full-field write. RowsAffected distinguishes
// "no such user" from success — 0 rows means the WHERE didn't match.
func (u *UserDB) Update(ctx context.Context, user *model.User) error {
	result, err := u.conn.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ? WHERE id = ?`,
		user.Name,
		user.Email,
		user.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperror.Conflict("user", user.Email)
		}
		return fmt.Errorf("sqlite: updating user %s: %w", user.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("user", user.ID)
	}

	return nil
}

// Delete removes a user by ID. Same RowsAffected pattern as Update —
// deleting a nonexistent ID reports NotFound, which the handler turns
// into 404 rather than a server error.
func (u *UserDB) Delete(ctx context.Context, id string) error {
	result, err := u.conn.ExecContext(ctx,
		`DELETE FROM users WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting user %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("user", id)
	}

	return nil
}
