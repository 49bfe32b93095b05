package model

import "time"

// Blog represents a published blog post.
//
// UserID is the owning user. Ownership matters: updates and deletes only
// succeed when the caller's user ID matches this field — the repository
// folds that check into its WHERE clause rather than running a separate
// permission query.
type Blog struct {
	ID        string    `json:"id"         db:"id"`
	Title     string    `json:"title"      db:"title"`
	Content   string    `json:"content"    db:"content"`
	UserID    string    `json:"user_id"    db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Comment is a reader comment attached to a blog post.
type Comment struct {
	ID        string    `json:"id"         db:"id"`
	Content   string    `json:"content"    db:"content"`
	BlogID    string    `json:"blog_id"    db:"blog_id"`
	UserID    string    `json:"user_id"    db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
