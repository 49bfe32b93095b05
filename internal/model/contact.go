package model

import "time"

// ContactMessage is a submission from the public contact form.
//
// These records are write-only from the API's point of view: they're
// created by POST /api/contact/ and never updated or deleted by any
// exposed endpoint. Phone is optional, so it's a pointer (NULL in SQL
// when the form omits it).
type ContactMessage struct {
	ID        string    `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	Email     string    `json:"email"      db:"email"`
	Phone     *string   `json:"phone"      db:"phone"`
	Message   string    `json:"message"    db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
