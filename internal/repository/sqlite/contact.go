package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/wordecho/internal/model"
	"github.com/sakif/wordecho/internal/repository"
)

// ContactDB implements repository.ContactRepository on top of the shared pool.
type ContactDB struct {
	conn *sql.DB
}

var _ repository.ContactRepository = (*ContactDB)(nil)

// Create persists a contact-form submission. This is the only operation on
// contact messages — there is no read, update, or delete endpoint.
func (c *ContactDB) Create(ctx context.Context, msg *model.ContactMessage) error {
	msg.ID = xid.New().String()
	msg.CreatedAt = time.Now()

	_, err := c.conn.ExecContext(ctx,
		`INSERT INTO contact_messages (id, name, email, phone, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		msg.ID,
		msg.Name,
		msg.Email,
		msg.Phone, // nil pointer becomes SQL NULL
		msg.Message,
		msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating contact message: %w", err)
	}

	return nil
}
