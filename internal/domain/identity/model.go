package identity

import (
	"time"

	"github.com/google/uuid"
)

// User maps to the users table. AccessGroupID is nil until an administrator
// assigns the user to a group; it is cleared again when the group is deleted.
type User struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	Email         string     `db:"email" json:"email"`
	PasswordHash  string     `db:"password_hash" json:"-"`
	Role          string     `db:"role" json:"role"`
	AccessGroupID *uuid.UUID `db:"access_group_id" json:"access_group_id,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}
