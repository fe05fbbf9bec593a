package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patients table. AccessGroupID is a point-in-time copy
// of the creator's group taken at creation; it is never recomputed when the
// creator later changes groups. CreatedByID is immutable once set.
type Patient struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	NIC           string     `db:"nic" json:"nic"`
	FirstName     string     `db:"first_name" json:"first_name"`
	LastName      string     `db:"last_name" json:"last_name"`
	Age           int        `db:"age" json:"age"`
	Gender        string     `db:"gender" json:"gender"`
	Address       *string    `db:"address" json:"address,omitempty"`
	Occupation    *string    `db:"occupation" json:"occupation,omitempty"`
	AccessGroupID *uuid.UUID `db:"access_group_id" json:"access_group_id,omitempty"`
	CreatedByID   uuid.UUID  `db:"created_by_id" json:"created_by_id"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}
