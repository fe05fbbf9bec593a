package accessgroup

import (
	"time"

	"github.com/google/uuid"
)

// AccessGroup maps to the access_groups table. GroupID is the human-assigned
// unique code shown to administrators; ID is the surrogate key everything
// else references.
type AccessGroup struct {
	ID          uuid.UUID `db:"id" json:"id"`
	GroupID     string    `db:"group_id" json:"group_id"`
	GroupName   string    `db:"group_name" json:"group_name"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Member is the slim user projection shown on the admin dashboard.
type Member struct {
	ID    uuid.UUID `db:"id" json:"id"`
	Name  string    `db:"name" json:"name"`
	Email string    `db:"email" json:"email"`
}

// GroupWithMembers pairs a group with its current members.
type GroupWithMembers struct {
	AccessGroup
	Members []Member `json:"members"`
}
