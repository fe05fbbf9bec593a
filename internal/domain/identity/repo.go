package identity

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence interface for users. The group-membership
// lookups at the bottom back the patient access resolver's live directory.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, limit, offset int) ([]*User, int, error)
	ListUnassigned(ctx context.Context) ([]*User, error)
	SetAccessGroup(ctx context.Context, userID uuid.UUID, groupID *uuid.UUID) error

	// GroupMemberIDs returns the ids of all users currently in the group.
	GroupMemberIDs(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error)
	// AccessGroupOf returns the user's current access group, nil when the
	// user has none.
	AccessGroupOf(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error)
}
