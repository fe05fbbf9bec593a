package accessgroup

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence interface for access groups. Delete
// clears access_group_id on member users in the same transaction (set-null,
// never cascade-delete).
type Repository interface {
	Create(ctx context.Context, group *AccessGroup) error
	GetByID(ctx context.Context, id uuid.UUID) (*AccessGroup, error)
	GetByGroupID(ctx context.Context, groupID string) (*AccessGroup, error)
	Update(ctx context.Context, group *AccessGroup) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListWithMembers(ctx context.Context) ([]*GroupWithMembers, error)
}
