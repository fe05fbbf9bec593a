package accessgroup

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicore/clinic/internal/domain/identity"
	"github.com/clinicore/clinic/internal/platform/httpx"
)

type Service struct {
	groups Repository
	users  identity.Repository
}

func NewService(groups Repository, users identity.Repository) *Service {
	return &Service{groups: groups, users: users}
}

func (s *Service) Create(ctx context.Context, group *AccessGroup) error {
	if group.GroupID == "" {
		return fmt.Errorf("group id is required")
	}
	if group.GroupName == "" {
		return fmt.Errorf("group name is required")
	}

	// Pre-check mirrors the constraint so the common case gets the friendly
	// message; the unique index remains the backstop under races.
	if _, err := s.groups.GetByGroupID(ctx, group.GroupID); err == nil {
		return httpx.Conflict("This access group is already exist")
	} else if !errors.Is(err, httpx.ErrNotFound) {
		return err
	}

	return s.groups.Create(ctx, group)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*AccessGroup, error) {
	return s.groups.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, group *AccessGroup) error {
	if group.ID == uuid.Nil {
		return fmt.Errorf("access group id is required")
	}
	if group.GroupID == "" {
		return fmt.Errorf("group id is required")
	}
	if group.GroupName == "" {
		return fmt.Errorf("group name is required")
	}

	existing, err := s.groups.GetByGroupID(ctx, group.GroupID)
	if err == nil && existing.ID != group.ID {
		return httpx.Conflict("Access Group with this Group ID already exists")
	}
	if err != nil && !errors.Is(err, httpx.ErrNotFound) {
		return err
	}

	return s.groups.Update(ctx, group)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.groups.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*GroupWithMembers, error) {
	return s.groups.ListWithMembers(ctx)
}

// AssignUser puts a user into a group; each user belongs to at most one
// group, so assignment overwrites any previous membership.
func (s *Service) AssignUser(ctx context.Context, userID, groupID uuid.UUID) error {
	if _, err := s.groups.GetByID(ctx, groupID); err != nil {
		return err
	}
	return s.users.SetAccessGroup(ctx, userID, &groupID)
}

// RemoveUser clears a user's group membership.
func (s *Service) RemoveUser(ctx context.Context, userID uuid.UUID) error {
	return s.users.SetAccessGroup(ctx, userID, nil)
}

// UnassignedUsers lists non-admin users without a group, for the assignment
// dropdown.
func (s *Service) UnassignedUsers(ctx context.Context) ([]*identity.User, error) {
	return s.users.ListUnassigned(ctx)
}

// ListUsers lists all users for the admin dashboard.
func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*identity.User, int, error) {
	return s.users.List(ctx, limit, offset)
}
