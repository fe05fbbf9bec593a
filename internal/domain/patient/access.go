package patient

import (
	"context"

	"github.com/google/uuid"
)

// Directory answers live group-membership questions about users. It is the
// only read the resolver performs outside the patient table; the identity
// repository satisfies it.
type Directory interface {
	GroupMemberIDs(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error)
	AccessGroupOf(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error)
}

// Scope expresses which patient records a user may see or touch. It is
// computed freshly per request so group changes take effect immediately,
// while each patient keeps its creation-time group stamp.
type Scope struct {
	// OwnerID restricts to records the user created themselves. Always set;
	// it is the whole scope when the user has no group.
	OwnerID uuid.UUID
	// GroupID, when set, widens the scope to records stamped with the group
	// plus records created by any current member of it.
	GroupID   *uuid.UUID
	MemberIDs []uuid.UUID
}

// Allows reports whether the scope admits the given record. Read, update and
// delete all go through this one predicate; the list query applies the same
// predicate in SQL.
func (s Scope) Allows(p *Patient) bool {
	if s.GroupID == nil {
		return p.CreatedByID == s.OwnerID
	}
	if p.AccessGroupID != nil && *p.AccessGroupID == *s.GroupID {
		return true
	}
	for _, id := range s.MemberIDs {
		if p.CreatedByID == id {
			return true
		}
	}
	return false
}

// Resolver computes per-request access scopes from the live user directory.
type Resolver struct {
	dir Directory
}

func NewResolver(dir Directory) *Resolver {
	return &Resolver{dir: dir}
}

// ScopeFor resolves the user's current group and its membership. Session
// claims are not trusted for group membership; the directory is consulted on
// every request. Any directory failure fails closed: no scope is returned.
func (r *Resolver) ScopeFor(ctx context.Context, userID uuid.UUID) (Scope, error) {
	groupID, err := r.dir.AccessGroupOf(ctx, userID)
	if err != nil {
		return Scope{}, err
	}
	scope := Scope{OwnerID: userID}
	if groupID == nil {
		return scope, nil
	}
	members, err := r.dir.GroupMemberIDs(ctx, *groupID)
	if err != nil {
		return Scope{}, err
	}
	scope.GroupID = groupID
	scope.MemberIDs = members
	return scope, nil
}
