package auth

import (
	"context"

	"github.com/google/uuid"
)

// Roles recognized by route gating. Record-level access is decided separately
// by the patient access resolver; the role only gates admin routes.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Principal is the verified identity attached to each request. AccessGroupID
// is nil for users who are not in any access group.
type Principal struct {
	UserID        uuid.UUID
	Role          string
	AccessGroupID *uuid.UUID
}

type contextKey string

const principalKey contextKey = "principal"

// WithPrincipal returns a context carrying the principal.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext retrieves the request principal. ok is false when the
// request never passed authentication.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
