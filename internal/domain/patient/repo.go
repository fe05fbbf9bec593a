package patient

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence interface for patients. Update and
// Delete take the caller's scope and re-assert it inside the statement's
// WHERE clause, so a record that slips out of scope between the access check
// and the write is left untouched (zero rows affected) instead of mutated.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	List(ctx context.Context, scope Scope, limit, offset int) ([]*Patient, int, error)
	Update(ctx context.Context, p *Patient, scope Scope) (bool, error)
	Delete(ctx context.Context, id uuid.UUID, scope Scope) (bool, error)
}
