package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicore/clinic/internal/platform/httpx"
)

// Service owns the patient access rule. Every operation on a patient record,
// including sub-resources like vital signs, must come through here; no other
// package re-implements the rule.
type Service struct {
	repo     Repository
	resolver *Resolver
}

func NewService(repo Repository, resolver *Resolver) *Service {
	return &Service{repo: repo, resolver: resolver}
}

func validatePatient(p *Patient) error {
	if p.NIC == "" {
		return fmt.Errorf("nic is required")
	}
	if p.FirstName == "" || p.LastName == "" {
		return fmt.Errorf("first and last name are required")
	}
	if p.Age <= 0 {
		return fmt.Errorf("age must be positive")
	}
	if p.Gender == "" {
		return fmt.Errorf("gender is required")
	}
	return nil
}

// Create registers a patient. Any authenticated user may create; the record
// is stamped with the creator's id and the creator's group at this moment.
// The group stamp is never updated afterwards.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, p *Patient) error {
	if err := validatePatient(p); err != nil {
		return err
	}
	scope, err := s.resolver.ScopeFor(ctx, userID)
	if err != nil {
		return err
	}
	p.CreatedByID = userID
	p.AccessGroupID = scope.GroupID
	return s.repo.Create(ctx, p)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	scope, err := s.resolver.ScopeFor(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, scope, limit, offset)
}

// Get fetches a single record after the access check. The forbidden message
// is deliberately generic; it never reveals who owns the record.
func (s *Service) Get(ctx context.Context, userID, patientID uuid.UUID) (*Patient, error) {
	scope, err := s.resolver.ScopeFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !scope.Allows(p) {
		return nil, httpx.Forbidden("view")
	}
	return p, nil
}

// AuthorizeRead is the gate sub-resources call before touching anything that
// belongs to a patient. It is exactly the Get decision.
func (s *Service) AuthorizeRead(ctx context.Context, userID, patientID uuid.UUID) error {
	_, err := s.Get(ctx, userID, patientID)
	return err
}

func (s *Service) Update(ctx context.Context, userID uuid.UUID, p *Patient) (*Patient, error) {
	if err := validatePatient(p); err != nil {
		return nil, err
	}
	scope, err := s.resolver.ScopeFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if !scope.Allows(existing) {
		return nil, httpx.Forbidden("update")
	}
	// The write re-checks the scope in its own predicate; a record yanked out
	// of scope between the check and the write stays untouched.
	ok, err := s.repo.Update(ctx, p, scope)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httpx.Forbidden("update")
	}
	return s.repo.GetByID(ctx, p.ID)
}

func (s *Service) Delete(ctx context.Context, userID, patientID uuid.UUID) error {
	scope, err := s.resolver.ScopeFor(ctx, userID)
	if err != nil {
		return err
	}
	existing, err := s.repo.GetByID(ctx, patientID)
	if err != nil {
		return err
	}
	if !scope.Allows(existing) {
		return httpx.Forbidden("delete")
	}
	ok, err := s.repo.Delete(ctx, patientID, scope)
	if err != nil {
		return err
	}
	if !ok {
		return httpx.Forbidden("delete")
	}
	return nil
}
