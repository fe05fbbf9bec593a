package vitals

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// PatientGate is the single patient read-access decision. Vital signs carry
// no access rule of their own: every operation here asks the gate about the
// referenced patient first, so the rule cannot drift between resources.
type PatientGate interface {
	AuthorizeRead(ctx context.Context, userID, patientID uuid.UUID) error
}

type Service struct {
	repo Repository
	gate PatientGate
}

func NewService(repo Repository, gate PatientGate) *Service {
	return &Service{repo: repo, gate: gate}
}

func validateReading(v *VitalSigns) error {
	if v.SystolicBP == nil && v.DiastolicBP == nil && v.HeartRate == nil &&
		v.RespiratoryRate == nil && v.Temperature == nil && v.OxygenSaturation == nil {
		return fmt.Errorf("at least one measurement is required")
	}
	return nil
}

// Record appends a reading to a patient the caller may read.
func (s *Service) Record(ctx context.Context, userID uuid.UUID, v *VitalSigns) error {
	if err := s.gate.AuthorizeRead(ctx, userID, v.PatientID); err != nil {
		return err
	}
	if err := validateReading(v); err != nil {
		return err
	}
	v.RecordedByID = userID
	return s.repo.Create(ctx, v)
}

// Latest returns the most recent reading, or nil when the patient has none.
func (s *Service) Latest(ctx context.Context, userID, patientID uuid.UUID) (*VitalSigns, error) {
	if err := s.gate.AuthorizeRead(ctx, userID, patientID); err != nil {
		return nil, err
	}
	return s.repo.GetLatest(ctx, patientID)
}

// History lists readings newest first.
func (s *Service) History(ctx context.Context, userID, patientID uuid.UUID, limit, offset int) ([]*VitalSigns, int, error) {
	if err := s.gate.AuthorizeRead(ctx, userID, patientID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}
