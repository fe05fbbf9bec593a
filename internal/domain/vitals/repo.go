package vitals

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence interface for vital-signs readings.
// Readings are append-only; there is deliberately no update or delete.
type Repository interface {
	Create(ctx context.Context, v *VitalSigns) error
	// GetLatest returns the most recent reading for the patient, or nil
	// when the patient has no readings yet.
	GetLatest(ctx context.Context, patientID uuid.UUID) (*VitalSigns, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*VitalSigns, int, error)
}
