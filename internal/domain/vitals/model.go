package vitals

import (
	"time"

	"github.com/google/uuid"
)

// VitalSigns is an append-only reading attached to a patient. Readings are
// never updated or deleted; "latest" queries order by RecordedAt descending.
type VitalSigns struct {
	ID               uuid.UUID `db:"id" json:"id"`
	PatientID        uuid.UUID `db:"patient_id" json:"patient_id"`
	SystolicBP       *int      `db:"systolic_bp" json:"systolic_bp,omitempty"`
	DiastolicBP      *int      `db:"diastolic_bp" json:"diastolic_bp,omitempty"`
	HeartRate        *int      `db:"heart_rate" json:"heart_rate,omitempty"`
	RespiratoryRate  *int      `db:"respiratory_rate" json:"respiratory_rate,omitempty"`
	Temperature      *float64  `db:"temperature" json:"temperature,omitempty"`
	OxygenSaturation *int      `db:"oxygen_saturation" json:"oxygen_saturation,omitempty"`
	RecordedAt       time.Time `db:"recorded_at" json:"recorded_at"`
	RecordedByID     uuid.UUID `db:"recorded_by_id" json:"recorded_by_id"`
}
