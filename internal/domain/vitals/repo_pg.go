package vitals

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const vitalsColumns = `id, patient_id, systolic_bp, diastolic_bp, heart_rate, respiratory_rate, temperature, oxygen_saturation, recorded_at, recorded_by_id`

func (r *repoPG) Create(ctx context.Context, v *VitalSigns) error {
	v.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO vital_signs (id, patient_id, systolic_bp, diastolic_bp, heart_rate, respiratory_rate, temperature, oxygen_saturation, recorded_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING recorded_at`,
		v.ID, v.PatientID, v.SystolicBP, v.DiastolicBP, v.HeartRate, v.RespiratoryRate, v.Temperature, v.OxygenSaturation, v.RecordedByID,
	).Scan(&v.RecordedAt)
}

func (r *repoPG) GetLatest(ctx context.Context, patientID uuid.UUID) (*VitalSigns, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+vitalsColumns+` FROM vital_signs WHERE patient_id = $1 ORDER BY recorded_at DESC LIMIT 1`,
		patientID)

	var v VitalSigns
	err := row.Scan(&v.ID, &v.PatientID, &v.SystolicBP, &v.DiastolicBP, &v.HeartRate,
		&v.RespiratoryRate, &v.Temperature, &v.OxygenSaturation, &v.RecordedAt, &v.RecordedByID)
	if errors.Is(err, pgx.ErrNoRows) {
		// No readings yet is a normal state, not an error.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*VitalSigns, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM vital_signs WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+vitalsColumns+` FROM vital_signs WHERE patient_id = $1 ORDER BY recorded_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var readings []*VitalSigns
	for rows.Next() {
		var v VitalSigns
		if err := rows.Scan(&v.ID, &v.PatientID, &v.SystolicBP, &v.DiastolicBP, &v.HeartRate,
			&v.RespiratoryRate, &v.Temperature, &v.OxygenSaturation, &v.RecordedAt, &v.RecordedByID); err != nil {
			return nil, 0, err
		}
		readings = append(readings, &v)
	}
	return readings, total, rows.Err()
}
