package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicore/clinic/internal/platform/httpx"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const patientColumns = `id, nic, first_name, last_name, age, gender, address, occupation, access_group_id, created_by_id, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patients (id, nic, first_name, last_name, age, gender, address, occupation, access_group_id, created_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.NIC, p.FirstName, p.LastName, p.Age, p.Gender, p.Address, p.Occupation, p.AccessGroupID, p.CreatedByID,
	)
	if isUniqueViolation(err) {
		return httpx.Conflict("This patient is already exist")
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+patientColumns+` FROM patients WHERE id = $1`, id)
	return scanPatient(row)
}

func (r *repoPG) List(ctx context.Context, scope Scope, limit, offset int) ([]*Patient, int, error) {
	var (
		where string
		args  []any
		query string
	)
	if scope.GroupID != nil {
		where = `(access_group_id = $1 OR created_by_id = ANY($2))`
		args = []any{*scope.GroupID, uuidStrings(scope.MemberIDs)}
		query = `SELECT ` + patientColumns + ` FROM patients WHERE ` + where +
			` ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	} else {
		where = `created_by_id = $1`
		args = []any{scope.OwnerID}
		query = `SELECT ` + patientColumns + ` FROM patients WHERE ` + where +
			` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patients WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		p, err := scanPatientRow(rows)
		if err != nil {
			return nil, 0, err
		}
		patients = append(patients, p)
	}
	return patients, total, rows.Err()
}

// Update writes the editable fields. The scope predicate rides inside the
// WHERE clause; a false return means the row no longer satisfies it (or was
// deleted) at write time.
func (r *repoPG) Update(ctx context.Context, p *Patient, scope Scope) (bool, error) {
	set := `nic = $2, first_name = $3, last_name = $4, age = $5, gender = $6, address = $7, occupation = $8, updated_at = NOW()`
	args := []any{p.ID, p.NIC, p.FirstName, p.LastName, p.Age, p.Gender, p.Address, p.Occupation}

	var query string
	if scope.GroupID != nil {
		query = `UPDATE patients SET ` + set + ` WHERE id = $1 AND (access_group_id = $9 OR created_by_id = ANY($10))`
		args = append(args, *scope.GroupID, uuidStrings(scope.MemberIDs))
	} else {
		query = `UPDATE patients SET ` + set + ` WHERE id = $1 AND created_by_id = $9`
		args = append(args, scope.OwnerID)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if isUniqueViolation(err) {
		return false, httpx.Conflict("This patient is already exist")
	}
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID, scope Scope) (bool, error) {
	var query string
	args := []any{id}
	if scope.GroupID != nil {
		query = `DELETE FROM patients WHERE id = $1 AND (access_group_id = $2 OR created_by_id = ANY($3))`
		args = append(args, *scope.GroupID, uuidStrings(scope.MemberIDs))
	} else {
		query = `DELETE FROM patients WHERE id = $1 AND created_by_id = $2`
		args = append(args, scope.OwnerID)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.NIC, &p.FirstName, &p.LastName, &p.Age, &p.Gender,
		&p.Address, &p.Occupation, &p.AccessGroupID, &p.CreatedByID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, httpx.NotFound("patient")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPatientRow(rows pgx.Rows) (*Patient, error) {
	var p Patient
	err := rows.Scan(&p.ID, &p.NIC, &p.FirstName, &p.LastName, &p.Age, &p.Gender,
		&p.Address, &p.Occupation, &p.AccessGroupID, &p.CreatedByID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
