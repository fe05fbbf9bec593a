package accessgroup

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

const groupColumns = `id, group_id, group_name, description, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, group *AccessGroup) error {
	group.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO access_groups (id, group_id, group_name, description)
		VALUES ($1, $2, $3, $4)`,
		group.ID, group.GroupID, group.GroupName, group.Description,
	)
	if isUniqueViolation(err) {
		return httpx.Conflict("This access group is already exist")
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*AccessGroup, error) {
	return r.scanGroup(r.pool.QueryRow(ctx,
		`SELECT `+groupColumns+` FROM access_groups WHERE id = $1`, id))
}

func (r *repoPG) GetByGroupID(ctx context.Context, groupID string) (*AccessGroup, error) {
	return r.scanGroup(r.pool.QueryRow(ctx,
		`SELECT `+groupColumns+` FROM access_groups WHERE group_id = $1`, groupID))
}

func (r *repoPG) Update(ctx context.Context, group *AccessGroup) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE access_groups SET group_id = $2, group_name = $3, description = $4, updated_at = NOW()
		WHERE id = $1`,
		group.ID, group.GroupID, group.GroupName, group.Description,
	)
	if isUniqueViolation(err) {
		return httpx.Conflict("Access Group with this Group ID already exists")
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.NotFound("access group")
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Set-null, not cascade-delete: members keep their accounts and fall
	// back to own-records-only visibility.
	if _, err := tx.Exec(ctx,
		`UPDATE users SET access_group_id = NULL, updated_at = NOW() WHERE access_group_id = $1`, id); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM access_groups WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.NotFound("access group")
	}

	return tx.Commit(ctx)
}

func (r *repoPG) ListWithMembers(ctx context.Context) ([]*GroupWithMembers, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+groupColumns+` FROM access_groups ORDER BY group_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*GroupWithMembers
	for rows.Next() {
		var g AccessGroup
		if err := rows.Scan(&g.ID, &g.GroupID, &g.GroupName, &g.Description, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, &GroupWithMembers{AccessGroup: g})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, g := range groups {
		memberRows, err := r.pool.Query(ctx,
			`SELECT id, name, email FROM users WHERE access_group_id = $1 ORDER BY name`, g.ID)
		if err != nil {
			return nil, err
		}
		for memberRows.Next() {
			var m Member
			if err := memberRows.Scan(&m.ID, &m.Name, &m.Email); err != nil {
				memberRows.Close()
				return nil, err
			}
			g.Members = append(g.Members, m)
		}
		if err := memberRows.Err(); err != nil {
			memberRows.Close()
			return nil, err
		}
		memberRows.Close()
	}

	return groups, nil
}

func (r *repoPG) scanGroup(row pgx.Row) (*AccessGroup, error) {
	var g AccessGroup
	err := row.Scan(&g.ID, &g.GroupID, &g.GroupName, &g.Description, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, httpx.NotFound("access group")
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
