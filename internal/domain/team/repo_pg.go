package team

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careloop/careloop/internal/platform/apperr"
	"github.com/careloop/careloop/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type teamRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &teamRepoPG{pool: pool}
}

func (r *teamRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const teamCols = `id, hospital_id, name, created_at, updated_at`

func scanTeam(row pgx.Row) (*Team, error) {
	var t Team
	err := row.Scan(&t.ID, &t.HospitalID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("team not found")
	}
	return &t, err
}

func (r *teamRepoPG) Create(ctx context.Context, t *Team) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO teams (id, hospital_id, name) VALUES ($1, $2, $3)`,
		t.ID, t.HospitalID, t.Name)
	return err
}

func (r *teamRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Team, error) {
	return scanTeam(r.conn(ctx).QueryRow(ctx,
		`SELECT `+teamCols+` FROM teams WHERE id = $1`, id))
}

func (r *teamRepoPG) ListByHospital(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Team, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM teams WHERE hospital_id = $1`, hospitalID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+teamCols+` FROM teams
		WHERE hospital_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`, hospitalID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var teams []*Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.HospitalID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, err
		}
		teams = append(teams, &t)
	}
	return teams, total, rows.Err()
}

// Delete removes the team; team_members rows cascade via the foreign key.
func (r *teamRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	return err
}

func (r *teamRepoPG) AddMember(ctx context.Context, m *Member) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO team_members (team_id, doctor_id, role_label)
		VALUES ($1, $2, $3)`,
		m.TeamID, m.DoctorID, m.RoleLabel)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperr.Conflict("doctor already in team")
	}
	return err
}

func (r *teamRepoPG) RemoveMember(ctx context.Context, teamID, doctorID uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		DELETE FROM team_members WHERE team_id = $1 AND doctor_id = $2`,
		teamID, doctorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("team member not found")
	}
	return nil
}

func (r *teamRepoPG) ListMembers(ctx context.Context, teamID uuid.UUID) ([]*Member, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT team_id, doctor_id, role_label, joined_at
		FROM team_members WHERE team_id = $1 ORDER BY joined_at`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.TeamID, &m.DoctorID, &m.RoleLabel, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, &m)
	}
	return members, rows.Err()
}

func (r *teamRepoPG) HasMember(ctx context.Context, teamID, doctorID uuid.UUID) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM team_members WHERE team_id = $1 AND doctor_id = $2)`,
		teamID, doctorID).Scan(&exists)
	return exists, err
}
