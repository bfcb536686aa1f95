package parent

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

type parentRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &parentRepoPG{pool: pool}
}

func (r *parentRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const parentCols = `id, hospital_id, doctor_id, team_id, name, email, created_at, updated_at`

func scanParent(row pgx.Row) (*Parent, error) {
	var p Parent
	err := row.Scan(&p.ID, &p.HospitalID, &p.DoctorID, &p.TeamID, &p.Name, &p.Email, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("parent not found")
	}
	return &p, err
}

func (r *parentRepoPG) Create(ctx context.Context, p *Parent) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO parents (id, hospital_id, name, email)
		VALUES ($1, $2, $3, $4)`,
		p.ID, p.HospitalID, p.Name, p.Email)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperr.Conflict("a parent with this email already exists")
	}
	return err
}

func (r *parentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Parent, error) {
	return scanParent(r.conn(ctx).QueryRow(ctx,
		`SELECT `+parentCols+` FROM parents WHERE id = $1`, id))
}

func (r *parentRepoPG) ListByHospital(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Parent, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM parents WHERE hospital_id = $1`, hospitalID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+parentCols+` FROM parents
		WHERE hospital_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, hospitalID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var parents []*Parent
	for rows.Next() {
		var p Parent
		if err := rows.Scan(&p.ID, &p.HospitalID, &p.DoctorID, &p.TeamID, &p.Name, &p.Email, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		parents = append(parents, &p)
	}
	return parents, total, rows.Err()
}

func (r *parentRepoPG) SetDoctor(ctx context.Context, id uuid.UUID, doctorID *uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE parents SET doctor_id = $2, updated_at = now() WHERE id = $1`,
		id, doctorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("parent not found")
	}
	return nil
}

func (r *parentRepoPG) SetTeam(ctx context.Context, id uuid.UUID, teamID *uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE parents SET team_id = $2, updated_at = now() WHERE id = $1`,
		id, teamID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("parent not found")
	}
	return nil
}

func (r *parentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM parents WHERE id = $1`, id)
	return err
}
