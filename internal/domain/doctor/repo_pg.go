package doctor

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careloop/careloop/internal/platform/apperr"
	"github.com/careloop/careloop/internal/platform/auth"
	"github.com/careloop/careloop/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type doctorRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &doctorRepoPG{pool: pool}
}

func (r *doctorRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const doctorCols = `id, hospital_id, name, specialty, status, created_at, updated_at`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.HospitalID, &d.Name, &d.Specialty, &d.Status,
		&d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("doctor not found")
	}
	return &d, err
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO doctors (id, hospital_id, name, specialty, status)
		VALUES ($1, $2, $3, $4, $5)`,
		d.ID, d.HospitalID, d.Name, d.Specialty, d.Status)
	return err
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return scanDoctor(r.conn(ctx).QueryRow(ctx,
		`SELECT `+doctorCols+` FROM doctors WHERE id = $1`, id))
}

func (r *doctorRepoPG) ListByHospital(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Doctor, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM doctors WHERE hospital_id = $1`, hospitalID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+doctorCols+` FROM doctors
		WHERE hospital_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`, hospitalID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var doctors []*Doctor
	for rows.Next() {
		var d Doctor
		if err := rows.Scan(&d.ID, &d.HospitalID, &d.Name, &d.Specialty, &d.Status,
			&d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, 0, err
		}
		doctors = append(doctors, &d)
	}
	return doctors, total, rows.Err()
}

func (r *doctorRepoPG) Update(ctx context.Context, d *Doctor) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE doctors SET name = $2, specialty = $3, updated_at = NOW()
		WHERE id = $1`,
		d.ID, d.Name, d.Specialty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("doctor not found")
	}
	return nil
}

func (r *doctorRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status auth.AccountStatus) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE doctors SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("doctor not found")
	}
	return nil
}

func (r *doctorRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	return err
}
