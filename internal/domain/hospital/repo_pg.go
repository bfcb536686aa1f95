package hospital

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

type hospitalRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &hospitalRepoPG{pool: pool}
}

func (r *hospitalRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const hospitalCols = `id, code, name, status, created_at, updated_at`

func scanHospital(row pgx.Row) (*Hospital, error) {
	var h Hospital
	err := row.Scan(&h.ID, &h.Code, &h.Name, &h.Status, &h.CreatedAt, &h.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("hospital not found")
	}
	return &h, err
}

func (r *hospitalRepoPG) Create(ctx context.Context, h *Hospital) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO hospitals (id, code, name, status)
		VALUES ($1, $2, $3, $4)`,
		h.ID, h.Code, h.Name, h.Status)
	return err
}

func (r *hospitalRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Hospital, error) {
	return scanHospital(r.conn(ctx).QueryRow(ctx,
		`SELECT `+hospitalCols+` FROM hospitals WHERE id = $1`, id))
}

func (r *hospitalRepoPG) GetByCode(ctx context.Context, code string) (*Hospital, error) {
	return scanHospital(r.conn(ctx).QueryRow(ctx,
		`SELECT `+hospitalCols+` FROM hospitals WHERE LOWER(code) = LOWER($1)`, code))
}

func (r *hospitalRepoPG) List(ctx context.Context, limit, offset int) ([]*Hospital, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM hospitals`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+hospitalCols+` FROM hospitals
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var hospitals []*Hospital
	for rows.Next() {
		var h Hospital
		if err := rows.Scan(&h.ID, &h.Code, &h.Name, &h.Status, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, 0, err
		}
		hospitals = append(hospitals, &h)
	}
	return hospitals, total, rows.Err()
}

func (r *hospitalRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status auth.AccountStatus) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE hospitals SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("hospital not found")
	}
	return nil
}
