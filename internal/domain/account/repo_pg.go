package account

import (
	"context"
	"errors"
	"strings"

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

type accountRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &accountRepoPG{pool: pool}
}

func (r *accountRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const userCols = `id, role, email, tenant_id, created_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Role, &u.Email, &u.TenantID, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("user not found")
	}
	return &u, err
}

func (r *accountRepoPG) GetByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(r.conn(ctx).QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE email = $1`, strings.ToLower(email)))
}

func (r *accountRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return scanUser(r.conn(ctx).QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE id = $1`, id))
}

func (r *accountRepoPG) HospitalStatus(ctx context.Context, hospitalID uuid.UUID) (auth.AccountStatus, error) {
	var status auth.AccountStatus
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT status FROM hospitals WHERE id = $1`, hospitalID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperr.NotFound("hospital not found")
	}
	return status, err
}

func (r *accountRepoPG) DoctorHospital(ctx context.Context, doctorID uuid.UUID) (auth.AccountStatus, uuid.UUID, error) {
	var status auth.AccountStatus
	var hospitalID uuid.UUID
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT status, hospital_id FROM doctors WHERE id = $1`, doctorID).Scan(&status, &hospitalID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", uuid.Nil, apperr.NotFound("doctor not found")
	}
	return status, hospitalID, err
}
