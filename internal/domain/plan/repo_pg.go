package plan

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

type planRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &planRepoPG{pool: pool}
}

func (r *planRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *planRepoPG) Upsert(ctx context.Context, p *Plan) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO plans (hospital_id, tier, seat_limit, renews_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (hospital_id) DO UPDATE
		SET tier = EXCLUDED.tier,
		    seat_limit = EXCLUDED.seat_limit,
		    renews_at = EXCLUDED.renews_at,
		    updated_at = now()`,
		p.HospitalID, p.Tier, p.SeatLimit, p.RenewsAt)
	return err
}

func (r *planRepoPG) GetByHospital(ctx context.Context, hospitalID uuid.UUID) (*Plan, error) {
	var p Plan
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT hospital_id, tier, seat_limit, renews_at, updated_at
		FROM plans WHERE hospital_id = $1`, hospitalID).
		Scan(&p.HospitalID, &p.Tier, &p.SeatLimit, &p.RenewsAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("plan not found")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
