package analytics

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type analyticsRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &analyticsRepoPG{pool: pool}
}

func (r *analyticsRepoPG) Overview(ctx context.Context) (*Overview, error) {
	o := &Overview{HospitalsByStatus: make(map[string]int)}

	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM hospitals GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		o.HospitalsByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM doctors),
			(SELECT COUNT(*) FROM parents),
			(SELECT COUNT(*) FROM teams)`).
		Scan(&o.Doctors, &o.Parents, &o.Teams)
	if err != nil {
		return nil, err
	}
	return o, nil
}
