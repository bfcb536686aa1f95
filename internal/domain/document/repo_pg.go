package document

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

type docRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &docRepoPG{pool: pool}
}

func (r *docRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const docCols = `id, hospital_id, kind, status, file_url, rejection_note, created_at, updated_at`

func (r *docRepoPG) CreateBatch(ctx context.Context, docs []*Document) error {
	for _, d := range docs {
		if d.ID == uuid.Nil {
			d.ID = uuid.New()
		}
		_, err := r.conn(ctx).Exec(ctx, `
			INSERT INTO hospital_documents (id, hospital_id, kind, status)
			VALUES ($1, $2, $3, $4)`,
			d.ID, d.HospitalID, d.Kind, d.Status)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *docRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Document, error) {
	var d Document
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT `+docCols+` FROM hospital_documents WHERE id = $1`, id).
		Scan(&d.ID, &d.HospitalID, &d.Kind, &d.Status, &d.FileURL, &d.RejectionNote, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("document not found")
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *docRepoPG) ListByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*Document, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+docCols+` FROM hospital_documents
		WHERE hospital_id = $1 ORDER BY kind`, hospitalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.HospitalID, &d.Kind, &d.Status, &d.FileURL, &d.RejectionNote, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, &d)
	}
	return docs, rows.Err()
}

func (r *docRepoPG) Update(ctx context.Context, d *Document) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE hospital_documents
		SET status = $2, file_url = $3, rejection_note = $4, updated_at = now()
		WHERE id = $1`,
		d.ID, d.Status, d.FileURL, d.RejectionNote)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("document not found")
	}
	return nil
}
