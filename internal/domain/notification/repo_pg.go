package notification

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

type notifRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &notifRepoPG{pool: pool}
}

func (r *notifRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const notifCols = `id, user_id, title, description, href, read, created_at`

func (r *notifRepoPG) Create(ctx context.Context, n *Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO notifications (id, user_id, title, description, href)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		n.ID, n.UserID, n.Title, n.Description, n.Href).Scan(&n.CreatedAt)
}

func (r *notifRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Notification, error) {
	var n Notification
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT `+notifCols+` FROM notifications WHERE id = $1`, id).
		Scan(&n.ID, &n.UserID, &n.Title, &n.Description, &n.Href, &n.Read, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("notification not found")
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notifRepoPG) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Notification, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+notifCols+` FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []*Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Description, &n.Href, &n.Read, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		list = append(list, &n)
	}
	return list, total, rows.Err()
}

// MarkRead is monotonic: the predicate only ever flips false to true, so
// re-marking an already-read row is a no-op at the database level.
func (r *notifRepoPG) MarkRead(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND read = FALSE`, id)
	return err
}

func (r *notifRepoPG) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
