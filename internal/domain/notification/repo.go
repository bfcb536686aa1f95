package notification

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Notification, int, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	// MarkAllRead flips every unread row for the user and reports how many
	// rows changed.
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}
