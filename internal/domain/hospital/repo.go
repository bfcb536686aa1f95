package hospital

import (
	"context"

	"github.com/google/uuid"

	"github.com/careloop/careloop/internal/platform/auth"
)

type Repository interface {
	Create(ctx context.Context, h *Hospital) error
	GetByID(ctx context.Context, id uuid.UUID) (*Hospital, error)
	GetByCode(ctx context.Context, code string) (*Hospital, error)
	List(ctx context.Context, limit, offset int) ([]*Hospital, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status auth.AccountStatus) error
}
