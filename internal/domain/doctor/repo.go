package doctor

import (
	"context"

	"github.com/google/uuid"

	"github.com/careloop/careloop/internal/platform/auth"
)

type Repository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	ListByHospital(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Doctor, int, error)
	Update(ctx context.Context, d *Doctor) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status auth.AccountStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}
