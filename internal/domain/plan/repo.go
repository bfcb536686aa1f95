package plan

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Upsert(ctx context.Context, p *Plan) error
	GetByHospital(ctx context.Context, hospitalID uuid.UUID) (*Plan, error)
}
