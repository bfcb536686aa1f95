package document

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateBatch(ctx context.Context, docs []*Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*Document, error)
	ListByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*Document, error)
	Update(ctx context.Context, d *Document) error
}
