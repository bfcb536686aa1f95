package parent

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Parent) error
	GetByID(ctx context.Context, id uuid.UUID) (*Parent, error)
	ListByHospital(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Parent, int, error)
	SetDoctor(ctx context.Context, id uuid.UUID, doctorID *uuid.UUID) error
	SetTeam(ctx context.Context, id uuid.UUID, teamID *uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
