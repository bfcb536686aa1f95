package team

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, t *Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*Team, error)
	ListByHospital(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Team, int, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddMember(ctx context.Context, m *Member) error
	RemoveMember(ctx context.Context, teamID, doctorID uuid.UUID) error
	ListMembers(ctx context.Context, teamID uuid.UUID) ([]*Member, error)
	HasMember(ctx context.Context, teamID, doctorID uuid.UUID) (bool, error)
}
