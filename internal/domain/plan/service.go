package plan

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/careloop/careloop/internal/platform/apperr"
	"github.com/careloop/careloop/internal/platform/auth"
)

var tiers = map[string]bool{"free": true, "standard": true, "premium": true}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Upsert writes the plan for a hospital. Admins write their own tenant's
// plan; superadmin passes the hospital explicitly.
func (s *Service) Upsert(ctx context.Context, scope auth.Scope, p *Plan) error {
	if !scope.Superadmin {
		p.HospitalID = scope.Tenant
	}
	if p.HospitalID == uuid.Nil {
		return apperr.InvalidInput("hospital_id is required")
	}
	p.Tier = strings.ToLower(strings.TrimSpace(p.Tier))
	if !tiers[p.Tier] {
		return apperr.InvalidInput("tier must be one of free, standard, premium")
	}
	if p.SeatLimit < 0 {
		return apperr.InvalidInput("seat_limit must not be negative")
	}
	return s.repo.Upsert(ctx, p)
}

func (s *Service) Get(ctx context.Context, scope auth.Scope, hospitalID uuid.UUID) (*Plan, error) {
	if !scope.Owns(hospitalID) {
		return nil, apperr.Forbidden("hospital not accessible")
	}
	return s.repo.GetByHospital(ctx, hospitalID)
}
