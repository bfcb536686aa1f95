package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/careloop/careloop/internal/platform/apperr"
	"github.com/careloop/careloop/internal/platform/auth"
)

// Service resolves identities and answers account-status probes. It
// satisfies both auth.PrincipalResolver and auth.StatusProbe.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ResolveByEmail maps an email to a principal for the header-based
// authenticator. An unknown email resolves to nil, not an error.
func (s *Service) ResolveByEmail(ctx context.Context, email string) (*auth.Principal, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperr.Status(err) == 404 {
			return nil, nil
		}
		return nil, err
	}
	p := &auth.Principal{ID: u.ID.String(), Role: u.Role, Email: u.Email}
	if u.TenantID != nil {
		p.TenantID = u.TenantID.String()
	}
	return p, nil
}

// Probe resolves the caller's effective account status. Superadmins and
// parents are always active; admins carry their hospital's status; a
// doctor's own suspension wins, otherwise the hospital's status applies.
func (s *Service) Probe(ctx context.Context, claims *auth.Claims) (auth.AccountStatus, error) {
	switch claims.Role {
	case auth.RoleSuperadmin, auth.RoleParent:
		return auth.StatusActive, nil

	case auth.RoleAdmin:
		tenant, err := uuid.Parse(claims.TenantID)
		if err != nil {
			return "", apperr.MalformedCredential("tenant is not a UUID")
		}
		return s.repo.HospitalStatus(ctx, tenant)

	case auth.RoleDoctor:
		id, err := uuid.Parse(claims.Subject)
		if err != nil {
			return "", apperr.MalformedCredential("subject is not a UUID")
		}
		status, hospitalID, err := s.repo.DoctorHospital(ctx, id)
		if err != nil {
			return "", err
		}
		if status.Denied() {
			return status, nil
		}
		return s.repo.HospitalStatus(ctx, hospitalID)
	}
	return "", apperr.Forbidden("unknown role")
}
