package doctor

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/careloop/careloop/internal/platform/apperr"
	"github.com/careloop/careloop/internal/platform/auth"
)

type Service struct {
	doctors Repository
}

func NewService(doctors Repository) *Service {
	return &Service{doctors: doctors}
}

// get fetches a doctor within the caller's scope. Misses and foreign
// tenants look identical to the caller.
func (s *Service) get(ctx context.Context, scope auth.Scope, id uuid.UUID) (*Doctor, error) {
	d, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		if apperr.Status(err) == 404 && !scope.Superadmin {
			return nil, apperr.Forbidden("doctor not accessible")
		}
		return nil, err
	}
	if !scope.Owns(d.HospitalID) {
		return nil, apperr.Forbidden("doctor not accessible")
	}
	return d, nil
}

func (s *Service) Create(ctx context.Context, scope auth.Scope, d *Doctor) error {
	if d.Name == "" {
		return apperr.InvalidInput("name is required")
	}
	if scope.Superadmin {
		if d.HospitalID == uuid.Nil {
			return apperr.InvalidInput("hospital_id is required")
		}
	} else {
		// An admin always creates into its own hospital.
		d.HospitalID = scope.Tenant
		if d.HospitalID == uuid.Nil {
			return apperr.Forbidden("no tenant scope")
		}
	}
	d.Status = auth.StatusActive
	return s.doctors.Create(ctx, d)
}

func (s *Service) Get(ctx context.Context, scope auth.Scope, id uuid.UUID) (*Doctor, error) {
	return s.get(ctx, scope, id)
}

func (s *Service) List(ctx context.Context, scope auth.Scope, hospitalID uuid.UUID, limit, offset int) ([]*Doctor, int, error) {
	if !scope.Owns(hospitalID) {
		return nil, 0, apperr.Forbidden("hospital not accessible")
	}
	return s.doctors.ListByHospital(ctx, hospitalID, limit, offset)
}

func (s *Service) Update(ctx context.Context, scope auth.Scope, id uuid.UUID, name, specialty string) (*Doctor, error) {
	d, err := s.get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		d.Name = name
	}
	if specialty != "" {
		d.Specialty = specialty
	}
	if err := s.doctors.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Delete(ctx context.Context, scope auth.Scope, id uuid.UUID) error {
	if _, err := s.get(ctx, scope, id); err != nil {
		return err
	}
	return s.doctors.Delete(ctx, id)
}

// Transition moves a doctor through the account lifecycle machine. Admins
// manage their own doctors; the hospital cascade is enforced separately by
// the status gate.
func (s *Service) Transition(ctx context.Context, scope auth.Scope, id uuid.UUID, to auth.AccountStatus) (*Doctor, error) {
	if !to.Valid() {
		return nil, apperr.InvalidInput(fmt.Sprintf("unknown status %q", to))
	}
	d, err := s.get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanTransition(d.Status, to) {
		return nil, apperr.TransitionNotAllowed(
			fmt.Sprintf("cannot move doctor from %s to %s", d.Status, to))
	}
	if err := s.doctors.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	d.Status = to
	return d, nil
}

// HospitalOf resolves a doctor's owning hospital. Used by the parent and
// team services for composite ownership checks.
func (s *Service) HospitalOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	d, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	return d.HospitalID, nil
}
