package parent

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/careloop/careloop/internal/platform/apperr"
	"github.com/careloop/careloop/internal/platform/auth"
)

// DoctorDirectory answers which hospital a doctor belongs to.
type DoctorDirectory interface {
	HospitalOf(ctx context.Context, doctorID uuid.UUID) (uuid.UUID, error)
}

// TeamDirectory answers team tenancy and membership questions.
type TeamDirectory interface {
	HospitalOf(ctx context.Context, teamID uuid.UUID) (uuid.UUID, error)
	HasMember(ctx context.Context, teamID, doctorID uuid.UUID) (bool, error)
}

type Service struct {
	repo    Repository
	doctors DoctorDirectory
	teams   TeamDirectory
}

func NewService(repo Repository, doctors DoctorDirectory, teams TeamDirectory) *Service {
	return &Service{repo: repo, doctors: doctors, teams: teams}
}

// get loads a parent and enforces admin tenancy. A missing parent, an
// independent parent and a parent in another hospital all produce the same
// error so callers cannot probe for existence.
func (s *Service) get(ctx context.Context, scope auth.Scope, id uuid.UUID) (*Parent, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperr.Status(err) == 404 && !scope.Superadmin {
			return nil, apperr.Forbidden("parent not accessible")
		}
		return nil, err
	}
	if scope.Superadmin {
		return p, nil
	}
	if p.HospitalID == nil || !scope.Owns(*p.HospitalID) {
		return nil, apperr.Forbidden("parent not accessible")
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, scope auth.Scope, p *Parent) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	if p.Name == "" || p.Email == "" {
		return apperr.InvalidInput("name and email are required")
	}
	if !scope.Superadmin {
		tenant := scope.Tenant
		p.HospitalID = &tenant
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, scope auth.Scope, id uuid.UUID) (*Parent, error) {
	return s.get(ctx, scope, id)
}

func (s *Service) List(ctx context.Context, scope auth.Scope, hospitalID uuid.UUID, limit, offset int) ([]*Parent, int, error) {
	if !scope.Owns(hospitalID) {
		return nil, 0, apperr.Forbidden("hospital not accessible")
	}
	return s.repo.ListByHospital(ctx, hospitalID, limit, offset)
}

// AssignDoctor links a doctor to a parent. Both sides are validated against
// the caller's tenant before anything is written.
func (s *Service) AssignDoctor(ctx context.Context, scope auth.Scope, parentID, doctorID uuid.UUID) error {
	p, err := s.get(ctx, scope, parentID)
	if err != nil {
		return err
	}
	hospitalID, err := s.doctors.HospitalOf(ctx, doctorID)
	if err != nil {
		if apperr.Status(err) == 404 {
			return apperr.Forbidden("doctor not accessible")
		}
		return err
	}
	if p.HospitalID == nil || hospitalID != *p.HospitalID {
		return apperr.Forbidden("doctor not accessible")
	}
	if !scope.Owns(hospitalID) {
		return apperr.Forbidden("doctor not accessible")
	}
	return s.repo.SetDoctor(ctx, parentID, &doctorID)
}

// AssignTeam links a team to a parent, with the same all-before-any-write
// validation as AssignDoctor.
func (s *Service) AssignTeam(ctx context.Context, scope auth.Scope, parentID, teamID uuid.UUID) error {
	p, err := s.get(ctx, scope, parentID)
	if err != nil {
		return err
	}
	hospitalID, err := s.teams.HospitalOf(ctx, teamID)
	if err != nil {
		if apperr.Status(err) == 404 {
			return apperr.Forbidden("team not accessible")
		}
		return err
	}
	if p.HospitalID == nil || hospitalID != *p.HospitalID {
		return apperr.Forbidden("team not accessible")
	}
	if !scope.Owns(hospitalID) {
		return apperr.Forbidden("team not accessible")
	}
	return s.repo.SetTeam(ctx, parentID, &teamID)
}

func (s *Service) Delete(ctx context.Context, scope auth.Scope, id uuid.UUID) error {
	if _, err := s.get(ctx, scope, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// GetForDoctor resolves a parent on behalf of a doctor. The doctor may read
// the parent when directly assigned, when they sit on the parent's care team,
// or when the parent belongs to the doctor's hospital. Anything else gets the
// same error as a missing parent.
func (s *Service) GetForDoctor(ctx context.Context, doctorID, parentID uuid.UUID) (*Parent, error) {
	p, err := s.repo.GetByID(ctx, parentID)
	if err != nil {
		if apperr.Status(err) == 404 {
			return nil, apperr.Forbidden("parent not accessible")
		}
		return nil, err
	}

	if p.DoctorID != nil && *p.DoctorID == doctorID {
		return p, nil
	}
	if p.TeamID != nil {
		ok, err := s.teams.HasMember(ctx, *p.TeamID, doctorID)
		if err != nil {
			return nil, err
		}
		if ok {
			return p, nil
		}
	}
	if p.HospitalID != nil {
		hospitalID, err := s.doctors.HospitalOf(ctx, doctorID)
		if err == nil && hospitalID == *p.HospitalID {
			return p, nil
		}
	}
	return nil, apperr.Forbidden("parent not accessible")
}
