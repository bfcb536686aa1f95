package team

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/careloop/careloop/internal/platform/apperr"
	"github.com/careloop/careloop/internal/platform/auth"
)

// DoctorDirectory answers which hospital a doctor belongs to. Implemented by
// the doctor service and wired in main.
type DoctorDirectory interface {
	HospitalOf(ctx context.Context, doctorID uuid.UUID) (uuid.UUID, error)
}

type Service struct {
	repo    Repository
	doctors DoctorDirectory
}

func NewService(repo Repository, doctors DoctorDirectory) *Service {
	return &Service{repo: repo, doctors: doctors}
}

// get loads a team and enforces tenancy. A missing team and a team in another
// hospital produce the same error so callers cannot probe for existence.
func (s *Service) get(ctx context.Context, scope auth.Scope, id uuid.UUID) (*Team, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperr.Status(err) == 404 && !scope.Superadmin {
			return nil, apperr.Forbidden("team not accessible")
		}
		return nil, err
	}
	if !scope.Owns(t.HospitalID) {
		return nil, apperr.Forbidden("team not accessible")
	}
	return t, nil
}

func (s *Service) Create(ctx context.Context, scope auth.Scope, t *Team) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return apperr.InvalidInput("team name is required")
	}
	if !scope.Superadmin {
		t.HospitalID = scope.Tenant
	}
	if t.HospitalID == uuid.Nil {
		return apperr.InvalidInput("hospital_id is required")
	}
	return s.repo.Create(ctx, t)
}

func (s *Service) Get(ctx context.Context, scope auth.Scope, id uuid.UUID) (*Team, error) {
	t, err := s.get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	members, err := s.repo.ListMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Members = members
	return t, nil
}

func (s *Service) List(ctx context.Context, scope auth.Scope, hospitalID uuid.UUID, limit, offset int) ([]*Team, int, error) {
	if !scope.Owns(hospitalID) {
		return nil, 0, apperr.Forbidden("hospital not accessible")
	}
	return s.repo.ListByHospital(ctx, hospitalID, limit, offset)
}

func (s *Service) Delete(ctx context.Context, scope auth.Scope, id uuid.UUID) error {
	if _, err := s.get(ctx, scope, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// AddMember validates both the team and the doctor before writing. The doctor
// must belong to the same hospital as the team.
func (s *Service) AddMember(ctx context.Context, scope auth.Scope, teamID, doctorID uuid.UUID, roleLabel string) error {
	t, err := s.get(ctx, scope, teamID)
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
	if hospitalID != t.HospitalID {
		return apperr.Forbidden("doctor not accessible")
	}
	return s.repo.AddMember(ctx, &Member{TeamID: teamID, DoctorID: doctorID, RoleLabel: strings.TrimSpace(roleLabel)})
}

func (s *Service) RemoveMember(ctx context.Context, scope auth.Scope, teamID, doctorID uuid.UUID) error {
	if _, err := s.get(ctx, scope, teamID); err != nil {
		return err
	}
	return s.repo.RemoveMember(ctx, teamID, doctorID)
}

// HospitalOf reports the hospital a team belongs to. Used by the parent
// service when assigning teams.
func (s *Service) HospitalOf(ctx context.Context, teamID uuid.UUID) (uuid.UUID, error) {
	t, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return uuid.Nil, err
	}
	return t.HospitalID, nil
}

// HasMember reports whether a doctor sits on a team. Used by the parent
// service when deciding doctor access to a parent.
func (s *Service) HasMember(ctx context.Context, teamID, doctorID uuid.UUID) (bool, error) {
	return s.repo.HasMember(ctx, teamID, doctorID)
}
