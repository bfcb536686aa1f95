package parent

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/careloop/careloop/internal/platform/apperr"
	"github.com/careloop/careloop/internal/platform/auth"
)

type mockRepo struct {
	store map[uuid.UUID]*Parent
}

func newMockRepo() *mockRepo {
	return &mockRepo{store: make(map[uuid.UUID]*Parent)}
}

func (m *mockRepo) Create(_ context.Context, p *Parent) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.store[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Parent, error) {
	p, ok := m.store[id]
	if !ok {
		return nil, apperr.NotFound("parent not found")
	}
	return p, nil
}

func (m *mockRepo) ListByHospital(_ context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Parent, int, error) {
	var r []*Parent
	for _, p := range m.store {
		if p.HospitalID != nil && *p.HospitalID == hospitalID {
			r = append(r, p)
		}
	}
	return r, len(r), nil
}

func (m *mockRepo) SetDoctor(_ context.Context, id uuid.UUID, doctorID *uuid.UUID) error {
	p, ok := m.store[id]
	if !ok {
		return apperr.NotFound("parent not found")
	}
	p.DoctorID = doctorID
	return nil
}

func (m *mockRepo) SetTeam(_ context.Context, id uuid.UUID, teamID *uuid.UUID) error {
	p, ok := m.store[id]
	if !ok {
		return apperr.NotFound("parent not found")
	}
	p.TeamID = teamID
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.store, id)
	return nil
}

type mockDoctors struct {
	hospitals map[uuid.UUID]uuid.UUID
}

func (d *mockDoctors) HospitalOf(_ context.Context, doctorID uuid.UUID) (uuid.UUID, error) {
	h, ok := d.hospitals[doctorID]
	if !ok {
		return uuid.Nil, apperr.NotFound("doctor not found")
	}
	return h, nil
}

type mockTeams struct {
	hospitals map[uuid.UUID]uuid.UUID
	members   map[uuid.UUID][]uuid.UUID
}

func (t *mockTeams) HospitalOf(_ context.Context, teamID uuid.UUID) (uuid.UUID, error) {
	h, ok := t.hospitals[teamID]
	if !ok {
		return uuid.Nil, apperr.NotFound("team not found")
	}
	return h, nil
}

func (t *mockTeams) HasMember(_ context.Context, teamID, doctorID uuid.UUID) (bool, error) {
	for _, id := range t.members[teamID] {
		if id == doctorID {
			return true, nil
		}
	}
	return false, nil
}

var (
	h1 = uuid.New()
	h2 = uuid.New()
)

func seedParent(repo *mockRepo, hospitalID uuid.UUID) *Parent {
	p := &Parent{ID: uuid.New(), HospitalID: &hospitalID, Name: "Pat Example", Email: "pat@example.com"}
	repo.store[p.ID] = p
	return p
}

func TestAssignDoctorSameTenant(t *testing.T) {
	repo := newMockRepo()
	p := seedParent(repo, h1)
	doctorID := uuid.New()
	svc := NewService(repo, &mockDoctors{hospitals: map[uuid.UUID]uuid.UUID{doctorID: h1}}, &mockTeams{})

	if err := svc.AssignDoctor(context.Background(), auth.Scope{Tenant: h1}, p.ID, doctorID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.DoctorID == nil || *p.DoctorID != doctorID {
		t.Error("doctor assignment not recorded")
	}
}

// An admin in H1 cannot attach an H2 doctor to an H1 parent, and nothing
// may be written when the check fails.
func TestAssignDoctorCrossTenantNoMutation(t *testing.T) {
	repo := newMockRepo()
	p := seedParent(repo, h1)
	doctorID := uuid.New()
	svc := NewService(repo, &mockDoctors{hospitals: map[uuid.UUID]uuid.UUID{doctorID: h2}}, &mockTeams{})

	err := svc.AssignDoctor(context.Background(), auth.Scope{Tenant: h1}, p.ID, doctorID)
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if p.DoctorID != nil {
		t.Error("parent mutated despite failed validation")
	}
}

func TestAssignDoctorForeignParentForbidden(t *testing.T) {
	repo := newMockRepo()
	p := seedParent(repo, h2)
	doctorID := uuid.New()
	svc := NewService(repo, &mockDoctors{hospitals: map[uuid.UUID]uuid.UUID{doctorID: h2}}, &mockTeams{})

	err := svc.AssignDoctor(context.Background(), auth.Scope{Tenant: h1}, p.ID, doctorID)
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestAssignTeamValidatesBothSides(t *testing.T) {
	repo := newMockRepo()
	p := seedParent(repo, h1)
	teamID := uuid.New()
	svc := NewService(repo, &mockDoctors{}, &mockTeams{hospitals: map[uuid.UUID]uuid.UUID{teamID: h2}})

	err := svc.AssignTeam(context.Background(), auth.Scope{Tenant: h1}, p.ID, teamID)
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if p.TeamID != nil {
		t.Error("parent mutated despite failed validation")
	}
}

func TestGetMissingAndForeignIndistinguishable(t *testing.T) {
	repo := newMockRepo()
	p := seedParent(repo, h2)
	svc := NewService(repo, &mockDoctors{}, &mockTeams{})

	_, errForeign := svc.Get(context.Background(), auth.Scope{Tenant: h1}, p.ID)
	_, errMissing := svc.Get(context.Background(), auth.Scope{Tenant: h1}, uuid.New())
	if !errors.Is(errForeign, apperr.ErrForbidden) || !errors.Is(errMissing, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden for both, got %v / %v", errForeign, errMissing)
	}
	if errForeign.Error() != errMissing.Error() {
		t.Errorf("messages differ: %q vs %q", errForeign, errMissing)
	}
}

func TestIndependentParentHiddenFromAdmins(t *testing.T) {
	repo := newMockRepo()
	p := &Parent{ID: uuid.New(), Name: "Indie", Email: "indie@example.com"}
	repo.store[p.ID] = p
	svc := NewService(repo, &mockDoctors{}, &mockTeams{})

	if _, err := svc.Get(context.Background(), auth.Scope{Tenant: h1}, p.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := svc.Get(context.Background(), auth.Scope{Superadmin: true}, p.ID); err != nil {
		t.Fatalf("superadmin should read independent parents: %v", err)
	}
}

func TestGetForDoctorDirectAssignment(t *testing.T) {
	repo := newMockRepo()
	p := seedParent(repo, h1)
	doctorID := uuid.New()
	p.DoctorID = &doctorID
	svc := NewService(repo, &mockDoctors{}, &mockTeams{})

	if _, err := svc.GetForDoctor(context.Background(), doctorID, p.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetForDoctorSharedTeam(t *testing.T) {
	repo := newMockRepo()
	p := seedParent(repo, h1)
	doctorID := uuid.New()
	teamID := uuid.New()
	p.TeamID = &teamID
	svc := NewService(repo, &mockDoctors{}, &mockTeams{members: map[uuid.UUID][]uuid.UUID{teamID: {doctorID}}})

	if _, err := svc.GetForDoctor(context.Background(), doctorID, p.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetForDoctorSameHospital(t *testing.T) {
	repo := newMockRepo()
	p := seedParent(repo, h1)
	doctorID := uuid.New()
	svc := NewService(repo, &mockDoctors{hospitals: map[uuid.UUID]uuid.UUID{doctorID: h1}}, &mockTeams{})

	if _, err := svc.GetForDoctor(context.Background(), doctorID, p.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetForDoctorUnrelatedForbidden(t *testing.T) {
	repo := newMockRepo()
	p := seedParent(repo, h1)
	doctorID := uuid.New()
	svc := NewService(repo, &mockDoctors{hospitals: map[uuid.UUID]uuid.UUID{doctorID: h2}}, &mockTeams{})

	_, err := svc.GetForDoctor(context.Background(), doctorID, p.ID)
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestCreateForcesAdminTenant(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &mockDoctors{}, &mockTeams{})

	p := &Parent{Name: "Pat", Email: "PAT@Example.com "}
	if err := svc.Create(context.Background(), auth.Scope{Tenant: h1}, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.HospitalID == nil || *p.HospitalID != h1 {
		t.Error("hospital must be the caller tenant")
	}
	if p.Email != "pat@example.com" {
		t.Errorf("email not normalized: %q", p.Email)
	}
}
