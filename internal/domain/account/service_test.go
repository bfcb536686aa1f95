package account

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/careloop/careloop/internal/platform/apperr"
	"github.com/careloop/careloop/internal/platform/auth"
)

type mockRepo struct {
	users     map[string]*User
	hospitals map[uuid.UUID]auth.AccountStatus
	doctors   map[uuid.UUID]struct {
		status   auth.AccountStatus
		hospital uuid.UUID
	}
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		users:     make(map[string]*User),
		hospitals: make(map[uuid.UUID]auth.AccountStatus),
		doctors: make(map[uuid.UUID]struct {
			status   auth.AccountStatus
			hospital uuid.UUID
		}),
	}
}

func (m *mockRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

func (m *mockRepo) HospitalStatus(_ context.Context, hospitalID uuid.UUID) (auth.AccountStatus, error) {
	s, ok := m.hospitals[hospitalID]
	if !ok {
		return "", apperr.NotFound("hospital not found")
	}
	return s, nil
}

func (m *mockRepo) DoctorHospital(_ context.Context, doctorID uuid.UUID) (auth.AccountStatus, uuid.UUID, error) {
	d, ok := m.doctors[doctorID]
	if !ok {
		return "", uuid.Nil, apperr.NotFound("doctor not found")
	}
	return d.status, d.hospital, nil
}

func doctorClaims(id uuid.UUID) *auth.Claims {
	return &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: id.String()},
		Role:             auth.RoleDoctor,
	}
}

func TestProbeSuperadminAlwaysActive(t *testing.T) {
	svc := NewService(newMockRepo())
	status, err := svc.Probe(context.Background(), &auth.Claims{Role: auth.RoleSuperadmin})
	if err != nil || status != auth.StatusActive {
		t.Fatalf("got %s / %v, want active", status, err)
	}
}

func TestProbeAdminCarriesHospitalStatus(t *testing.T) {
	repo := newMockRepo()
	hospitalID := uuid.New()
	repo.hospitals[hospitalID] = auth.StatusSuspended
	svc := NewService(repo)

	claims := &auth.Claims{Role: auth.RoleAdmin, TenantID: hospitalID.String()}
	status, err := svc.Probe(context.Background(), claims)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != auth.StatusSuspended {
		t.Errorf("status = %s, want suspended", status)
	}
}

// An active doctor under a suspended hospital is denied: the hospital
// status cascades down.
func TestProbeDoctorCascadesFromHospital(t *testing.T) {
	repo := newMockRepo()
	hospitalID := uuid.New()
	doctorID := uuid.New()
	repo.hospitals[hospitalID] = auth.StatusSuspended
	repo.doctors[doctorID] = struct {
		status   auth.AccountStatus
		hospital uuid.UUID
	}{auth.StatusActive, hospitalID}
	svc := NewService(repo)

	status, err := svc.Probe(context.Background(), doctorClaims(doctorID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !status.Denied() {
		t.Errorf("status = %s, want a denied status", status)
	}
}

func TestProbeDoctorOwnSuspensionWins(t *testing.T) {
	repo := newMockRepo()
	hospitalID := uuid.New()
	doctorID := uuid.New()
	repo.hospitals[hospitalID] = auth.StatusActive
	repo.doctors[doctorID] = struct {
		status   auth.AccountStatus
		hospital uuid.UUID
	}{auth.StatusSuspended, hospitalID}
	svc := NewService(repo)

	status, err := svc.Probe(context.Background(), doctorClaims(doctorID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != auth.StatusSuspended {
		t.Errorf("status = %s, want suspended", status)
	}
}

func TestResolveByEmailUnknownIsNil(t *testing.T) {
	svc := NewService(newMockRepo())
	p, err := svc.ResolveByEmail(context.Background(), "nobody@example.com")
	if err != nil || p != nil {
		t.Fatalf("got %v / %v, want nil principal without error", p, err)
	}
}

func TestResolveByEmailCarriesTenant(t *testing.T) {
	repo := newMockRepo()
	tenant := uuid.New()
	repo.users["admin@example.com"] = &User{ID: uuid.New(), Role: auth.RoleAdmin, Email: "admin@example.com", TenantID: &tenant}
	svc := NewService(repo)

	p, err := svc.ResolveByEmail(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.TenantID != tenant.String() {
		t.Errorf("tenant = %q, want %s", p.TenantID, tenant)
	}
}
