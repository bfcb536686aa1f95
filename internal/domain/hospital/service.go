package hospital

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/careloop/careloop/internal/platform/apperr"
	"github.com/careloop/careloop/internal/platform/auth"
)

// DocumentSeeder creates the onboarding document checklist for a newly
// registered hospital. Implemented by the document service.
type DocumentSeeder interface {
	Seed(ctx context.Context, hospitalID uuid.UUID) error
}

// TxRunner executes fn atomically; repositories pick the transaction up
// from the context. A nil runner executes fn directly.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	hospitals Repository
	seeder    DocumentSeeder
	runTx     TxRunner
}

func NewService(hospitals Repository, seeder DocumentSeeder, runTx TxRunner) *Service {
	return &Service{hospitals: hospitals, seeder: seeder, runTx: runTx}
}

// Register creates a pending hospital and seeds its onboarding document
// checklist. The hospital stays pending until a superadmin approves it.
func (s *Service) Register(ctx context.Context, h *Hospital) error {
	h.Code = NormalizeCode(h.Code)
	if h.Code == "" {
		return apperr.InvalidInput("code is required")
	}
	if h.Name == "" {
		return apperr.InvalidInput("name is required")
	}

	if existing, err := s.hospitals.GetByCode(ctx, h.Code); err == nil && existing != nil {
		return apperr.Conflict("hospital code already in use")
	}

	h.Status = auth.StatusPending
	// The row and its checklist land together or not at all.
	return s.inTx(ctx, func(ctx context.Context) error {
		if err := s.hospitals.Create(ctx, h); err != nil {
			return fmt.Errorf("create hospital: %w", err)
		}
		if s.seeder != nil {
			if err := s.seeder.Seed(ctx, h.ID); err != nil {
				return fmt.Errorf("seed onboarding documents: %w", err)
			}
		}
		return nil
	})
}

func (s *Service) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.runTx == nil {
		return fn(ctx)
	}
	return s.runTx(ctx, fn)
}

// GetByCode resolves a hospital by its case-insensitive code. Used during
// signup flows, so the miss message is caller-facing.
func (s *Service) GetByCode(ctx context.Context, code string) (*Hospital, error) {
	h, err := s.hospitals.GetByCode(ctx, NormalizeCode(code))
	if err != nil {
		return nil, apperr.NotFound("Invalid hospital code. Please check and try again.")
	}
	return h, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Hospital, error) {
	return s.hospitals.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Hospital, int, error) {
	return s.hospitals.List(ctx, limit, offset)
}

// Transition moves a hospital through the account lifecycle machine.
// Callers are already gated to superadmin; the guard here enforces the
// machine itself.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, to auth.AccountStatus) (*Hospital, error) {
	if !to.Valid() {
		return nil, apperr.InvalidInput(fmt.Sprintf("unknown status %q", to))
	}

	h, err := s.hospitals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanTransition(h.Status, to) {
		return nil, apperr.TransitionNotAllowed(
			fmt.Sprintf("cannot move hospital from %s to %s", h.Status, to))
	}
	if err := s.hospitals.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	h.Status = to
	return h, nil
}
