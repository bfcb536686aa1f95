package document

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/careloop/careloop/internal/platform/apperr"
	"github.com/careloop/careloop/internal/platform/auth"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Seed creates the pending checklist for a newly registered hospital.
// Satisfies the hospital package's DocumentSeeder.
func (s *Service) Seed(ctx context.Context, hospitalID uuid.UUID) error {
	docs := make([]*Document, 0, len(Checklist))
	for _, kind := range Checklist {
		docs = append(docs, &Document{HospitalID: hospitalID, Kind: kind, Status: StatusPending})
	}
	return s.repo.CreateBatch(ctx, docs)
}

func (s *Service) List(ctx context.Context, scope auth.Scope, hospitalID uuid.UUID) ([]*Document, error) {
	if !scope.Owns(hospitalID) {
		return nil, apperr.Forbidden("hospital not accessible")
	}
	return s.repo.ListByHospital(ctx, hospitalID)
}

// get loads a document for a transition. Unlike the other domains, an
// unknown id and a foreign-tenant id both report not-found: transitions on
// documents outside the caller's set are no-ops "not found" by contract.
func (s *Service) get(ctx context.Context, scope auth.Scope, id uuid.UUID) (*Document, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.Owns(d.HospitalID) {
		return nil, apperr.NotFound("document not found")
	}
	return d, nil
}

// Upload moves a document to Uploaded and records the file. Allowed from
// Pending and Rejected; re-uploading an Uploaded document replaces the file
// and succeeds with no state change. Verified documents are closed.
func (s *Service) Upload(ctx context.Context, scope auth.Scope, id uuid.UUID, fileURL string) (*Document, error) {
	fileURL = strings.TrimSpace(fileURL)
	if fileURL == "" {
		return nil, apperr.InvalidInput("file_url is required")
	}
	d, err := s.get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	switch d.Status {
	case StatusPending, StatusRejected, StatusUploaded:
		d.Status = StatusUploaded
		d.FileURL = fileURL
		d.RejectionNote = ""
	default:
		return nil, apperr.TransitionNotAllowed("document is already verified")
	}
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Verify moves an Uploaded document to Verified. Superadmin only, enforced
// at the route.
func (s *Service) Verify(ctx context.Context, scope auth.Scope, id uuid.UUID) (*Document, error) {
	return s.review(ctx, scope, id, StatusVerified, "")
}

// Reject moves an Uploaded document to Rejected with a reviewer note. The
// hospital may re-upload afterwards.
func (s *Service) Reject(ctx context.Context, scope auth.Scope, id uuid.UUID, note string) (*Document, error) {
	return s.review(ctx, scope, id, StatusRejected, strings.TrimSpace(note))
}

func (s *Service) review(ctx context.Context, scope auth.Scope, id uuid.UUID, to DocStatus, note string) (*Document, error) {
	d, err := s.get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if d.Status != StatusUploaded {
		return nil, apperr.TransitionNotAllowed("document is not awaiting review")
	}
	d.Status = to
	d.RejectionNote = note
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}
