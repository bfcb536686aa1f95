package document

import (
	"time"

	"github.com/google/uuid"
)

// DocStatus is the verification state of one onboarding document.
type DocStatus string

const (
	StatusPending  DocStatus = "pending"
	StatusUploaded DocStatus = "uploaded"
	StatusVerified DocStatus = "verified"
	StatusRejected DocStatus = "rejected"
)

// Checklist is the fixed set of documents every hospital must provide.
// Seeded pending at registration time; never grows or shrinks afterwards.
var Checklist = []string{
	"registration_certificate",
	"accreditation",
	"tax_record",
	"insurance",
	"data_protection_agreement",
}

// Document is one checklist entry for a hospital. FileURL is set on upload
// and replaced on re-upload; RejectionNote carries the reviewer's reason.
type Document struct {
	ID            uuid.UUID `json:"id"`
	HospitalID    uuid.UUID `json:"hospital_id"`
	Kind          string    `json:"kind"`
	Status        DocStatus `json:"status"`
	FileURL       string    `json:"file_url,omitempty"`
	RejectionNote string    `json:"rejection_note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
