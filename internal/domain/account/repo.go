package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/careloop/careloop/internal/platform/auth"
)

type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	// HospitalStatus reads the account status straight off the hospital row.
	HospitalStatus(ctx context.Context, hospitalID uuid.UUID) (auth.AccountStatus, error)
	// DoctorHospital reports a doctor's own status and the hospital it
	// belongs to, for the cascaded probe.
	DoctorHospital(ctx context.Context, doctorID uuid.UUID) (auth.AccountStatus, uuid.UUID, error)
}
