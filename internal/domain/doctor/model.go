package doctor

import (
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careloop/internal/platform/auth"
)

// Doctor is a clinician owned by exactly one hospital.
type Doctor struct {
	ID         uuid.UUID          `db:"id" json:"id"`
	HospitalID uuid.UUID          `db:"hospital_id" json:"hospital_id"`
	Name       string             `db:"name" json:"name"`
	Specialty  string             `db:"specialty" json:"specialty"`
	Status     auth.AccountStatus `db:"status" json:"status"`
	CreatedAt  time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `db:"updated_at" json:"updated_at"`
}
