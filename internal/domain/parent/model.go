package parent

import (
	"time"

	"github.com/google/uuid"
)

// Parent is a guardian account. HospitalID is nil for independent parents
// that registered without a hospital code. DoctorID and TeamID record the
// care assignment made by the hospital admin.
type Parent struct {
	ID         uuid.UUID  `json:"id"`
	HospitalID *uuid.UUID `json:"hospital_id,omitempty"`
	DoctorID   *uuid.UUID `json:"doctor_id,omitempty"`
	TeamID     *uuid.UUID `json:"team_id,omitempty"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
