package plan

import (
	"time"

	"github.com/google/uuid"
)

// Plan is a hospital's subscription record. One row per hospital; writes
// replace the previous values.
type Plan struct {
	HospitalID uuid.UUID `json:"hospital_id"`
	Tier       string    `json:"tier"`
	SeatLimit  int       `json:"seat_limit"`
	RenewsAt   time.Time `json:"renews_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
