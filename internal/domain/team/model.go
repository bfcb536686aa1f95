package team

import (
	"time"

	"github.com/google/uuid"
)

// Team is a hospital-owned care team of doctors.
type Team struct {
	ID         uuid.UUID `db:"id" json:"id"`
	HospitalID uuid.UUID `db:"hospital_id" json:"hospital_id"`
	Name       string    `db:"name" json:"name"`
	Members    []*Member `json:"members,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Member is a doctor's membership in a team. A doctor appears at most
// once per team.
type Member struct {
	TeamID    uuid.UUID `db:"team_id" json:"team_id"`
	DoctorID  uuid.UUID `db:"doctor_id" json:"doctor_id"`
	RoleLabel string    `db:"role_label" json:"role_label"`
	JoinedAt  time.Time `db:"joined_at" json:"joined_at"`
}
