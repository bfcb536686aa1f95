package hospital

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careloop/internal/platform/auth"
)

// Hospital is the tenant: the unit of resource ownership. Its id is the
// tenant identifier carried by its admin's claims.
type Hospital struct {
	ID        uuid.UUID          `db:"id" json:"id"`
	Code      string             `db:"code" json:"code"`
	Name      string             `db:"name" json:"name"`
	Status    auth.AccountStatus `db:"status" json:"status"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt time.Time          `db:"updated_at" json:"updated_at"`
}

// NormalizeCode lowercases and trims a hospital code; code uniqueness is
// case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
