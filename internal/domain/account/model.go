package account

import (
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careloop/internal/platform/auth"
)

// User is an authentication identity. TenantID points at the hospital for
// admins and doctors; it is nil for superadmins and independent parents.
type User struct {
	ID        uuid.UUID  `json:"id"`
	Role      auth.Role  `json:"role"`
	Email     string     `json:"email"`
	TenantID  *uuid.UUID `json:"tenant_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
