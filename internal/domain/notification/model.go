package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an in-app message for one user. Rows are append-only
// except for the read flag, which only moves false→true.
type Notification struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Href        string    `json:"href,omitempty"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}
