package clinician

import (
	"time"

	"github.com/google/uuid"
)

// Clinician maps to the clinician table. UserID is the identity-provider
// subject; handover attribution always goes through it.
type Clinician struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Role      string    `db:"role" json:"role"`
	Hospital  string    `db:"hospital" json:"hospital"`
	Service   *string   `db:"service" json:"service,omitempty"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
