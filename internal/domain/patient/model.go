package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. Every patient belongs to exactly one
// hospital; all queries carry the hospital explicitly.
type Patient struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Hospital  string     `db:"hospital" json:"hospital"`
	MRN       string     `db:"mrn" json:"mrn"`
	FirstName string     `db:"first_name" json:"first_name"`
	LastName  string     `db:"last_name" json:"last_name"`
	BirthDate *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Gender    *string    `db:"gender" json:"gender,omitempty"`
	Service   *string    `db:"service" json:"service,omitempty"`
	BedNumber *string    `db:"bed_number" json:"bed_number,omitempty"`
	Room      *string    `db:"room" json:"room,omitempty"`
	Diagnosis *string    `db:"diagnosis" json:"diagnosis,omitempty"`
	Allergies *string    `db:"allergies" json:"allergies,omitempty"`
	Active    bool       `db:"active" json:"active"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}
