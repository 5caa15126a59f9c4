package soap

import (
	"time"

	"github.com/google/uuid"
)

// Note maps to the soap_note table. Notes are append-only; the clinical
// record never edits a signed note in place.
type Note struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	Hospital    string    `db:"hospital" json:"hospital"`
	AuthorID    uuid.UUID `db:"author_id" json:"author_id"`
	Subjective  *string   `db:"subjective" json:"subjective,omitempty"`
	Objective   *string   `db:"objective" json:"objective,omitempty"`
	Assessment  *string   `db:"assessment" json:"assessment,omitempty"`
	Plan        *string   `db:"plan" json:"plan,omitempty"`
	BP          *string   `db:"bp" json:"bp,omitempty"`
	HeartRate   *int      `db:"heart_rate" json:"heart_rate,omitempty"`
	RespRate    *int      `db:"resp_rate" json:"resp_rate,omitempty"`
	Temperature *float64  `db:"temperature" json:"temperature,omitempty"`
	O2Sat       *int      `db:"o2_sat" json:"o2_sat,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
