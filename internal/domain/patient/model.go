package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patients table. Phone numbers are E.164 and unique:
// a phone number identifies at most one patient.
type Patient struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	PhoneNumber string    `db:"phone_number" json:"phone_number"`
	Timezone    string    `db:"timezone" json:"timezone"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Link maps to the patient_caregivers link table.
type Link struct {
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	CaregiverID uuid.UUID `db:"caregiver_id" json:"caregiver_id"`
	IsPrimary   bool      `db:"is_primary" json:"is_primary"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
