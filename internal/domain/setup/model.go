package setup

import (
	"time"

	"github.com/google/uuid"
)

// Request is the payload for provisioning a patient in one call: caregiver
// profile, patient, first medication, and reminder schedule.
type Request struct {
	PatientName           string `json:"patient_name"`
	PatientPhone          string `json:"patient_phone"`
	CaregiverName         string `json:"caregiver_name"`
	CaregiverPhone        string `json:"caregiver_phone"`
	CaregiverEmail        string `json:"caregiver_email"`
	MedicationName        string `json:"medication_name"`
	MedicationDescription string `json:"medication_description"`
	MedicationDosage      string `json:"medication_dosage"`
	ReminderTime          string `json:"reminder_time"`
	ReminderDays          []int  `json:"reminder_days"`
	Timezone              string `json:"timezone"`
}

// Result reports the rows a successful provisioning run created or reused.
type Result struct {
	PatientID          uuid.UUID `json:"patient_id"`
	CaregiverID        uuid.UUID `json:"caregiver_id"`
	MedicationID       uuid.UUID `json:"medication_id"`
	FirstCallScheduled time.Time `json:"first_call_scheduled"`
}
