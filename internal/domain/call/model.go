package call

import (
	"time"

	"github.com/google/uuid"
)

// ScheduledReminderCall maps to the scheduled_reminder_calls table: a future
// call attempt with a target timestamp and attempt counter.
type ScheduledReminderCall struct {
	ID            uuid.UUID   `db:"id" json:"id"`
	PatientID     uuid.UUID   `db:"patient_id" json:"patient_id"`
	MedicationID  uuid.UUID   `db:"medication_id" json:"medication_id"`
	MedicationIDs []uuid.UUID `db:"medication_ids" json:"medication_ids"`
	ScheduledFor  time.Time   `db:"scheduled_for" json:"scheduled_for"`
	AttemptNumber int         `db:"attempt_number" json:"attempt_number"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
}

// ReminderCallLog maps to the reminder_call_logs table: a completed or
// attempted call with the patient's transcript.
type ReminderCallLog struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	PatientID       uuid.UUID  `db:"patient_id" json:"patient_id"`
	MedicationID    *uuid.UUID `db:"medication_id" json:"medication_id,omitempty"`
	CallStatus      string     `db:"call_status" json:"call_status"`
	DurationSeconds *int       `db:"duration_seconds" json:"duration_seconds,omitempty"`
	PatientResponse *string    `db:"patient_response" json:"patient_response,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// LogDetail is a call log joined with the patient and medication names the
// summarization prompt needs.
type LogDetail struct {
	ReminderCallLog
	PatientName      string  `json:"patient_name"`
	MedicationName   *string `json:"medication_name,omitempty"`
	MedicationDosage *string `json:"medication_dosage,omitempty"`
}

// Transcript returns the patient response text, or "" when absent.
func (d *LogDetail) Transcript() string {
	if d.PatientResponse == nil {
		return ""
	}
	return *d.PatientResponse
}
