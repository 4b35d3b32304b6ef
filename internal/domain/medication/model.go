package medication

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Medication maps to the medications table. ReminderTime is a 24-hour
// "HH:MM" wall-clock string; ReminderDays holds ISO weekday numbers 1-7
// (Monday=1) and defaults to every day.
type Medication struct {
	ID           uuid.UUID `db:"id" json:"id"`
	PatientID    uuid.UUID `db:"patient_id" json:"patient_id"`
	Name         string    `db:"name" json:"name"`
	Description  *string   `db:"description" json:"description,omitempty"`
	Dosage       *string   `db:"dosage" json:"dosage,omitempty"`
	ReminderTime string    `db:"reminder_time" json:"reminder_time"`
	ReminderDays []int     `db:"reminder_days" json:"reminder_days"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// AllDays is the default reminder schedule.
func AllDays() []int {
	return []int{1, 2, 3, 4, 5, 6, 7}
}

var reminderTimeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ValidReminderTime reports whether s is a 24-hour HH:MM string.
func ValidReminderTime(s string) bool {
	return reminderTimeRe.MatchString(s)
}

// ValidReminderDays reports whether every entry is in [1,7].
func ValidReminderDays(days []int) bool {
	for _, d := range days {
		if d < 1 || d > 7 {
			return false
		}
	}
	return true
}
