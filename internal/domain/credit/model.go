package credit

import (
	"time"

	"github.com/google/uuid"
)

// Balance is a caregiver's remaining call minutes.
type Balance struct {
	CaregiverID    uuid.UUID `db:"caregiver_id" json:"caregiver_id"`
	BalanceMinutes float64   `db:"balance_minutes" json:"balance_minutes"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Usage records the minutes deducted for one completed call.
type Usage struct {
	ID                   uuid.UUID  `db:"id" json:"id"`
	CaregiverID          uuid.UUID  `db:"caregiver_id" json:"caregiver_id"`
	PatientID            *uuid.UUID `db:"patient_id" json:"patient_id,omitempty"`
	CallLogID            *uuid.UUID `db:"call_log_id" json:"call_log_id,omitempty"`
	TotalDurationSeconds int        `db:"total_duration_seconds" json:"total_duration_seconds"`
	BillableSeconds      int        `db:"billable_seconds" json:"billable_seconds"`
	MinutesDeducted      float64    `db:"minutes_deducted" json:"minutes_deducted"`
	BalanceAfter         float64    `db:"balance_after" json:"balance_after"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
}

// Purchase records a credit pack bought by a caregiver.
type Purchase struct {
	ID               uuid.UUID `db:"id" json:"id"`
	CaregiverID      uuid.UUID `db:"caregiver_id" json:"caregiver_id"`
	PackLabel        string    `db:"pack_label" json:"pack_label"`
	MinutesPurchased int       `db:"minutes_purchased" json:"minutes_purchased"`
	PriceCents       int       `db:"price_cents" json:"price_cents"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}
