package caregiver

import (
	"time"

	"github.com/google/uuid"
)

// Caregiver maps to the caregivers table. Each caregiver is linked 1:1 to an
// authenticated account via auth_user_id.
type Caregiver struct {
	ID          uuid.UUID `db:"id" json:"id"`
	AuthUserID  string    `db:"auth_user_id" json:"auth_user_id"`
	Name        string    `db:"name" json:"name"`
	PhoneNumber string    `db:"phone_number" json:"phone_number"`
	Email       *string   `db:"email" json:"email,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
