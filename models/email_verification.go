package models

import "time"

// EmailVerification holds a one-time registration code per email address.
// The row is created when the code is sent and removed once registration
// succeeds.
type EmailVerification struct {
	Email     string    `gorm:"primaryKey;size:255" json:"email"`
	Code      string    `gorm:"size:16;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
