package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered member. Passwords are stored as bcrypt hashes only.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:255" json:"-"`
	Bio          string     `gorm:"size:512" json:"bio"`
	Contact      string     `gorm:"size:64" json:"contact"`
	Provider     string     `gorm:"size:32" json:"provider"`
	ProviderID   string     `gorm:"size:255" json:"provider_id"`
	RegisterIP   string     `gorm:"size:45" json:"-"`
	Perks        int        `gorm:"default:0" json:"perks"`
	LoginStreak  int        `gorm:"default:0" json:"login_streak"`
	LastClaimAt  *time.Time `json:"last_claim_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Posts        []Post     `json:"-"`
	Comments     []Comment  `json:"-"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
