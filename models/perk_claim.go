package models

import "time"

// PerkClaim stores daily perk claims for users.
type PerkClaim struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"index;not null" json:"user_id"`
	ClaimDate      time.Time `gorm:"index;not null" json:"claim_date"`
	PerksAwarded   int       `json:"perks_awarded"`
	StreakAchieved int       `json:"streak_achieved"`
	CreatedAt      time.Time `json:"created_at"`
}
