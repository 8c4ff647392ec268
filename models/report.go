package models

import "time"

// Report is a user-submitted flag against a post.
type Report struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"index;not null" json:"post_id"`
	Status     string    `gorm:"size:32;default:'Pending'" json:"status"`
	ReportedAt time.Time `gorm:"autoCreateTime" json:"reported_at"`
}
