package models

import "time"

// Hashtag is the per-tag index entry. Tag keeps its leading '#' marker.
// Count increments once per tag occurrence, so a tag used twice in one post
// counts twice.
type Hashtag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Tag       string    `gorm:"size:191;uniqueIndex;not null" json:"tag"`
	Count     int       `gorm:"not null;default:0" json:"count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HashtagPost associates a hashtag with a post. Rows are read back ordered by
// id, which preserves insertion order; duplicate (hashtag, post) pairs are
// allowed on purpose.
type HashtagPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	HashtagID uint      `gorm:"index;not null" json:"hashtag_id"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
