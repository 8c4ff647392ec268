package models

import "time"

// PostLike marks that a user liked a post. Existence of the row is the
// "liked" state; toggling inserts or deletes it.
type PostLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index:idx_post_likes_post_user,unique;not null" json:"post_id"`
	UserID    uint      `gorm:"index:idx_post_likes_post_user,unique;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentLike marks that a user liked a comment.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CommentID uint      `gorm:"index:idx_comment_likes_comment_user,unique;not null" json:"comment_id"`
	UserID    uint      `gorm:"index:idx_comment_likes_comment_user,unique;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
