package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/talksapp/talks/models"
	"github.com/talksapp/talks/utils"
)

// LikeController toggles like marks on posts and comments.
type LikeController struct {
	db *gorm.DB
}

// NewLikeController creates a LikeController.
func NewLikeController(db *gorm.DB) *LikeController {
	return &LikeController{db: db}
}

// TogglePostLike flips the caller's like on a post and returns the action
// taken plus the fresh count.
func (l *LikeController) TogglePostLike(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40130, "unauthorized")
		return
	}

	postID := ctx.Param("id")
	var post models.Post
	if err := l.db.First(&post, postID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40430, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50090, "failed to load post")
		return
	}

	var existing models.PostLike
	err := l.db.Where("post_id = ? AND user_id = ?", post.ID, userID).First(&existing).Error
	action := ""
	switch {
	case err == nil:
		if err := l.db.Delete(&existing).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50091, "failed to remove like")
			return
		}
		action = "unliked"
	case err == gorm.ErrRecordNotFound:
		like := models.PostLike{PostID: post.ID, UserID: userID}
		if err := l.db.Create(&like).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50092, "failed to record like")
			return
		}
		action = "liked"
	default:
		utils.Error(ctx, http.StatusInternalServerError, 50093, "failed to check like state")
		return
	}

	var count int64
	if err := l.db.Model(&models.PostLike{}).Where("post_id = ?", post.ID).Count(&count).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50094, "failed to count likes")
		return
	}

	utils.Success(ctx, gin.H{"action": action, "like_count": count})
}

// ToggleCommentLike flips the caller's like on a comment.
func (l *LikeController) ToggleCommentLike(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40131, "unauthorized")
		return
	}

	commentID := ctx.Param("id")
	var comment models.Comment
	if err := l.db.First(&comment, commentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40431, "comment not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50095, "failed to load comment")
		return
	}

	var existing models.CommentLike
	err := l.db.Where("comment_id = ? AND user_id = ?", comment.ID, userID).First(&existing).Error
	action := ""
	switch {
	case err == nil:
		if err := l.db.Delete(&existing).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50096, "failed to remove like")
			return
		}
		action = "unliked"
	case err == gorm.ErrRecordNotFound:
		like := models.CommentLike{CommentID: comment.ID, UserID: userID}
		if err := l.db.Create(&like).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50097, "failed to record like")
			return
		}
		action = "liked"
	default:
		utils.Error(ctx, http.StatusInternalServerError, 50098, "failed to check like state")
		return
	}

	var count int64
	if err := l.db.Model(&models.CommentLike{}).Where("comment_id = ?", comment.ID).Count(&count).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50099, "failed to count likes")
		return
	}

	utils.Success(ctx, gin.H{"action": action, "like_count": count})
}
