package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/talksapp/talks/config"
	"github.com/talksapp/talks/hashtags"
	"github.com/talksapp/talks/middleware"
	"github.com/talksapp/talks/models"
	"github.com/talksapp/talks/utils"
)

// PostController manages posts, comments and reports.
type PostController struct {
	db      *gorm.DB
	indexer *hashtags.Indexer
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB, indexer *hashtags.Indexer) *PostController {
	return &PostController{db: db, indexer: indexer}
}

// CreatePost stores a new post and indexes its hashtags in one transaction.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	content := utils.Sanitize(strings.TrimSpace(req.Content))
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40021, "content cannot be empty")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	post := models.Post{
		UserID:  userID,
		Content: content,
	}

	tags := hashtags.Extract(content)
	err := p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		return p.indexer.Upsert(tx, tags, post.ID)
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to create post")
		return
	}

	if err := p.db.Preload("User").First(&post, post.ID).Error; err == nil {
		post.Comments = []models.Comment{}
	}

	// New posts change the feed, touched tag pages and the trending list
	utils.InvalidateByPrefix("cache:trending")
	for _, tag := range tags {
		utils.InvalidateByPrefix("cache:hashtag:" + strings.TrimPrefix(tag, "#"))
	}

	utils.Success(ctx, gin.H{"post": post})
}

// UpdatePost lets the author replace the post content. Hashtags are not
// reindexed on edit; the index keeps the tags from creation time.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid request payload")
		return
	}

	content := utils.Sanitize(strings.TrimSpace(req.Content))
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40025, "content cannot be empty")
		return
	}

	postID := ctx.Param("id")
	var post models.Post
	if err := p.db.First(&post, postID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40403, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50025, "failed to load post")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40111, "unauthorized")
		return
	}
	if post.UserID != userID {
		utils.Error(ctx, http.StatusForbidden, 40301, "you can only update your own posts")
		return
	}

	post.Content = content
	if err := p.db.Save(&post).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50026, "failed to update post")
		return
	}

	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost removes a post. Comments, likes and hashtag index rows stay
// behind; readers skip references that no longer resolve.
func (p *PostController) DeletePost(ctx *gin.Context) {
	postID := ctx.Param("id")
	var post models.Post
	if err := p.db.First(&post, postID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40404, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50027, "failed to load post")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40112, "unauthorized")
		return
	}
	if post.UserID != userID && !isAdmin(ctx) {
		utils.Error(ctx, http.StatusForbidden, 40302, "you can only delete your own posts")
		return
	}

	if err := p.db.Delete(&post).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50028, "failed to delete post")
		return
	}

	utils.InvalidateByPrefix("cache:trending")
	for _, tag := range hashtags.Extract(post.Content) {
		utils.InvalidateByPrefix("cache:hashtag:" + strings.TrimPrefix(tag, "#"))
	}

	utils.Success(ctx, gin.H{"message": "post deleted"})
}

// CreateComment adds a reply to a post.
func (p *PostController) CreateComment(ctx *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid request payload")
		return
	}

	content := utils.Sanitize(strings.TrimSpace(req.Content))
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40023, "content cannot be empty")
		return
	}

	postID := ctx.Param("id")
	var post models.Post
	if err := p.db.First(&post, postID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40402, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to load post")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	comment := models.Comment{
		PostID:  post.ID,
		UserID:  userID,
		Content: content,
	}
	if err := p.db.Create(&comment).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50025, "failed to create comment")
		return
	}

	if err := p.db.Preload("User").First(&comment, comment.ID).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50026, "failed to load comment")
		return
	}

	utils.Success(ctx, gin.H{"comment": comment})
}

// DeleteComment lets the comment owner or an admin delete a comment.
func (p *PostController) DeleteComment(ctx *gin.Context) {
	cid := strings.TrimSpace(ctx.Param("id"))
	if cid == "" {
		utils.Error(ctx, http.StatusBadRequest, 40070, "missing comment id")
		return
	}
	var cmt models.Comment
	if err := p.db.First(&cmt, cid).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40420, "comment not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50070, "failed to load comment")
		return
	}

	uid, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40120, "unauthorized")
		return
	}
	if cmt.UserID != uid && !isAdmin(ctx) {
		utils.Error(ctx, http.StatusForbidden, 40320, "you can only delete your own comment")
		return
	}
	if err := p.db.Delete(&cmt).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50071, "failed to delete comment")
		return
	}
	utils.Success(ctx, gin.H{"message": "comment deleted"})
}

// ReportPost files a moderation report against a post. No authentication is
// required and repeat reports are accepted as separate rows.
func (p *PostController) ReportPost(ctx *gin.Context) {
	postID := ctx.Param("id")
	var post models.Post
	if err := p.db.First(&post, postID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40405, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50029, "failed to load post")
		return
	}

	report := models.Report{PostID: post.ID, Status: "Pending"}
	if err := p.db.Create(&report).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to file report")
		return
	}

	utils.Success(ctx, gin.H{"message": "report received", "report_id": report.ID})
}

func parsePagination(pageStr, sizeStr string) (int, int) {
	page := 1
	pageSize := 10
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
		pageSize = s
	}
	return page, pageSize
}

func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}

func isAdmin(ctx *gin.Context) bool {
	unameVal, exists := ctx.Get(middleware.ContextUsernameKey)
	if !exists {
		return false
	}
	uname, _ := unameVal.(string)
	if uname == "" {
		return false
	}
	cfg := config.Get()
	for _, u := range cfg.AdminUsernames {
		if strings.EqualFold(strings.TrimSpace(u), uname) {
			return true
		}
	}
	return false
}
