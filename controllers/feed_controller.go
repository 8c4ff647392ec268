package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/talksapp/talks/feed"
	"github.com/talksapp/talks/models"
	"github.com/talksapp/talks/utils"
)

// FeedController serves the aggregated home feed and per-user profiles.
type FeedController struct {
	db *gorm.DB
}

// NewFeedController creates a FeedController.
func NewFeedController(db *gorm.DB) *FeedController {
	return &FeedController{db: db}
}

// feedSelect is the outer join powering the feed: one row per comment plus
// one null-comment row for each post without comments. DISTINCT counts keep
// the like/comment totals stable across the join fan-out.
const feedSelect = "SELECT posts.id AS post_id, posts.content AS post_content, posts.created_at AS post_created_at, " +
	"users.username AS post_user, " +
	"COUNT(DISTINCT post_likes.id) AS like_count, " +
	"COUNT(DISTINCT comments.id) AS comment_count, " +
	"comments.id AS comment_id, comments.content AS comment_content, comment_users.username AS comment_user, " +
	"COUNT(DISTINCT comment_likes.id) AS comment_like_count " +
	"FROM posts " +
	"JOIN users ON posts.user_id = users.id " +
	"LEFT JOIN post_likes ON post_likes.post_id = posts.id " +
	"LEFT JOIN comments ON comments.post_id = posts.id " +
	"LEFT JOIN users AS comment_users ON comments.user_id = comment_users.id " +
	"LEFT JOIN comment_likes ON comment_likes.comment_id = comments.id "

const feedGroupOrder = "GROUP BY posts.id, comments.id " +
	"ORDER BY posts.created_at DESC, comments.created_at ASC"

// Feed returns every post with its comments, newest post first.
func (f *FeedController) Feed(ctx *gin.Context) {
	var rows []feed.Row
	if err := f.db.Raw(feedSelect + feedGroupOrder).Scan(&rows).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50080, "failed to load feed")
		return
	}

	liked := f.likedByViewer(ctx, rows)
	utils.Success(ctx, gin.H{"posts": feed.Aggregate(rows, time.Now(), liked)})
}

// UserPosts returns the feed filtered to a single author's posts.
func (f *FeedController) UserPosts(ctx *gin.Context) {
	username := strings.TrimSpace(ctx.Param("username"))
	if username == "" {
		utils.Error(ctx, http.StatusBadRequest, 40080, "missing username")
		return
	}

	var user models.User
	if err := f.db.Where("username = ?", username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50081, "failed to load user")
		return
	}

	var rows []feed.Row
	query := feedSelect + "WHERE posts.user_id = ? " + feedGroupOrder
	if err := f.db.Raw(query, user.ID).Scan(&rows).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50082, "failed to load posts")
		return
	}

	liked := f.likedByViewer(ctx, rows)
	utils.Success(ctx, gin.H{
		"user":  sanitizeUserResponse(user),
		"posts": feed.Aggregate(rows, time.Now(), liked),
	})
}

// likedByViewer resolves which of the listed posts and comments the current
// viewer has liked, one batched query per kind. Anonymous viewers get the
// zero value.
func (f *FeedController) likedByViewer(ctx *gin.Context, rows []feed.Row) feed.Liked {
	userID, ok := getUserID(ctx)
	if !ok || len(rows) == 0 {
		return feed.Liked{}
	}

	postIDs := make([]uint, 0, len(rows))
	commentIDs := make([]uint, 0, len(rows))
	for _, r := range rows {
		postIDs = append(postIDs, r.PostID)
		if r.CommentID != nil {
			commentIDs = append(commentIDs, *r.CommentID)
		}
	}
	postIDs = utils.UniqueUint(postIDs)

	liked := feed.Liked{
		Posts:    make(map[uint]bool, len(postIDs)),
		Comments: make(map[uint]bool, len(commentIDs)),
	}

	var likedPosts []uint
	if err := f.db.Model(&models.PostLike{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &likedPosts).Error; err == nil {
		for _, id := range likedPosts {
			liked.Posts[id] = true
		}
	}

	if len(commentIDs) > 0 {
		var likedComments []uint
		if err := f.db.Model(&models.CommentLike{}).
			Where("user_id = ? AND comment_id IN ?", userID, commentIDs).
			Pluck("comment_id", &likedComments).Error; err == nil {
			for _, id := range likedComments {
				liked.Comments[id] = true
			}
		}
	}

	return liked
}
