package feed

import (
	"time"

	"github.com/talksapp/talks/hashtags"
)

// Row is one record of the posts-to-comments outer join feeding the
// aggregator: one row per comment, and exactly one row with null comment
// fields for a post without comments. Rows arrive ordered by post recency
// descending, then comment age ascending.
type Row struct {
	PostID           uint      `gorm:"column:post_id"`
	PostContent      string    `gorm:"column:post_content"`
	PostCreatedAt    time.Time `gorm:"column:post_created_at"`
	PostUser         string    `gorm:"column:post_user"`
	LikeCount        int       `gorm:"column:like_count"`
	CommentCount     int       `gorm:"column:comment_count"`
	CommentID        *uint     `gorm:"column:comment_id"`
	CommentContent   *string   `gorm:"column:comment_content"`
	CommentUser      *string   `gorm:"column:comment_user"`
	CommentLikeCount int       `gorm:"column:comment_like_count"`
}

// CommentView is the display form of one comment.
type CommentView struct {
	CommentID uint   `json:"comment_id"`
	Username  string `json:"username"`
	Content   string `json:"content"`
	LikeCount int    `json:"like_count"`
	IsLiked   bool   `json:"is_liked"`
}

// PostView is the display form of one post with its comments.
type PostView struct {
	PostID     uint          `json:"post_id"`
	ContentRaw string        `json:"post_content_raw"`
	Content    string        `json:"post_content"`
	CreatedAgo string        `json:"created_at"`
	Username   string        `json:"username"`
	Cost       int           `json:"post_cost"`
	LikeCount  int           `json:"like_count"`
	IsLiked    bool          `json:"is_liked"`
	Comments   []CommentView `json:"comments"`
}

// Liked carries the post and comment ids the current viewer has liked,
// resolved in one batched lookup per kind. The zero value stands for an
// anonymous viewer: every flag stays false.
type Liked struct {
	Posts    map[uint]bool
	Comments map[uint]bool
}

// Aggregate merges join rows into post view-objects. Posts keep their
// first-appearance order; the first row for a post initializes its view and
// every row with a comment id appends one comment in row order. Hashtags in
// post content are rewritten as links; comment content is left alone.
func Aggregate(rows []Row, now time.Time, liked Liked) []PostView {
	order := make([]uint, 0, len(rows))
	byID := make(map[uint]*PostView, len(rows))

	for _, r := range rows {
		pv, ok := byID[r.PostID]
		if !ok {
			pv = &PostView{
				PostID:     r.PostID,
				ContentRaw: r.PostContent,
				Content:    hashtags.LinkTags(r.PostContent),
				CreatedAgo: TimeAgo(r.PostCreatedAt, now),
				Username:   r.PostUser,
				Cost:       PostCost(r.LikeCount, r.CommentCount),
				LikeCount:  r.LikeCount,
				IsLiked:    liked.Posts[r.PostID],
				Comments:   []CommentView{},
			}
			byID[r.PostID] = pv
			order = append(order, r.PostID)
		}

		if r.CommentID != nil {
			cv := CommentView{
				CommentID: *r.CommentID,
				LikeCount: r.CommentLikeCount,
				IsLiked:   liked.Comments[*r.CommentID],
			}
			if r.CommentUser != nil {
				cv.Username = *r.CommentUser
			}
			if r.CommentContent != nil {
				cv.Content = *r.CommentContent
			}
			pv.Comments = append(pv.Comments, cv)
		}
	}

	out := make([]PostView, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out
}
