package hashtags

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/talksapp/talks/models"
)

// Indexer maintains the tag -> post index backing the hashtag pages and the
// trending listing.
type Indexer struct {
	db *gorm.DB
}

// NewIndexer creates an Indexer on top of the given database handle.
func NewIndexer(db *gorm.DB) *Indexer {
	return &Indexer{db: db}
}

// TaggedPost is the display form of a post reached through its hashtag.
type TaggedPost struct {
	PostID      uint      `json:"post_id"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html"`
	Username    string    `json:"username"`
	CreatedAt   time.Time `json:"created_at"`
}

// TagCount is one entry of the trending listing.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Upsert records postID against every tag occurrence. A tag appearing twice
// in one post is processed twice: count goes up twice and two association
// rows are written. Callers pass the surrounding transaction so the post
// insert and the index update commit together.
func (ix *Indexer) Upsert(tx *gorm.DB, tags []string, postID uint) error {
	for _, tag := range tags {
		var entry models.Hashtag
		err := tx.Where("tag = ?", tag).First(&entry).Error
		switch {
		case err == nil:
			if err := tx.Model(&models.Hashtag{}).Where("id = ?", entry.ID).
				Update("count", gorm.Expr("count + 1")).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			entry = models.Hashtag{Tag: tag, Count: 1}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		default:
			return err
		}

		if err := tx.Create(&models.HashtagPost{HashtagID: entry.ID, PostID: postID}).Error; err != nil {
			return err
		}
	}
	return nil
}

// Lookup fetches the entry for a full tag (marker included) together with its
// posts in insertion order. Post ids that no longer resolve are skipped;
// posts whose author is gone carry the "Unknown User" sentinel. A missing tag
// surfaces as gorm.ErrRecordNotFound.
func (ix *Indexer) Lookup(tag string) (*models.Hashtag, []TaggedPost, error) {
	var entry models.Hashtag
	if err := ix.db.Where("tag = ?", tag).First(&entry).Error; err != nil {
		return nil, nil, err
	}

	var links []models.HashtagPost
	if err := ix.db.Where("hashtag_id = ?", entry.ID).Order("id ASC").Find(&links).Error; err != nil {
		return nil, nil, err
	}

	postIDs := make([]uint, 0, len(links))
	for _, l := range links {
		postIDs = append(postIDs, l.PostID)
	}

	postsByID := map[uint]models.Post{}
	if len(postIDs) > 0 {
		var posts []models.Post
		if err := ix.db.Where("id IN ?", postIDs).Find(&posts).Error; err != nil {
			return nil, nil, err
		}
		for _, p := range posts {
			postsByID[p.ID] = p
		}
	}

	usersByID := map[uint]models.User{}
	if len(postsByID) > 0 {
		userIDs := make([]uint, 0, len(postsByID))
		for _, p := range postsByID {
			userIDs = append(userIDs, p.UserID)
		}
		var users []models.User
		if err := ix.db.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
			return nil, nil, err
		}
		for _, u := range users {
			usersByID[u.ID] = u
		}
	}

	out := make([]TaggedPost, 0, len(links))
	for _, l := range links {
		post, ok := postsByID[l.PostID]
		if !ok {
			continue
		}
		username := "Unknown User"
		if u, ok := usersByID[post.UserID]; ok {
			username = u.Username
		}
		out = append(out, TaggedPost{
			PostID:      post.ID,
			Content:     post.Content,
			ContentHTML: LinkTags(post.Content),
			Username:    username,
			CreatedAt:   post.CreatedAt,
		})
	}
	return &entry, out, nil
}

// Trending returns the top entries by count. Ties break on tag lexical order
// to keep the listing deterministic.
func (ix *Indexer) Trending(limit int) ([]TagCount, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []TagCount
	err := ix.db.Model(&models.Hashtag{}).
		Select("tag, count").
		Order("count DESC").
		Order("tag ASC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}
