package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/talksapp/talks/hashtags"
	"github.com/talksapp/talks/utils"
)

// HashtagController serves tag pages and the trending list from the
// hashtag index.
type HashtagController struct {
	indexer *hashtags.Indexer
}

// NewHashtagController creates a HashtagController.
func NewHashtagController(indexer *hashtags.Indexer) *HashtagController {
	return &HashtagController{indexer: indexer}
}

// GetHashtag returns a tag's usage count and the posts that used it, oldest
// first. The path parameter carries the tag name without the '#'.
func (h *HashtagController) GetHashtag(ctx *gin.Context) {
	name := strings.TrimSpace(ctx.Param("tag"))
	if name == "" {
		utils.Error(ctx, http.StatusBadRequest, 40090, "missing tag")
		return
	}

	cacheKey := "cache:hashtag:" + name
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	entry, posts, err := h.indexer.Lookup("#" + name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40440, "hashtag not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50100, "failed to load hashtag")
		return
	}

	payload := gin.H{"hashtag": entry, "posts": posts}
	wrapper := struct {
		Code    int         `json:"code"`
		Message string      `json:"message"`
		Data    interface{} `json:"data"`
	}{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, 5*time.Minute)

	utils.Success(ctx, payload)
}

// Trending returns the ten most used hashtags.
func (h *HashtagController) Trending(ctx *gin.Context) {
	const cacheKey = "cache:trending"
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	tags, err := h.indexer.Trending(10)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50101, "failed to load trending tags")
		return
	}

	payload := gin.H{"trending": tags}
	wrapper := struct {
		Code    int         `json:"code"`
		Message string      `json:"message"`
		Data    interface{} `json:"data"`
	}{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, 5*time.Minute)

	utils.Success(ctx, payload)
}
