package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/talksapp/talks/models"
)

// PageViewRecorder counts successful GET requests per day and path, feeding
// the landing stats. Writes go through an upsert so concurrent requests for
// the same (date, path) never collide.
func PageViewRecorder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if !countablePageView(c) {
			return
		}

		// DATE column stores local midnight
		now := time.Now().In(time.Local)
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

		_ = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "path"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("count + 1"), "updated_at": time.Now()}),
		}).Create(&models.PageView{Date: day, Path: c.Request.URL.Path, Count: 1}).Error
	}
}

// countablePageView filters out writes, errors, and plumbing endpoints that
// would skew the numbers (health checks, the stats page itself, auth traffic).
func countablePageView(c *gin.Context) bool {
	if c.Request.Method != "GET" {
		return false
	}
	if status := c.Writer.Status(); status < 200 || status >= 400 {
		return false
	}
	path := c.Request.URL.Path
	if path == "/health" {
		return false
	}
	for _, skip := range []string{"/stats", "/auth/", "/captcha"} {
		if strings.Contains(path, skip) {
			return false
		}
	}
	return true
}
