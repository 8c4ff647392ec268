package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/talksapp/talks/config"
	"github.com/talksapp/talks/utils"
)

// visitorTTL is how long an idle client keeps its bucket before it is reaped.
const visitorTTL = 5 * time.Minute

type visitor struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

var (
	visitors   = map[string]*visitor{}
	visitorsMu sync.Mutex
)

// RateLimitMiddleware limits each client IP with a token bucket sized from
// the configured requests-per-minute.
func RateLimitMiddleware() gin.HandlerFunc {
	perMinute := config.Get().RateLimitPerMinute
	if perMinute < 1 {
		perMinute = 1
	}
	limit := rate.Every(time.Minute / time.Duration(perMinute))
	burst := perMinute / 2
	if burst < 1 {
		burst = 1
	}

	return func(ctx *gin.Context) {
		if !visitorFor(ctx.ClientIP(), limit, burst).Allow() {
			utils.Error(ctx, http.StatusTooManyRequests, 42901, "rate limit exceeded")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

func visitorFor(ip string, limit rate.Limit, burst int) *rate.Limiter {
	now := time.Now()

	visitorsMu.Lock()
	defer visitorsMu.Unlock()

	for key, v := range visitors {
		if now.Sub(v.lastSeen) > visitorTTL {
			delete(visitors, key)
		}
	}

	v, ok := visitors[ip]
	if !ok {
		v = &visitor{bucket: rate.NewLimiter(limit, burst)}
		visitors[ip] = v
	}
	v.lastSeen = now
	return v.bucket
}
