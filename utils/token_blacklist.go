package utils

import (
	"context"
	"sync"
	"time"
)

// Logout revokes a JWT before its natural expiry by blacklisting it for the
// remaining lifetime. Redis-backed with a process-local fallback; lookups
// fail open so a Redis outage cannot lock everyone out.

const blacklistPrefix = "jwt:blacklist:"

var (
	revokedLocal   = map[string]time.Time{}
	revokedLocalMu sync.Mutex
)

// BlacklistToken marks a token revoked until it would have expired anyway.
func BlacklistToken(token string, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if rc.Set(ctx, blacklistPrefix+token, "1", ttl).Err() == nil {
			return
		}
	}
	revokedLocalMu.Lock()
	revokedLocal[token] = expiresAt
	revokedLocalMu.Unlock()
}

// IsTokenBlacklisted reports whether the token was revoked by a logout.
func IsTokenBlacklisted(token string) bool {
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if n, err := rc.Exists(ctx, blacklistPrefix+token).Result(); err == nil {
			return n > 0
		}
	}
	revokedLocalMu.Lock()
	defer revokedLocalMu.Unlock()
	deadline, ok := revokedLocal[token]
	if !ok {
		return false
	}
	if time.Now().After(deadline) {
		delete(revokedLocal, token)
		return false
	}
	return true
}
