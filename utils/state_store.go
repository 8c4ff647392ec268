package utils

import (
	"context"
	"sync"
	"time"
)

// OAuth login states are single-use CSRF tokens. Redis keeps them valid
// across instances; without Redis they fall back to a process-local map.

const oauthStatePrefix = "oauth:state:"

var (
	localStates   = map[string]time.Time{}
	localStatesMu sync.Mutex
)

// SaveState records a pending OAuth state for one login round-trip.
func SaveState(state string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if rc.Set(ctx, oauthStatePrefix+state, "1", ttl).Err() == nil {
			return
		}
	}
	localStatesMu.Lock()
	localStates[state] = time.Now().Add(ttl)
	localStatesMu.Unlock()
}

// ConsumeState checks a state from the OAuth callback and removes it, so a
// replayed callback fails.
func ConsumeState(state string) bool {
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		key := oauthStatePrefix + state
		if v, err := rc.GetDel(ctx, key).Result(); err == nil {
			return v != ""
		}
		// GETDEL needs Redis 6.2; older servers get the Lua equivalent.
		script := `local v=redis.call('GET', KEYS[1]); if v then redis.call('DEL', KEYS[1]); end; return v`
		if res, err := rc.Eval(ctx, script, []string{key}).Result(); err == nil {
			return res != nil
		}
		return false
	}
	localStatesMu.Lock()
	deadline, ok := localStates[state]
	delete(localStates, state)
	localStatesMu.Unlock()
	return ok && time.Now().Before(deadline)
}
