package utils

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/talksapp/talks/config"
)

// Signup abuse counters live in Redis under short-TTL keys. Every check
// fails open: if Redis is down, registration still works.

func signupKey(parts ...string) string {
	return "signup:" + strings.Join(parts, ":")
}

// RegistrationCooldownTry enforces a short cooldown between attempts per IP.
func RegistrationCooldownTry(ip string) bool {
	sec := config.Get().RegisterAttemptCooldownSec
	if sec <= 0 {
		return true
	}
	cli := GetRedis()
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	ok, err := cli.SetNX(ctx, signupKey("cooldown", ip), "1", time.Duration(sec)*time.Second).Result()
	if err != nil {
		return true
	}
	return ok
}

// RegistrationDailyLimitCheck allows up to N successful registrations per day per IP.
func RegistrationDailyLimitCheck(ip string) bool {
	limit := config.Get().RegisterMaxPerIPPerDay
	if limit <= 0 {
		return true
	}
	cli := GetRedis()
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	key := signupKey("day", ip, time.Now().Format("20060102"))
	n, err := cli.Get(ctx, key).Int()
	if err == redis.Nil || err != nil {
		return true
	}
	return n < limit
}

// RegistrationDailyIncrement bumps the success counter for today.
func RegistrationDailyIncrement(ip string) {
	cli := GetRedis()
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	key := signupKey("day", ip, time.Now().Format("20060102"))
	if err := cli.Incr(ctx, key).Err(); err == nil {
		// expire at local end of day
		ttl := time.Until(time.Now().Truncate(24 * time.Hour).Add(24 * time.Hour))
		_ = cli.Expire(ctx, key, ttl).Err()
	}
}

// RegistrationFailRecord increments the per-hour failure count and returns it.
func RegistrationFailRecord(ip string) int {
	cli := GetRedis()
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	key := signupKey("fail", ip, time.Now().Format("2006010215"))
	n, err := cli.Incr(ctx, key).Result()
	if err != nil {
		return 0
	}
	_ = cli.Expire(ctx, key, time.Hour).Err()
	return int(n)
}

// RegistrationIsBanned reports whether the IP is under a temporary ban.
func RegistrationIsBanned(ip string) bool {
	cli := GetRedis()
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	exists, err := cli.Exists(ctx, signupKey("ban", ip)).Result()
	if err != nil {
		return false
	}
	return exists > 0
}

// RegistrationBan places a temporary ban on the IP.
func RegistrationBan(ip string) {
	minutes := config.Get().RegisterTempBanMinutes
	if minutes <= 0 {
		minutes = 60
	}
	cli := GetRedis()
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_ = cli.Set(ctx, signupKey("ban", ip), "1", time.Duration(minutes)*time.Minute).Err()
}
