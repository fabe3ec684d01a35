package storage

import (
	"fmt"
	"time"
)

const RateLimitWindow = time.Minute

// RateLimitKey buckets requests per client per minute window.
func RateLimitKey(clientID string, now time.Time) string {
	return fmt.Sprintf("ratelimit:%s:%d", clientID, now.Unix()/int64(RateLimitWindow/time.Second))
}

func PreferencesKey(key string) string {
	return "prefs:" + key
}
