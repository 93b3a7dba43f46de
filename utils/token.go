package utils

import (
	"sync"
	"time"
)

var (
	blacklistedTokens = make(map[string]time.Time)
	blacklistMutex    sync.Mutex
)

// BlacklistToken revokes a token until its own expiry.
func BlacklistToken(token string, until time.Time) {
	blacklistMutex.Lock()
	defer blacklistMutex.Unlock()
	blacklistedTokens[token] = until
}

func IsTokenBlacklisted(token string) bool {
	blacklistMutex.Lock()
	defer blacklistMutex.Unlock()

	expiry, exists := blacklistedTokens[token]
	if !exists {
		return false
	}
	if time.Now().Before(expiry) {
		return true
	}
	delete(blacklistedTokens, token)
	return false
}

// PurgeBlacklist drops entries whose tokens have expired anyway.
func PurgeBlacklist(now time.Time) int {
	blacklistMutex.Lock()
	defer blacklistMutex.Unlock()

	n := 0
	for token, expiry := range blacklistedTokens {
		if now.After(expiry) {
			delete(blacklistedTokens, token)
			n++
		}
	}
	return n
}
