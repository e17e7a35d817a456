package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const refreshTokenTTL = 7 * 24 * time.Hour

type refreshToken struct {
	Username  string
	ExpiresAt time.Time
}

var (
	refreshTokens = map[string]refreshToken{}
	mu            sync.Mutex
)

// IssueRefreshToken creates an opaque refresh token for a username.
func IssueRefreshToken(username string) string {
	token := uuid.NewString()
	mu.Lock()
	refreshTokens[token] = refreshToken{
		Username:  username,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	mu.Unlock()
	return token
}

// RedeemRefreshToken returns the username a token was issued for and consumes
// it. Expired or unknown tokens return false.
func RedeemRefreshToken(token string) (string, bool) {
	mu.Lock()
	defer mu.Unlock()

	rt, ok := refreshTokens[token]
	if !ok {
		return "", false
	}
	delete(refreshTokens, token)
	if time.Now().After(rt.ExpiresAt) {
		return "", false
	}
	return rt.Username, true
}

// StartRefreshTokenCleaner drops expired tokens on a fixed interval.
// Run it as a goroutine from main.
func StartRefreshTokenCleaner(interval time.Duration) {
	for {
		time.Sleep(interval)
		now := time.Now()
		mu.Lock()
		for token, rt := range refreshTokens {
			if now.After(rt.ExpiresAt) {
				delete(refreshTokens, token)
			}
		}
		mu.Unlock()
	}
}
