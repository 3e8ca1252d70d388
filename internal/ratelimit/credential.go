package ratelimit

import (
	"context"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"

	"github.com/menuku/menuku/internal/config"
)

const keyCredential = "auth:credential:%s"

const (
	credentialRate  = 0.5
	credentialBurst = 10
)

// CredentialLimiter throttles credential endpoints (signup, signin) per
// client address to slow down brute force attempts. A nil limiter allows
// everything, so deployments without Redis keep working.
type CredentialLimiter struct {
	bucket *TokenBucket
}

func NewCredentialLimiter(cfg config.Config) *CredentialLimiter {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
	})
	return &CredentialLimiter{bucket: NewTokenBucket(client)}
}

func (l *CredentialLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

func (l *CredentialLimiter) Allow(ctx context.Context, clientAddr string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	key := fmt.Sprintf(keyCredential, strings.TrimSpace(clientAddr))
	return l.bucket.Allow(ctx, key, credentialRate, credentialBurst)
}
