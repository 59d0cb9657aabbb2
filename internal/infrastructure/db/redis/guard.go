package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nyaaysathi/legal-api/internal/core/ports"
)

const defaultGuardTTL = 30 * time.Second

// SubmissionGuard is a short-lived lock on an application submission key.
// Key format: <prefix>:<kind>:[<law_firm_id>:]<email>
type SubmissionGuard struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ ports.SubmissionGuard = (*SubmissionGuard)(nil)

// NewSubmissionGuard wraps client. A zero ttl uses the default.
func NewSubmissionGuard(client *redis.Client, prefix string, ttl time.Duration) *SubmissionGuard {
	if ttl <= 0 {
		ttl = defaultGuardTTL
	}
	if prefix == "" {
		prefix = "submission"
	}
	return &SubmissionGuard{client: client, prefix: prefix, ttl: ttl}
}

// Acquire reports whether the caller now holds key. The lock expires on its
// own if Release is never called.
func (g *SubmissionGuard) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(key), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire submission guard: %w", err)
	}
	return ok, nil
}

func (g *SubmissionGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, g.key(key)).Err(); err != nil {
		return fmt.Errorf("release submission guard: %w", err)
	}
	return nil
}

func (g *SubmissionGuard) key(key string) string {
	return g.prefix + ":" + key
}
