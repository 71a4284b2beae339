package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/admin-console/internal/core/ports"
)

// guardTTL bounds how long a crashed submission can block a retry.
const guardTTL = 30 * time.Second

// SubmissionGuard marks form submissions as in flight.
// Key format: inflight:<key>
type SubmissionGuard struct {
	client *redis.Client
}

var _ ports.SubmissionGuard = (*SubmissionGuard)(nil)

// NewSubmissionGuard creates a SubmissionGuard wrapping the given Redis client.
func NewSubmissionGuard(client *redis.Client) *SubmissionGuard {
	return &SubmissionGuard{client: client}
}

// Acquire reports whether the caller now owns key. False means another
// submission for the same key has not resolved yet.
func (g *SubmissionGuard) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(key), "1", guardTTL).Result()
	if err != nil {
		return false, fmt.Errorf("acquire guard: %w", err)
	}
	return ok, nil
}

// Release frees key.
func (g *SubmissionGuard) Release(ctx context.Context, key string) error {
	return g.client.Del(ctx, g.key(key)).Err()
}

func (g *SubmissionGuard) key(key string) string {
	return "inflight:" + strings.ToLower(key)
}
