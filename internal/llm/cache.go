package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"alcyxob/training-planner/internal/domain"
	"alcyxob/training-planner/internal/logger"
)

const draftKeyPrefix = "planner:drafts:"

// Drafter is the contract CachedDrafter decorates.
type Drafter interface {
	DraftWorkouts(ctx context.Context, req domain.DraftRequest) ([]domain.DraftWorkout, error)
}

// draftStore is the subset of the redis client the cache needs.
type draftStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedDrafter keeps raw drafts in redis, keyed by a hash of the request.
// Cache failures are logged and never fail the call.
type CachedDrafter struct {
	next  Drafter
	store draftStore
	ttl   time.Duration
	log   *logger.Logger
}

func NewCachedDrafter(next Drafter, rdb *redis.Client, ttl time.Duration, log *logger.Logger) *CachedDrafter {
	return newCachedDrafter(next, rdb, ttl, log)
}

func newCachedDrafter(next Drafter, store draftStore, ttl time.Duration, log *logger.Logger) *CachedDrafter {
	return &CachedDrafter{next: next, store: store, ttl: ttl, log: log}
}

// DraftKey hashes the parts of req that influence the drafts.
func DraftKey(req domain.DraftRequest) (string, error) {
	req.Profile.UserID = ""
	req.Profile.UpdatedAt = time.Time{}
	data, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return draftKeyPrefix + hex.EncodeToString(sum[:]), nil
}

func (c *CachedDrafter) DraftWorkouts(ctx context.Context, req domain.DraftRequest) ([]domain.DraftWorkout, error) {
	key, err := DraftKey(req)
	if err != nil {
		return c.next.DraftWorkouts(ctx, req)
	}

	raw, err := c.store.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var drafts []domain.DraftWorkout
		if jerr := json.Unmarshal(raw, &drafts); jerr == nil {
			c.log.Debug("draft cache hit", "key", key, "week", req.Week)
			return drafts, nil
		}
		c.log.Warn("discarding unreadable cached drafts", "key", key)
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn("draft cache read failed", "key", key, "error", err)
	}

	drafts, err := c.next.DraftWorkouts(ctx, req)
	if err != nil {
		return nil, err
	}
	if data, jerr := json.Marshal(drafts); jerr == nil {
		if serr := c.store.Set(ctx, key, data, c.ttl).Err(); serr != nil {
			c.log.Warn("draft cache write failed", "key", key, "error", serr)
		}
	}
	return drafts, nil
}
