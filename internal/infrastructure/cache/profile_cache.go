package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	profileKeyPrefix = "profile:view:"
	versionKeyPrefix = "profile:ver:"

	// minVersionTTL keeps a version counter alive well past any entry
	// written against it.
	minVersionTTL = 24 * time.Hour
)

// redisClient is the part of *redis.Client the cache uses.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// ProfileCache stores read projections keyed by account id. A nil client
// turns every call into a no-op so the service runs without Redis.
//
// Every write bumps a per-account version counter. Entries carry the
// version their reader saw before touching the database and are ignored
// once the counter has moved, so a slow reader cannot resurrect a view
// that a concurrent write already replaced.
type ProfileCache struct {
	client redisClient
	ttl    time.Duration
	logger *slog.Logger

	warnedUnavailable atomic.Bool
}

type cachedView struct {
	Version int64               `json:"version"`
	View    *domain.ProfileView `json:"view"`
}

func NewProfileCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *ProfileCache {
	if client == nil {
		return newProfileCache(nil, ttl, logger)
	}
	return newProfileCache(client, ttl, logger)
}

func newProfileCache(client redisClient, ttl time.Duration, logger *slog.Logger) *ProfileCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileCache{client: client, ttl: ttl, logger: logger}
}

func (c *ProfileCache) enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

func (c *ProfileCache) warnUnavailableOnce(err error) {
	if c.warnedUnavailable.CompareAndSwap(false, true) {
		c.logger.Warn("redis unavailable, bypassing profile cache", slog.String("error", err.Error()))
	}
}

func ProfileKey(accountID string) string {
	return profileKeyPrefix + accountID
}

func VersionKey(accountID string) string {
	return versionKeyPrefix + accountID
}

// Version returns the current write counter of an account. Callers read it
// before loading a view and hand it to Set.
func (c *ProfileCache) Version(ctx context.Context, accountID string) int64 {
	if !c.enabled() {
		return 0
	}

	v, err := c.client.Get(ctx, VersionKey(accountID)).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.warnUnavailableOnce(err)
		}
		return 0
	}
	return v
}

// Get reports whether a current cached view was found. Redis failures and
// entries written against an older version count as a miss.
func (c *ProfileCache) Get(ctx context.Context, accountID string) (*domain.ProfileView, bool) {
	if !c.enabled() {
		return nil, false
	}

	vals, err := c.client.MGet(ctx, ProfileKey(accountID), VersionKey(accountID)).Result()
	if err != nil {
		c.warnUnavailableOnce(err)
		return nil, false
	}
	if len(vals) != 2 {
		return nil, false
	}
	raw, ok := vals[0].(string)
	if !ok {
		return nil, false
	}

	var current int64
	if s, ok := vals[1].(string); ok {
		if current, err = strconv.ParseInt(s, 10, 64); err != nil {
			return nil, false
		}
	}

	var entry cachedView
	if err := json.Unmarshal([]byte(raw), &entry); err != nil || entry.View == nil {
		c.logger.Warn("dropping undecodable cache entry", slog.String("account_id", accountID))
		_ = c.client.Del(ctx, ProfileKey(accountID)).Err()
		return nil, false
	}
	if entry.Version != current {
		return nil, false
	}
	return entry.View, true
}

// Set stores view as seen at version. A write that bumped the counter in
// the meantime makes the entry invisible to Get.
func (c *ProfileCache) Set(ctx context.Context, view *domain.ProfileView, version int64) {
	if !c.enabled() || view == nil || view.User == nil {
		return
	}

	b, err := json.Marshal(cachedView{Version: version, View: view})
	if err != nil {
		c.logger.Warn("failed to encode profile view", slog.String("error", err.Error()))
		return
	}
	if err := c.client.Set(ctx, ProfileKey(view.User.ID), b, c.ttl).Err(); err != nil {
		c.warnUnavailableOnce(err)
	}
}

// Invalidate bumps the version of an account and drops its entry. Call it
// after the write has committed.
func (c *ProfileCache) Invalidate(ctx context.Context, accountID string) {
	if !c.enabled() {
		return
	}

	key := VersionKey(accountID)
	if err := c.client.Incr(ctx, key).Err(); err != nil {
		c.warnUnavailableOnce(err)
	} else if err := c.client.Expire(ctx, key, c.versionTTL()).Err(); err != nil {
		c.warnUnavailableOnce(err)
	}
	if err := c.client.Del(ctx, ProfileKey(accountID)).Err(); err != nil {
		c.warnUnavailableOnce(err)
	}
}

func (c *ProfileCache) versionTTL() time.Duration {
	if ttl := 2 * c.ttl; ttl > minVersionTTL {
		return ttl
	}
	return minVersionTTL
}
