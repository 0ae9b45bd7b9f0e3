package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Charlesbasis/portfolio-app-sub000/internal/domain/onboarding"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/apperror"
)

// DraftTTL bounds how long an abandoned wizard session survives. Expiry is
// the only cleanup; nothing durable is written before completion.
const DraftTTL = 24 * time.Hour

// AvailabilityCacheTTL keeps username probe results hot for a short window
// so repeated checks of an unchanged candidate skip the database.
const AvailabilityCacheTTL = 30 * time.Second

type redisDraftStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisDraftStore(rdb *redis.Client) onboarding.Store {
	return &redisDraftStore{rdb: rdb, ttl: DraftTTL}
}

func sessionKey(ownerID uuid.UUID) string {
	return "onboarding:session:" + ownerID.String()
}

func (s *redisDraftStore) Get(ctx context.Context, ownerID uuid.UUID) (*onboarding.Session, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, onboarding.ErrSessionNotFound
		}
		return nil, apperror.NewInternal("failed to read onboarding session", err)
	}

	session := &onboarding.Session{}
	if err := json.Unmarshal(raw, session); err != nil {
		return nil, apperror.NewInternal("failed to decode onboarding session", err)
	}
	return session, nil
}

func (s *redisDraftStore) Save(ctx context.Context, session *onboarding.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return apperror.NewInternal("failed to encode onboarding session", err)
	}
	if err := s.rdb.Set(ctx, sessionKey(session.OwnerID), raw, s.ttl).Err(); err != nil {
		return apperror.NewInternal("failed to store onboarding session", err)
	}
	return nil
}

func (s *redisDraftStore) Delete(ctx context.Context, ownerID uuid.UUID) error {
	if err := s.rdb.Del(ctx, sessionKey(ownerID)).Err(); err != nil {
		return apperror.NewInternal("failed to delete onboarding session", err)
	}
	return nil
}

// RedisAvailabilityCache memoizes username availability checks.
type RedisAvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisAvailabilityCache(rdb *redis.Client) *RedisAvailabilityCache {
	return &RedisAvailabilityCache{rdb: rdb, ttl: AvailabilityCacheTTL}
}

func availabilityKey(username string) string {
	return "onboarding:username:" + username
}

// Get returns (available, hit, err).
func (c *RedisAvailabilityCache) Get(ctx context.Context, username string) (bool, bool, error) {
	val, err := c.rdb.Get(ctx, availabilityKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, false, nil
		}
		return false, false, err
	}
	return val == "1", true, nil
}

func (c *RedisAvailabilityCache) Set(ctx context.Context, username string, available bool) error {
	val := "0"
	if available {
		val = "1"
	}
	return c.rdb.Set(ctx, availabilityKey(username), val, c.ttl).Err()
}
