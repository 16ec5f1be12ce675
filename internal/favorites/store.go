package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	pkgerrors "github.com/aurenecom/storefront-backend/pkg/errors"
)

// Store persists the device favorites set.
type Store interface {
	Load(ctx context.Context, deviceID string) ([]uuid.UUID, error)
	Save(ctx context.Context, deviceID string, productIDs []uuid.UUID) error
	Clear(ctx context.Context, deviceID string) error
}

type kvClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	FavoritesKey(deviceID string) string
}

type redisStore struct {
	kv  kvClient
	ttl time.Duration
}

// NewRedisStore builds a favorites store writing a JSON id list under the
// device favorites key.
func NewRedisStore(kv kvClient, ttl time.Duration) (Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &redisStore{kv: kv, ttl: ttl}, nil
}

func (s *redisStore) Load(ctx context.Context, deviceID string) ([]uuid.UUID, error) {
	raw, err := s.kv.Get(ctx, s.kv.FavoritesKey(deviceID))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return []uuid.UUID{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load favorites")
	}

	var ids []uuid.UUID
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode favorites")
	}
	return ids, nil
}

func (s *redisStore) Save(ctx context.Context, deviceID string, productIDs []uuid.UUID) error {
	payload, err := json.Marshal(productIDs)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode favorites")
	}
	if err := s.kv.Set(ctx, s.kv.FavoritesKey(deviceID), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save favorites")
	}
	return nil
}

func (s *redisStore) Clear(ctx context.Context, deviceID string) error {
	if err := s.kv.Del(ctx, s.kv.FavoritesKey(deviceID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear favorites")
	}
	return nil
}
