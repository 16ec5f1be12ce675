package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pkgerrors "github.com/aurenecom/storefront-backend/pkg/errors"
)

// Store persists device carts.
type Store interface {
	Load(ctx context.Context, deviceID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Clear(ctx context.Context, deviceID string) error
}

type kvClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(deviceID string) string
}

type redisStore struct {
	kv  kvClient
	ttl time.Duration
}

// NewRedisStore builds a cart store writing JSON documents under the
// device cart key.
func NewRedisStore(kv kvClient, ttl time.Duration) (Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &redisStore{kv: kv, ttl: ttl}, nil
}

// Load returns the stored cart, or an empty cart when the key is absent.
func (s *redisStore) Load(ctx context.Context, deviceID string) (*Cart, error) {
	raw, err := s.kv.Get(ctx, s.kv.CartKey(deviceID))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return NewCart(deviceID), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode cart")
	}
	cart.DeviceID = deviceID
	if cart.Items == nil {
		cart.Items = []Item{}
	}
	return &cart, nil
}

func (s *redisStore) Save(ctx context.Context, cart *Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	payload, err := json.Marshal(cart)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.kv.Set(ctx, s.kv.CartKey(cart.DeviceID), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

func (s *redisStore) Clear(ctx context.Context, deviceID string) error {
	if err := s.kv.Del(ctx, s.kv.CartKey(deviceID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}
