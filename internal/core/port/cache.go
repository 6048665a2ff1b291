package port

import (
	"context"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// CachePort is a TTL keyed store. Get returns nil, nil for a missing or
// expired key; SetNX reports whether the value was stored.
type CachePort[T any] interface {
	Get(ctx context.Context, key string) (*T, error)
	Set(ctx context.Context, key string, value *T, ttl time.Duration) error
	SetNX(ctx context.Context, key string, value *T, ttl time.Duration) (bool, error)
	Del(ctx context.Context, key string) error
}
