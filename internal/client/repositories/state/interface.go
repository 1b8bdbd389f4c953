// Package state persists the client's durable key/value state: bearer token,
// wallet address, pending referral code and per-wallet one-time flags.
package state

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
