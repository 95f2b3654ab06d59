package metadata

import (
	"context"
)

// Keys the CLI keeps in the session store.
const (
	KeyToken  = "token"
	KeyWallet = "wallet"
)

// Repository is a small key/value store. Get returns (nil, nil) for an
// absent key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
