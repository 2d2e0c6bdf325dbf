// Package keystore provides the secure key-value capability the attestation
// signer persists its device secret through. The host environment decides
// which backing it supplies; every implementation keeps the same contract:
// Get returns sentinel.ErrNotFound for an absent key, Set overwrites, Delete
// of an absent key is a no-op.
package keystore

import "context"

// Store is the secure key-value capability.
//
// Implementations are interface-driven to keep the signer testable and to
// allow swapping in-memory, Redis, or Postgres persistence without rewiring
// business code.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

var (
	_ Store = (*Memory)(nil)
	_ Store = (*Redis)(nil)
	_ Store = (*Postgres)(nil)
)
