package verify

import (
	"context"
	"fmt"

	"idverify/internal/attestation"
	"idverify/internal/keystore"
	"idverify/internal/namematch"
	"idverify/internal/platform/config"
)

// FromConfig assembles a Verifier from host configuration: keystore backend
// (Redis when configured, then Postgres, otherwise in-memory), match
// thresholds, and app version. Options apply on top, so hosts can still
// inject logger, metrics, or clock.
func FromConfig(ctx context.Context, cfg config.Config, opts ...Option) (*Verifier, error) {
	store, closer, err := storeFromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	signer := attestation.NewSigner(store, attestation.WithAppVersion(cfg.AppVersion))

	policy := namematch.Policy{
		ComponentThreshold: cfg.ComponentThreshold,
		OverallThreshold:   cfg.OverallThreshold,
	}

	v := New(signer, append([]Option{WithPolicy(policy)}, opts...)...)
	v.closer = closer
	return v, nil
}

func storeFromConfig(ctx context.Context, cfg config.Config) (attestation.SecretStore, func() error, error) {
	dialCtx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
	defer cancel()

	switch {
	case cfg.RedisURL != "":
		store, err := keystore.NewRedisFromURL(dialCtx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("redis keystore: %w", err)
		}
		return store, store.Close, nil

	case cfg.PostgresDSN != "":
		store, err := keystore.NewPostgresFromDSN(dialCtx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres keystore: %w", err)
		}
		if err := store.Migrate(dialCtx); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("postgres keystore: %w", err)
		}
		return store, store.Close, nil

	default:
		return keystore.NewMemory(), nil, nil
	}
}
