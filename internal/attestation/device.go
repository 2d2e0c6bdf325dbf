package attestation

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"idverify/pkg/platform/sentinel"
)

// deviceIDStorageKey is the fixed key the installation identifier lives
// under in the secure store.
const deviceIDStorageKey = "device_id"

// StoreIdentity is the default DeviceIdentity: a UUID generated once per
// installation and persisted in the secure store, next to the signing key.
// Hosts with a platform identifier inject their own provider instead.
type StoreIdentity struct {
	store SecretStore

	group    singleflight.Group
	mu       sync.RWMutex
	cachedID string
}

// NewStoreIdentity constructs the store-backed identity provider.
func NewStoreIdentity(store SecretStore) *StoreIdentity {
	return &StoreIdentity{store: store}
}

// DeviceID returns the persisted installation identifier, generating it on
// first use. Creation is serialized the same way as the signing key.
func (p *StoreIdentity) DeviceID(ctx context.Context) (string, error) {
	p.mu.RLock()
	cached := p.cachedID
	p.mu.RUnlock()
	if cached != "" {
		return cached, nil
	}

	value, err, _ := p.group.Do(deviceIDStorageKey, func() (any, error) {
		existing, err := p.store.Get(ctx, deviceIDStorageKey)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			return "", err
		}

		id := uuid.NewString()
		if err := p.store.Set(ctx, deviceIDStorageKey, id); err != nil {
			return "", err
		}
		return id, nil
	})
	if err != nil {
		return "", err
	}

	id := value.(string)
	p.mu.Lock()
	p.cachedID = id
	p.mu.Unlock()
	return id, nil
}
