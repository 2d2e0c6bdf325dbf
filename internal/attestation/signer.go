package attestation

//go:generate mockgen -source=signer.go -destination=mocks/mocks.go -package=mocks SecretStore,DeviceIdentity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"idverify/internal/platform/metrics"
	"idverify/internal/verification"
	dErrors "idverify/pkg/domain-errors"
	"idverify/pkg/platform/sentinel"
	"idverify/pkg/secrets"
)

const (
	// deviceKeyStorageKey is the fixed key the device signing secret lives
	// under in the secure store.
	deviceKeyStorageKey = "device_signing_key"

	// deviceKeyBytes gives a 64-character hex key.
	deviceKeyBytes = 32

	// signatureSeparator joins payload and key before hashing.
	signatureSeparator = "."
)

// SecretStore is the slice of the secure key-value capability the signer
// needs. keystore implementations satisfy it.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// DeviceIdentity supplies the stable identifier of this installation.
type DeviceIdentity interface {
	DeviceID(ctx context.Context) (string, error)
}

// Signer derives and persists the per-device signing key and packages
// verification results into signed attestations.
type Signer struct {
	store      SecretStore
	device     DeviceIdentity
	appVersion string
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer

	// Key creation must be serialized: two racing creations would persist
	// distinct keys and silently invalidate attestations signed with the
	// loser. singleflight shares one creation attempt; the cache skips the
	// store on subsequent calls.
	group     singleflight.Group
	mu        sync.RWMutex
	cachedKey string
}

// Option configures a Signer.
type Option func(s *Signer)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Signer) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Signer) {
		s.metrics = m
	}
}

func WithAppVersion(version string) Option {
	return func(s *Signer) {
		s.appVersion = version
	}
}

// WithDeviceIdentity substitutes the identity provider; the default persists
// a generated UUID in the same secure store as the key.
func WithDeviceIdentity(device DeviceIdentity) Option {
	return func(s *Signer) {
		if device != nil {
			s.device = device
		}
	}
}

// NewSigner constructs a Signer around the host-provided secure store.
func NewSigner(store SecretStore, opts ...Option) *Signer {
	s := &Signer{
		store:      store,
		device:     NewStoreIdentity(store),
		appVersion: "dev",
		tracer:     otel.Tracer("idverify/attestation"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DeviceKey returns the installation's signing key, creating and persisting
// it on first use. Repeated calls, including after process restart against
// the same store, return the identical key. Store errors propagate without
// retry.
func (s *Signer) DeviceKey(ctx context.Context) (string, error) {
	s.mu.RLock()
	cached := s.cachedKey
	s.mu.RUnlock()
	if cached != "" {
		return cached, nil
	}

	value, err, _ := s.group.Do(deviceKeyStorageKey, func() (any, error) {
		return s.loadOrCreateKey(ctx)
	})
	if err != nil {
		return "", err
	}

	key := value.(string)
	s.mu.Lock()
	s.cachedKey = key
	s.mu.Unlock()
	return key, nil
}

func (s *Signer) loadOrCreateKey(ctx context.Context) (string, error) {
	existing, err := s.store.Get(ctx, deviceKeyStorageKey)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "read device key")
	}

	key, err := secrets.GenerateHex(deviceKeyBytes)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "generate device key")
	}
	if err := s.store.Set(ctx, deviceKeyStorageKey, key); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "persist device key")
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "device signing key created")
	}
	return key, nil
}

// ComputeSignature produces the keyed digest for a payload: hex-encoded
// SHA-256 over payload, separator, and key. The remote verifier recomputes
// this with its copy of the key material.
func ComputeSignature(payload, key string) string {
	sum := sha256.Sum256([]byte(payload + signatureSeparator + key))
	return hex.EncodeToString(sum[:])
}

// SignVerification packages a verification result into a signed attestation.
// Any failure to obtain the device key or identifier aborts: no partial
// attestation is ever returned, and callers must treat the absence of an
// attestation as non-submittable.
func (s *Signer) SignVerification(ctx context.Context, result verification.Result) (SignedAttestation, error) {
	ctx, span := s.tracer.Start(ctx, "attestation.sign")
	defer span.End()

	start := time.Now()

	key, err := s.DeviceKey(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	deviceID, err := s.device.DeviceID(ctx)
	if err != nil {
		return s.fail(ctx, dErrors.Wrap(err, dErrors.CodeUnavailable, "obtain device identifier"))
	}

	payload, err := EncodePayload(result)
	if err != nil {
		return s.fail(ctx, dErrors.Wrap(err, dErrors.CodeInternal, "encode attestation payload"))
	}

	attestation := SignedAttestation{
		Payload:    payload,
		Signature:  ComputeSignature(payload, key),
		DeviceID:   deviceID,
		AppVersion: s.appVersion,
	}

	s.metrics.ObserveAttestationSignDuration(time.Since(start))
	return attestation, nil
}

func (s *Signer) fail(ctx context.Context, err error) (SignedAttestation, error) {
	s.metrics.ObserveAttestationFailure()
	if s.logger != nil {
		s.logger.WarnContext(ctx, "attestation aborted", "error", err)
	}
	return SignedAttestation{}, err
}
