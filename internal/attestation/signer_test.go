package attestation_test

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"idverify/internal/attestation"
	"idverify/internal/attestation/mocks"
	"idverify/internal/keystore"
	dErrors "idverify/pkg/domain-errors"
	"idverify/pkg/platform/sentinel"
)

var hexKeyPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

type SignerSuite struct {
	suite.Suite
	store *keystore.Memory
	ctx   context.Context
}

func (s *SignerSuite) SetupTest() {
	s.store = keystore.NewMemory()
	s.ctx = context.Background()
}

func TestSignerSuite(t *testing.T) {
	suite.Run(t, new(SignerSuite))
}

func (s *SignerSuite) TestDeviceKeyCreation() {
	signer := attestation.NewSigner(s.store)

	key, err := signer.DeviceKey(s.ctx)
	s.Require().NoError(err)
	s.Regexp(hexKeyPattern, key)
}

func (s *SignerSuite) TestDeviceKeyIdempotent() {
	signer := attestation.NewSigner(s.store)

	first, err := signer.DeviceKey(s.ctx)
	s.Require().NoError(err)
	second, err := signer.DeviceKey(s.ctx)
	s.Require().NoError(err)
	s.Equal(first, second)
}

func (s *SignerSuite) TestDeviceKeySurvivesRestart() {
	signer := attestation.NewSigner(s.store)
	key, err := signer.DeviceKey(s.ctx)
	s.Require().NoError(err)

	// A fresh signer over the same store simulates a process restart.
	restarted := attestation.NewSigner(s.store)
	again, err := restarted.DeviceKey(s.ctx)
	s.Require().NoError(err)
	s.Equal(key, again)
}

func (s *SignerSuite) TestConcurrentCreationProducesOneKey() {
	signer := attestation.NewSigner(s.store)

	const attempts = 16
	keys := make([]string, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key, err := signer.DeviceKey(s.ctx)
			s.NoError(err)
			keys[i] = key
		}(i)
	}
	wg.Wait()

	for _, key := range keys[1:] {
		s.Equal(keys[0], key)
	}
}

func (s *SignerSuite) TestSignVerification() {
	signer := attestation.NewSigner(s.store, attestation.WithAppVersion("1.4.2"))
	result := fullResultForTest()

	signed, err := signer.SignVerification(s.ctx, result)
	s.Require().NoError(err)

	s.Equal("1.4.2", signed.AppVersion)
	_, err = uuid.Parse(signed.DeviceID)
	s.NoError(err, "default device identity is a UUID")

	key, err := signer.DeviceKey(s.ctx)
	s.Require().NoError(err)
	s.Equal(attestation.ComputeSignature(signed.Payload, key), signed.Signature)

	decoded, err := attestation.DecodePayload(signed.Payload)
	s.Require().NoError(err)
	s.True(result.Timestamp.Equal(decoded.Timestamp))
	decoded.Timestamp = result.Timestamp
	s.Equal(result, decoded)
}

func (s *SignerSuite) TestDeviceIDStableAcrossAttestations() {
	signer := attestation.NewSigner(s.store)

	first, err := signer.SignVerification(s.ctx, fullResultForTest())
	s.Require().NoError(err)
	second, err := signer.SignVerification(s.ctx, fullResultForTest())
	s.Require().NoError(err)

	s.Equal(first.DeviceID, second.DeviceID)
}

func (s *SignerSuite) TestSignatureBindsPayloadAndKey() {
	s.NotEqual(
		attestation.ComputeSignature("payload-a", "key"),
		attestation.ComputeSignature("payload-b", "key"),
	)
	s.NotEqual(
		attestation.ComputeSignature("payload", "key-a"),
		attestation.ComputeSignature("payload", "key-b"),
	)
	s.Regexp(`^[0-9a-f]{64}$`, attestation.ComputeSignature("payload", "key"))
}

// Store failures must propagate without retry and without a partial
// attestation.
func (s *SignerSuite) TestStoreFailuresAbortAttestation() {
	ctrl := gomock.NewController(s.T())
	store := mocks.NewMockSecretStore(ctrl)
	store.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", errors.New("keychain unreachable"))

	signer := attestation.NewSigner(s.store, attestation.WithDeviceIdentity(attestation.NewStoreIdentity(store)))

	_, err := signer.SignVerification(s.ctx, fullResultForTest())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func (s *SignerSuite) TestKeyReadFailurePropagates() {
	ctrl := gomock.NewController(s.T())
	store := mocks.NewMockSecretStore(ctrl)
	store.EXPECT().Get(gomock.Any(), "device_signing_key").Return("", errors.New("keychain unreachable"))

	signer := attestation.NewSigner(store)

	_, err := signer.DeviceKey(s.ctx)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func (s *SignerSuite) TestKeyPersistFailurePropagates() {
	ctrl := gomock.NewController(s.T())
	store := mocks.NewMockSecretStore(ctrl)
	gomock.InOrder(
		store.EXPECT().Get(gomock.Any(), "device_signing_key").Return("", sentinel.ErrNotFound),
		store.EXPECT().Set(gomock.Any(), "device_signing_key", gomock.Any()).Return(errors.New("disk full")),
	)

	signer := attestation.NewSigner(store)

	signed, err := signer.SignVerification(s.ctx, fullResultForTest())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	s.Zero(signed, "no partial attestation on failure")
}

func (s *SignerSuite) TestInjectedDeviceIdentity() {
	ctrl := gomock.NewController(s.T())
	device := mocks.NewMockDeviceIdentity(ctrl)
	device.EXPECT().DeviceID(gomock.Any()).Return("platform-device-42", nil)

	signer := attestation.NewSigner(s.store, attestation.WithDeviceIdentity(device))

	signed, err := signer.SignVerification(s.ctx, fullResultForTest())
	s.Require().NoError(err)
	s.Equal("platform-device-42", signed.DeviceID)
}
