package verify_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"idverify/internal/attestation"
	"idverify/internal/attestation/mocks"
	"idverify/internal/keystore"
	"idverify/internal/platform/config"
	"idverify/internal/verification"
	"idverify/internal/verify"
)

type VerifierSuite struct {
	suite.Suite
	store    *keystore.Memory
	verifier *verify.Verifier
	ctx      context.Context
}

func (s *VerifierSuite) SetupTest() {
	s.store = keystore.NewMemory()
	signer := attestation.NewSigner(s.store, attestation.WithAppVersion("2.0.1"))
	s.verifier = verify.New(signer)
	s.ctx = context.Background()
}

func TestVerifierSuite(t *testing.T) {
	suite.Run(t, new(VerifierSuite))
}

// Full pipeline: strong name match plus passing biometrics yields an
// enhanced, passing, signed verification with no failure reasons.
func (s *VerifierSuite) TestEndToEndEnhancedVerification() {
	outcome, err := s.verifier.Verify(s.ctx, verify.Request{
		DocumentGiven:      "MARIA",
		DocumentFamily:     "GARCIA-LOPEZ",
		ProfileDisplayName: "Maria Garcia-Lopez",
		DocumentType:       "passport",
		IssuingCountry:     "ESP",
		FaceMatch: &verification.FaceMatchResult{
			Score:                0.92,
			Passed:               true,
			DocumentFaceDetected: true,
			ProfileFaceDetected:  true,
			LiveFaceDetected:     true,
		},
		Liveness: &verification.LivenessResult{
			Passed:              true,
			CompletedChallenges: []string{"blink", "turn_left"},
			Duration:            4 * time.Second,
		},
	})
	s.Require().NoError(err)

	s.True(outcome.Result.NameMatch.Passed)
	s.InDelta(1.0, outcome.Result.NameMatch.Score, 1e-9)
	s.Equal(verification.LevelEnhanced, outcome.Level)
	s.True(outcome.Passed)
	s.Empty(outcome.FailureReasons)

	s.Equal("2.0.1", outcome.Attestation.AppVersion)
	s.NotEmpty(outcome.Attestation.DeviceID)
	s.NotEmpty(outcome.Attestation.Signature)

	decoded, err := attestation.DecodePayload(outcome.Attestation.Payload)
	s.Require().NoError(err)
	s.True(outcome.Result.Timestamp.Equal(decoded.Timestamp))
	decoded.Timestamp = outcome.Result.Timestamp
	s.Equal(outcome.Result, decoded)
}

func (s *VerifierSuite) TestNameMismatchStillAttested() {
	outcome, err := s.verifier.Verify(s.ctx, verify.Request{
		DocumentGiven:      "ALICE",
		DocumentFamily:     "JONES",
		ProfileDisplayName: "Bob Smith",
		DocumentType:       "drivers_license",
		IssuingCountry:     "USA",
	})
	s.Require().NoError(err)

	s.Equal(verification.LevelNone, outcome.Level)
	s.False(outcome.Passed)
	s.Equal([]string{verification.ReasonNameMismatch}, outcome.FailureReasons)
	// Failures are attested too; the remote verifier sees the evidence.
	s.NotEmpty(outcome.Attestation.Signature)
}

func (s *VerifierSuite) TestAttemptedFaceFailureVetoes() {
	outcome, err := s.verifier.Verify(s.ctx, verify.Request{
		DocumentGiven:      "JOHN",
		DocumentFamily:     "SMITH",
		ProfileDisplayName: "John Smith",
		DocumentType:       "passport",
		IssuingCountry:     "USA",
		FaceMatch: &verification.FaceMatchResult{
			Score:                0.31,
			Passed:               false,
			DocumentFaceDetected: true,
			ProfileFaceDetected:  true,
		},
	})
	s.Require().NoError(err)

	s.True(outcome.Result.NameMatch.Passed)
	s.Equal(verification.LevelBasic, outcome.Level)
	s.False(outcome.Passed)
	s.Equal([]string{verification.ReasonFaceMismatch}, outcome.FailureReasons)
}

func (s *VerifierSuite) TestSigningFailureReturnsNoOutcome() {
	ctrl := gomock.NewController(s.T())
	store := mocks.NewMockSecretStore(ctrl)
	store.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", errors.New("keychain unreachable")).AnyTimes()

	signer := attestation.NewSigner(store)
	verifier := verify.New(signer)

	outcome, err := verifier.Verify(s.ctx, verify.Request{
		DocumentGiven:      "JOHN",
		DocumentFamily:     "SMITH",
		ProfileDisplayName: "John Smith",
	})
	s.Require().Error(err)
	s.Zero(outcome, "an unsigned verification must not be exposed for submission")
}

func (s *VerifierSuite) TestInjectedClockStampsResult() {
	fixed := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	signer := attestation.NewSigner(s.store)
	verifier := verify.New(signer, verify.WithClock(func() time.Time { return fixed }))

	outcome, err := verifier.Verify(s.ctx, verify.Request{
		DocumentGiven:      "JOHN",
		DocumentFamily:     "SMITH",
		ProfileDisplayName: "John Smith",
	})
	s.Require().NoError(err)
	s.True(fixed.Equal(outcome.Result.Timestamp))
}

func (s *VerifierSuite) TestFromConfigDefaultsToMemoryStore() {
	verifier, err := verify.FromConfig(s.ctx, config.Config{
		AppVersion:         "3.1.0",
		ComponentThreshold: 0.80,
		OverallThreshold:   0.85,
		StoreTimeout:       time.Second,
	})
	s.Require().NoError(err)
	defer verifier.Close()

	outcome, err := verifier.Verify(s.ctx, verify.Request{
		DocumentGiven:      "JOHN",
		DocumentFamily:     "SMITH",
		ProfileDisplayName: "John Smith",
	})
	s.Require().NoError(err)
	s.Equal("3.1.0", outcome.Attestation.AppVersion)
	s.Equal(verification.LevelBasic, outcome.Level)
}
