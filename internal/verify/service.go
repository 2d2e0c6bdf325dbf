// Package verify orchestrates one verification attempt end to end: name
// matching, aggregation into a verification result, trust classification,
// and attestation signing. Transmission of the attestation belongs to the
// host's networking layer, not here.
package verify

import (
	"context"
	"log/slog"
	"time"

	"idverify/internal/attestation"
	"idverify/internal/namematch"
	"idverify/internal/platform/metrics"
	"idverify/internal/verification"
)

// Request carries the collaborator-supplied inputs for one attempt. Document
// names come pre-extracted from the scanning collaborator; face match and
// liveness are nil when the corresponding check was never attempted.
type Request struct {
	DocumentGiven      string
	DocumentFamily     string
	ProfileDisplayName string
	DocumentType       string
	IssuingCountry     string
	FaceMatch          *verification.FaceMatchResult
	Liveness           *verification.LivenessResult
}

// Outcome is the classified, signed result of one attempt.
type Outcome struct {
	Result         verification.Result
	Level          verification.Level
	Passed         bool
	FailureReasons []string
	Attestation    attestation.SignedAttestation
}

// Verifier ties the matcher, aggregator, and signer together.
type Verifier struct {
	signer  *attestation.Signer
	policy  namematch.Policy
	logger  *slog.Logger
	metrics *metrics.Metrics
	clock   verification.Clock
	closer  func() error
}

// Option configures a Verifier.
type Option func(v *Verifier)

func WithLogger(logger *slog.Logger) Option {
	return func(v *Verifier) {
		v.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(v *Verifier) {
		v.metrics = m
	}
}

// WithPolicy overrides the default match thresholds.
func WithPolicy(policy namematch.Policy) Option {
	return func(v *Verifier) {
		v.policy = policy
	}
}

// WithClock sets the timestamp source for assembled results.
func WithClock(clock verification.Clock) Option {
	return func(v *Verifier) {
		if clock != nil {
			v.clock = clock
		}
	}
}

// New constructs a Verifier around an attestation signer.
func New(signer *attestation.Signer, opts ...Option) *Verifier {
	v := &Verifier{
		signer: signer,
		policy: namematch.DefaultPolicy,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify runs one verification attempt. The matching and classification path
// cannot fail; an error means the attestation could not be produced, and in
// that case no outcome is returned so callers cannot submit an unsigned
// verification.
func (v *Verifier) Verify(ctx context.Context, req Request) (Outcome, error) {
	match := namematch.MatchWithPolicy(req.DocumentGiven, req.DocumentFamily, req.ProfileDisplayName, v.policy)
	v.metrics.ObserveNameMatch(string(match.Orientation), match.Passed)

	result := verification.NewAt(match, req.DocumentType, req.IssuingCountry, req.FaceMatch, req.Liveness, v.clock)
	level := verification.LevelOf(result)
	v.metrics.ObserveVerification(string(level))

	signed, err := v.signer.SignVerification(ctx, result)
	if err != nil {
		return Outcome{}, err
	}

	outcome := Outcome{
		Result:         result,
		Level:          level,
		Passed:         verification.Passed(result),
		FailureReasons: verification.FailureReasons(result),
		Attestation:    signed,
	}

	if v.logger != nil {
		v.logger.InfoContext(ctx, "verification attempt completed",
			"level", level,
			"passed", outcome.Passed,
			"orientation", match.Orientation,
		)
	}

	return outcome, nil
}

// Close releases any store resources FromConfig acquired. Verifiers built
// directly with New own nothing and Close is a no-op.
func (v *Verifier) Close() error {
	if v.closer == nil {
		return nil
	}
	return v.closer()
}
