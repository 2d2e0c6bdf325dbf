package verification

import (
	"time"

	"idverify/internal/namematch"
)

// Clock supplies the current time; injected for testability.
type Clock func() time.Time

// New assembles a verification Result from the individual check outcomes,
// stamped with the current UTC time. Face match and liveness are optional:
// nil means the check was never attempted.
func New(nameMatch namematch.Result, documentType, issuingCountry string, faceMatch *FaceMatchResult, liveness *LivenessResult) Result {
	return NewAt(nameMatch, documentType, issuingCountry, faceMatch, liveness, time.Now)
}

// NewAt is New with an injected clock.
func NewAt(nameMatch namematch.Result, documentType, issuingCountry string, faceMatch *FaceMatchResult, liveness *LivenessResult, clock Clock) Result {
	return Result{
		NameMatch:      nameMatch,
		FaceMatch:      faceMatch,
		Liveness:       liveness,
		Timestamp:      clock().UTC(),
		DocumentType:   documentType,
		IssuingCountry: issuingCountry,
	}
}

// LevelOf classifies the trust level of a verification result. The level is
// monotonic: enhanced implies the name match also passed.
func LevelOf(r Result) Level {
	if !r.NameMatch.Passed {
		return LevelNone
	}
	if r.FaceMatch != nil && r.FaceMatch.Passed && r.Liveness != nil && r.Liveness.Passed {
		return LevelEnhanced
	}
	return LevelBasic
}

// Passed reports the overall outcome. An optional check that was attempted
// and failed vetoes the pass; a check that was never attempted is ignored.
func Passed(r Result) bool {
	if !r.NameMatch.Passed {
		return false
	}
	if r.FaceMatch != nil && !r.FaceMatch.Passed {
		return false
	}
	if r.Liveness != nil && !r.Liveness.Passed {
		return false
	}
	return true
}

// Human-readable failure reasons. These travel to the caller verbatim, so
// they stay short and presentation-neutral.
const (
	ReasonNameMismatch         = "name does not match profile"
	ReasonFirstNameMismatch    = "first name does not match profile"
	ReasonLastNameMismatch     = "last name does not match profile"
	ReasonDocumentFaceMissing  = "no face detected on document"
	ReasonProfileFaceMissing   = "no face detected on profile photo"
	ReasonFaceMismatch         = "face does not match"
	ReasonLivenessCheckFailure = "liveness check failed"
)

// FailureReasons returns every applicable failure reason, in check order.
// The list is empty if and only if Passed reports true.
func FailureReasons(r Result) []string {
	var reasons []string

	if !r.NameMatch.Passed {
		reasons = append(reasons, nameMismatchReason(r.NameMatch))
	}

	if r.FaceMatch != nil && !r.FaceMatch.Passed {
		switch {
		case !r.FaceMatch.DocumentFaceDetected:
			reasons = append(reasons, ReasonDocumentFaceMissing)
		case !r.FaceMatch.ProfileFaceDetected:
			reasons = append(reasons, ReasonProfileFaceMissing)
		default:
			reasons = append(reasons, ReasonFaceMismatch)
		}
	}

	if r.Liveness != nil && !r.Liveness.Passed {
		reasons = append(reasons, ReasonLivenessCheckFailure)
	}

	return reasons
}

// nameMismatchReason narrows the failure to a single component where one of
// them matched on its own.
func nameMismatchReason(m namematch.Result) string {
	switch {
	case m.Family.Matched && !m.Given.Matched:
		return ReasonFirstNameMismatch
	case m.Given.Matched && !m.Family.Matched:
		return ReasonLastNameMismatch
	default:
		return ReasonNameMismatch
	}
}
