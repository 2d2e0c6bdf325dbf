package verification

import (
	"time"

	"idverify/internal/namematch"
)

// Level is the three-tier classification of verification strength.
type Level string

const (
	// LevelNone means the name match failed; nothing downstream may rely on
	// this verification.
	LevelNone Level = "none"
	// LevelBasic means the printed document name matched the profile name.
	LevelBasic Level = "basic"
	// LevelEnhanced means the name matched and both biometric checks were
	// attempted and passed.
	LevelEnhanced Level = "enhanced"
)

// FaceMatchResult is the outcome reported by the biometric-detection
// collaborator for the document-photo / profile-photo / live-selfie
// comparison.
type FaceMatchResult struct {
	Score                float64 `json:"score"`
	Passed               bool    `json:"passed"`
	DocumentFaceDetected bool    `json:"document_face_detected"`
	ProfileFaceDetected  bool    `json:"profile_face_detected"`
	LiveFaceDetected     bool    `json:"live_face_detected"`
}

// LivenessResult is the outcome of the challenge-response liveness check.
type LivenessResult struct {
	Passed              bool          `json:"passed"`
	CompletedChallenges []string      `json:"completed_challenges"`
	Duration            time.Duration `json:"duration"`
}

// Result is one verification attempt. It is assembled per attempt and never
// persisted by this core.
type Result struct {
	NameMatch      namematch.Result `json:"name_match"`
	FaceMatch      *FaceMatchResult `json:"face_match,omitempty"`
	Liveness       *LivenessResult  `json:"liveness,omitempty"`
	Timestamp      time.Time        `json:"timestamp"`
	DocumentType   string           `json:"document_type"`
	IssuingCountry string           `json:"issuing_country"`
}
