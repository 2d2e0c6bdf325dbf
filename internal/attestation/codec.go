package attestation

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"idverify/internal/verification"
)

// EncodePayload serializes a verification result to its canonical attestation
// payload: JSON with fixed field order (struct declaration order), base64
// encoded. The encoding round-trips exactly; DecodePayload(EncodePayload(r))
// reproduces every field of r.
func EncodePayload(result verification.Result) (string, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("encode verification result: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodePayload reverses EncodePayload. The remote verifier and tests use it
// to recover the verification result an attestation vouches for.
func DecodePayload(payload string) (verification.Result, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return verification.Result{}, fmt.Errorf("decode payload: %w", err)
	}
	var result verification.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return verification.Result{}, fmt.Errorf("parse payload: %w", err)
	}
	return result, nil
}
