package secrets

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateHex creates a cryptographically secure random secret of n bytes,
// returned as a fixed-width hex string (2n characters). Suitable for device
// signing keys and other installation-scoped secrets.
func GenerateHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("could not generate secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
