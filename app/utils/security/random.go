package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateURLToken returns a cryptographically random URL-safe string
// of exactly length characters. Each base64url character carries 6
// bits, so (length*6+7)/8 random bytes are enough to fill it.
func GenerateURLToken(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("token length must be positive, got %d", length)
	}

	required := (length*6 + 7) / 8
	b := make([]byte, required)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	token := base64.RawURLEncoding.EncodeToString(b)
	return token[:length], nil
}
