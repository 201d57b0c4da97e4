package util

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// RandomURLSafe returns n random bytes encoded as unpadded base64url.
func RandomURLSafe(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
