package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLen    = 16
	keyLen     = 32
	iterations = 200_000
)

// Hash derives a PBKDF2-HMAC-SHA256 key and returns base64(salt || key).
func Hash(plain string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hashWithSalt(plain, salt), nil
}

func hashWithSalt(plain string, salt []byte) string {
	key := pbkdf2.Key([]byte(plain), salt, iterations, keyLen, sha256.New)
	return base64.StdEncoding.EncodeToString(append(salt, key...))
}

// IsHash reports whether stored looks like a value produced by Hash.
// Anything shorter than salt + key is treated as a legacy credential.
func IsHash(stored string) bool {
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return false
	}
	return len(raw) >= saltLen+keyLen
}

func Verify(plain, stored string) bool {
	if !IsHash(stored) {
		return false
	}
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return false
	}
	salt, key := raw[:saltLen], raw[saltLen:]
	derived := pbkdf2.Key([]byte(plain), salt, iterations, len(key), sha256.New)
	return subtle.ConstantTimeCompare(derived, key) == 1
}
