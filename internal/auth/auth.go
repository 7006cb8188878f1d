package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
)

const saltBytes = 16

// HashPassword returns a salted SHA-256 digest in "salt$hex" form.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	saltHex := hex.EncodeToString(salt)
	return saltHex + "$" + digest(password, saltHex), nil
}

// VerifyPassword checks a candidate password against a stored "salt$hex" hash.
func VerifyPassword(password, stored string) bool {
	salt, want, ok := strings.Cut(stored, "$")
	if !ok {
		return false
	}
	return digest(password, salt) == want
}

func digest(password, salt string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}

// ValidatePassword enforces the minimum password rules applied at
// registration time.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return fmt.Errorf("password must contain uppercase, lowercase, and digit")
	}
	return nil
}

// ValidateUsername rejects empty or whitespace-padded usernames.
func ValidateUsername(username string) error {
	if username == "" || strings.TrimSpace(username) != username {
		return fmt.Errorf("username must be non-empty with no leading or trailing spaces")
	}
	return nil
}
