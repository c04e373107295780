package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default cost for bcrypt hashing
	DefaultCost = bcrypt.DefaultCost
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrEmptyPassword   = errors.New("password cannot be empty")
)

var hashPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// digest folds a password of any length into 44 bytes so it stays under
// bcrypt's 72 byte input limit.
func digest(password string) []byte {
	sum := sha256.Sum256([]byte(password))

	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// Hash generates a bcrypt hash of the SHA-256 digest of password
func Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	bytes, err := bcrypt.GenerateFromPassword(digest(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(bytes), nil
}

// IsHash reports whether stored looks like a bcrypt hash rather than a
// password saved in clear text by older clients.
func IsHash(stored string) bool {
	for _, prefix := range hashPrefixes {
		if strings.HasPrefix(stored, prefix) {
			return true
		}
	}

	return false
}

// Verify checks password against stored, which is either a bcrypt hash or a
// legacy clear text value compared exactly.
func Verify(password, stored string) error {
	if password == "" || stored == "" {
		return ErrInvalidPassword
	}

	if !IsHash(stored) {
		if subtle.ConstantTimeCompare([]byte(password), []byte(stored)) != 1 {
			return ErrInvalidPassword
		}

		return nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(stored), digest(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPassword
		}

		return fmt.Errorf("failed to verify password: %w", err)
	}

	return nil
}
