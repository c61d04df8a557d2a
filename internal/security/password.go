package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor used for every stored password.
const PasswordCost = 10

// ErrMalformedHash means a stored hash could not be parsed. It points at
// corrupted data, not at a wrong password.
var ErrMalformedHash = errors.New("malformed password hash")

type Hasher struct{}

func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash password hashes a plain text password with bcrypt.
func (h *Hasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)

	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hash), nil
}

// Verify compares a bcrypt hash with a plaintext password. A mismatch is
// reported as false with a nil error.
func (h *Hasher) Verify(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))

	if err == nil {
		return true, nil
	}

	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return false, nil
	}

	return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
}
