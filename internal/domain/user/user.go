package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already taken")
	ErrBiometricKeyTaken = errors.New("biometric key already taken")
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	BiometricKey *string   `json:"biometricKey"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicUser is the caller-safe projection of a User. It has no password
// field at all, so nothing can leak through it.
type PublicUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	BiometricKey *string   `json:"biometricKey"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:           u.ID,
		Email:        u.Email,
		BiometricKey: u.BiometricKey,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// HasBiometricKey reports whether the user has enrolled a biometric key.
func (u User) HasBiometricKey() bool {
	return u.BiometricKey != nil && *u.BiometricKey != ""
}
