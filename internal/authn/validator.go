package authn

import (
	"context"
	"errors"
	"fmt"

	"github.com/geocoder89/authhub/internal/domain/user"
)

type Validator struct {
	users  UserStore
	hasher PasswordHasher
}

func NewValidator(users UserStore, hasher PasswordHasher) *Validator {
	return &Validator{users: users, hasher: hasher}
}

func (v *Validator) ValidateByPassword(ctx context.Context, email, password string) (user.User, error) {
	u, err := v.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, fmt.Errorf("find user by email: %w", err)
	}

	ok, err := v.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		return user.User{}, fmt.Errorf("verify password for user %s: %w", u.ID, err)
	}

	if !ok {
		return user.User{}, ErrInvalidCredentials
	}

	return u, nil
}

// ValidateByBiometric treats the key as the only factor.
func (v *Validator) ValidateByBiometric(ctx context.Context, key string) (user.User, error) {
	if key == "" {
		return user.User{}, ErrInvalidCredential
	}

	u, err := v.users.FindByBiometricKey(ctx, key)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredential
		}
		return user.User{}, fmt.Errorf("find user by biometric key: %w", err)
	}

	return u, nil
}
