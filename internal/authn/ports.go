package authn

import (
	"context"

	"github.com/geocoder89/authhub/internal/auth"
	"github.com/geocoder89/authhub/internal/domain/user"
)

// UserStore is the credential store. Lookups return user.ErrNotFound when
// nothing matches; Create and UpdateBiometricKey return user.ErrEmailTaken
// and user.ErrBiometricKeyTaken when a uniqueness constraint fires.
type UserStore interface {
	FindByID(ctx context.Context, id string) (user.User, error)
	FindByEmail(ctx context.Context, email string) (user.User, error)
	FindByBiometricKey(ctx context.Context, key string) (user.User, error)
	Create(ctx context.Context, email, passwordHash string) (user.User, error)
	UpdateBiometricKey(ctx context.Context, id, key string) (user.User, error)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) (bool, error)
}

type TokenIssuer interface {
	Issue(c auth.Claims) (string, error)
}

type TokenVerifier interface {
	Verify(token string) (auth.Claims, error)
}
