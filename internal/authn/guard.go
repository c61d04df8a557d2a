package authn

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/geocoder89/authhub/internal/domain/user"
)

// Guard resolves the caller behind an Authorization header. Every call
// verifies the token and reloads the user from the store; nothing is cached.
type Guard struct {
	tokens TokenVerifier
	users  UserStore
}

func NewGuard(tokens TokenVerifier, users UserStore) *Guard {
	return &Guard{tokens: tokens, users: users}
}

// Authenticate returns the authenticated user, or ErrMissingToken,
// ErrInvalidToken or ErrUserNotFound. Other errors are internal.
func (g *Guard) Authenticate(ctx context.Context, authorization string) (user.User, error) {
	raw, ok := BearerToken(authorization)
	if !ok {
		return user.User{}, ErrMissingToken
	}

	claims, err := g.tokens.Verify(raw)
	if err != nil {
		return user.User{}, ErrInvalidToken
	}

	u, err := g.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("resolve token subject: %w", err)
	}

	return u, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}

	return token, true
}
