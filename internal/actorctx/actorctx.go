// Package actorctx carries the authenticated user on a request context.
package actorctx

import (
	"context"

	"github.com/geocoder89/authhub/internal/domain/user"
)

type ctxKey struct{}

func WithUser(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

func UserFrom(ctx context.Context) (user.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(user.User)

	return u, ok && u.ID != ""
}
