package db

import (
	"context"
	"errors"

	"github.com/geocoder89/authhub/internal/authn"
)

type Registrar interface {
	Register(ctx context.Context, email, password string) (authn.Session, error)
}

// EnsureSeedUser registers the configured seed account unless it already
// exists. Empty credentials disable seeding.
func EnsureSeedUser(ctx context.Context, reg Registrar, email, password string) (created bool, err error) {
	if email == "" || password == "" {
		return false, nil
	}

	_, err = reg.Register(ctx, email, password)

	if err != nil {
		if errors.Is(err, authn.ErrEmailInUse) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}
