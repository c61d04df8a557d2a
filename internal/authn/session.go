package authn

import (
	"fmt"

	"github.com/geocoder89/authhub/internal/auth"
	"github.com/geocoder89/authhub/internal/domain/user"
)

// Session is the response shape of every operation that authenticates.
type Session struct {
	AccessToken string          `json:"accessToken"`
	User        user.PublicUser `json:"user"`
}

type Minter struct {
	tokens TokenIssuer
}

func NewMinter(tokens TokenIssuer) *Minter {
	return &Minter{tokens: tokens}
}

func (m *Minter) Mint(u user.User) (Session, error) {
	token, err := m.tokens.Issue(auth.Claims{
		Subject: u.ID,
		Email:   u.Email,
	})
	if err != nil {
		return Session{}, fmt.Errorf("mint session for user %s: %w", u.ID, err)
	}

	return Session{
		AccessToken: token,
		User:        u.Public(),
	}, nil
}
