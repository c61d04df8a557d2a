package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTTL is the fixed validity window of every issued token.
const AccessTTL = 24 * time.Hour

var (
	ErrExpiredToken = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the identity carried inside a token.
type Claims struct {
	Subject string
	Email   string
}

// tokenClaims is the wire shape of Claims.
type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    AccessTTL,
		now:    time.Now,
	}
}

func (m *Manager) Issue(c Claims) (string, error) {
	if c.Subject == "" {
		return "", errors.New("issue token: empty subject")
	}

	now := m.now().UTC()

	claims := tokenClaims{
		Email: c.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.Subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify checks signature and expiry and returns the embedded claims.
// Failures are either ErrExpiredToken or ErrInvalidToken.
func (m *Manager) Verify(tokenStr string) (Claims, error) {
	parsed := &tokenClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, parsed, func(t *jwt.Token) (interface{}, error) {
		// Enforce HS256
		_, ok := t.Method.(*jwt.SigningMethodHMAC)

		if !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpiredToken
		}
		return Claims{}, ErrInvalidToken
	}

	if !token.Valid || parsed.Subject == "" {
		return Claims{}, ErrInvalidToken
	}

	return Claims{Subject: parsed.Subject, Email: parsed.Email}, nil
}
