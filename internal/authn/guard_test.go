package authn_test

import (
	"context"
	"errors"
	"testing"

	"github.com/geocoder89/authhub/internal/auth"
	"github.com/geocoder89/authhub/internal/authn"
	"github.com/geocoder89/authhub/internal/domain/user"
)

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"BEARER   abc  ", "abc", true},
		{"", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"abc", "", false},
	}

	for _, tc := range cases {
		token, ok := authn.BearerToken(tc.header)
		if token != tc.token || ok != tc.ok {
			t.Fatalf("BearerToken(%q) = %q, %v; want %q, %v", tc.header, token, ok, tc.token, tc.ok)
		}
	}
}

func TestGuard_Authenticate(t *testing.T) {
	store := newCountingStore()
	ctx := context.Background()

	u, err := store.Create(ctx, "a@example.com", "hashed:pw")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	verifier := fakeVerifier{VerifyFn: func(token string) (auth.Claims, error) {
		switch token {
		case "good":
			return auth.Claims{Subject: u.ID}, nil
		case "orphan":
			return auth.Claims{Subject: "deleted-user"}, nil
		case "expired":
			return auth.Claims{}, auth.ErrExpiredToken
		default:
			return auth.Claims{}, auth.ErrInvalidToken
		}
	}}

	guard := authn.NewGuard(verifier, store)

	got, err := guard.Authenticate(ctx, "Bearer good")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("user = %q, want %q", got.ID, u.ID)
	}

	cases := map[string]error{
		"":               authn.ErrMissingToken,
		"Token good":     authn.ErrMissingToken,
		"Bearer expired": authn.ErrInvalidToken,
		"Bearer forged":  authn.ErrInvalidToken,
		"Bearer orphan":  authn.ErrUserNotFound,
	}

	for header, want := range cases {
		if _, err := guard.Authenticate(ctx, header); !errors.Is(err, want) {
			t.Fatalf("Authenticate(%q) err = %v, want %v", header, err, want)
		}
	}
}

func TestGuard_StoreFailureIsInternal(t *testing.T) {
	store := newCountingStore()
	boom := errors.New("db down")
	store.FindByIDFn = func(context.Context, string) (user.User, error) {
		return user.User{}, boom
	}

	verifier := fakeVerifier{VerifyFn: func(string) (auth.Claims, error) {
		return auth.Claims{Subject: "u1"}, nil
	}}

	_, err := authn.NewGuard(verifier, store).Authenticate(context.Background(), "Bearer t")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped store error", err)
	}
	if errors.Is(err, authn.ErrUserNotFound) || errors.Is(err, authn.ErrInvalidToken) {
		t.Fatalf("store failure must not look like an auth rejection")
	}
}

func TestGuard_ReloadsUserEveryCall(t *testing.T) {
	store := newCountingStore()
	ctx := context.Background()

	u, err := store.Create(ctx, "a@example.com", "hashed:pw")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	verifier := fakeVerifier{VerifyFn: func(string) (auth.Claims, error) {
		return auth.Claims{Subject: u.ID}, nil
	}}
	guard := authn.NewGuard(verifier, store)

	if _, err := guard.Authenticate(ctx, "Bearer t"); err != nil {
		t.Fatalf("first call: %v", err)
	}

	if _, err := store.UpdateBiometricKey(ctx, u.ID, "K1"); err != nil {
		t.Fatalf("UpdateBiometricKey: %v", err)
	}

	got, err := guard.Authenticate(ctx, "Bearer t")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if !got.HasBiometricKey() {
		t.Fatalf("guard returned a stale user")
	}
}
