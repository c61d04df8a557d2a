package db

import (
	"context"
	"errors"
	"testing"

	"github.com/geocoder89/authhub/internal/authn"
)

type fakeRegistrar struct {
	calls int
	err   error
}

func (f *fakeRegistrar) Register(context.Context, string, string) (authn.Session, error) {
	f.calls++
	return authn.Session{}, f.err
}

func TestEnsureSeedUser(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled without credentials", func(t *testing.T) {
		reg := &fakeRegistrar{}
		created, err := EnsureSeedUser(ctx, reg, "", "pw")
		if err != nil || created || reg.calls != 0 {
			t.Fatalf("created=%v err=%v calls=%d", created, err, reg.calls)
		}
	})

	t.Run("creates", func(t *testing.T) {
		reg := &fakeRegistrar{}
		created, err := EnsureSeedUser(ctx, reg, "seed@example.com", "pw")
		if err != nil || !created {
			t.Fatalf("created=%v err=%v", created, err)
		}
	})

	t.Run("already present", func(t *testing.T) {
		reg := &fakeRegistrar{err: authn.ErrEmailInUse}
		created, err := EnsureSeedUser(ctx, reg, "seed@example.com", "pw")
		if err != nil || created {
			t.Fatalf("created=%v err=%v", created, err)
		}
	})

	t.Run("propagates failures", func(t *testing.T) {
		boom := errors.New("db down")
		reg := &fakeRegistrar{err: boom}
		if _, err := EnsureSeedUser(ctx, reg, "seed@example.com", "pw"); !errors.Is(err, boom) {
			t.Fatalf("err = %v, want %v", err, boom)
		}
	})
}
