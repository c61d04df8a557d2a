package authn_test

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/geocoder89/authhub/internal/activity"
	"github.com/geocoder89/authhub/internal/auth"
	"github.com/geocoder89/authhub/internal/domain/user"
	"github.com/geocoder89/authhub/internal/repo/memory"
)

// fakeHasher keeps tests fast; bcrypt itself is covered in security.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func (fakeHasher) Verify(plain, hash string) (bool, error) {
	stored, ok := strings.CutPrefix(hash, "hashed:")
	if !ok {
		return false, errors.New("malformed hash")
	}
	return stored == plain, nil
}

// countingStore wraps the memory repo, counts writes and lets a test
// override individual calls.
type countingStore struct {
	*memory.UsersRepo

	mu      sync.Mutex
	creates int
	updates int

	FindByIDFn    func(ctx context.Context, id string) (user.User, error)
	FindByEmailFn func(ctx context.Context, email string) (user.User, error)
	CreateFn      func(ctx context.Context, email, hash string) (user.User, error)
}

func newCountingStore() *countingStore {
	return &countingStore{UsersRepo: memory.NewUsersRepo()}
}

func (s *countingStore) FindByID(ctx context.Context, id string) (user.User, error) {
	if s.FindByIDFn != nil {
		return s.FindByIDFn(ctx, id)
	}
	return s.UsersRepo.FindByID(ctx, id)
}

func (s *countingStore) FindByEmail(ctx context.Context, email string) (user.User, error) {
	if s.FindByEmailFn != nil {
		return s.FindByEmailFn(ctx, email)
	}
	return s.UsersRepo.FindByEmail(ctx, email)
}

func (s *countingStore) Create(ctx context.Context, email, hash string) (user.User, error) {
	s.mu.Lock()
	s.creates++
	s.mu.Unlock()

	if s.CreateFn != nil {
		return s.CreateFn(ctx, email, hash)
	}
	return s.UsersRepo.Create(ctx, email, hash)
}

func (s *countingStore) UpdateBiometricKey(ctx context.Context, id, key string) (user.User, error) {
	s.mu.Lock()
	s.updates++
	s.mu.Unlock()

	return s.UsersRepo.UpdateBiometricKey(ctx, id, key)
}

func (s *countingStore) writes() (creates, updates int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creates, s.updates
}

type recordingSink struct {
	mu     sync.Mutex
	events []activity.Event
	err    error
}

func (s *recordingSink) Record(_ context.Context, ev activity.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func (s *recordingSink) types() []activity.EventType {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]activity.EventType, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Type)
	}
	return out
}

type fakeVerifier struct {
	VerifyFn func(token string) (auth.Claims, error)
}

func (f fakeVerifier) Verify(token string) (auth.Claims, error) {
	return f.VerifyFn(token)
}
