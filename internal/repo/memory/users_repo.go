package memory

import (
	"context"
	"sync"
	"time"

	"github.com/geocoder89/authhub/internal/domain/user"
	"github.com/google/uuid"
)

// UsersRepo keeps users in process memory. It enforces the same uniqueness
// rules as the postgres schema and is used for local runs and tests.
type UsersRepo struct {
	mu          sync.RWMutex
	items       map[string]user.User // {"id": user}
	byEmail     map[string]string
	byBiometric map[string]string
	now         func() time.Time
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		items:       make(map[string]user.User),
		byEmail:     make(map[string]string),
		byBiometric: make(map[string]string),
		now:         time.Now,
	}
}

func (r *UsersRepo) FindByID(_ context.Context, id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return copyUser(u), nil
}

func (r *UsersRepo) FindByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return copyUser(r.items[id]), nil
}

func (r *UsersRepo) FindByBiometricKey(_ context.Context, key string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byBiometric[key]
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return copyUser(r.items[id]), nil
}

func (r *UsersRepo) Create(_ context.Context, email, passwordHash string) (user.User, error) {
	now := r.now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[email]; taken {
		return user.User{}, user.ErrEmailTaken
	}

	u := user.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	r.items[u.ID] = u
	r.byEmail[email] = u.ID

	return copyUser(u), nil
}

func (r *UsersRepo) UpdateBiometricKey(_ context.Context, id, key string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	if owner, taken := r.byBiometric[key]; taken && owner != id {
		return user.User{}, user.ErrBiometricKeyTaken
	}

	if u.BiometricKey != nil {
		delete(r.byBiometric, *u.BiometricKey)
	}

	k := key
	u.BiometricKey = &k
	u.UpdatedAt = r.now().UTC()

	r.items[id] = u
	r.byBiometric[key] = id

	return copyUser(u), nil
}

// Delete removes a user. Only tests and tooling call it; the auth flows
// never delete users.
func (r *UsersRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]
	if !ok {
		return user.ErrNotFound
	}

	delete(r.items, id)
	delete(r.byEmail, u.Email)
	if u.BiometricKey != nil {
		delete(r.byBiometric, *u.BiometricKey)
	}

	return nil
}

// Ping satisfies the readiness check.
func (r *UsersRepo) Ping(context.Context) error {
	return nil
}

// copyUser detaches the biometric key pointer from the stored record.
func copyUser(u user.User) user.User {
	if u.BiometricKey != nil {
		k := *u.BiometricKey
		u.BiometricKey = &k
	}
	return u
}
