package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/authhub/internal/domain/user"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	uniqueViolation = "23505"

	emailConstraint     = "users_email_key"
	biometricConstraint = "users_biometric_key_key"
)

const userColumns = `id, email, password_hash, biometric_key, created_at, updated_at`

// DBObserver times a logical DB operation. observability.Prom implements it.
type DBObserver interface {
	ObserveDB(op string, fn func() error) error
}

type noopObserver struct{}

func (noopObserver) ObserveDB(_ string, fn func() error) error { return fn() }

type UsersRepo struct {
	pool *pgxpool.Pool
	obs  DBObserver
}

func NewUsersRepo(pool *pgxpool.Pool, obs DBObserver) *UsersRepo {
	if obs == nil {
		obs = noopObserver{}
	}
	return &UsersRepo{pool: pool, obs: obs}
}

func (r *UsersRepo) FindByID(ctx context.Context, id string) (user.User, error) {
	// ids are UUIDs; anything else cannot match and would make postgres
	// reject the cast
	if uuid.Validate(id) != nil {
		return user.User{}, user.ErrNotFound
	}

	return r.findOne(ctx, "users.find_by_id", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UsersRepo) FindByEmail(ctx context.Context, email string) (user.User, error) {
	return r.findOne(ctx, "users.find_by_email", `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UsersRepo) FindByBiometricKey(ctx context.Context, key string) (user.User, error) {
	return r.findOne(ctx, "users.find_by_biometric_key", `SELECT `+userColumns+` FROM users WHERE biometric_key = $1`, key)
}

func (r *UsersRepo) Create(ctx context.Context, email, passwordHash string) (user.User, error) {
	var u user.User

	err := r.obs.ObserveDB("users.create", func() error {
		return scanUser(r.pool.QueryRow(ctx,
			`INSERT INTO users (id, email, password_hash, created_at, updated_at)
			VALUES ($1, $2, $3, NOW(), NOW())
			RETURNING `+userColumns,
			uuid.NewString(), email, passwordHash,
		), &u)
	})

	if err != nil {
		return user.User{}, translateErr(err)
	}

	return u, nil
}

func (r *UsersRepo) UpdateBiometricKey(ctx context.Context, id, key string) (user.User, error) {
	if uuid.Validate(id) != nil {
		return user.User{}, user.ErrNotFound
	}

	var u user.User

	err := r.obs.ObserveDB("users.update_biometric_key", func() error {
		return scanUser(r.pool.QueryRow(ctx,
			`UPDATE users
			SET biometric_key = $2,
				updated_at = NOW()
			WHERE id = $1
			RETURNING `+userColumns,
			id, key,
		), &u)
	})

	if err != nil {
		return user.User{}, translateErr(err)
	}

	return u, nil
}

func (r *UsersRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *UsersRepo) findOne(ctx context.Context, op, query string, arg any) (user.User, error) {
	var u user.User

	err := r.obs.ObserveDB(op, func() error {
		err := scanUser(r.pool.QueryRow(ctx, query, arg), &u)
		// a miss is not a DB error
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	})

	if err != nil {
		return user.User{}, translateErr(err)
	}

	if u.ID == "" {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}

func scanUser(row pgx.Row, u *user.User) error {
	return row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.BiometricKey,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
}

func translateErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return user.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case emailConstraint:
			return user.ErrEmailTaken
		case biometricConstraint:
			return user.ErrBiometricKeyTaken
		}
	}

	return err
}
