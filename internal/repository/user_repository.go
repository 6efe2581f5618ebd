package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/identity-service/internal/domain"
	util "github.com/spec-kit/identity-service/pkg/util/errorutil"
)

// UserGateway is the persistence boundary for user accounts. The core never
// sees SQL or driver errors through it: lookups report absence as (nil, nil)
// and every infrastructure failure comes back wrapped as a typed domain
// error.
type UserGateway interface {
	// Create persists the user and assigns its ID. A duplicate email is a
	// Conflict.
	Create(ctx context.Context, user *domain.User) error
	// GetByID returns the user or (nil, nil) when absent.
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// GetByEmail returns the user or (nil, nil) when absent.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Update merges the supplied fields into the stored row and returns the
	// result. Unknown id is a NotFound, an email collision a Conflict.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
}

const uniqueViolation = "23505"

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed gateway implementation.
func NewUserRepository(pool *pgxpool.Pool) UserGateway {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (email, password, creation_date, profile_id, status_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		user.Email,
		user.Password,
		user.CreationDate,
		user.ProfileID,
		user.StatusID,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return util.NewConflict("user", map[string]any{"email": user.Email})
		}
		return util.NewPersistenceFailure(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `
        SELECT id, email, password, creation_date, profile_id, status_id
        FROM users WHERE id=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id, email, password, creation_date, profile_id, status_id
        FROM users WHERE email=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	// COALESCE keeps stored values for fields the caller left unset, which
	// arrive here as NULL arguments.
	const query = `
        UPDATE users SET
            email      = COALESCE($1, email),
            password   = COALESCE($2, password),
            profile_id = COALESCE($3, profile_id),
            status_id  = COALESCE($4, status_id)
        WHERE id=$5
        RETURNING id, email, password, creation_date, profile_id, status_id`

	updated, err := r.scanOne(r.pool.QueryRow(ctx, query,
		nullableString(user.Email),
		nullableString(user.Password),
		user.ProfileID,
		user.StatusID,
		user.ID,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, util.NewConflict("user", map[string]any{"email": user.Email})
		}
		return nil, err
	}
	if updated == nil {
		return nil, util.NewNotFound("user", map[string]any{"id": user.ID})
	}
	return updated, nil
}

func (r *userRepository) scanOne(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.CreationDate,
		&user.ProfileID,
		&user.StatusID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, util.NewPersistenceFailure(err)
	}
	return &user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
