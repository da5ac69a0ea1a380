package writerepo

import (
	"context"

	"fleet-rental/internal/domain/user"
	"fleet-rental/internal/infra"
	"fleet-rental/internal/infra/db"
	"fleet-rental/internal/usecase/queries"

	"github.com/google/uuid"
)

// UserRepository serves the auth use case; user rows see no contended writes,
// so every method runs directly on the pool.
type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

const createUserSQL = `
INSERT INTO users (id, name, email, password_hash, role, is_active)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`

func (r *UserRepository) Create(ctx context.Context, u *user.User) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, createUserSQL,
		u.ID(),
		u.Name(),
		u.Email().Value(),
		u.PasswordHash(),
		u.Role().String(),
		u.IsActive(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}

	return id, nil
}

const findUserByEmailSQL = `
SELECT u.id, u.name, u.email, u.role, u.is_active, u.password_hash
FROM users u
WHERE u.email = $1
`

func (r *UserRepository) FindByEmail(ctx context.Context, email user.Email) (*queries.AuthorizedUserView, string, error) {
	var (
		view queries.AuthorizedUserView
		hash string
	)
	err := r.db.QueryRow(ctx, findUserByEmailSQL, email.Value()).Scan(
		&view.ID,
		&view.Name,
		&view.Email,
		&view.Role,
		&view.IsActive,
		&hash,
	)
	if err != nil {
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}

	return &view, hash, nil
}

const findUserByIDSQL = `
SELECT u.id, u.name, u.email, u.role, u.is_active
FROM users u
WHERE u.id = $1
`

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var view queries.AuthorizedUserView
	err := r.db.QueryRow(ctx, findUserByIDSQL, id).Scan(
		&view.ID,
		&view.Name,
		&view.Email,
		&view.Role,
		&view.IsActive,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	return &view, nil
}

const updateLastLoginSQL = `
UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1
`

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, updateLastLoginSQL, userID); err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}
