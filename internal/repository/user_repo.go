package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskdeck/internal/domain"
)

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	SetVerificationCode(ctx context.Context, id string, code int) error
	ClearVerificationCode(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (id, email, password_hash, roles, verification_code, profile_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Roles,
		user.VerificationCode,
		user.ProfileID,
		user.CreatedAt,
	)
	return err
}

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *PgUserRepository) getBy(ctx context.Context, column, value string) (domain.User, error) {
	query := `
		SELECT id, email, password_hash, roles, verification_code, profile_id, created_at
		FROM users
		WHERE ` + column + ` = $1
	`
	var u domain.User
	err := r.pool.QueryRow(ctx, query, value).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Roles,
		&u.VerificationCode,
		&u.ProfileID,
		&u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}
	return u, err
}

func (r *PgUserRepository) SetVerificationCode(ctx context.Context, id string, code int) error {
	const query = `UPDATE users SET verification_code = $2 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, code)
	return err
}

func (r *PgUserRepository) ClearVerificationCode(ctx context.Context, id string) error {
	const query = `UPDATE users SET verification_code = NULL WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *PgUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $2 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, passwordHash)
	return err
}
