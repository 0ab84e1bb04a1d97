package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskdeck/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile domain.Profile) error
	GetByID(ctx context.Context, id string) (domain.Profile, error)
	Update(ctx context.Context, profile domain.Profile) error
	Delete(ctx context.Context, id string) error
	SetPicture(ctx context.Context, id, filename string) error
}

type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

func (r *PgProfileRepository) Create(ctx context.Context, profile domain.Profile) error {
	const query = `
		INSERT INTO profiles (id, first_name, last_name, bio, profile_picture)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		profile.ID,
		profile.FirstName,
		profile.LastName,
		profile.Bio,
		profile.ProfilePicture,
	)
	return err
}

func (r *PgProfileRepository) GetByID(ctx context.Context, id string) (domain.Profile, error) {
	const query = `
		SELECT id, first_name, last_name, bio, profile_picture
		FROM profiles
		WHERE id = $1
	`
	var p domain.Profile
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.Bio,
		&p.ProfilePicture,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, err
	}
	return p, err
}

func (r *PgProfileRepository) Update(ctx context.Context, profile domain.Profile) error {
	const query = `
		UPDATE profiles
		SET first_name = $2, last_name = $3, bio = $4
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		profile.ID,
		profile.FirstName,
		profile.LastName,
		profile.Bio,
	)
	return err
}

func (r *PgProfileRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM profiles WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *PgProfileRepository) SetPicture(ctx context.Context, id, filename string) error {
	const query = `UPDATE profiles SET profile_picture = $2 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, filename)
	return err
}
