package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskdeck/internal/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task domain.Task) error
	GetByID(ctx context.Context, id string) (domain.Task, error)
	Update(ctx context.Context, task domain.Task) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Task, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

type PgTaskRepository struct {
	pool *pgxpool.Pool
}

func NewPgTaskRepository(pool *pgxpool.Pool) *PgTaskRepository {
	return &PgTaskRepository{pool: pool}
}

func (r *PgTaskRepository) Create(ctx context.Context, task domain.Task) error {
	const query = `
		INSERT INTO tasks (id, title, description, is_done, created_at, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.IsDone,
		task.CreatedAt,
		task.UserID,
	)
	return err
}

func (r *PgTaskRepository) GetByID(ctx context.Context, id string) (domain.Task, error) {
	const query = `
		SELECT id, title, description, is_done, created_at, user_id
		FROM tasks
		WHERE id = $1
	`
	var t domain.Task
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.IsDone,
		&t.CreatedAt,
		&t.UserID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Task{}, err
	}
	return t, err
}

func (r *PgTaskRepository) Update(ctx context.Context, task domain.Task) error {
	const query = `
		UPDATE tasks
		SET title = $2, description = $3, is_done = $4
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.IsDone,
	)
	return err
}

func (r *PgTaskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *PgTaskRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Task, error) {
	// Orden estable por fecha de creación e id para paginar.
	const query = `
		SELECT id, title, description, is_done, created_at, user_id
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		err = rows.Scan(
			&t.ID,
			&t.Title,
			&t.Description,
			&t.IsDone,
			&t.CreatedAt,
			&t.UserID,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *PgTaskRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM tasks WHERE user_id = $1`
	var count int
	err := r.pool.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}
