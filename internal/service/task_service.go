package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"taskdeck/internal/domain"
	"taskdeck/internal/repository"
)

// ErrTaskNotFound cubre tanto tareas inexistentes como ajenas:
// el dueño real nunca se revela al que consulta.
var ErrTaskNotFound = errors.New("task not found")

// ValidationErrors acumula mensajes por campo.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(v))
}

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// TaskService aplica propiedad por usuario, validación y paginado.
type TaskService struct {
	logger   *zap.Logger
	tasks    repository.TaskRepository
	titleMax int
	descMax  int
}

func NewTaskService(logger *zap.Logger, tasks repository.TaskRepository, titleMax, descMax int) *TaskService {
	if titleMax <= 0 {
		titleMax = 255
	}
	if descMax <= 0 {
		descMax = 1000
	}
	return &TaskService{
		logger:   logger,
		tasks:    tasks,
		titleMax: titleMax,
		descMax:  descMax,
	}
}

// Create crea una tarea del usuario autenticado, pendiente por defecto.
func (s *TaskService) Create(ctx context.Context, userID, title, description string) (domain.Task, error) {
	task := domain.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		IsDone:      false,
		CreatedAt:   time.Now().UTC(),
		UserID:      userID,
	}
	if errs := s.validate(task); len(errs) > 0 {
		return domain.Task{}, errs
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// TaskPage es una página del listado de tareas de un usuario.
type TaskPage struct {
	Items []domain.Task
	Total int
	Page  int
	Pages int
}

// List devuelve solo tareas del usuario; una página fuera de rango
// resulta en una página vacía, nunca en error.
func (s *TaskService) List(ctx context.Context, userID string, page, pageSize int) (TaskPage, error) {
	if page < 1 {
		page = defaultPage
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	total, err := s.tasks.CountByUser(ctx, userID)
	if err != nil {
		return TaskPage{}, err
	}

	offset := (page - 1) * pageSize
	var items []domain.Task
	if offset < total {
		items, err = s.tasks.ListByUser(ctx, userID, pageSize, offset)
		if err != nil {
			return TaskPage{}, err
		}
	}

	pages := (total + pageSize - 1) / pageSize
	return TaskPage{
		Items: items,
		Total: total,
		Page:  page,
		Pages: pages,
	}, nil
}

// Get devuelve la tarea solo si pertenece al usuario.
func (s *TaskService) Get(ctx context.Context, userID, id string) (domain.Task, error) {
	return s.getOwned(ctx, userID, id)
}

type UpdateTaskInput struct {
	Title       *string
	Description *string
	IsDone      *bool
}

// Update aplica los campos provistos sobre la tarea y revalida.
// Un campo ausente conserva el valor actual, tanto en PUT como en PATCH.
func (s *TaskService) Update(ctx context.Context, userID, id string, input UpdateTaskInput) (domain.Task, error) {
	task, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return domain.Task{}, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.IsDone != nil {
		task.IsDone = *input.IsDone
	}

	if errs := s.validate(task); len(errs) > 0 {
		return domain.Task{}, errs
	}
	if err := s.tasks.Update(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// Delete elimina la tarea del usuario.
func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	task, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.tasks.Delete(ctx, task.ID)
}

// Complete marca la tarea como hecha; es idempotente.
func (s *TaskService) Complete(ctx context.Context, userID, id string) error {
	task, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	task.IsDone = true
	return s.tasks.Update(ctx, task)
}

func (s *TaskService) getOwned(ctx context.Context, userID, id string) (domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Task{}, ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	if task.UserID != userID {
		return domain.Task{}, ErrTaskNotFound
	}
	return task, nil
}

func (s *TaskService) validate(task domain.Task) ValidationErrors {
	errs := ValidationErrors{}
	title := strings.TrimSpace(task.Title)
	if title == "" {
		errs["title"] = "This value should not be blank."
	} else if len(task.Title) > s.titleMax {
		errs["title"] = fmt.Sprintf("This value is too long. It should have %d characters or less.", s.titleMax)
	}
	description := strings.TrimSpace(task.Description)
	if description == "" {
		errs["description"] = "This value should not be blank."
	} else if len(task.Description) > s.descMax {
		errs["description"] = fmt.Sprintf("This value is too long. It should have %d characters or less.", s.descMax)
	}
	return errs
}
