package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"taskdeck/internal/domain"
)

// mockTaskRepo conserva orden de inserción, como el listado paginado real.
type mockTaskRepo struct {
	tasks []domain.Task
}

func (m *mockTaskRepo) Create(_ context.Context, task domain.Task) error {
	m.tasks = append(m.tasks, task)
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id string) (domain.Task, error) {
	for _, t := range m.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Task{}, pgx.ErrNoRows
}

func (m *mockTaskRepo) Update(_ context.Context, task domain.Task) error {
	for i, t := range m.tasks {
		if t.ID == task.ID {
			task.UserID = t.UserID
			task.CreatedAt = t.CreatedAt
			m.tasks[i] = task
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *mockTaskRepo) Delete(_ context.Context, id string) error {
	for i, t := range m.tasks {
		if t.ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *mockTaskRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]domain.Task, error) {
	var owned []domain.Task
	for _, t := range m.tasks {
		if t.UserID == userID {
			owned = append(owned, t)
		}
	}
	if offset >= len(owned) {
		return nil, nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], nil
}

func (m *mockTaskRepo) CountByUser(_ context.Context, userID string) (int, error) {
	count := 0
	for _, t := range m.tasks {
		if t.UserID == userID {
			count++
		}
	}
	return count, nil
}

func newTaskService(repo *mockTaskRepo) *TaskService {
	return NewTaskService(zap.NewNop(), repo, 255, 1000)
}

func TestTaskServiceCreate(t *testing.T) {
	repo := &mockTaskRepo{}
	svc := newTaskService(repo)

	task, err := svc.Create(context.Background(), "u1", "Buy milk", "Two liters")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if task.IsDone {
		t.Fatalf("expected new task to be pending")
	}
	if task.UserID != "u1" {
		t.Fatalf("expected owner u1, got %s", task.UserID)
	}
	if task.CreatedAt.IsZero() {
		t.Fatalf("expected createdAt to be set")
	}
	if len(repo.tasks) != 1 {
		t.Fatalf("expected task persisted")
	}
}

func TestTaskServiceCreate_Validation(t *testing.T) {
	svc := newTaskService(&mockTaskRepo{})

	_, err := svc.Create(context.Background(), "u1", "", "")
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if _, ok := verrs["title"]; !ok {
		t.Fatalf("expected title error, got %v", verrs)
	}
	if _, ok := verrs["description"]; !ok {
		t.Fatalf("expected description error, got %v", verrs)
	}

	_, err = svc.Create(context.Background(), "u1", strings.Repeat("x", 256), "ok")
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors for long title, got %v", err)
	}
	if _, ok := verrs["title"]; !ok {
		t.Fatalf("expected title length error, got %v", verrs)
	}
}

func seedTasks(t *testing.T, svc *TaskService, userID string, n int) []domain.Task {
	t.Helper()
	tasks := make([]domain.Task, 0, n)
	for i := 0; i < n; i++ {
		task, err := svc.Create(context.Background(), userID, fmt.Sprintf("task %02d", i), "details")
		if err != nil {
			t.Fatalf("seed task %d: %v", i, err)
		}
		tasks = append(tasks, task)
	}
	return tasks
}

func TestTaskServiceList_Pagination(t *testing.T) {
	repo := &mockTaskRepo{}
	svc := newTaskService(repo)
	seedTasks(t, svc, "u1", 25)

	page1, err := svc.List(context.Background(), "u1", 1, 10)
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if len(page1.Items) != 10 || page1.Total != 25 || page1.Page != 1 || page1.Pages != 3 {
		t.Fatalf("unexpected page 1: items=%d total=%d page=%d pages=%d", len(page1.Items), page1.Total, page1.Page, page1.Pages)
	}
	if page1.Items[0].Title != "task 00" {
		t.Fatalf("expected insertion order, got %s first", page1.Items[0].Title)
	}

	page2, _ := svc.List(context.Background(), "u1", 2, 10)
	if len(page2.Items) != 10 || page2.Items[0].Title != "task 10" {
		t.Fatalf("unexpected page 2: items=%d", len(page2.Items))
	}

	page3, _ := svc.List(context.Background(), "u1", 3, 10)
	if len(page3.Items) != 5 {
		t.Fatalf("expected 5 items on page 3, got %d", len(page3.Items))
	}

	// Fuera de rango: página vacía, nunca error.
	page9, err := svc.List(context.Background(), "u1", 9, 10)
	if err != nil {
		t.Fatalf("out of range page: %v", err)
	}
	if len(page9.Items) != 0 || page9.Total != 25 || page9.Pages != 3 {
		t.Fatalf("expected empty page, got items=%d", len(page9.Items))
	}
}

func TestTaskServiceList_Defaults(t *testing.T) {
	repo := &mockTaskRepo{}
	svc := newTaskService(repo)
	seedTasks(t, svc, "u1", 12)

	page, err := svc.List(context.Background(), "u1", 0, 0)
	if err != nil {
		t.Fatalf("list with zero params: %v", err)
	}
	if page.Page != 1 || len(page.Items) != 10 || page.Pages != 2 {
		t.Fatalf("expected defaults page=1 size=10, got page=%d items=%d pages=%d", page.Page, len(page.Items), page.Pages)
	}
}

func TestTaskServiceList_OnlyOwnTasks(t *testing.T) {
	repo := &mockTaskRepo{}
	svc := newTaskService(repo)
	seedTasks(t, svc, "u1", 3)
	seedTasks(t, svc, "u2", 2)

	page, err := svc.List(context.Background(), "u2", 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 2 || len(page.Items) != 2 {
		t.Fatalf("expected only own tasks, got total=%d", page.Total)
	}
	for _, item := range page.Items {
		if item.UserID != "u2" {
			t.Fatalf("foreign task leaked: %+v", item)
		}
	}
}

func TestTaskServiceOwnership_ForeignTaskLooksMissing(t *testing.T) {
	repo := &mockTaskRepo{}
	svc := newTaskService(repo)
	owned := seedTasks(t, svc, "userA", 1)[0]

	if _, err := svc.Get(context.Background(), "userB", owned.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound on get, got %v", err)
	}
	title := "hijacked"
	if _, err := svc.Update(context.Background(), "userB", owned.ID, UpdateTaskInput{Title: &title}); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound on update, got %v", err)
	}
	if err := svc.Delete(context.Background(), "userB", owned.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound on delete, got %v", err)
	}
	if err := svc.Complete(context.Background(), "userB", owned.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound on complete, got %v", err)
	}

	// El dueño sigue viendo su tarea intacta.
	task, err := svc.Get(context.Background(), "userA", owned.ID)
	if err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if task.Title != owned.Title || task.IsDone {
		t.Fatalf("task mutated by foreign caller: %+v", task)
	}
}

func TestTaskServiceGet_Missing(t *testing.T) {
	svc := newTaskService(&mockTaskRepo{})
	if _, err := svc.Get(context.Background(), "u1", "nope"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskServiceUpdate_PartialSemantics(t *testing.T) {
	repo := &mockTaskRepo{}
	svc := newTaskService(repo)
	task := seedTasks(t, svc, "u1", 1)[0]

	done := true
	updated, err := svc.Update(context.Background(), "u1", task.ID, UpdateTaskInput{IsDone: &done})
	if err != nil {
		t.Fatalf("patch isDone: %v", err)
	}
	if !updated.IsDone {
		t.Fatalf("expected isDone true")
	}
	if updated.Title != task.Title || updated.Description != task.Description {
		t.Fatalf("expected untouched fields to survive: %+v", updated)
	}
	if !updated.CreatedAt.Equal(task.CreatedAt) {
		t.Fatalf("createdAt must be immutable")
	}

	title := "renamed"
	updated, err = svc.Update(context.Background(), "u1", task.ID, UpdateTaskInput{Title: &title})
	if err != nil {
		t.Fatalf("patch title: %v", err)
	}
	if updated.Title != "renamed" || !updated.IsDone {
		t.Fatalf("expected title change to keep isDone: %+v", updated)
	}
}

func TestTaskServiceUpdate_Revalidates(t *testing.T) {
	repo := &mockTaskRepo{}
	svc := newTaskService(repo)
	task := seedTasks(t, svc, "u1", 1)[0]

	empty := ""
	_, err := svc.Update(context.Background(), "u1", task.ID, UpdateTaskInput{Title: &empty})
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	stored, _ := repo.GetByID(context.Background(), task.ID)
	if stored.Title != task.Title {
		t.Fatalf("invalid update must not persist")
	}
}

func TestTaskServiceComplete_Idempotent(t *testing.T) {
	repo := &mockTaskRepo{}
	svc := newTaskService(repo)
	task := seedTasks(t, svc, "u1", 1)[0]

	for i := 0; i < 2; i++ {
		if err := svc.Complete(context.Background(), "u1", task.ID); err != nil {
			t.Fatalf("complete call %d: %v", i+1, err)
		}
		stored, _ := repo.GetByID(context.Background(), task.ID)
		if !stored.IsDone {
			t.Fatalf("expected isDone true after call %d", i+1)
		}
	}
}

func TestTaskServiceDelete(t *testing.T) {
	repo := &mockTaskRepo{}
	svc := newTaskService(repo)
	task := seedTasks(t, svc, "u1", 1)[0]

	if err := svc.Delete(context.Background(), "u1", task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), "u1", task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected task gone, got %v", err)
	}
}
