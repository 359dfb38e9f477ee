package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	domainTodo "github.com/estudia-app/estudia/domains/todo"
)

type fakeTodoRepo struct {
	todos map[string]*domainTodo.Todo
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{todos: make(map[string]*domainTodo.Todo)}
}

func (r *fakeTodoRepo) Create(ctx context.Context, t *domainTodo.Todo) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	copy := *t
	r.todos[t.ID] = &copy
	return nil
}

func (r *fakeTodoRepo) GetByID(ctx context.Context, id string) (*domainTodo.Todo, error) {
	t, ok := r.todos[id]
	if !ok {
		return nil, domainTodo.ErrTodoNotFound
	}
	copy := *t
	return &copy, nil
}

func (r *fakeTodoRepo) ListByUser(ctx context.Context, userID string, filter domainTodo.TodoFilter) ([]*domainTodo.Todo, error) {
	var out []*domainTodo.Todo
	for _, t := range r.todos {
		if t.UserID != userID {
			continue
		}
		if filter.SubjectID != nil && t.SubjectID != *filter.SubjectID {
			continue
		}
		if filter.Completed != nil && t.Completed != *filter.Completed {
			continue
		}
		copy := *t
		out = append(out, &copy)
	}
	return out, nil
}

func (r *fakeTodoRepo) Update(ctx context.Context, t *domainTodo.Todo) error {
	if _, ok := r.todos[t.ID]; !ok {
		return domainTodo.ErrTodoNotFound
	}
	copy := *t
	r.todos[t.ID] = &copy
	return nil
}

func (r *fakeTodoRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.todos[id]; !ok {
		return domainTodo.ErrTodoNotFound
	}
	delete(r.todos, id)
	return nil
}

func TestTodoService_CreateDefaultsPriority(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo())

	created, err := svc.Create(context.Background(), domainTodo.CreateTodoRequest{
		UserID: "user-1",
		Title:  "Estudiar derivadas",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if created.Priority != domainTodo.PriorityMedium {
		t.Fatalf("Create() priority = %q, want medium", created.Priority)
	}
}

func TestTodoService_Create_Validation(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, domainTodo.CreateTodoRequest{UserID: "u", Title: ""}); err == nil {
		t.Fatal("Create() with empty title should fail")
	}
	if _, err := svc.Create(ctx, domainTodo.CreateTodoRequest{UserID: "u", Title: "x", Priority: "urgent"}); err == nil {
		t.Fatal("Create() with unknown priority should fail")
	}
}

func TestTodoService_ToggleComplete(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, domainTodo.CreateTodoRequest{UserID: "u", Title: "Repasar apuntes"})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	toggled, err := svc.ToggleComplete(ctx, created.ID)
	if err != nil {
		t.Fatalf("ToggleComplete() unexpected error: %v", err)
	}
	if !toggled.Completed {
		t.Fatal("first toggle should mark completed")
	}

	toggled, err = svc.ToggleComplete(ctx, created.ID)
	if err != nil {
		t.Fatalf("ToggleComplete() unexpected error: %v", err)
	}
	if toggled.Completed {
		t.Fatal("second toggle should mark pending again")
	}
}

func TestTodoService_ListFilters(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo())
	ctx := context.Background()

	mk := func(title, subjectID string, completed bool) {
		created, err := svc.Create(ctx, domainTodo.CreateTodoRequest{UserID: "u", Title: title, SubjectID: subjectID})
		if err != nil {
			t.Fatalf("Create(%q) unexpected error: %v", title, err)
		}
		if completed {
			if _, err := svc.ToggleComplete(ctx, created.ID); err != nil {
				t.Fatalf("ToggleComplete(%q) unexpected error: %v", title, err)
			}
		}
	}

	mk("a", "math", false)
	mk("b", "math", true)
	mk("c", "physics", false)

	subjectID := "math"
	bySubject, err := svc.ListByUser(ctx, "u", domainTodo.TodoFilter{SubjectID: &subjectID})
	if err != nil {
		t.Fatalf("ListByUser() unexpected error: %v", err)
	}
	if len(bySubject) != 2 {
		t.Fatalf("subject filter returned %d todos, want 2", len(bySubject))
	}

	completed := true
	done, err := svc.ListByUser(ctx, "u", domainTodo.TodoFilter{Completed: &completed})
	if err != nil {
		t.Fatalf("ListByUser() unexpected error: %v", err)
	}
	if len(done) != 1 || done[0].Title != "b" {
		t.Fatalf("completed filter returned %v", done)
	}
}

func TestTodoService_PartialUpdate(t *testing.T) {
	svc := NewTodoService(newFakeTodoRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, domainTodo.CreateTodoRequest{
		UserID:      "u",
		Title:       "Leer capítulo 3",
		Description: "páginas 40-60",
		Priority:    domainTodo.PriorityHigh,
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	newTitle := "Leer capítulo 4"
	updated, err := svc.Update(ctx, created.ID, domainTodo.UpdateTodoRequest{Title: &newTitle})
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if updated.Title != newTitle {
		t.Fatalf("Update() title = %q", updated.Title)
	}
	if updated.Description != "páginas 40-60" || updated.Priority != domainTodo.PriorityHigh {
		t.Fatal("Update() must leave omitted fields unchanged")
	}
}
