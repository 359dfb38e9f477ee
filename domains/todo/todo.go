package todo

import (
	"context"
	"errors"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Todo struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	SubjectID   string     `json:"subject_id,omitempty"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CreateTodoRequest struct {
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	SubjectID   string     `json:"subject_id"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateTodoRequest carries partial updates; nil pointers mean "unchanged".
type UpdateTodoRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Completed   *bool      `json:"completed"`
	SubjectID   *string    `json:"subject_id"`
	Priority    *Priority  `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

// TodoFilter narrows List results; nil fields are ignored.
type TodoFilter struct {
	SubjectID *string
	Completed *bool
}

var ErrTodoNotFound = errors.New("todo not found")

type ITodoRepository interface {
	Create(ctx context.Context, todo *Todo) error
	GetByID(ctx context.Context, id string) (*Todo, error)
	ListByUser(ctx context.Context, userID string, filter TodoFilter) ([]*Todo, error)
	Update(ctx context.Context, todo *Todo) error
	Delete(ctx context.Context, id string) error
}

type ITodoUsecase interface {
	Create(ctx context.Context, request CreateTodoRequest) (*Todo, error)
	GetByID(ctx context.Context, id string) (*Todo, error)
	ListByUser(ctx context.Context, userID string, filter TodoFilter) ([]*Todo, error)
	Update(ctx context.Context, id string, request UpdateTodoRequest) (*Todo, error)
	ToggleComplete(ctx context.Context, id string) (*Todo, error)
	Delete(ctx context.Context, id string) error
}
