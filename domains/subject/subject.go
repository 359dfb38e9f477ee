package subject

import (
	"context"
	"errors"
	"time"
)

type Subject struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateSubjectRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
}

type UpdateSubjectRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

var ErrSubjectNotFound = errors.New("subject not found")

type ISubjectRepository interface {
	Create(ctx context.Context, subject *Subject) error
	GetByID(ctx context.Context, id string) (*Subject, error)
	ListByUser(ctx context.Context, userID string) ([]*Subject, error)
	Update(ctx context.Context, subject *Subject) error
	Delete(ctx context.Context, id string) error
}

type ISubjectUsecase interface {
	Create(ctx context.Context, request CreateSubjectRequest) (*Subject, error)
	GetByID(ctx context.Context, id string) (*Subject, error)
	ListByUser(ctx context.Context, userID string) ([]*Subject, error)
	Update(ctx context.Context, id string, request UpdateSubjectRequest) (*Subject, error)
	Delete(ctx context.Context, id string) error
}
