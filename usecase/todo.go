package usecase

import (
	"context"

	domainTodo "github.com/estudia-app/estudia/domains/todo"
	"github.com/estudia-app/estudia/validations"
)

type todoService struct {
	repo domainTodo.ITodoRepository
}

func NewTodoService(repo domainTodo.ITodoRepository) domainTodo.ITodoUsecase {
	return &todoService{repo: repo}
}

func (s *todoService) Create(ctx context.Context, request domainTodo.CreateTodoRequest) (*domainTodo.Todo, error) {
	if err := validations.ValidateCreateTodo(ctx, request); err != nil {
		return nil, err
	}

	t := &domainTodo.Todo{
		UserID:      request.UserID,
		Title:       request.Title,
		Description: request.Description,
		SubjectID:   request.SubjectID,
		Priority:    request.Priority,
		DueDate:     request.DueDate,
	}
	if t.Priority == "" {
		t.Priority = domainTodo.PriorityMedium
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *todoService) GetByID(ctx context.Context, id string) (*domainTodo.Todo, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *todoService) ListByUser(ctx context.Context, userID string, filter domainTodo.TodoFilter) ([]*domainTodo.Todo, error) {
	if err := validations.ValidateUserID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID, filter)
}

func (s *todoService) Update(ctx context.Context, id string, request domainTodo.UpdateTodoRequest) (*domainTodo.Todo, error) {
	if err := validations.ValidateUpdateTodo(ctx, request); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if request.Title != nil {
		t.Title = *request.Title
	}
	if request.Description != nil {
		t.Description = *request.Description
	}
	if request.Completed != nil {
		t.Completed = *request.Completed
	}
	if request.SubjectID != nil {
		t.SubjectID = *request.SubjectID
	}
	if request.Priority != nil {
		t.Priority = *request.Priority
	}
	if request.DueDate != nil {
		t.DueDate = request.DueDate
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *todoService) ToggleComplete(ctx context.Context, id string) (*domainTodo.Todo, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Completed = !t.Completed
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *todoService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
