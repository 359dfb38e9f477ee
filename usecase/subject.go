package usecase

import (
	"context"

	domainSubject "github.com/estudia-app/estudia/domains/subject"
	"github.com/estudia-app/estudia/validations"
)

type subjectService struct {
	repo domainSubject.ISubjectRepository
}

func NewSubjectService(repo domainSubject.ISubjectRepository) domainSubject.ISubjectUsecase {
	return &subjectService{repo: repo}
}

func (s *subjectService) Create(ctx context.Context, request domainSubject.CreateSubjectRequest) (*domainSubject.Subject, error) {
	if err := validations.ValidateCreateSubject(ctx, request); err != nil {
		return nil, err
	}

	subject := &domainSubject.Subject{
		UserID: request.UserID,
		Name:   request.Name,
		Color:  request.Color,
	}
	if subject.Color == "" {
		subject.Color = "#6366f1"
	}
	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *subjectService) GetByID(ctx context.Context, id string) (*domainSubject.Subject, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *subjectService) ListByUser(ctx context.Context, userID string) ([]*domainSubject.Subject, error) {
	if err := validations.ValidateUserID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *subjectService) Update(ctx context.Context, id string, request domainSubject.UpdateSubjectRequest) (*domainSubject.Subject, error) {
	if err := validations.ValidateUpdateSubject(ctx, request); err != nil {
		return nil, err
	}

	subject, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	subject.Name = request.Name
	if request.Color != "" {
		subject.Color = request.Color
	}
	if err := s.repo.Update(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *subjectService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
