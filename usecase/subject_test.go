package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	domainSubject "github.com/estudia-app/estudia/domains/subject"
)

type fakeSubjectRepo struct {
	subjects map[string]*domainSubject.Subject
}

func newFakeSubjectRepo() *fakeSubjectRepo {
	return &fakeSubjectRepo{subjects: make(map[string]*domainSubject.Subject)}
}

func (r *fakeSubjectRepo) Create(ctx context.Context, s *domainSubject.Subject) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	s.CreatedAt = time.Now()
	r.subjects[s.ID] = s
	return nil
}

func (r *fakeSubjectRepo) GetByID(ctx context.Context, id string) (*domainSubject.Subject, error) {
	s, ok := r.subjects[id]
	if !ok {
		return nil, domainSubject.ErrSubjectNotFound
	}
	copy := *s
	return &copy, nil
}

func (r *fakeSubjectRepo) ListByUser(ctx context.Context, userID string) ([]*domainSubject.Subject, error) {
	var out []*domainSubject.Subject
	for _, s := range r.subjects {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSubjectRepo) Update(ctx context.Context, s *domainSubject.Subject) error {
	if _, ok := r.subjects[s.ID]; !ok {
		return domainSubject.ErrSubjectNotFound
	}
	copy := *s
	r.subjects[s.ID] = &copy
	return nil
}

func (r *fakeSubjectRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.subjects[id]; !ok {
		return domainSubject.ErrSubjectNotFound
	}
	delete(r.subjects, id)
	return nil
}

func TestSubjectService_CreateDefaultsColor(t *testing.T) {
	svc := NewSubjectService(newFakeSubjectRepo())

	s, err := svc.Create(context.Background(), domainSubject.CreateSubjectRequest{
		UserID: "user-1",
		Name:   "Matemáticas",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if s.Color != "#6366f1" {
		t.Fatalf("Create() color = %q, want default", s.Color)
	}
}

func TestSubjectService_Create_Validation(t *testing.T) {
	svc := NewSubjectService(newFakeSubjectRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, domainSubject.CreateSubjectRequest{UserID: "u", Name: ""}); err == nil {
		t.Fatal("Create() with empty name should fail")
	}
	if _, err := svc.Create(ctx, domainSubject.CreateSubjectRequest{UserID: "u", Name: "Física", Color: "azul"}); err == nil {
		t.Fatal("Create() with non-hex color should fail")
	}
	if _, err := svc.Create(ctx, domainSubject.CreateSubjectRequest{Name: "Física"}); err == nil {
		t.Fatal("Create() without user should fail")
	}
}

func TestSubjectService_UpdateAndDelete(t *testing.T) {
	repo := newFakeSubjectRepo()
	svc := NewSubjectService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, domainSubject.CreateSubjectRequest{UserID: "u", Name: "Química", Color: "#abc"})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, domainSubject.UpdateSubjectRequest{Name: "Química Orgánica"})
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if updated.Name != "Química Orgánica" {
		t.Fatalf("Update() name = %q", updated.Name)
	}
	if updated.Color != "#abc" {
		t.Fatalf("Update() should keep color when omitted, got %q", updated.Color)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID); err == nil {
		t.Fatal("GetByID() after delete should fail")
	}
}
