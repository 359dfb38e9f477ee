package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/estudia-app/estudia/domains/subject"
)

type subjectModel struct {
	ID        string    `gorm:"primaryKey"`
	UserID    string    `gorm:"index:idx_subjects_user;not null"`
	Name      string    `gorm:"not null"`
	Color     string    `gorm:"default:'#6366f1'"`
	CreatedAt time.Time `gorm:"not null"`
}

func (subjectModel) TableName() string {
	return "subjects"
}

type SubjectGormRepository struct {
	db *gorm.DB
}

func NewSubjectGormRepository(db *gorm.DB) *SubjectGormRepository {
	return &SubjectGormRepository{db: db}
}

func (r *SubjectGormRepository) InitSchema(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&subjectModel{})
}

func (r *SubjectGormRepository) Create(ctx context.Context, s *subject.Subject) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(toSubjectModel(s)).Error
}

func (r *SubjectGormRepository) GetByID(ctx context.Context, id string) (*subject.Subject, error) {
	var m subjectModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subject.ErrSubjectNotFound
		}
		return nil, err
	}
	return toSubject(&m), nil
}

func (r *SubjectGormRepository) ListByUser(ctx context.Context, userID string) ([]*subject.Subject, error) {
	var models []subjectModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	subjects := make([]*subject.Subject, 0, len(models))
	for i := range models {
		subjects = append(subjects, toSubject(&models[i]))
	}
	return subjects, nil
}

func (r *SubjectGormRepository) Update(ctx context.Context, s *subject.Subject) error {
	result := r.db.WithContext(ctx).Model(&subjectModel{}).Where("id = ?", s.ID).Updates(map[string]any{
		"name":  s.Name,
		"color": s.Color,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return subject.ErrSubjectNotFound
	}
	return nil
}

func (r *SubjectGormRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&subjectModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return subject.ErrSubjectNotFound
	}
	return nil
}

func toSubjectModel(s *subject.Subject) *subjectModel {
	return &subjectModel{
		ID:        s.ID,
		UserID:    s.UserID,
		Name:      s.Name,
		Color:     s.Color,
		CreatedAt: s.CreatedAt,
	}
}

func toSubject(m *subjectModel) *subject.Subject {
	return &subject.Subject{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Color:     m.Color,
		CreatedAt: m.CreatedAt,
	}
}
