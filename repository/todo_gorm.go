package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/estudia-app/estudia/domains/todo"
)

type todoModel struct {
	ID          string `gorm:"primaryKey"`
	UserID      string `gorm:"index:idx_todos_user;not null"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Completed   bool   `gorm:"default:false;index:idx_todos_completed"`
	SubjectID   string `gorm:"index:idx_todos_subject"`
	Priority    string `gorm:"default:'medium'"`
	DueDate     *time.Time
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (todoModel) TableName() string {
	return "todos"
}

type TodoGormRepository struct {
	db *gorm.DB
}

func NewTodoGormRepository(db *gorm.DB) *TodoGormRepository {
	return &TodoGormRepository{db: db}
}

func (r *TodoGormRepository) InitSchema(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&todoModel{})
}

func (r *TodoGormRepository) Create(ctx context.Context, t *todo.Todo) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	return r.db.WithContext(ctx).Create(toTodoModel(t)).Error
}

func (r *TodoGormRepository) GetByID(ctx context.Context, id string) (*todo.Todo, error) {
	var m todoModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, todo.ErrTodoNotFound
		}
		return nil, err
	}
	return toTodo(&m), nil
}

func (r *TodoGormRepository) ListByUser(ctx context.Context, userID string, filter todo.TodoFilter) ([]*todo.Todo, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.SubjectID != nil {
		query = query.Where("subject_id = ?", *filter.SubjectID)
	}
	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}

	var models []todoModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	todos := make([]*todo.Todo, 0, len(models))
	for i := range models {
		todos = append(todos, toTodo(&models[i]))
	}
	return todos, nil
}

func (r *TodoGormRepository) Update(ctx context.Context, t *todo.Todo) error {
	t.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).Model(&todoModel{}).Where("id = ?", t.ID).Updates(map[string]any{
		"title":       t.Title,
		"description": t.Description,
		"completed":   t.Completed,
		"subject_id":  t.SubjectID,
		"priority":    string(t.Priority),
		"due_date":    t.DueDate,
		"updated_at":  t.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return todo.ErrTodoNotFound
	}
	return nil
}

func (r *TodoGormRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&todoModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return todo.ErrTodoNotFound
	}
	return nil
}

func toTodoModel(t *todo.Todo) *todoModel {
	return &todoModel{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		SubjectID:   t.SubjectID,
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTodo(m *todoModel) *todo.Todo {
	return &todo.Todo{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description,
		Completed:   m.Completed,
		SubjectID:   m.SubjectID,
		Priority:    todo.Priority(m.Priority),
		DueDate:     m.DueDate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
