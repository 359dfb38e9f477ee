package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/estudia-app/estudia/domains/note"
)

type noteModel struct {
	ID            string `gorm:"primaryKey"`
	UserID        string `gorm:"index:idx_notes_user;not null"`
	Title         string `gorm:"not null"`
	Content       string `gorm:"type:text"`
	SubjectID     string `gorm:"index:idx_notes_subject"`
	ImagePath     string
	ExtractedText string    `gorm:"type:text"`
	AIExplanation string    `gorm:"type:text"`
	Status        string    `gorm:"default:'pending';index:idx_notes_status"`
	StatusDetail  string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

func (noteModel) TableName() string {
	return "class_notes"
}

type NoteGormRepository struct {
	db *gorm.DB
}

func NewNoteGormRepository(db *gorm.DB) *NoteGormRepository {
	return &NoteGormRepository{db: db}
}

func (r *NoteGormRepository) InitSchema(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&noteModel{})
}

func (r *NoteGormRepository) Create(ctx context.Context, n *note.ClassNote) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	now := time.Now()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	n.UpdatedAt = now
	return r.db.WithContext(ctx).Create(toNoteModel(n)).Error
}

func (r *NoteGormRepository) GetByID(ctx context.Context, id string) (*note.ClassNote, error) {
	var m noteModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, note.ErrNoteNotFound
		}
		return nil, err
	}
	return toNote(&m), nil
}

func (r *NoteGormRepository) ListByUser(ctx context.Context, userID string) ([]*note.ClassNote, error) {
	var models []noteModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	notes := make([]*note.ClassNote, 0, len(models))
	for i := range models {
		notes = append(notes, toNote(&models[i]))
	}
	return notes, nil
}

func (r *NoteGormRepository) Update(ctx context.Context, n *note.ClassNote) error {
	n.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).Model(&noteModel{}).Where("id = ?", n.ID).Updates(map[string]any{
		"title":          n.Title,
		"content":        n.Content,
		"subject_id":     n.SubjectID,
		"image_path":     n.ImagePath,
		"extracted_text": n.ExtractedText,
		"ai_explanation": n.AIExplanation,
		"status":         string(n.Status),
		"status_detail":  n.StatusDetail,
		"updated_at":     n.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return note.ErrNoteNotFound
	}
	return nil
}

func (r *NoteGormRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&noteModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return note.ErrNoteNotFound
	}
	return nil
}

func toNoteModel(n *note.ClassNote) *noteModel {
	return &noteModel{
		ID:            n.ID,
		UserID:        n.UserID,
		Title:         n.Title,
		Content:       n.Content,
		SubjectID:     n.SubjectID,
		ImagePath:     n.ImagePath,
		ExtractedText: n.ExtractedText,
		AIExplanation: n.AIExplanation,
		Status:        string(n.Status),
		StatusDetail:  n.StatusDetail,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
	}
}

func toNote(m *noteModel) *note.ClassNote {
	return &note.ClassNote{
		ID:            m.ID,
		UserID:        m.UserID,
		Title:         m.Title,
		Content:       m.Content,
		SubjectID:     m.SubjectID,
		ImagePath:     m.ImagePath,
		ExtractedText: m.ExtractedText,
		AIExplanation: m.AIExplanation,
		Status:        note.Status(m.Status),
		StatusDetail:  m.StatusDetail,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
