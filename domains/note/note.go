package note

import (
	"context"
	"errors"
	"time"
)

// Status tracks the asynchronous OCR + explanation pipeline for a note's
// attached image.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusDone       Status = "done"
	StatusFailed     Status = "failed"
)

type ClassNote struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	SubjectID     string    `json:"subject_id"`
	ImagePath     string    `json:"image_path,omitempty"`
	ExtractedText string    `json:"extracted_text,omitempty"`
	AIExplanation string    `json:"ai_explanation,omitempty"`
	Status        Status    `json:"status"`
	StatusDetail  string    `json:"status_detail,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateNoteRequest struct {
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	SubjectID string `json:"subject_id"`
	// ImageData is the raw uploaded image; when present the note is queued
	// for OCR + AI explanation.
	ImageData []byte `json:"-"`
	ImageMime string `json:"-"`
}

type UpdateNoteRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	SubjectID *string `json:"subject_id"`
}

var ErrNoteNotFound = errors.New("class note not found")

type INoteRepository interface {
	Create(ctx context.Context, note *ClassNote) error
	GetByID(ctx context.Context, id string) (*ClassNote, error)
	ListByUser(ctx context.Context, userID string) ([]*ClassNote, error)
	Update(ctx context.Context, note *ClassNote) error
	Delete(ctx context.Context, id string) error
}

type INoteUsecase interface {
	Create(ctx context.Context, request CreateNoteRequest) (*ClassNote, error)
	GetByID(ctx context.Context, id string) (*ClassNote, error)
	ListByUser(ctx context.Context, userID string) ([]*ClassNote, error)
	Update(ctx context.Context, id string, request UpdateNoteRequest) (*ClassNote, error)
	Delete(ctx context.Context, id string) error
	// Reprocess re-runs the OCR + explanation pipeline for a note that has
	// an attached image (e.g. after a failed run).
	Reprocess(ctx context.Context, id string) (*ClassNote, error)
}
