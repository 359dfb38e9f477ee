package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/estudia-app/estudia/domains/explanation"
)

// --- Persistence Model ---

type explanationModel struct {
	ID           string    `gorm:"primaryKey"`
	UserID       string    `gorm:"index:idx_explanations_lookup,priority:1;not null"`
	Fingerprint  string    `gorm:"index:idx_explanations_lookup,priority:2;not null"`
	OriginalText string    `gorm:"type:text;not null"`
	Explanation  string    `gorm:"type:text;not null"`
	CreatedAt    time.Time `gorm:"not null;index"`
}

func (explanationModel) TableName() string {
	return "ai_explanations"
}

// --- Repository Implementation ---

type ExplanationGormRepository struct {
	db *gorm.DB
}

func NewExplanationGormRepository(db *gorm.DB) *ExplanationGormRepository {
	return &ExplanationGormRepository{db: db}
}

func (r *ExplanationGormRepository) InitSchema(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&explanationModel{})
}

// Get returns the most recent entry for (userID, fingerprint). Older
// duplicates stay in place; recency wins.
func (r *ExplanationGormRepository) Get(ctx context.Context, userID, fp string) (*explanation.Record, error) {
	var m explanationModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND fingerprint = ?", userID, fp).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, explanation.ErrNotFound
		}
		return nil, wrapStoreErr(err)
	}
	return toExplanationRecord(&m), nil
}

func (r *ExplanationGormRepository) Put(ctx context.Context, record *explanation.Record) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	m := explanationModel{
		ID:           record.ID,
		UserID:       record.UserID,
		Fingerprint:  record.Fingerprint,
		OriginalText: record.OriginalText,
		Explanation:  record.Explanation,
		CreatedAt:    record.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return wrapStoreErr(err)
	}
	return nil
}

func (r *ExplanationGormRepository) ListByUser(ctx context.Context, userID string) ([]*explanation.Record, error) {
	var models []explanationModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}

	records := make([]*explanation.Record, 0, len(models))
	for i := range models {
		records = append(records, toExplanationRecord(&models[i]))
	}
	return records, nil
}

func (r *ExplanationGormRepository) Stats(ctx context.Context, userID string) (explanation.CacheStats, error) {
	var row struct {
		Entries   int64
		TotalSize int64
	}
	err := r.db.WithContext(ctx).
		Model(&explanationModel{}).
		Select("COUNT(*) AS entries, COALESCE(SUM(LENGTH(explanation) + LENGTH(original_text)), 0) AS total_size").
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return explanation.CacheStats{}, wrapStoreErr(err)
	}

	return explanation.CacheStats{
		Entries:   row.Entries,
		TotalSize: row.TotalSize,
		HumanSize: humanize.Bytes(uint64(row.TotalSize)),
	}, nil
}

// --- Mappers ---

func toExplanationRecord(m *explanationModel) *explanation.Record {
	return &explanation.Record{
		ID:           m.ID,
		UserID:       m.UserID,
		Fingerprint:  m.Fingerprint,
		OriginalText: m.OriginalText,
		Explanation:  m.Explanation,
		CreatedAt:    m.CreatedAt,
	}
}

// wrapStoreErr maps driver level failures onto ErrStoreUnavailable so the
// usecase can degrade to uncached mode instead of surfacing SQL errors.
func wrapStoreErr(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "no such table") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "bad connection") ||
		errors.Is(err, context.DeadlineExceeded) {
		return errors.Join(explanation.ErrStoreUnavailable, err)
	}
	return err
}
