package explanation

import (
	"context"
	"errors"
	"time"
)

// Difficulty classifies how hard the explained content is.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Source records where an explanation came from, so callers can tell a
// degraded answer from a real one without sniffing the text.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceCached    Source = "cached"
	SourceFallback  Source = "fallback"
)

// Record is one immutable cache entry: the explanation generated for a
// given user and content fingerprint. Records are inserted on cache misses
// and never updated.
type Record struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Fingerprint  string    `json:"fingerprint"`
	OriginalText string    `json:"original_text"`
	Explanation  string    `json:"explanation"`
	CreatedAt    time.Time `json:"created_at"`
}

// AIExplanation is the result returned to callers of Explain.
type AIExplanation struct {
	Explanation string     `json:"explanation"`
	Concepts    []string   `json:"concepts"`
	Difficulty  Difficulty `json:"difficulty"`
	Source      Source     `json:"source"`
}

type ExplainRequest struct {
	UserID      string `json:"user_id"`
	Text        string `json:"text"`
	SubjectHint string `json:"subject_hint"`
}

// CacheStats summarizes a user's stored explanations for the history view.
type CacheStats struct {
	Entries   int64  `json:"entries"`
	TotalSize int64  `json:"total_size"`
	HumanSize string `json:"human_size"`
}

var (
	// ErrNotFound means the lookup missed; a normal outcome, not a failure.
	ErrNotFound = errors.New("explanation not found")
	// ErrStoreUnavailable means the backing store could not be reached.
	ErrStoreUnavailable = errors.New("explanation store unavailable")
)

// IExplanationRepository is the persistent (user, fingerprint) -> record
// store. Put does not enforce uniqueness; Get resolves duplicates by
// returning the most recent row.
type IExplanationRepository interface {
	Get(ctx context.Context, userID, fp string) (*Record, error)
	Put(ctx context.Context, record *Record) error
	ListByUser(ctx context.Context, userID string) ([]*Record, error)
	Stats(ctx context.Context, userID string) (CacheStats, error)
}

type IExplanationUsecase interface {
	Explain(ctx context.Context, request ExplainRequest) (AIExplanation, error)
	History(ctx context.Context, userID string) ([]*Record, error)
	Stats(ctx context.Context, userID string) (CacheStats, error)
}
