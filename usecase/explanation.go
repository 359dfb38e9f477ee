package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	domainExplanation "github.com/estudia-app/estudia/domains/explanation"
	"github.com/estudia-app/estudia/pkg/fingerprint"
	"github.com/estudia-app/estudia/studyai/classify"
	studyaiDomain "github.com/estudia-app/estudia/studyai/domain"
	"github.com/estudia-app/estudia/validations"
)

// FallbackExplanation is returned whenever generation fails. Callers can
// rely on Source instead of matching this string.
const FallbackExplanation = "No se pudo generar una explicación automática. Por favor, intenta nuevamente más tarde."

// valkeyTTL bounds the L1 entry lifetime; the durable store has no expiry.
const valkeyTTL = 24 * time.Hour

// explanationGenerator is the slice of the AI engine this service needs.
type explanationGenerator interface {
	Generate(ctx context.Context, req studyaiDomain.GenerateRequest) (*studyaiDomain.GenerateResult, error)
}

// ExplanationL1 is the optional hot cache in front of the durable store.
type ExplanationL1 interface {
	GetString(ctx context.Context, key string) (string, bool, error)
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
}

type explanationService struct {
	repo      domainExplanation.IExplanationRepository
	generator explanationGenerator
	l1        ExplanationL1
}

// NewExplanationService builds the cache-aware explanation service. l1 may
// be nil when valkey is not configured.
func NewExplanationService(repo domainExplanation.IExplanationRepository, generator explanationGenerator, l1 ExplanationL1) domainExplanation.IExplanationUsecase {
	return &explanationService{repo: repo, generator: generator, l1: l1}
}

// Explain resolves an explanation for the given content: hot cache, then
// durable store, then the AI generator. Without a user ID the caches are
// bypassed entirely. The method never fails past validation; generation
// errors degrade to a fixed fallback.
func (s *explanationService) Explain(ctx context.Context, request domainExplanation.ExplainRequest) (domainExplanation.AIExplanation, error) {
	if err := validations.ValidateExplainRequest(ctx, request); err != nil {
		return domainExplanation.AIExplanation{}, err
	}

	// Anonymous callers get no cache reads or writes.
	if request.UserID == "" {
		return s.generate(ctx, request), nil
	}

	fp := fingerprint.Fingerprint(request.Text)

	if cached, ok := s.lookup(ctx, request.UserID, fp); ok {
		return domainExplanation.AIExplanation{
			Explanation: cached,
			Concepts:    classify.Concepts(request.Text),
			Difficulty:  classify.Difficulty(request.Text),
			Source:      domainExplanation.SourceCached,
		}, nil
	}

	result := s.generate(ctx, request)
	if result.Source == domainExplanation.SourceGenerated {
		s.save(ctx, request.UserID, fp, request.Text, result.Explanation)
	}
	return result, nil
}

// lookup checks the valkey L1 first, then the durable store. Store
// unavailability is logged and treated as a miss.
func (s *explanationService) lookup(ctx context.Context, userID, fp string) (string, bool) {
	key := l1Key(userID, fp)
	if s.l1 != nil {
		if value, found, err := s.l1.GetString(ctx, key); err == nil && found {
			logrus.WithField("fingerprint", fp).Debug("[EXPLAIN] L1 cache hit")
			return value, true
		}
	}

	record, err := s.repo.Get(ctx, userID, fp)
	if err != nil {
		if errors.Is(err, domainExplanation.ErrStoreUnavailable) {
			logrus.WithError(err).Warn("[EXPLAIN] Store unavailable, continuing uncached")
		} else if !errors.Is(err, domainExplanation.ErrNotFound) {
			logrus.WithError(err).Warn("[EXPLAIN] Store lookup failed, continuing uncached")
		}
		return "", false
	}

	logrus.WithFields(logrus.Fields{
		"user_id":     userID,
		"fingerprint": fp,
	}).Debug("[EXPLAIN] Store cache hit")

	if s.l1 != nil {
		if err := s.l1.SetString(ctx, key, record.Explanation, valkeyTTL); err != nil {
			logrus.WithError(err).Debug("[EXPLAIN] L1 backfill failed")
		}
	}
	return record.Explanation, true
}

// generate calls the AI engine with the original, unnormalized text. Any
// failure (disabled engine, timeout, empty output) yields the fallback.
func (s *explanationService) generate(ctx context.Context, request domainExplanation.ExplainRequest) domainExplanation.AIExplanation {
	result, err := s.generator.Generate(ctx, studyaiDomain.GenerateRequest{
		Text:        request.Text,
		SubjectHint: request.SubjectHint,
	})
	if err != nil || result == nil || strings.TrimSpace(result.Explanation) == "" {
		if err != nil {
			logrus.WithError(err).Warn("[EXPLAIN] Generation failed, using fallback")
		} else {
			logrus.Warn("[EXPLAIN] Generator returned empty output, using fallback")
		}
		return domainExplanation.AIExplanation{
			Explanation: FallbackExplanation,
			Concepts:    classify.Concepts(request.Text),
			Difficulty:  domainExplanation.DifficultyIntermediate,
			Source:      domainExplanation.SourceFallback,
		}
	}

	return domainExplanation.AIExplanation{
		Explanation: result.Explanation,
		Concepts:    classify.Concepts(request.Text),
		Difficulty:  classify.Difficulty(request.Text),
		Source:      domainExplanation.SourceGenerated,
	}
}

// save persists a freshly generated explanation. Write failures are logged
// and swallowed; the caller already has the answer.
func (s *explanationService) save(ctx context.Context, userID, fp, originalText, explanation string) {
	record := &domainExplanation.Record{
		UserID:       userID,
		Fingerprint:  fp,
		OriginalText: originalText,
		Explanation:  explanation,
	}
	if err := s.repo.Put(ctx, record); err != nil {
		logrus.WithError(err).Warn("[EXPLAIN] Failed to persist explanation")
		return
	}

	if s.l1 != nil {
		if err := s.l1.SetString(ctx, l1Key(userID, fp), explanation, valkeyTTL); err != nil {
			logrus.WithError(err).Debug("[EXPLAIN] L1 populate failed")
		}
	}
}

func (s *explanationService) History(ctx context.Context, userID string) ([]*domainExplanation.Record, error) {
	if err := validations.ValidateUserID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *explanationService) Stats(ctx context.Context, userID string) (domainExplanation.CacheStats, error) {
	if err := validations.ValidateUserID(ctx, userID); err != nil {
		return domainExplanation.CacheStats{}, err
	}
	return s.repo.Stats(ctx, userID)
}

func l1Key(userID, fp string) string {
	return fmt.Sprintf("explain:%s:%s", userID, fp)
}
