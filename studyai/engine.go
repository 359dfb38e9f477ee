// Package studyai hosts the AI engine behind explanations and note OCR.
// The engine wraps a configured provider with a bounded timeout and an
// explicit disabled state; it never fabricates answers when no provider
// credentials exist.
package studyai

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/estudia-app/estudia/core/config"
	domain "github.com/estudia-app/estudia/studyai/domain"
	"github.com/estudia-app/estudia/studyai/providers"
)

var (
	// ErrDisabled means no AI credentials were configured at startup.
	ErrDisabled = errors.New("ai engine disabled: no provider credentials configured")
	// ErrOCRUnsupported means the active provider cannot read images.
	ErrOCRUnsupported = errors.New("active ai provider does not support image input")
)

type Engine struct {
	generator domain.TextGenerator
	ocr       domain.OCRReader
	timeout   time.Duration
}

// NewEngine picks the provider named in the config. An engine without
// usable credentials is returned in disabled state rather than failing
// startup, so the rest of the app keeps working.
func NewEngine(cfg config.AIConfig) *Engine {
	e := &Engine{timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}

	switch cfg.Provider {
	case "gemini":
		if cfg.GeminiAPIKey != "" {
			e.generator = providers.NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiModel)
		}
	default:
		if cfg.HuggingFaceToken != "" {
			e.generator = providers.NewHuggingFaceProvider(cfg.HuggingFaceToken, cfg.HuggingFaceModel)
		}
	}

	// OCR always rides on Gemini, even when text generation goes through
	// the Hugging Face router.
	if cfg.GeminiAPIKey != "" {
		e.ocr = providers.NewGeminiProvider(cfg.GeminiAPIKey, cfg.OCRModel)
	}

	if e.generator == nil {
		logrus.Warn("[STUDYAI] No AI credentials configured, engine disabled")
	} else {
		logrus.WithField("provider", e.generator.Name()).Info("[STUDYAI] Engine ready")
	}

	return e
}

// Disabled reports whether the engine has no text generator.
func (e *Engine) Disabled() bool { return e.generator == nil }

// SupportsOCR reports whether image transcription is available.
func (e *Engine) SupportsOCR() bool { return e.ocr != nil }

// ProviderName returns the active generator name, or empty when disabled.
func (e *Engine) ProviderName() string {
	if e.generator == nil {
		return ""
	}
	return e.generator.Name()
}

// Generate produces an explanation with the configured timeout applied.
func (e *Engine) Generate(ctx context.Context, req domain.GenerateRequest) (*domain.GenerateResult, error) {
	if e.generator == nil {
		return nil, ErrDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return e.generator.Generate(ctx, req)
}

// ExtractText runs OCR with the configured timeout applied.
func (e *Engine) ExtractText(ctx context.Context, req domain.OCRRequest) (*domain.OCRResult, error) {
	if e.ocr == nil {
		return nil, ErrOCRUnsupported
	}
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return e.ocr.ExtractText(ctx, req)
}
