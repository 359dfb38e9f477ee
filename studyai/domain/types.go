package domain

import "context"

// GenerateRequest asks a provider for a study explanation of the given text.
// Text is passed through exactly as received, without normalization.
type GenerateRequest struct {
	Text        string
	SubjectHint string
}

type GenerateResult struct {
	Explanation string
	Usage       *UsageStats
}

// OCRRequest asks a multimodal provider to extract handwritten or printed
// text from a class note photo.
type OCRRequest struct {
	ImageData []byte
	MimeType  string
	Hint      string
}

type OCRResult struct {
	Text  string
	Usage *UsageStats
}

// UsageStats carries the token accounting a provider reports for one call.
type UsageStats struct {
	Model        string `json:"model"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
}

// TextGenerator is the minimal contract an AI backend must satisfy to
// produce explanations.
type TextGenerator interface {
	Name() string
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
}

// OCRReader extracts text from images. Not every backend supports it.
type OCRReader interface {
	ExtractText(ctx context.Context, req OCRRequest) (*OCRResult, error)
}
