package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	domain "github.com/estudia-app/estudia/studyai/domain"
)

// GeminiProvider is the adapter for the Google Gemini API. Besides plain
// text generation it handles OCR over note photos through multimodal input.
type GeminiProvider struct {
	apiKey string
	model  string
}

func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	return &GeminiProvider{apiKey: apiKey, model: model}
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) newClient(ctx context.Context) (*genai.Client, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("gemini provider has no API key")
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

func (p *GeminiProvider) Generate(ctx context.Context, req domain.GenerateRequest) (*domain.GenerateResult, error) {
	client, err := p.newClient(ctx)
	if err != nil {
		return nil, err
	}

	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: buildExplainPrompt(req.Text, req.SubjectHint)}},
	}}

	result, err := p.generateContentWithRetry(ctx, client, contents, nil)
	if err != nil {
		return nil, err
	}
	if result == nil || len(result.Candidates) == 0 {
		return nil, fmt.Errorf("no response from gemini")
	}

	var fullText string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			fullText += part.Text
		}
	}

	out := &domain.GenerateResult{
		Explanation: fullText,
		Usage:       p.extractUsage(result.UsageMetadata),
	}

	if out.Usage != nil {
		logrus.WithFields(logrus.Fields{
			"model":         p.model,
			"input_tokens":  out.Usage.InputTokens,
			"output_tokens": out.Usage.OutputTokens,
		}).Debug("[GEMINI] Explanation generated")
	}

	return out, nil
}

// ExtractText runs OCR over a note image. The model returns structured JSON
// so handwriting transcription does not get mixed with commentary.
func (p *GeminiProvider) ExtractText(ctx context.Context, req domain.OCRRequest) (*domain.OCRResult, error) {
	client, err := p.newClient(ctx)
	if err != nil {
		return nil, err
	}

	hint := ""
	if req.Hint != "" {
		hint = fmt.Sprintf(" El apunte pertenece a la materia: %s.", req.Hint)
	}

	parts := []*genai.Part{
		{Text: fmt.Sprintf(`Transcribe el texto de esta foto de un apunte de clase.%s
Incluye fórmulas en notación de texto plano. Si una parte es ilegible, omítela.
Devuelve el resultado en el formato JSON indicado.`, hint)},
		{InlineData: &genai.Blob{MIMEType: req.MimeType, Data: req.ImageData}},
	}

	contents := []*genai.Content{{Role: genai.RoleUser, Parts: parts}}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseJsonSchema: &genai.Schema{
			Type: "object",
			Properties: map[string]*genai.Schema{
				"text": {
					Type:        "string",
					Description: "Literal transcription of the note, reading order preserved.",
				},
			},
			Required: []string{"text"},
		},
	}

	result, err := p.generateContentWithRetry(ctx, client, contents, cfg)
	if err != nil {
		return nil, err
	}

	var transcription struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal([]byte(result.Text()), &transcription); err != nil {
		return nil, fmt.Errorf("failed to parse OCR JSON: %w", err)
	}

	usage := p.extractUsage(result.UsageMetadata)
	if usage != nil {
		logrus.WithFields(logrus.Fields{
			"model": p.model,
			"chars": len(transcription.Text),
		}).Debug("[GEMINI] OCR completed")
	}

	return &domain.OCRResult{Text: transcription.Text, Usage: usage}, nil
}

func (p *GeminiProvider) extractUsage(usage *genai.GenerateContentResponseUsageMetadata) *domain.UsageStats {
	if usage == nil {
		return nil
	}
	return &domain.UsageStats{
		Model:        p.model,
		InputTokens:  int(usage.PromptTokenCount),
		OutputTokens: int(usage.CandidatesTokenCount),
	}
}

func (p *GeminiProvider) generateContentWithRetry(ctx context.Context, client *genai.Client, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	for i := 0; i < 3; i++ {
		result, err := client.Models.GenerateContent(ctx, p.model, contents, cfg)
		if err == nil {
			return result, nil
		}
		if !strings.Contains(err.Error(), "503") {
			return nil, err
		}
		if err := waitBackoff(ctx, time.Duration(1<<uint(i))*time.Second); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("max retries exceeded")
}

// waitBackoff waits the backoff interval unless the context ends first.
func waitBackoff(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
