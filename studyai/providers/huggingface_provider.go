package providers

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/sirupsen/logrus"

	domain "github.com/estudia-app/estudia/studyai/domain"
)

// hfRouterBaseURL is the OpenAI-compatible endpoint of the Hugging Face
// inference router.
const hfRouterBaseURL = "https://router.huggingface.co/v1"

// HuggingFaceProvider generates explanations through the Hugging Face
// router using the OpenAI chat completions wire format.
type HuggingFaceProvider struct {
	apiKey string
	model  string
}

func NewHuggingFaceProvider(apiKey, model string) *HuggingFaceProvider {
	return &HuggingFaceProvider{apiKey: apiKey, model: model}
}

func (p *HuggingFaceProvider) Name() string { return "huggingface" }

func (p *HuggingFaceProvider) Generate(ctx context.Context, req domain.GenerateRequest) (*domain.GenerateResult, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("huggingface provider has no API key")
	}

	client := openai.NewClient(
		option.WithAPIKey(p.apiKey),
		option.WithBaseURL(hfRouterBaseURL),
	)

	completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(buildExplainPrompt(req.Text, req.SubjectHint)),
		},
		MaxTokens:   openai.Int(500),
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		return nil, err
	}

	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("no response from huggingface router")
	}

	result := &domain.GenerateResult{
		Explanation: completion.Choices[0].Message.Content,
		Usage: &domain.UsageStats{
			Model:        p.model,
			InputTokens:  int(completion.Usage.PromptTokens),
			OutputTokens: int(completion.Usage.CompletionTokens),
		},
	}

	logrus.WithFields(logrus.Fields{
		"model":         p.model,
		"input_tokens":  result.Usage.InputTokens,
		"output_tokens": result.Usage.OutputTokens,
	}).Debug("[HUGGINGFACE] Explanation generated")

	return result, nil
}

// buildExplainPrompt asks for a didactic explanation in the voice of a
// subject teacher. The content is quoted verbatim.
func buildExplainPrompt(text, subjectHint string) string {
	subject := subjectHint
	if subject == "" {
		subject = "educación"
	}
	return fmt.Sprintf(`Como un profesor experto en %s, explica de manera clara y didáctica el siguiente contenido:

"%s"

Proporciona:
1. Una explicación detallada
2. Conceptos clave involucrados
3. Nivel de dificultad

Respuesta:`, subject, text)
}
