package classifier

import (
	"context"
	"fmt"

	"ventus/travel-enrich/internal/apperror"
	"ventus/travel-enrich/internal/logging"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiGenerator implements Generator on top of the Google Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
	log    logging.Logger
}

// NewGeminiGenerator authenticates against Gemini and prepares the model.
func NewGeminiGenerator(ctx context.Context, apiKey, modelName string, log logging.Logger) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiGenerator{
		client: client,
		model:  client.GenerativeModel(modelName),
		log:    log,
	}, nil
}

// Generate sends the prompt and returns the concatenated text parts of the
// first response candidate.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &apperror.ServiceUnavailableError{Err: err}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &apperror.ClassificationError{Detail: "model returned no candidates"}
	}

	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	if out == "" {
		return "", &apperror.ClassificationError{Detail: "model returned no text parts"}
	}

	g.log.WithField("chars", len(out)).Debug("Received model answer")
	return out, nil
}

// Close releases the underlying API client.
func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}
