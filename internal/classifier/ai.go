package classifier

import (
	"context"
	"encoding/json"
	"strings"

	"ventus/travel-enrich/internal/apperror"
	"ventus/travel-enrich/internal/geo"
	"ventus/travel-enrich/internal/logging"
	"ventus/travel-enrich/internal/models"
)

// AIStrategy classifies candidates through a text-generation backend.
type AIStrategy struct {
	generator Generator
	resolver  *geo.Resolver
	log       logging.Logger
}

// NewAIStrategy builds the AI-backed strategy.
func NewAIStrategy(generator Generator, resolver *geo.Resolver, log logging.Logger) *AIStrategy {
	return &AIStrategy{generator: generator, resolver: resolver, log: log}
}

// Name identifies the strategy in logs.
func (s *AIStrategy) Name() string {
	return "AI"
}

// Classify prompts the model with the candidate rows and parses its JSON
// answer. A malformed answer, or one referencing unknown transaction ids,
// is a ClassificationError so the caller can fall back.
func (s *AIStrategy) Classify(ctx context.Context, candidates []models.Transaction, homeZip string) ([]models.TravelAnnotation, error) {
	if s.generator == nil {
		return nil, &apperror.ClassificationError{Detail: "no generation backend configured"}
	}

	homeCity, _ := s.resolver.ResolveCity(homeZip)
	prompt := buildPrompt(candidates, homeZip, homeCity)

	s.log.WithFields(
		logging.F("strategy", s.Name()),
		logging.F("candidates", len(candidates)),
	).Debug("Requesting model classification")

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	annotations, err := parseAnnotations(raw)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(candidates))
	for _, tx := range candidates {
		known[tx.TransactionID] = true
	}
	for _, a := range annotations {
		if !known[a.TransactionID] {
			return nil, &apperror.ClassificationError{
				Detail: "model returned unknown transaction id " + a.TransactionID,
			}
		}
	}

	return annotations, nil
}

// parseAnnotations decodes the model answer, tolerating markdown fences the
// model sometimes wraps JSON in despite instructions.
func parseAnnotations(raw string) ([]models.TravelAnnotation, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var annotations []models.TravelAnnotation
	if err := json.Unmarshal([]byte(cleaned), &annotations); err != nil {
		return nil, &apperror.ClassificationError{Detail: "model answer is not an annotation array", Err: err}
	}
	return annotations, nil
}
