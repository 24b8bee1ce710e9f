// Package classifier is the server half of the travel reclassification
// protocol: given a candidate set and a home ZIP it infers trips and emits
// per-transaction travel annotations. Two strategies exist: an AI-backed one
// and a deterministic heuristic used as fallback and for offline operation.
package classifier

import (
	"context"

	"ventus/travel-enrich/internal/models"
)

// Strategy produces travel annotations for a candidate set.
type Strategy interface {
	// Classify returns one annotation per candidate. Candidates judged not
	// travel related still get an annotation with IsTravelRelated false.
	Classify(ctx context.Context, candidates []models.Transaction, homeZip string) ([]models.TravelAnnotation, error)

	// Name identifies the strategy in logs.
	Name() string
}

// Generator abstracts the text-generation backend so the AI strategy can be
// tested without network access.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
