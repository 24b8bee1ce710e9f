package classifier

import (
	"context"

	"ventus/travel-enrich/internal/logging"
	"ventus/travel-enrich/internal/models"
)

// Classifier runs strategies in order and returns the first usable result.
// The usual wiring is AI first with the heuristic as a safety net, so the
// service still answers when the model is down or disabled.
type Classifier struct {
	strategies []Strategy
	log        logging.Logger
}

// New builds a Classifier over the given strategies. At least one strategy
// is expected; with none configured Classify returns empty annotations.
func New(log logging.Logger, strategies ...Strategy) *Classifier {
	return &Classifier{strategies: strategies, log: log}
}

// Classify tries each strategy until one succeeds. The last strategy's
// error is returned when all fail.
func (c *Classifier) Classify(ctx context.Context, candidates []models.Transaction, homeZip string) ([]models.TravelAnnotation, error) {
	var lastErr error
	for _, strategy := range c.strategies {
		annotations, err := strategy.Classify(ctx, candidates, homeZip)
		if err != nil {
			c.log.WithError(err).WithField("strategy", strategy.Name()).Warn("Classification strategy failed, trying next")
			lastErr = err
			continue
		}
		c.log.WithFields(
			logging.F("strategy", strategy.Name()),
			logging.F("annotations", len(annotations)),
		).Debug("Classification strategy succeeded")
		return annotations, nil
	}
	return nil, lastErr
}
