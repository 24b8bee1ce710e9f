// Package serve runs the reclassification service.
package serve

import (
	"context"
	"time"

	cmdcommon "ventus/travel-enrich/cmd/common"
	"ventus/travel-enrich/cmd/root"
	"ventus/travel-enrich/internal/classifier"
	"ventus/travel-enrich/internal/server"

	"github.com/spf13/cobra"
)

var port int

// Cmd represents the serve command.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the travel reclassification service",
	Long: `Starts the HTTP service that answers POST /v1/reclassify with a stream of
travel annotations. With AI enabled the Gemini-backed strategy runs first and
the deterministic heuristic covers failures; without it the heuristic runs
alone, so the service works offline.`,
	Run: serveFunc,
}

func init() {
	Cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (default from config)")
}

func serveFunc(cmd *cobra.Command, args []string) {
	log := root.Logger()
	cfg := root.Cfg

	_, resolver, keywords, err := cmdcommon.BuildPreFilter(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to load heuristic tables")
	}

	var strategies []classifier.Strategy
	if cfg.AI.Enabled {
		generator, err := classifier.NewGeminiGenerator(context.Background(), cfg.AI.APIKey, cfg.AI.Model, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to initialize Gemini")
		}
		defer func() {
			_ = generator.Close()
		}()
		strategies = append(strategies, classifier.NewAIStrategy(generator, resolver, log))
		log.WithField("model", cfg.AI.Model).Info("AI classification enabled")
	}
	strategies = append(strategies, classifier.NewHeuristicStrategy(resolver, keywords, log))

	listenPort := port
	if listenPort == 0 {
		listenPort = cfg.Server.Port
	}

	srv := server.New(server.Config{
		Port:            listenPort,
		ReadTimeout:     time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:    time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		ChunkSize:       cfg.Server.ChunkSize,
		ClassifyTimeout: cfg.AITimeout(),
	}, classifier.New(log, strategies...), log)

	if err := srv.Listen(); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}
