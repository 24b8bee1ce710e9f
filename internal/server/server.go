// Package server exposes the reclassification collaborator over HTTP. The
// single data endpoint answers with a server-sent event stream so consumers
// see progress and partial results before the full batch completes.
package server

import (
	"fmt"
	"time"

	"ventus/travel-enrich/internal/classifier"
	"ventus/travel-enrich/internal/logging"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
)

// Config carries the server tunables.
type Config struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// ChunkSize caps how many annotations ride in one travel_updates event.
	ChunkSize int

	// ClassifyTimeout bounds a single classification run.
	ClassifyTimeout time.Duration
}

// Server wires the fiber app, the classifier, and logging together.
type Server struct {
	app        *fiber.App
	classifier *classifier.Classifier
	cfg        Config
	log        logging.Logger
}

// New builds the HTTP server and registers its routes.
func New(cfg Config, cls *classifier.Classifier, log logging.Logger) *Server {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 25
	}
	if cfg.ClassifyTimeout <= 0 {
		cfg.ClassifyTimeout = 60 * time.Second
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("request_id", uuid.NewString())
		return c.Next()
	})

	s := &Server{app: app, classifier: cls, cfg: cfg, log: log}

	app.Get("/healthz", s.handleHealth)
	app.Post("/v1/reclassify", s.handleReclassify)

	return s
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving HTTP on the configured port.
func (s *Server) Listen() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.log.WithField("addr", addr).Info("Reclassification service listening")
	return s.app.Listen(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
