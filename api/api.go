package api

import (
	"context"
	"iter"
	"log/slog"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/papercomputeco/researchpilot/api/mcp"
	"github.com/papercomputeco/researchpilot/pkg/mission"
)

// Researcher runs missions; *mission.Orchestrator satisfies it.
type Researcher interface {
	Run(ctx context.Context, topic string) iter.Seq[mission.Event]
}

// ErrorResponse is the JSON body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server is the pilot API server.
type Server struct {
	config Config
	logger *slog.Logger
	app    *fiber.App

	// ctx outlives individual requests; missions streamed after a handler
	// returns run under it and stop on Shutdown.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new API server. The orchestrator and memory are
// injected so the CLI can share them with other components.
func NewServer(config Config, logger *slog.Logger) (*Server, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config: config,
		logger: logger,
		app:    app,
		ctx:    ctx,
		cancel: cancel,
	}

	mcpServer, err := mcp.NewServer(mcp.Config{
		Researcher: config.Orchestrator,
		Memory:     config.Memory,
		Noop:       config.Orchestrator == nil && config.Memory == nil,
		Logger:     logger,
	})
	if err != nil {
		cancel()
		return nil, err
	}

	app.Use(cors.New())

	app.Get("/", s.handleRoot)
	app.Get("/ping", s.handlePing)
	app.Get("/research", s.handleResearch)
	app.Get("/v1/memory/search", s.handleMemorySearch)
	app.All("/mcp", adaptor.HTTPHandler(mcpServer.Handler()))

	return s, nil
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		"listen", s.config.ListenAddr,
		"orchestrator", s.config.Orchestrator != nil,
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown stops in-flight missions and gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.cancel()
	return s.app.Shutdown()
}
