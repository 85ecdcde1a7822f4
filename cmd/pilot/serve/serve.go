// Package servecmder provides the serve command, which runs the research API
// server.
package servecmder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/researchpilot/api"
	"github.com/papercomputeco/researchpilot/pkg/config"
	"github.com/papercomputeco/researchpilot/pkg/engine"
	"github.com/papercomputeco/researchpilot/pkg/logger"
)

type ServeCommander struct {
	cfg     *config.Config
	debug   bool
	json    bool
	logFile string
	logger  *slog.Logger
}

const serveLongDesc string = `Run the ResearchPilot API server.

Endpoints:
  GET /research?topic=T        Stream a mission as server-sent events
  GET /v1/memory/search        Recall facts gathered by earlier missions
  /mcp                         MCP tools: research, memory_recall

All missions served by one process share a single semantic memory, which is
cleared from the vector store on shutdown. If the orchestrator cannot be built
(for example, a missing API key) the server still starts and every research
request receives an error event.`

const serveShortDesc string = "Run the ResearchPilot API server"

var serveFlags = append([]string{config.FlagAPIListen}, config.MissionFlags...)

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			config.BindRegisteredFlags(v, cmd, config.Flags, serveFlags)

			cmder.cfg, err = config.FromViper(v)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}
			return cmder.run(cmd.Context())
		},
	}

	config.AddFlags(cmd, config.Flags, serveFlags)
	cmd.Flags().BoolVar(&cmder.json, "json-logs", false, "Write logs as JSON")
	cmd.Flags().StringVar(&cmder.logFile, "log-file", "", "Also append JSON logs to this file")

	return cmd
}

// newLogger builds the console logger on w and, when a log file is set, fans
// records out to a JSON logger appending to that file.
func (c *ServeCommander) newLogger(w io.Writer) (*slog.Logger, io.Closer, error) {
	console := logger.New(
		logger.WithDebug(c.debug),
		logger.WithPretty(!c.json),
		logger.WithJSON(c.json),
		logger.WithWriter(w),
	)
	if c.logFile == "" {
		return console, io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	file := logger.New(
		logger.WithDebug(c.debug),
		logger.WithJSON(true),
		logger.WithWriter(f),
	)
	return logger.Multi(console, file), f, nil
}

func (c *ServeCommander) run(ctx context.Context) error {
	l, logFile, err := c.newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer logFile.Close()
	c.logger = l

	apiConfig := api.Config{
		ListenAddr: c.cfg.API.Listen,
	}

	e, err := engine.New(ctx, c.cfg, c.logger)
	if err != nil {
		c.logger.Error("orchestrator unavailable, research requests will fail", "error", err)
	} else {
		apiConfig.Orchestrator = e.Orchestrator
		apiConfig.Memory = e.Memory
		defer func() {
			if err := e.Close(context.Background()); err != nil {
				c.logger.Warn("closing engine", "error", err)
			}
		}()
	}

	server, err := api.NewServer(apiConfig, c.logger)
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", "signal", sig.String())
	}

	if err := server.Shutdown(); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}
