// Package researchcmder provides the research command, which runs one mission
// and prints its report.
package researchcmder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/researchpilot/pkg/cliui"
	"github.com/papercomputeco/researchpilot/pkg/config"
	"github.com/papercomputeco/researchpilot/pkg/dotdir"
	"github.com/papercomputeco/researchpilot/pkg/engine"
	"github.com/papercomputeco/researchpilot/pkg/logger"
	"github.com/papercomputeco/researchpilot/pkg/mission"
)

type researchCommander struct {
	topic     string
	remote    bool
	raw       bool
	configDir string
	cfg       *config.Config

	out    io.Writer
	errOut io.Writer

	debug  bool
	logger *slog.Logger
}

// outcome is what a followed stream produced.
type outcome struct {
	plan    []string
	report  string
	failure string
}

const researchLongDesc string = `Run a research mission and print the final report.

By default the mission runs in this process using the configured LLM, search,
embedding and vector store providers. With --remote the mission runs on a pilot
server (see "pilot serve") and its event stream is followed over SSE.

Stage progress is written to stderr and the report, rendered as markdown, to
stdout. The outcome is saved so "pilot report" can show it again.

Use --raw to print the server-sent events exactly as received instead.

Examples:
  pilot research "solid state batteries"
  pilot research quantum error correction --llm-provider ollama
  pilot research "fusion startups" --remote --api-target http://localhost:8081
  pilot research "fusion startups" --remote --raw`

const researchShortDesc string = "Run a research mission"

var researchFlags = append([]string{config.FlagAPITarget}, config.MissionFlags...)

func NewResearchCmd() *cobra.Command {
	cmder := &researchCommander{}

	cmd := &cobra.Command{
		Use:   "research <topic>",
		Short: researchShortDesc,
		Long:  researchLongDesc,
		Args:  cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(cmder.configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			config.BindRegisteredFlags(v, cmd, config.Flags, researchFlags)

			cmder.cfg, err = config.FromViper(v)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.topic = strings.TrimSpace(strings.Join(args, " "))
			if cmder.topic == "" {
				return errors.New("topic is required")
			}

			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			cmder.out = cmd.OutOrStdout()
			cmder.errOut = cmd.ErrOrStderr()
			return cmder.run(cmd.Context())
		},
	}

	config.AddFlags(cmd, config.Flags, researchFlags)
	cmd.Flags().BoolVar(&cmder.remote, "remote", false, "Run the mission on a pilot server")
	cmd.Flags().BoolVar(&cmder.raw, "raw", false, "Print raw server-sent events (requires --remote)")

	return cmd
}

func (c *researchCommander) run(ctx context.Context) error {
	if c.raw && !c.remote {
		return errors.New("--raw requires --remote")
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	level := slog.LevelWarn
	if c.debug {
		level = slog.LevelDebug
	}
	c.logger = logger.New(logger.WithLevel(level), logger.WithPretty(true), logger.WithWriter(c.errOut))

	rec := &dotdir.MissionRecord{Topic: c.topic}

	var events iter.Seq2[mission.Event, error]
	if c.remote {
		var raw io.Writer = io.Discard
		if c.raw {
			raw = c.out
		}
		events = streamRemote(ctx, c.cfg.Client.APITarget, c.topic, raw)
	} else {
		e, err := engine.New(ctx, c.cfg, c.logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := e.Close(context.Background()); err != nil {
				c.logger.Warn("closing engine", "error", err)
			}
		}()

		m, seq := e.Orchestrator.Start(ctx, c.topic)
		rec.ID = m.ID
		events = withoutErrors(seq)
	}

	if !c.raw {
		fmt.Fprintf(c.errOut, "\n  %s %s\n\n",
			cliui.HeaderStyle.Render("Researching"),
			cliui.ValueStyle.Render(c.topic),
		)
	}

	result, err := c.follow(events)
	if err != nil {
		return err
	}

	rec.Plan = result.plan
	rec.Report = result.report
	rec.Error = result.failure
	rec.FinishedAt = time.Now()
	if err := dotdir.NewManager().SaveLastMission(rec, c.configDir); err != nil {
		c.logger.Warn("could not save mission record", "error", err)
	}

	if result.failure != "" {
		return fmt.Errorf("research failed: %s", result.failure)
	}
	if c.raw {
		return nil
	}

	rendered, err := cliui.RenderMarkdown(result.report)
	if err != nil {
		c.logger.Debug("markdown rendering failed", "error", err)
	}
	fmt.Fprint(c.out, rendered)
	return nil
}

// follow consumes events, drawing one progress line per stage.
func (c *researchCommander) follow(events iter.Seq2[mission.Event, error]) (*outcome, error) {
	result := &outcome{}

	var progress *cliui.Progress
	finish := func(err error) {
		if progress != nil {
			progress.Stop(err)
			progress = nil
		}
	}

	for event, err := range events {
		if err != nil {
			finish(err)
			return nil, err
		}

		switch e := event.(type) {
		case mission.StageUpdate:
			if e.Agent == mission.AgentSearch {
				if query, ok := strings.CutPrefix(e.Message, mission.MsgSearching); ok {
					result.plan = append(result.plan, query)
				}
			}
			if c.raw {
				continue
			}
			finish(nil)
			progress = cliui.StartProgress(c.errOut, cliui.StageLine(string(e.Agent), e.Message))

		case mission.Completion:
			finish(nil)
			result.report = e.Report

		case mission.Failure:
			finish(errors.New(e.Message))
			result.failure = e.Message
		}
	}
	finish(nil)

	if !c.raw {
		fmt.Fprintln(c.errOut)
	}
	return result, nil
}

func withoutErrors(seq iter.Seq[mission.Event]) iter.Seq2[mission.Event, error] {
	return func(yield func(mission.Event, error) bool) {
		for e := range seq {
			if !yield(e, nil) {
				return
			}
		}
	}
}
