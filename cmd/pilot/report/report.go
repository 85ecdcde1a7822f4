// Package reportcmder provides the report command, which shows the outcome of
// the last mission run by "pilot research".
package reportcmder

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/researchpilot/pkg/cliui"
	"github.com/papercomputeco/researchpilot/pkg/dotdir"
)

// ErrNoMission is returned when no mission has been recorded.
var ErrNoMission = errors.New(`no mission recorded yet, run "pilot research <topic>" first`)

type reportCommander struct {
	configDir string
	clear     bool
	plain     bool
}

const reportLongDesc string = `Show the report of the last mission.

"pilot research" saves every mission's outcome to last_mission.json in the
.pilot/ directory. This command prints it again, rendered as markdown.

Examples:
  pilot report
  pilot report --plain > report.md
  pilot report --clear`

const reportShortDesc string = "Show the last mission's report"

func NewReportCmd() *cobra.Command {
	cmder := &reportCommander{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: reportShortDesc,
		Long:  reportLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")
			if cmder.clear {
				return cmder.runClear(cmd.OutOrStdout())
			}
			return cmder.run(cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&cmder.clear, "clear", false, "Delete the saved mission")
	cmd.Flags().BoolVar(&cmder.plain, "plain", false, "Print the report without rendering")

	return cmd
}

func (c *reportCommander) run(w io.Writer) error {
	rec, err := dotdir.NewManager().LoadLastMission(c.configDir)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrNoMission
	}

	if c.plain {
		if rec.Error != "" {
			return fmt.Errorf("last mission failed: %s", rec.Error)
		}
		_, err := fmt.Fprintln(w, rec.Report)
		return err
	}

	fmt.Fprintf(w, "\n  %s %s\n", cliui.KeyStyle.Render("Topic:"), cliui.ValueStyle.Render(rec.Topic))
	if rec.ID != "" {
		fmt.Fprintf(w, "  %s %s\n", cliui.KeyStyle.Render("Mission:"), cliui.DimStyle.Render(rec.ID))
	}
	fmt.Fprintf(w, "  %s %s\n", cliui.KeyStyle.Render("Finished:"), cliui.DimStyle.Render(rec.FinishedAt.Local().Format("2006-01-02 15:04:05")))
	for i, q := range rec.Plan {
		fmt.Fprintf(w, "  %s %s\n", cliui.StepStyle.Render(fmt.Sprintf("%d.", i+1)), q)
	}
	fmt.Fprintln(w)

	if rec.Error != "" {
		fmt.Fprintf(w, "  %s %s\n\n", cliui.FailMark, rec.Error)
		return nil
	}

	rendered, _ := cliui.RenderMarkdown(rec.Report)
	_, err = fmt.Fprint(w, rendered)
	return err
}

func (c *reportCommander) runClear(w io.Writer) error {
	if err := dotdir.NewManager().ClearLastMission(c.configDir); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s Cleared last mission\n", cliui.SuccessMark)
	return err
}
