// Package pilotcmder
package pilotcmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/papercomputeco/researchpilot/cmd/pilot/config"
	initcmder "github.com/papercomputeco/researchpilot/cmd/pilot/init"
	recallcmder "github.com/papercomputeco/researchpilot/cmd/pilot/recall"
	reportcmder "github.com/papercomputeco/researchpilot/cmd/pilot/report"
	researchcmder "github.com/papercomputeco/researchpilot/cmd/pilot/research"
	servecmder "github.com/papercomputeco/researchpilot/cmd/pilot/serve"
	versioncmder "github.com/papercomputeco/researchpilot/cmd/version"
)

const pilotLongDesc string = `ResearchPilot runs multi-stage research missions with LLM agents.

A mission plans sub-queries for a topic, searches and analyzes each one,
recalls related findings from semantic memory, proposes hypotheses and
synthesizes a final report.

Run missions using:
  pilot research <topic>    Run a mission in this process
  pilot serve               Serve missions over SSE and MCP
  pilot report              Show the last mission's report`

const pilotShortDesc string = "ResearchPilot - Research Missions"

func NewPilotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pilot",
		Short:         pilotShortDesc,
		Long:          pilotLongDesc,
		SilenceUsage:  true,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .pilot/ config directory")

	// Add subcommands
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(recallcmder.NewRecallCmd())
	cmd.AddCommand(reportcmder.NewReportCmd())
	cmd.AddCommand(researchcmder.NewResearchCmd())
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
