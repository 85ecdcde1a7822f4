// Package recallcmder provides the recall command for querying the semantic
// memory of a running pilot server.
package recallcmder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apisearch "github.com/papercomputeco/researchpilot/api/search"
	"github.com/papercomputeco/researchpilot/pkg/cliui"
	"github.com/papercomputeco/researchpilot/pkg/config"
	"github.com/papercomputeco/researchpilot/pkg/utils"
)

const previewLen = 160

type recallCommander struct {
	query string
	topK  int
	quiet bool

	apiTarget string
}

const recallLongDesc string = `Recall facts from a pilot server's semantic memory.

Every search finding gathered by missions on a server is stored as a fact.
This command returns the facts most similar to the query text, best first.
Requires a running pilot server (see "pilot serve").

Use --quiet to print each fact in full, one per line, without decoration.

Examples:
  pilot recall "battery energy density"
  pilot recall "tokamak funding" --top 10
  pilot recall "tokamak funding" --api-target http://localhost:8081`

const recallShortDesc string = "Recall facts from server memory"

func NewRecallCmd() *cobra.Command {
	cmder := &recallCommander{}

	cmd := &cobra.Command{
		Use:   "recall <query>",
		Short: recallShortDesc,
		Long:  recallLongDesc,
		Args:  cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			cfger, err := config.NewConfiger(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			cfg, err := cfger.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if !cmd.Flags().Changed(config.FlagAPITarget) {
				cmder.apiTarget = cfg.Client.APITarget
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.query = strings.Join(args, " ")
			return cmder.run(cmd.Context(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&cmder.topK, "top", "k", apisearch.DefaultTopK, "Number of facts to return")
	cmd.Flags().BoolVarP(&cmder.quiet, "quiet", "q", false, "Print only fact contents, one per line")
	config.AddStringFlag(cmd, config.Flags, config.FlagAPITarget, &cmder.apiTarget)

	return cmd
}

func (c *recallCommander) run(ctx context.Context, w io.Writer) error {
	output, err := RecallAPI(ctx, c.apiTarget, c.query, c.topK)
	if err != nil {
		return err
	}

	if output.Count == 0 {
		if !c.quiet {
			fmt.Fprintln(w, "No facts found.")
		}
		return nil
	}

	if c.quiet {
		for _, result := range output.Results {
			fmt.Fprintln(w, result.Content)
		}
		return nil
	}

	fmt.Fprintf(w, "\n%s %s\n\n",
		cliui.HeaderStyle.Render("Facts recalled for:"),
		cliui.ValueStyle.Render(fmt.Sprintf("%q", output.Query)),
	)
	for i, result := range output.Results {
		preview := strings.Join(strings.Fields(result.Content), " ")
		fmt.Fprintf(w, "  %s  %s  %s\n",
			cliui.KeyStyle.Render(fmt.Sprintf("#%d", i+1)),
			cliui.DimStyle.Render(fmt.Sprintf("score: %.4f", result.Score)),
			cliui.DimStyle.Render(fmt.Sprintf("fact %d", result.Seq)),
		)
		fmt.Fprintf(w, "  %s\n\n", utils.Truncate(preview, previewLen))
	}
	return nil
}

// RecallAPI calls the memory search endpoint and returns the parsed output.
func RecallAPI(ctx context.Context, apiTarget, query string, topK int) (*apisearch.SearchOutput, error) {
	searchURL, err := url.Parse(apiTarget)
	if err != nil {
		return nil, fmt.Errorf("invalid API target URL: %w", err)
	}
	searchURL.Path = "/v1/memory/search"
	q := searchURL.Query()
	q.Set("query", query)
	q.Set("top_k", strconv.Itoa(topK))
	searchURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating recall request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to pilot API at %s: %w", apiTarget, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recall request failed (HTTP %d): %s", resp.StatusCode, string(body))
	}

	var output apisearch.SearchOutput
	if err := json.Unmarshal(body, &output); err != nil {
		return nil, fmt.Errorf("failed to parse recall response: %w", err)
	}

	return &output, nil
}
