// Package configcmder provides the config command for managing persistent
// pilot configuration stored in the .pilot/ directory.
package configcmder

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/researchpilot/pkg/config"
)

const configLongDesc string = `Manage persistent pilot configuration.

Configuration is stored as config.toml in the .pilot/ directory and provides
default values for command flags. Environment variables (PILOT_LLM_PROVIDER,
PILOT_MISSION_PACE, ...) override the file, and CLI flags override both.

Keys use dotted notation matching the TOML section structure:
  llm.provider, llm.model, llm.base_url, llm.api_key,
  search.provider, search.api_key, search.depth, search.max_results,
  search_cache.target, search_cache.ttl,
  embedding.provider, embedding.target, embedding.model, embedding.dimensions,
  vector_store.provider, vector_store.target, vector_store.api_key, vector_store.collection,
  mission.pace, mission.recall_k,
  api.listen, client.api_target,
  events.provider, events.brokers, events.topic

Use subcommands to get, set, or list configuration values:
  pilot config set <key> <value>    Set a configuration value
  pilot config get <key>            Get a configuration value
  pilot config list                 List all configuration values

Examples:
  pilot config set llm.provider anthropic
  pilot config set search.provider tavily
  pilot config set mission.pace 1s
  pilot config get llm.provider
  pilot config list`

const configShortDesc string = "Manage persistent pilot configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

func completeKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return config.ValidConfigKeys(), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func unknownKeyError(key string) error {
	return fmt.Errorf("unknown config key: %q\n\nValid keys: %s",
		key, strings.Join(config.ValidConfigKeys(), ", "))
}

// displayValue masks credentials.
func displayValue(key, value string) string {
	if value == "" || !config.IsSecretKey(key) {
		return value
	}
	if len(value) <= 4 {
		return "****"
	}
	return "****" + value[len(value)-4:]
}
