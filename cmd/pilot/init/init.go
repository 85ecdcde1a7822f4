// Package initcmder provides the init command for initializing a local .pilot
// directory in the current working directory.
package initcmder

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/researchpilot/pkg/config"
)

const (
	dirName = ".pilot"
)

const initLongDesc string = `Initialize a new .pilot/ directory in the current working directory.

Creates a local .pilot/ directory that takes precedence over the default
~/.pilot/ directory for configuration and the last mission record, and
writes a config.toml populated with defaults.

Use --preset to start from a provider preset instead of the defaults:
  groq        Groq hosted models (GROQ_API_KEY)
  openai      OpenAI (OPENAI_API_KEY)
  anthropic   Anthropic (ANTHROPIC_API_KEY)
  ollama      Local Ollama for completions and embeddings

An existing config.toml is never overwritten.

Examples:
  pilot init
  pilot init --preset ollama`

const initShortDesc string = "Initialize a local .pilot/ directory"

func NewInitCmd() *cobra.Command {
	var preset string

	cmd := &cobra.Command{
		Use:   "init",
		Short: initShortDesc,
		Long:  initLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.OutOrStdout(), preset)
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "", "Provider preset (groq, openai, anthropic, ollama)")

	return cmd
}

func runInit(w io.Writer, preset string) error {
	cfg := config.NewDefaultConfig()
	if preset != "" {
		var err error
		cfg, err = config.PresetConfig(preset)
		if err != nil {
			return err
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	dir := filepath.Join(cwd, dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating .pilot directory: %w", err)
	}

	configPath := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(w, "Already initialized: %s\n", dir)
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	cfger, err := config.NewConfiger(dir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfger.SaveConfig(cfg); err != nil {
		return err
	}

	fmt.Fprintf(w, "Initialized .pilot directory: %s\n", dir)
	return nil
}
