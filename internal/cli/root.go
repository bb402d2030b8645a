// Package cli implements the surprise command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/surprise/config"
	"github.com/phanxgames/surprise/content"
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		opts       runOptions
	)
	cmd := &cobra.Command{
		Use:          "surprise",
		Short:        "Interactive birthday surprise with hidden gifts, music and a quiz",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		fmt.Sprintf("path to YAML config (default $%s)", config.EnvPath))
	cmd.AddCommand(newRunCmd(&configPath))
	cmd.AddCommand(newValidateCmd(&configPath))
	cmd.AddCommand(newListCmd(&configPath))
	// Running the scene is the default action.
	addRunFlags(cmd, &opts)
	cmd.RunE = func(c *cobra.Command, args []string) error {
		return run(c.Context(), configPath, opts)
	}
	return cmd
}

// load reads the config named by the flag or environment and the scene table
// it points at.
func load(flag string) (config.Config, *content.Table, error) {
	cfg, err := config.Load(config.Path(flag))
	if err != nil {
		return cfg, nil, err
	}
	var tbl *content.Table
	if cfg.Content == "" {
		tbl, err = content.Default()
	} else {
		tbl, err = content.Load(cfg.Content)
	}
	if err != nil {
		return cfg, nil, err
	}
	return cfg, tbl, nil
}

// playlist returns the configured tracks, falling back to the table's.
func playlist(cfg config.Config, tbl *content.Table) []string {
	if len(cfg.Audio.Playlist) > 0 {
		return cfg.Audio.Playlist
	}
	return tbl.Playlist
}
