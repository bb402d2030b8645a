package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the config and scene table without opening a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, tbl, err := load(*configPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d boxes, %d eggs, %d tracks, audio backend %s\n",
				len(tbl.Boxes), len(tbl.Eggs), len(playlist(cfg, tbl)), cfg.Audio.Backend)
			return nil
		},
	}
}
