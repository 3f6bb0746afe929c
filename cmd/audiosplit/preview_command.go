package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"audiosplit/internal/splitter"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var opts splitOptions

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the tracks a split would create without cutting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg := opts.apply(base)
			logger, err := ctx.ensureLogger(cfg)
			if err != nil {
				return err
			}
			rc, err := opts.resolve(cmd, cfg, bufio.NewReader(cmd.InOrStdin()))
			if err != nil {
				return err
			}
			tracks, err := splitter.New(cfg, logger).Plan(cmd.Context(), rc)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(tracks) == 0 {
				fmt.Fprintln(out, "No tracks found in tracklist.")
				return nil
			}
			fmt.Fprintln(out, renderPlanTable(tracks))
			fmt.Fprintf(out, "Output directory: %s\n", rc.OutputDir)
			return nil
		},
	}
	opts.bindFlags(cmd)
	return cmd
}
