package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var opts splitOptions

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "audiosplit",
		Short: "Split a recording into tracks using a tracklist",
		Long: "Cut one long recording into individually named, tagged track files.\n" +
			"Each tracklist line pairs a MM:SS or HH:MM:SS timestamp with a title.",
		Example:       `  audiosplit -i set.mp3 -t "00:00 Intro\n01:30 Main\n05:00 Outro"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd, ctx, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	opts.bindFlags(rootCmd)
	rootCmd.Flags().BoolVarP(&opts.skip, "skip", "s", false, "Skip the confirmation step")

	rootCmd.AddCommand(newPreviewCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
