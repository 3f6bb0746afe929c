package main

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"audiosplit/internal/preflight"
	"audiosplit/internal/splitter"
)

func runSplit(cmd *cobra.Command, ctx *commandContext, opts splitOptions) error {
	base, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	cfg := opts.apply(base)
	logger, err := ctx.ensureLogger(cfg)
	if err != nil {
		return err
	}

	in := bufio.NewReader(cmd.InOrStdin())
	rc, err := opts.resolve(cmd, cfg, in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	s := splitter.New(cfg, logger)

	if !opts.skip {
		tracks, err := s.Plan(cmd.Context(), rc)
		if err != nil {
			return err
		}
		if len(tracks) == 0 {
			fmt.Fprintln(out, "No tracks found in tracklist.")
			return nil
		}
		fmt.Fprintln(out, "\nPreview of files to be created:")
		fmt.Fprintln(out, renderPlanTable(tracks))
		fmt.Fprintf(out, "Output directory: %s\n", rc.OutputDir)
		ok, err := confirm(in, out, "\nProceed?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Operation aborted.")
			return nil
		}
	}

	results := preflight.RunAll(cfg, rc.InputPath, rc.OutputDir)
	if !preflight.Clean(results) {
		printPreflight(cmd.ErrOrStderr(), results)
	}
	if err := preflight.Err(results); err != nil {
		return fmt.Errorf("preflight failed: %w", err)
	}

	report, err := s.Run(cmd.Context(), rc)
	if err != nil {
		return err
	}
	printReport(out, report, shouldColorize(out))
	if report.Failed() > 0 {
		return fmt.Errorf("%d of %d segments failed: %w", report.Failed(), len(report.Results), report.Err())
	}
	return nil
}

// printPreflight lists every check followed by the pass count. It runs only
// when something failed or warned.
func printPreflight(out io.Writer, results []preflight.Result) {
	colorize := shouldColorize(out)
	for _, r := range results {
		fmt.Fprintln(out, renderStatusLine(r.Name, preflightKind(r), r.Detail, colorize))
	}
	kind := statusWarn
	if preflight.Err(results) != nil {
		kind = statusError
	}
	fmt.Fprintln(out, renderStatusLine("Preflight", kind, preflight.Summary(results), colorize))
}

func printReport(out io.Writer, report splitter.Report, colorize bool) {
	if len(report.Results) == 0 {
		fmt.Fprintln(out, "No tracks found in tracklist.")
		return
	}
	for _, res := range report.Results {
		label := strconv.Itoa(res.Output.Segment.Index)
		name := filepath.Base(res.Output.Path)
		switch {
		case res.Skipped:
			fmt.Fprintln(out, renderStatusLine(label, statusWarn, name+" skipped", colorize))
		case res.CutErr != nil:
			fmt.Fprintln(out, renderStatusLine(label, statusError, res.CutErr.Error(), colorize))
		case res.TagErr != nil:
			fmt.Fprintln(out, renderStatusLine(label, statusWarn, name+" written, "+res.TagErr.Error(), colorize))
		default:
			fmt.Fprintln(out, renderStatusLine(label, statusOK, name, colorize))
		}
	}
	fmt.Fprintf(out, "Done! %d/%d tracks written to %s in %s.\n",
		report.Written(), len(report.Results), report.OutputDir, humanize.FtoaWithDigits(report.Elapsed.Seconds(), 1)+"s")
}
