package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"audiosplit/internal/config"
	"audiosplit/internal/splitter"
	"audiosplit/internal/tracklist"
)

type splitOptions struct {
	input         string
	tracklist     string
	tracklistFile string
	outputDir     string
	pattern       string
	encoding      string
	skip          bool
}

func (o *splitOptions) bindFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&o.input, "input", "i", "", "Input recording")
	flags.StringVarP(&o.tracklist, "tracklist", "t", "", `Tracklist text; "\n" separates lines`)
	flags.StringVarP(&o.tracklistFile, "input-tracklist", "I", "", "Read the tracklist from a file")
	flags.StringVarP(&o.outputDir, "output-dir", "o", "", "Output directory (relative paths resolve against the input's directory)")
	flags.StringVarP(&o.pattern, "pattern", "p", "", "Tracklist regex with time and title capture groups")
	flags.StringVar(&o.encoding, "encoding", "", "Tracklist file encoding (auto, utf-8, shift_jis, windows-1252, ...)")
}

// apply returns a copy of cfg with flag overrides applied.
func (o splitOptions) apply(cfg *config.Config) *config.Config {
	merged := config.Default()
	if cfg != nil {
		merged = *cfg
	}
	if v := strings.TrimSpace(o.outputDir); v != "" {
		merged.Paths.OutputDir = v
	}
	if o.pattern != "" {
		merged.Tracklist.Pattern = o.pattern
	}
	if v := strings.TrimSpace(o.encoding); v != "" {
		merged.Tracklist.Encoding = strings.ToLower(v)
	}
	return &merged
}

// resolve fills in the input path and tracklist text, prompting on in for
// whatever was not supplied.
func (o splitOptions) resolve(cmd *cobra.Command, cfg *config.Config, in *bufio.Reader) (splitter.RunConfig, error) {
	out := cmd.OutOrStdout()

	input := strings.TrimSpace(o.input)
	if input == "" {
		line, err := promptLine(in, out, "Input file: ")
		if err != nil {
			return splitter.RunConfig{}, fmt.Errorf("read input path: %w", err)
		}
		input = line
	}
	if input == "" {
		return splitter.RunConfig{}, errors.New("an input file is required")
	}
	expanded, err := config.ExpandPath(input)
	if err != nil {
		return splitter.RunConfig{}, fmt.Errorf("resolve input path: %w", err)
	}

	text, err := o.tracklistText(cfg, in, out)
	if err != nil {
		return splitter.RunConfig{}, err
	}
	return splitter.NewRunConfig(cfg, expanded, text)
}

func (o splitOptions) tracklistText(cfg *config.Config, in *bufio.Reader, out io.Writer) (string, error) {
	if path := strings.TrimSpace(o.tracklistFile); path != "" {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return "", fmt.Errorf("resolve tracklist path: %w", err)
		}
		return tracklist.ReadFile(expanded, cfg.Tracklist.Encoding)
	}
	if o.tracklist != "" {
		return strings.ReplaceAll(o.tracklist, `\n`, "\n"), nil
	}
	text, err := promptBlock(in, out, "Tracklist (finish with an empty line):")
	if err != nil {
		return "", fmt.Errorf("read tracklist: %w", err)
	}
	return text, nil
}
