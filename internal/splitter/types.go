package splitter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"audiosplit/internal/config"
	"audiosplit/internal/media/ffmpeg"
	"audiosplit/internal/media/ffprobe"
	"audiosplit/internal/plan"
	"audiosplit/internal/timecode"
)

var (
	// ErrTranscode marks a segment whose cut failed.
	ErrTranscode = errors.New("transcode failed")
	// ErrTag marks a segment whose audio was written but could not be tagged.
	ErrTag = errors.New("tagging failed")
	// ErrLocked reports an output directory already held by another run.
	ErrLocked = errors.New("output directory is locked by another run")
)

// LockFileName is created inside the output directory for the duration of a run.
const LockFileName = ".audiosplit.lock"

// Transcoder extracts one segment from the source recording.
type Transcoder interface {
	Cut(ctx context.Context, req ffmpeg.CutRequest) error
}

// Tagger writes title and track metadata onto a finished segment.
type Tagger interface {
	Tag(path, title string, track int) error
}

// Prober inspects the source recording.
type Prober interface {
	Source(ctx context.Context, path string) (ffprobe.Source, error)
}

// RunConfig is the immutable input of a single run.
type RunConfig struct {
	Tracklist     string
	InputPath     string
	OutputDir     string
	Pattern       string
	Extension     string
	EnforceOrder  bool
	EnforceBounds bool
}

// NewRunConfig fills a RunConfig from cfg, resolving the output directory
// against the input's location.
func NewRunConfig(cfg *config.Config, inputPath, tracklistText string) (RunConfig, error) {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	inputPath = strings.TrimSpace(inputPath)
	if inputPath == "" {
		return RunConfig{}, errors.New("input path is required")
	}
	outputDir, err := cfg.ResolveOutputDir(inputPath)
	if err != nil {
		return RunConfig{}, fmt.Errorf("resolve output directory: %w", err)
	}
	return RunConfig{
		Tracklist:     tracklistText,
		InputPath:     inputPath,
		OutputDir:     outputDir,
		Pattern:       cfg.Tracklist.Pattern,
		Extension:     cfg.Output.Extension,
		EnforceOrder:  cfg.Validation.EnforceOrder,
		EnforceBounds: cfg.Validation.EnforceBounds,
	}, nil
}

// OutputSpec binds a segment to the file it is written to.
type OutputSpec struct {
	Path    string
	Segment plan.Segment
}

// PlannedTrack is a resolved segment plus its display length.
type PlannedTrack struct {
	OutputSpec
	Duration    time.Duration
	Bounded     bool
	DurationErr error
}

// DurationLabel renders the track length for previews: "open" for the last
// segment, "invalid" when the bounds cannot be parsed.
func (p PlannedTrack) DurationLabel() string {
	switch {
	case p.DurationErr != nil:
		return "invalid"
	case !p.Bounded:
		return "open"
	default:
		return timecode.FormatDuration(p.Duration)
	}
}

// Result is the outcome of one segment.
type Result struct {
	Output  OutputSpec
	CutErr  error
	TagErr  error
	Skipped bool
}

// Written reports whether the audio file was produced.
func (r Result) Written() bool {
	return !r.Skipped && r.CutErr == nil
}

// Report summarizes a run.
type Report struct {
	RunID        string
	OutputDir    string
	SourceLength time.Duration
	Results      []Result
	Elapsed      time.Duration
}

// Written counts segments whose audio was produced, tagged or not.
func (r Report) Written() int {
	n := 0
	for _, res := range r.Results {
		if res.Written() {
			n++
		}
	}
	return n
}

// Failed counts segments whose cut failed.
func (r Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.CutErr != nil {
			n++
		}
	}
	return n
}

// TagFailures counts written segments whose tags could not be saved.
func (r Report) TagFailures() int {
	n := 0
	for _, res := range r.Results {
		if res.TagErr != nil {
			n++
		}
	}
	return n
}

// Skipped counts segments not attempted because the run was cancelled.
func (r Report) Skipped() int {
	n := 0
	for _, res := range r.Results {
		if res.Skipped {
			n++
		}
	}
	return n
}

// Err joins every per-segment failure, or returns nil for a clean run.
func (r Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.CutErr != nil {
			errs = append(errs, res.CutErr)
		}
		if res.TagErr != nil {
			errs = append(errs, res.TagErr)
		}
	}
	return errors.Join(errs...)
}
