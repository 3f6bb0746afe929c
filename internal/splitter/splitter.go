package splitter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"audiosplit/internal/config"
	"audiosplit/internal/logging"
	"audiosplit/internal/media/ffmpeg"
	"audiosplit/internal/media/ffprobe"
	"audiosplit/internal/naming"
	"audiosplit/internal/plan"
	"audiosplit/internal/services"
	"audiosplit/internal/tagging"
	"audiosplit/internal/tracklist"
)

// Splitter cuts a recording into tagged tracks.
type Splitter struct {
	cfg        *config.Config
	logger     *slog.Logger
	transcoder Transcoder
	tagger     Tagger
	prober     Prober
}

// Option customizes a Splitter.
type Option func(*Splitter)

// WithTranscoder replaces the ffmpeg cutter.
func WithTranscoder(t Transcoder) Option {
	return func(s *Splitter) {
		if t != nil {
			s.transcoder = t
		}
	}
}

// WithTagger replaces the ID3v2 tagger.
func WithTagger(t Tagger) Option {
	return func(s *Splitter) {
		if t != nil {
			s.tagger = t
		}
	}
}

// WithProber replaces the ffprobe source inspection.
func WithProber(p Prober) Option {
	return func(s *Splitter) {
		if p != nil {
			s.prober = p
		}
	}
}

// New constructs a Splitter wired to ffmpeg, ffprobe, and the ID3v2 tagger
// named in cfg.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Splitter {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	s := &Splitter{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "splitter"),
		transcoder: ffmpeg.NewCutter(cfg.FFmpegBinary(), logger,
			ffmpeg.WithOverwrite(cfg.Output.Overwrite),
			ffmpeg.WithTimeout(cfg.TranscodeTimeout()),
		),
		tagger: tagging.NewTagger(logger),
		prober: ffprobe.NewProber(cfg.FFprobeBinary()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Plan tokenizes and validates rc without touching the output directory.
func (s *Splitter) Plan(ctx context.Context, rc RunConfig) ([]PlannedTrack, error) {
	tracks, _, err := s.plan(ctx, rc)
	return tracks, err
}

func (s *Splitter) plan(ctx context.Context, rc RunConfig) ([]PlannedTrack, time.Duration, error) {
	entries, err := tracklist.Tokenize(rc.Tracklist, rc.Pattern)
	if err != nil {
		return nil, 0, err
	}
	segments := plan.Build(entries)
	if len(segments) == 0 {
		return nil, 0, nil
	}

	sourceLength := s.sourceLength(ctx, rc)
	if err := plan.Check(segments, sourceLength, rc.EnforceOrder, rc.EnforceBounds); err != nil {
		return nil, sourceLength, err
	}

	ext := naming.Extension(rc.Extension, rc.InputPath)
	tracks := make([]PlannedTrack, 0, len(segments))
	for _, seg := range segments {
		name := naming.Filename(seg.Title, seg.Index, len(segments), ext)
		track := PlannedTrack{
			OutputSpec: OutputSpec{
				Path:    filepath.Join(rc.OutputDir, name),
				Segment: seg,
			},
		}
		track.Duration, track.Bounded, track.DurationErr = seg.Duration()
		tracks = append(tracks, track)
	}
	return tracks, sourceLength, nil
}

// sourceLength probes the input when bounds are enforced. An unknown length
// (zero) disables the bounds check.
func (s *Splitter) sourceLength(ctx context.Context, rc RunConfig) time.Duration {
	if !rc.EnforceBounds || s.prober == nil {
		return 0
	}
	logger := logging.WithContext(ctx, s.logger)
	src, err := s.prober.Source(ctx, rc.InputPath)
	if err != nil {
		logging.WarnWithContext(logger, "source duration unavailable", "probe_failed",
			logging.String("input", rc.InputPath),
			logging.Error(err),
			logging.String(logging.FieldImpact, "segment bounds are not checked against the source"),
			logging.String(logging.FieldErrorHint, "verify ffprobe is installed and the input is readable"),
		)
		return 0
	}
	logger.Info("source inspected",
		logging.String("input", rc.InputPath),
		logging.Duration("source_length", src.Length),
		logging.Int("size_bytes", int(src.SizeBytes)),
	)
	if src.CoverArt > 0 {
		logging.WarnWithContext(logger, "cover art is not copied into segments", "cover_art_dropped",
			logging.Int("cover_art_streams", src.CoverArt),
			logging.String(logging.FieldImpact, "segments carry audio and title tags only"),
			logging.String(logging.FieldErrorHint, "re-attach artwork with a tag editor if needed"),
		)
	}
	return src.Length
}

// Run executes rc. The returned error covers failures that stop the run as a
// whole (bad tracklist, validation, output directory, cancellation);
// per-segment failures are reported through Report.Err.
func (s *Splitter) Run(ctx context.Context, rc RunConfig) (Report, error) {
	started := time.Now()
	report := Report{RunID: uuid.NewString(), OutputDir: rc.OutputDir}
	ctx = services.WithRunID(ctx, report.RunID)
	logger := logging.WithContext(ctx, s.logger)

	tracks, sourceLength, err := s.plan(ctx, rc)
	report.SourceLength = sourceLength
	if err != nil {
		return report, err
	}
	if len(tracks) == 0 {
		logger.Info("tracklist produced no segments", logging.String("input", rc.InputPath))
		return report, nil
	}

	if err := os.MkdirAll(rc.OutputDir, 0o755); err != nil {
		return report, services.Wrap(services.ErrConfiguration, "prepare", "create output directory", rc.OutputDir, err)
	}
	unlock, err := lockOutputDir(rc.OutputDir)
	if err != nil {
		return report, err
	}
	defer unlock()

	logger.Info("split started",
		logging.String("input", rc.InputPath),
		logging.String("output_dir", rc.OutputDir),
		logging.Int("segments", len(tracks)),
	)

	report.Results = make([]Result, 0, len(tracks))
	for _, track := range tracks {
		if ctx.Err() != nil {
			report.Results = append(report.Results, Result{Output: track.OutputSpec, Skipped: true})
			continue
		}
		segCtx := services.WithSegment(ctx, track.Segment.Index)
		report.Results = append(report.Results, s.runSegment(segCtx, rc.InputPath, track.OutputSpec))
	}
	report.Elapsed = time.Since(started)

	summary := []logging.Attr{
		logging.Int("written", report.Written()),
		logging.Int("failed", report.Failed()),
		logging.Int("tag_failures", report.TagFailures()),
		logging.Int("skipped", report.Skipped()),
		logging.Duration("elapsed", report.Elapsed),
	}
	if report.Failed() > 0 || report.Skipped() > 0 {
		logger.Warn("split finished with failures", logging.Args(summary...)...)
	} else {
		logger.Info("split finished", logging.Args(summary...)...)
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

func (s *Splitter) runSegment(ctx context.Context, input string, out OutputSpec) Result {
	result := Result{Output: out}
	seg := out.Segment

	cutCtx := services.WithStage(ctx, "cut")
	logger := logging.WithContext(cutCtx, s.logger)
	logger.Info("cutting segment",
		logging.String("output_path", out.Path),
		logging.String("range", seg.Range()),
		logging.String("title", seg.Title),
	)

	err := s.transcoder.Cut(cutCtx, ffmpeg.CutRequest{
		Input:  input,
		Start:  seg.Start,
		End:    seg.End,
		ToEOF:  seg.ToEOF,
		Output: out.Path,
	})
	if err != nil {
		result.CutErr = fmt.Errorf("%w: segment %d (%s): %w", ErrTranscode, seg.Index, out.Path, err)
		logging.ErrorWithContext(logger, "segment cut failed", "segment_cut_failed",
			logging.String("output_path", out.Path),
			logging.String(logging.FieldErrorCode, services.ErrorCode(err)),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the timestamps and that the output file does not already exist"),
		)
		return result
	}

	tagLogger := logging.WithContext(services.WithStage(ctx, "tag"), s.logger)
	if err := s.tagger.Tag(out.Path, seg.Title, seg.Index); err != nil {
		result.TagErr = fmt.Errorf("%w: segment %d (%s): %w", ErrTag, seg.Index, out.Path, err)
		logging.WarnWithContext(tagLogger, "segment tag failed", "segment_tag_failed",
			logging.String("output_path", out.Path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "audio kept without title tag"),
		)
		return result
	}

	tagLogger.Info("segment written", logging.String("output_path", out.Path))
	return result
}

// lockOutputDir takes an advisory lock on dir and returns its release func.
func lockOutputDir(dir string) (func(), error) {
	lockPath := filepath.Join(dir, LockFileName)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "prepare", "lock output directory", lockPath, err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrValidation, "prepare", "lock output directory", lockPath, ErrLocked)
	}
	return func() {
		_ = lock.Unlock()
		_ = os.Remove(lockPath)
	}, nil
}
