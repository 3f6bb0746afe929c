package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"audiosplit/internal/logging"
	"audiosplit/internal/services"
)

type commandRunner func(ctx context.Context, name string, args ...string) error

// CutRequest describes one segment to extract.
type CutRequest struct {
	Input  string
	Start  string
	End    string
	ToEOF  bool
	Output string
}

// Cutter runs ffmpeg stream-copy extractions.
type Cutter struct {
	binary    string
	overwrite bool
	timeout   time.Duration
	logger    *slog.Logger
	run       commandRunner
}

// Option customizes a Cutter.
type Option func(*Cutter)

// WithOverwrite makes ffmpeg replace existing outputs instead of failing.
func WithOverwrite(overwrite bool) Option {
	return func(c *Cutter) { c.overwrite = overwrite }
}

// WithTimeout bounds each ffmpeg invocation. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Cutter) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func WithCommandRunner(r commandRunner) Option {
	return func(c *Cutter) {
		if r != nil {
			c.run = r
		}
	}
}

// NewCutter constructs a cutter for binary ("ffmpeg" when empty).
func NewCutter(binary string, logger *slog.Logger, opts ...Option) *Cutter {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	c := &Cutter{
		binary: binary,
		logger: logging.NewComponentLogger(logger, "ffmpeg"),
		run:    defaultCommandRunner,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cut extracts req's range into req.Output.
func (c *Cutter) Cut(ctx context.Context, req CutRequest) error {
	if c == nil {
		return errors.New("cutter not initialized")
	}
	if strings.TrimSpace(req.Input) == "" {
		return errors.New("input path is required")
	}
	if strings.TrimSpace(req.Output) == "" {
		return errors.New("output path is required")
	}
	if strings.TrimSpace(req.Start) == "" {
		return errors.New("start time is required")
	}
	if !req.ToEOF && strings.TrimSpace(req.End) == "" {
		return errors.New("end time is required unless cutting to end of file")
	}

	_, statErr := os.Stat(req.Output)
	existed := statErr == nil

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := BuildArgs(req, c.overwrite)
	c.logger.Debug("executing ffmpeg",
		logging.String("command", c.binary+" "+strings.Join(args, " ")),
		logging.String("output_file", req.Output),
	)

	if err := c.run(ctx, c.binary, args...); err != nil {
		if !existed || c.overwrite {
			_ = os.Remove(req.Output)
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return services.Wrap(services.ErrTimeout, "cut", "ffmpeg", fmt.Sprintf("exceeded %s", c.timeout), err)
		}
		return services.Wrap(services.ErrExternalTool, "cut", "ffmpeg", "", err)
	}

	if _, err := os.Stat(req.Output); err != nil {
		return services.Wrap(services.ErrExternalTool, "cut", "ffmpeg", "did not produce output file", err)
	}
	return nil
}

// BuildArgs returns the ffmpeg arguments for req. The end bound is omitted
// when the segment runs to end of file.
func BuildArgs(req CutRequest, overwrite bool) []string {
	args := []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-i", req.Input,
		"-ss", req.Start,
		"-vn",
		"-acodec", "copy",
	}
	if !req.ToEOF && req.End != "" {
		args = append(args, "-to", req.End)
	}
	if overwrite {
		args = append(args, "-y")
	} else {
		args = append(args, "-n")
	}
	return append(args, req.Output)
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
