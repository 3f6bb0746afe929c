package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index       int         `json:"index"`
	CodecName   string      `json:"codec_name"`
	CodecType   string      `json:"codec_type"`
	Duration    string      `json:"duration"`
	BitRate     string      `json:"bit_rate"`
	SampleRate  string      `json:"sample_rate"`
	Channels    int         `json:"channels"`
	Disposition Disposition `json:"disposition"`
}

// Disposition carries the stream flags relevant to audio extraction.
type Disposition struct {
	AttachedPic int `json:"attached_pic"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
	FormatName string `json:"format_name"`
}

type outputFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Inspect executes ffprobe against the provided path and decodes the JSON response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	return inspect(ctx, combinedOutput, binary, path)
}

func inspect(ctx context.Context, run outputFunc, binary, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	output, err := run(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(output)))
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

func combinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// AudioStreamCount returns the number of audio streams discovered.
func (r Result) AudioStreamCount() int {
	count := 0
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "audio") {
			count++
		}
	}
	return count
}

// ImageStreamCount returns video streams that are cover art rather than motion video.
func (r Result) ImageStreamCount() int {
	count := 0
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "video") && stream.Disposition.AttachedPic == 1 {
			count++
		}
	}
	return count
}

// DurationSeconds returns the container duration in seconds, or 0 when unavailable.
func (r Result) DurationSeconds() float64 {
	return parseFloat(r.Format.Duration)
}

// Duration returns the container duration rounded up to whole seconds, so a
// partial trailing second still counts as playable audio. It is 0 when ffprobe
// did not report a usable value.
func (r Result) Duration() time.Duration {
	seconds := r.DurationSeconds()
	if math.IsNaN(seconds) || seconds <= 0 {
		return 0
	}
	return time.Duration(math.Ceil(seconds)) * time.Second
}

// SizeBytes returns the reported container size in bytes, or 0 when unavailable.
func (r Result) SizeBytes() int64 {
	size := parseFloat(r.Format.Size)
	if math.IsNaN(size) || size < 0 {
		return 0
	}
	return int64(size)
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return math.NaN()
}

// Source summarises a recording for planning and logging.
type Source struct {
	Length    time.Duration
	SizeBytes int64
	// CoverArt counts attached pictures, which stream-copied segments drop.
	CoverArt int
}

// Prober inspects sources with a fixed ffprobe binary.
type Prober struct {
	Binary string
	run    outputFunc
}

// NewProber returns a Prober for binary ("ffprobe" when empty).
func NewProber(binary string) *Prober {
	return &Prober{Binary: binary, run: combinedOutput}
}

// Source inspects the recording at path. A file without audio streams is an
// error.
func (p *Prober) Source(ctx context.Context, path string) (Source, error) {
	run := p.run
	if run == nil {
		run = combinedOutput
	}
	result, err := inspect(ctx, run, p.Binary, path)
	if err != nil {
		return Source{}, err
	}
	if result.AudioStreamCount() == 0 {
		return Source{}, fmt.Errorf("ffprobe inspect: %s has no audio streams", path)
	}
	return Source{
		Length:    result.Duration(),
		SizeBytes: result.SizeBytes(),
		CoverArt:  result.ImageStreamCount(),
	}, nil
}
