package ffprobe

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video", Disposition: Disposition{AttachedPic: 1}},
			{CodecType: "audio"},
			{CodecType: "audio"},
		},
		Format: Format{
			Duration: "123.45",
			Size:     "1000",
		},
	}
	if result.ImageStreamCount() != 1 {
		t.Fatalf("expected 1 image stream, got %d", result.ImageStreamCount())
	}
	if result.AudioStreamCount() != 2 {
		t.Fatalf("expected 2 audio streams, got %d", result.AudioStreamCount())
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.Duration() != 124*time.Second {
		t.Fatalf("expected duration rounded up, got %v", result.Duration())
	}
	if result.SizeBytes() != 1000 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{
		Format: Format{
			Duration: "bad",
			Size:     "-1",
		},
	}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
	if result.Duration() != 0 {
		t.Fatalf("expected zero duration, got %v", result.Duration())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
}

const sampleJSON = `{
  "streams": [
    {"index": 0, "codec_name": "mp3", "codec_type": "audio", "sample_rate": "44100", "channels": 2},
    {"index": 1, "codec_name": "mjpeg", "codec_type": "video", "disposition": {"attached_pic": 1}}
  ],
  "format": {"filename": "set.mp3", "nb_streams": 2, "duration": "3723.600000", "size": "89366400", "format_name": "mp3"}
}`

func TestProberSource(t *testing.T) {
	var gotArgs []string
	p := &Prober{Binary: "probe-bin", run: func(_ context.Context, name string, args ...string) ([]byte, error) {
		if name != "probe-bin" {
			t.Fatalf("unexpected binary %q", name)
		}
		gotArgs = args
		return []byte(sampleJSON), nil
	}}
	src, err := p.Source(context.Background(), "/music/set.mp3")
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if src.Length != time.Hour+2*time.Minute+4*time.Second {
		t.Fatalf("unexpected length %v", src.Length)
	}
	if src.CoverArt != 1 || src.SizeBytes != 89366400 {
		t.Fatalf("unexpected source summary %+v", src)
	}
	if gotArgs[len(gotArgs)-1] != "/music/set.mp3" || gotArgs[len(gotArgs)-2] != "--" {
		t.Fatalf("expected path after --, got %v", gotArgs)
	}
}

func TestProberRejectsSilentSource(t *testing.T) {
	p := &Prober{run: func(context.Context, string, ...string) ([]byte, error) {
		return []byte(`{"streams":[{"codec_type":"video"}],"format":{"duration":"10"}}`), nil
	}}
	if _, err := p.Source(context.Background(), "clip.mkv"); err == nil {
		t.Fatal("expected error for source without audio")
	}
}

func TestInspectErrors(t *testing.T) {
	failing := func(context.Context, string, ...string) ([]byte, error) {
		return []byte("No such file"), errors.New("exit status 1")
	}
	_, err := inspect(context.Background(), failing, "", "missing.mp3")
	if err == nil || !strings.Contains(err.Error(), "No such file") {
		t.Fatalf("expected tool output in error, got %v", err)
	}

	garbage := func(context.Context, string, ...string) ([]byte, error) { return []byte("not json"), nil }
	if _, err := inspect(context.Background(), garbage, "", "x.mp3"); err == nil {
		t.Fatal("expected parse error")
	}

	if _, err := inspect(context.Background(), garbage, "", "  "); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestDurationKeepsPartialTrailingSecond(t *testing.T) {
	for _, tc := range []struct {
		raw  string
		want time.Duration
	}{
		{"300.900", 301 * time.Second},
		{"300.000", 300 * time.Second},
		{"0.2", time.Second},
		{"", 0},
	} {
		got := Result{Format: Format{Duration: tc.raw}}.Duration()
		if got != tc.want {
			t.Fatalf("Duration(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}
