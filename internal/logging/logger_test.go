package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"audiosplit/internal/config"
	"audiosplit/internal/logging"
	"audiosplit/internal/services"
)

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("split started", logging.String("input", "set.mp3"))

	data, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "audiosplit.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "split started") {
		t.Fatalf("expected message in log file, got %q", data)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestConsoleLoggerFormatsInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-info.log")
	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithRunID(context.Background(), "0123456789abcdef")
	ctx = services.WithSegment(ctx, 2)
	ctx = services.WithStage(ctx, "cut")
	component := logging.NewComponentLogger(logger, "splitter")
	logging.WithContext(ctx, component).Info("segment written",
		logging.String("output_path", "/tmp/out/02-Song.mp3"),
		logging.String("range", "00:03:00-00:07:30"),
	)

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	for _, want := range []string{
		"INFO [splitter] Run 01234567 · Segment #2 (cut) – segment written",
		"    - Output Path: /tmp/out/02-Song.mp3",
		"    - Range: 00:03:00-00:07:30",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Run Id") || strings.Contains(out, "logger_test.go") {
		t.Fatalf("info output should hide subject fields and caller:\n%s", out)
	}
}

func TestConsoleLoggerDebugIncludesSourceAndRawKeys(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-debug.log")
	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "debug",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("ffmpeg args", logging.String("args", "-i in.mp3"))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "DEBUG") || !strings.Contains(out, "logger_test.go:") {
		t.Fatalf("expected debug header with source, got:\n%s", out)
	}
	if !strings.Contains(out, `    args: "-i in.mp3"`) {
		t.Fatalf("expected raw key with quoted value, got:\n%s", out)
	}
}

func TestJSONLoggerIncludesContextFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{
		Format:      "json",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithRunID(context.Background(), "run-1")
	ctx = services.WithSegment(ctx, 3)
	logging.WithContext(ctx, logger).Warn("tag failed", logging.Error(errors.New("boom")))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("decode json line %q: %v", data, err)
	}
	if entry["level"] != "warn" {
		t.Fatalf("unexpected level: %v", entry["level"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", entry)
	}
	if entry[logging.FieldRunID] != "run-1" {
		t.Fatalf("unexpected run id: %v", entry[logging.FieldRunID])
	}
	if entry[logging.FieldSegment] != float64(3) {
		t.Fatalf("unexpected segment: %v", entry[logging.FieldSegment])
	}
	if entry["error"] != "boom" {
		t.Fatalf("unexpected error field: %v", entry["error"])
	}
}

func TestLevelFiltering(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Fatalf("unexpected filtering result:\n%s", data)
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	logging.WarnWithContext(logger, "track number not written", "tag_track_number_failed",
		logging.String(logging.FieldImpact, "title kept"),
	)

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if entry[logging.FieldEventType] != "tag_track_number_failed" {
		t.Fatalf("unexpected event type: %v", entry[logging.FieldEventType])
	}
	if entry[logging.FieldErrorHint] == "" || entry[logging.FieldErrorHint] == nil {
		t.Fatal("expected default error hint")
	}
	if entry[logging.FieldImpact] != "title kept" {
		t.Fatalf("caller impact should win, got %v", entry[logging.FieldImpact])
	}
}

func TestNilLoggerHelpersAreSafe(t *testing.T) {
	logging.WarnWithContext(nil, "msg", "event")
	logging.ErrorWithContext(nil, "msg", "event")
	logging.NewComponentLogger(nil, "x").Info("discarded")
	logging.WithContext(context.Background(), nil).Info("discarded")
}

func TestConsoleLoggerRendersDomainFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "fields.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.With(logging.String("ffmpeg_binary", "ffmpeg")).WithGroup("source").Info("source inspected",
		logging.Int("size_bytes", 5_000_000),
		logging.Duration("elapsed", 1234567*time.Microsecond),
	)

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	for _, want := range []string{
		"    - FFmpeg Binary: ffmpeg",
		"    - Source Size Bytes: 5.0 MB",
		"    - Source Elapsed: 1.235s",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestConsoleLoggerLaterAttrWins(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "dedupe.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.With(logging.String("output_dir", "first")).Info("run", logging.String("output_dir", "second"))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if strings.Count(out, "Output Dir") != 1 || !strings.Contains(out, "Output Dir: second") {
		t.Fatalf("expected one merged field, got:\n%s", out)
	}
}

func TestErrorWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	logging.ErrorWithContext(logger, "segment cut failed", "segment_cut_failed", logging.Error(errors.New("exit 1")))

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if entry["level"] != "ERROR" || entry[logging.FieldEventType] != "segment_cut_failed" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if hint, _ := entry[logging.FieldErrorHint].(string); hint == "" {
		t.Fatalf("expected default error hint, got %v", entry)
	}
	if _, ok := entry[logging.FieldImpact]; ok {
		t.Fatalf("error records carry no impact default: %v", entry)
	}
}
