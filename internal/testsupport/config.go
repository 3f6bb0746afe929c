package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"audiosplit/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose output and log directories live in a
// unique temp directory. It defaults common fields and applies any provided
// options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithExtension sets the output extension mode.
func WithExtension(ext string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Output.Extension = ext
	}
}

// WithValidation toggles the order and bounds checks.
func WithValidation(order, bounds bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Validation.EnforceOrder = order
		b.cfg.Validation.EnforceBounds = bounds
	}
}

// StubFFmpeg creates its last argument (the output path) and exits 0.
const StubFFmpeg = "#!/bin/sh\nfor last; do :; done\nprintf 'audio' > \"$last\"\n"

// StubFFprobe reports a single audio stream lasting ten minutes.
const StubFFprobe = "#!/bin/sh\nprintf '%s' '{\"streams\":[{\"index\":0,\"codec_type\":\"audio\",\"codec_name\":\"mp3\"}],\"format\":{\"duration\":\"600.000000\",\"size\":\"9600000\"}}'\n"

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, ffmpeg and ffprobe are stubbed
// with StubFFmpeg and StubFFprobe; other names get a script that exits 0.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffmpeg", "ffprobe"}
		}
		scripts := make(map[string]string, len(names))
		for _, name := range names {
			switch name {
			case "ffmpeg":
				scripts[name] = StubFFmpeg
			case "ffprobe":
				scripts[name] = StubFFprobe
			default:
				scripts[name] = "#!/bin/sh\nexit 0\n"
			}
		}
		b.installStubs(scripts)
	}
}

// WithStubScripts installs the given name → script bodies on PATH.
func WithStubScripts(scripts map[string]string) ConfigOption {
	return func(b *configBuilder) {
		b.installStubs(scripts)
	}
}

func (b *configBuilder) installStubs(scripts map[string]string) {
	binDir := filepath.Join(b.baseDir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		b.t.Fatalf("mkdir bin dir: %v", err)
	}
	for name, script := range scripts {
		target := filepath.Join(binDir, name)
		if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
			b.t.Fatalf("write stub %s: %v", name, err)
		}
	}

	oldPath := os.Getenv("PATH")
	if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
		b.t.Fatalf("set PATH: %v", err)
	}
	b.t.Cleanup(func() {
		_ = os.Setenv("PATH", oldPath)
	})
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.OutputDir)
}
