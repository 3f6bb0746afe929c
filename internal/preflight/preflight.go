package preflight

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"audiosplit/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// RunAll executes every check relevant to splitting inputPath into outputDir.
func RunAll(cfg *config.Config, inputPath, outputDir string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	for _, status := range CheckBinaries(requirements(cfg)) {
		results = append(results, Result{
			Name:     status.Name,
			Passed:   status.Available,
			Optional: status.Optional,
			Detail:   status.summary(),
		})
	}

	input := CheckInputFile(inputPath)
	results = append(results, input)
	results = append(results, CheckOutputDir(outputDir))

	// Stream copy writes roughly the input's size in total.
	if info, err := os.Stat(inputPath); err == nil {
		results = append(results, CheckFreeSpace(outputDir, uint64(info.Size())))
	}
	return results
}

func requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "Required for cutting segments",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.FFprobeBinary(),
			Description: "Used to check timestamps against the source duration",
			// Without it the splitter skips the bounds check and keeps going.
			Optional: true,
		},
	}
}

// Err joins the failures of required checks, or returns nil.
func Err(results []Result) error {
	var errs []error
	for _, r := range results {
		if r.Passed || r.Optional {
			continue
		}
		errs = append(errs, fmt.Errorf("%s: %s", r.Name, r.Detail))
	}
	return errors.Join(errs...)
}

// Summary renders "passed/total" for status lines, naming failed and
// optional (warning) checks separately.
func Summary(results []Result) string {
	passed := 0
	var failed, warned []string
	for _, r := range results {
		switch {
		case r.Passed:
			passed++
		case r.Optional:
			warned = append(warned, r.Name)
		default:
			failed = append(failed, r.Name)
		}
	}
	text := fmt.Sprintf("%d/%d checks passed", passed, len(results))
	var notes []string
	if len(failed) > 0 {
		notes = append(notes, "failed: "+strings.Join(failed, ", "))
	}
	if len(warned) > 0 {
		notes = append(notes, "warnings: "+strings.Join(warned, ", "))
	}
	if len(notes) > 0 {
		text += " (" + strings.Join(notes, "; ") + ")"
	}
	return text
}

// Clean reports whether every check passed, optional ones included.
func Clean(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
