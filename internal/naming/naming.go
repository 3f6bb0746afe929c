// Package naming derives output filenames for split tracks.
//
// Names are "<ordinal>-<title>.<ext>" with spaces turned into underscores and
// the ordinal zero-padded to the width of the track count. Only spaces are
// rewritten: path separators and other reserved characters pass through
// untouched.
package naming

import (
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// DefaultExtension is used when no extension mode is configured.
	DefaultExtension = "mp3"
	// ExtensionFromSource derives the extension from the input file.
	ExtensionFromSource = "source"

	minPadWidth = 2
)

// Filename builds the output name for a track. An ordinal <= 0 omits the
// prefix; a total <= 0 pads the ordinal to two digits.
func Filename(title string, ordinal, total int, ext string) string {
	name := strings.ReplaceAll(strings.TrimSpace(title), " ", "_")
	name += "." + strings.TrimPrefix(ext, ".")
	if ordinal > 0 {
		width := minPadWidth
		if total > 0 {
			width = len(strconv.Itoa(total))
		}
		name = padOrdinal(ordinal, width) + "-" + name
	}
	return strings.ReplaceAll(name, "--", "-")
}

// Extension resolves the configured extension mode against the input path.
func Extension(mode, inputPath string) string {
	mode = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(mode), "."))
	switch mode {
	case "":
		return DefaultExtension
	case ExtensionFromSource:
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(inputPath), "."))
		if ext == "" {
			return DefaultExtension
		}
		return ext
	default:
		return mode
	}
}

func padOrdinal(ordinal, width int) string {
	digits := strconv.Itoa(ordinal)
	if len(digits) >= width {
		return digits
	}
	return strings.Repeat("0", width-len(digits)) + digits
}
