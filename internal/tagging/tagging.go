// Package tagging writes ID3v2 metadata onto split tracks.
//
// The title frame is mandatory. The track number is written in a second,
// best-effort save: when it fails the title stays on disk and the failure is
// only logged.
package tagging

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"

	"audiosplit/internal/logging"
)

// ErrUnsupportedContainer is returned for outputs that cannot carry ID3v2 tags.
var ErrUnsupportedContainer = errors.New("container does not support id3v2 tags")

const trackNumberFrame = "TRCK"

// Tagger writes title and track number frames.
type Tagger struct {
	logger *slog.Logger
}

// NewTagger constructs a Tagger. A nil logger discards warnings.
func NewTagger(logger *slog.Logger) *Tagger {
	return &Tagger{logger: logging.NewComponentLogger(logger, "tagging")}
}

// Tag sets the title on path and then tries to record track. A track <= 0
// skips the track number.
func (t *Tagger) Tag(path, title string, track int) error {
	if !supportsID3(path) {
		return fmt.Errorf("%s: %w", filepath.Ext(path), ErrUnsupportedContainer)
	}
	if err := t.setTitle(path, title); err != nil {
		return err
	}
	if track <= 0 {
		return nil
	}
	if err := t.setTrackNumber(path, track); err != nil {
		logging.WarnWithContext(t.logger, "track number not written", "tag_track_number_failed",
			logging.String("path", path),
			logging.Int("track", track),
			logging.Error(err),
			logging.String(logging.FieldImpact, "title tag kept, track number missing"),
			logging.String(logging.FieldErrorHint, "inspect the file with an ID3 editor"),
		)
	}
	return nil
}

func (t *Tagger) setTitle(path, title string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open id3 tag: %w", err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetVersion(4)
	tag.SetTitle(title)

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save title tag: %w", err)
	}
	return nil
}

func (t *Tagger) setTrackNumber(path string, track int) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("reopen id3 tag: %w", err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.DeleteFrames(trackNumberFrame)
	tag.AddTextFrame(trackNumberFrame, id3v2.EncodingUTF8, strconv.Itoa(track))

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save track number: %w", err)
	}
	return nil
}

func supportsID3(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".mp3")
}
