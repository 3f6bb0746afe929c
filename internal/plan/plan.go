// Package plan derives cut segments from tokenized tracklist entries.
package plan

import (
	"errors"
	"fmt"
	"time"

	"audiosplit/internal/services"
	"audiosplit/internal/timecode"
	"audiosplit/internal/tracklist"
)

var (
	// ErrNotIncreasing reports a segment that does not start after its predecessor.
	ErrNotIncreasing = errors.New("segment starts are not strictly increasing")
	// ErrBeyondSource reports a segment that starts at or past the end of the source.
	ErrBeyondSource = errors.New("segment starts beyond the source duration")
)

// Segment is one planned output track.
type Segment struct {
	Index int // 1-based
	Start string
	End   string // next segment's start; empty when ToEOF
	ToEOF bool
	Title string
}

// Build pairs each entry with the next entry's start. The last segment runs
// to the end of the source.
func Build(entries []tracklist.Entry) []Segment {
	segments := make([]Segment, 0, len(entries))
	for i, entry := range entries {
		seg := Segment{
			Index: i + 1,
			Start: entry.RawStart,
			Title: entry.Title,
		}
		if i+1 < len(entries) {
			seg.End = entries[i+1].RawStart
		} else {
			seg.ToEOF = true
		}
		segments = append(segments, seg)
	}
	return segments
}

// Duration returns the display length of the segment. ok is false when the
// segment is open-ended, in which case no length is known.
func (s Segment) Duration() (d time.Duration, ok bool, err error) {
	if s.ToEOF {
		return 0, false, nil
	}
	d, err = timecode.Between(s.Start, s.End)
	if err != nil {
		return 0, false, err
	}
	return d, true, nil
}

// EndLabel renders the end bound, "EOF" for open-ended segments.
func (s Segment) EndLabel() string {
	if s.ToEOF {
		return "EOF"
	}
	return s.End
}

// Range renders "start-end" for progress output.
func (s Segment) Range() string {
	return s.Start + "-" + s.EndLabel()
}

// Check verifies starts are strictly increasing and, when sourceLength is
// positive, that every start falls inside the source. Starts that do not
// parse as timestamps are left to the transcoder and take no part in either
// check; ordering compares each parseable start with the previous parseable
// one.
func Check(segments []Segment, sourceLength time.Duration, enforceOrder, enforceBounds bool) error {
	if !enforceOrder && !enforceBounds {
		return nil
	}
	var prev timecode.TimePoint
	seen := false
	for _, seg := range segments {
		start, err := timecode.Parse(seg.Start)
		if err != nil {
			continue
		}
		if enforceOrder && seen && start.Sub(prev) <= 0 {
			return services.Wrap(services.ErrValidation, "plan", "check",
				fmt.Sprintf("segment %d starts at %s, previous segment starts at %s", seg.Index, start, prev), ErrNotIncreasing)
		}
		if enforceBounds && sourceLength > 0 && start.Duration() >= sourceLength {
			return services.Wrap(services.ErrValidation, "plan", "check",
				fmt.Sprintf("segment %d starts at %s, source is %s long", seg.Index, start, timecode.FormatDuration(sourceLength)), ErrBeyondSource)
		}
		prev, seen = start, true
	}
	return nil
}
