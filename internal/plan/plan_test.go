package plan

import (
	"errors"
	"testing"
	"time"

	"audiosplit/internal/services"
	"audiosplit/internal/timecode"
	"audiosplit/internal/tracklist"
)

func TestBuildEmpty(t *testing.T) {
	if got := Build(nil); len(got) != 0 {
		t.Fatalf("expected no segments, got %#v", got)
	}
}

func TestBuildSingle(t *testing.T) {
	got := Build([]tracklist.Entry{{RawStart: "00:00:00", Title: "Only"}})
	if len(got) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(got))
	}
	if !got[0].ToEOF || got[0].End != "" || got[0].Index != 1 {
		t.Fatalf("unexpected segment %#v", got[0])
	}
}

func TestBuildUsesNextRawStart(t *testing.T) {
	entries, err := tracklist.Tokenize("00:00 Intro\n01:30 Main\n05:00 Outro", "")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	got := Build(entries)
	want := []Segment{
		{Index: 1, Start: "00:00:00", End: "00:01:30", Title: "Intro"},
		{Index: 2, Start: "00:01:30", End: "00:05:00", Title: "Main"},
		{Index: 3, Start: "00:05:00", ToEOF: true, Title: "Outro"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d segments, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("segment %d = %#v, want %#v", i, got[i], want[i])
		}
	}
}

func TestBuildKeepsInputOrderAndText(t *testing.T) {
	got := Build([]tracklist.Entry{
		{RawStart: "00:05:00", Title: "B"},
		{RawStart: "00:01:00", Title: "A"},
	})
	if got[0].End != "00:01:00" {
		t.Fatalf("expected raw next start, got %q", got[0].End)
	}
}

func TestSegmentDuration(t *testing.T) {
	seg := Segment{Start: "00:01:30", End: "00:05:00"}
	d, ok, err := seg.Duration()
	if err != nil || !ok || d != 210*time.Second {
		t.Fatalf("Duration() = %v %v %v", d, ok, err)
	}

	open := Segment{Start: "00:05:00", ToEOF: true}
	d, ok, err = open.Duration()
	if err != nil || ok || d != 0 {
		t.Fatalf("open Duration() = %v %v %v", d, ok, err)
	}

	bad := Segment{Start: "00:00:00", End: "00:99:00"}
	if _, _, err := bad.Duration(); !errors.Is(err, timecode.ErrMalformedTimestamp) {
		t.Fatalf("expected malformed timestamp, got %v", err)
	}
}

func TestSegmentRange(t *testing.T) {
	if got := (Segment{Start: "00:00:00", End: "00:01:30"}).Range(); got != "00:00:00-00:01:30" {
		t.Fatalf("Range() = %q", got)
	}
	if got := (Segment{Start: "00:05:00", ToEOF: true}).Range(); got != "00:05:00-EOF" {
		t.Fatalf("Range() = %q", got)
	}
}

func TestCheck(t *testing.T) {
	ordered := Build([]tracklist.Entry{
		{RawStart: "00:00:00"}, {RawStart: "00:01:30"}, {RawStart: "00:05:00"},
	})
	if err := Check(ordered, 10*time.Minute, true, true); err != nil {
		t.Fatalf("Check ordered: %v", err)
	}
	if err := Check(ordered, 0, true, true); err != nil {
		t.Fatalf("Check with unknown length: %v", err)
	}

	err := Check(ordered, 5*time.Minute, true, true)
	if !errors.Is(err, ErrBeyondSource) || !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected beyond source validation error, got %v", err)
	}
	if err := Check(ordered, 5*time.Minute, true, false); err != nil {
		t.Fatalf("bounds disabled: %v", err)
	}

	unordered := Build([]tracklist.Entry{
		{RawStart: "00:00:00"}, {RawStart: "00:03:00"}, {RawStart: "00:03:00"},
	})
	if err := Check(unordered, 0, true, true); !errors.Is(err, ErrNotIncreasing) {
		t.Fatalf("expected not increasing, got %v", err)
	}
	if err := Check(unordered, 0, false, true); err != nil {
		t.Fatalf("order disabled: %v", err)
	}

	malformed := Build([]tracklist.Entry{{RawStart: "00:77:00"}})
	if err := Check(malformed, time.Minute, true, true); err != nil {
		t.Fatalf("unparseable starts are left to the transcoder: %v", err)
	}
}

func TestCheckSkipsOverflowedTimestamps(t *testing.T) {
	entries, err := tracklist.Tokenize("00:00 A\n75:00 B\n10:00 C", "")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	segments := Build(entries)
	if segments[1].Start != "00:75:00" {
		t.Fatalf("unexpected normalized start %q", segments[1].Start)
	}
	if err := Check(segments, 0, true, false); err != nil {
		t.Fatalf("overflowed start should not abort the run: %v", err)
	}
	if err := Check(segments, time.Hour, true, true); err != nil {
		t.Fatalf("overflowed start should not abort the run: %v", err)
	}

	// Order still holds across the skipped start.
	backwards := Build([]tracklist.Entry{
		{RawStart: "00:05:00"}, {RawStart: "00:99:00"}, {RawStart: "00:04:00"},
	})
	if err := Check(backwards, 0, true, false); !errors.Is(err, ErrNotIncreasing) {
		t.Fatalf("expected not increasing across skipped start, got %v", err)
	}
}
