package timecode

import (
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"00:00", 0},
		{"01:30", 90 * time.Second},
		{"1:30", 90 * time.Second},
		{"59:59", 59*time.Minute + 59*time.Second},
		{"00:01:30", 90 * time.Second},
		{"1:02:03", time.Hour + 2*time.Minute + 3*time.Second},
		{"23:59:59", 23*time.Hour + 59*time.Minute + 59*time.Second},
		{" 05:00 ", 5 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if got.Duration() != tt.want {
				t.Fatalf("Parse(%q) = %v, want %v", tt.input, got.Duration(), tt.want)
			}
		})
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, input := range []string{
		"",
		"90",
		"99:99",
		"00:60",
		"00:61:00",
		"24:00:00",
		"1:2:3:4",
		"ab:cd",
		"01:30.5",
		"01:30,5",
		"100:00",
		"00:00:1x",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Fatalf("Parse(%q) expected error", input)
			}
			if !errors.Is(err, ErrMalformedTimestamp) {
				t.Fatalf("Parse(%q) error = %v, want ErrMalformedTimestamp", input, err)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, input := range []string{"00:00", "04:05", "12:34", "00:00:00", "01:02:03", "23:59:59"} {
		first, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", input, err)
		}
		second, err := Parse(first.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", first.String(), err)
		}
		if second.Sub(first) != 0 {
			t.Fatalf("round trip of %q drifted: %v vs %v", input, first, second)
		}
		if first.Sub(first) != 0 {
			t.Fatalf("self subtraction of %q not zero", input)
		}
	}
}

func TestString(t *testing.T) {
	if got := MustParse("1:30").String(); got != "00:01:30" {
		t.Fatalf("String() = %q", got)
	}
	if got := MustParse("7:08:09").String(); got != "07:08:09" {
		t.Fatalf("String() = %q", got)
	}
}

func TestBetween(t *testing.T) {
	d, err := Between("00:01:30", "00:05:00")
	if err != nil {
		t.Fatalf("Between: %v", err)
	}
	if d != 210*time.Second {
		t.Fatalf("Between = %v", d)
	}
	d, err = Between("00:05:00", "00:04:50")
	if err != nil {
		t.Fatalf("Between: %v", err)
	}
	if d != -10*time.Second {
		t.Fatalf("Between = %v, want -10s", d)
	}
	if _, err := Between("00:00:00", "00:99:00"); !errors.Is(err, ErrMalformedTimestamp) {
		t.Fatalf("expected malformed end, got %v", err)
	}
	if _, err := Between("bad", "00:01:00"); !errors.Is(err, ErrMalformedTimestamp) {
		t.Fatalf("expected malformed start, got %v", err)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00:00"},
		{90 * time.Second, "0:01:30"},
		{time.Hour + 5*time.Second, "1:00:05"},
		{-10 * time.Second, "-0:00:10"},
		{26 * time.Hour, "26:00:00"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
