package timecode

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMalformedTimestamp reports a time token that is not a valid MM:SS or
// HH:MM:SS value.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

const (
	layoutHours   = "15:4:5"
	layoutMinutes = "4:5"
)

// TimePoint is a non-negative offset from the start of a recording.
type TimePoint time.Duration

// Parse converts "MM:SS" or "HH:MM:SS" text into a TimePoint.
func Parse(text string) (TimePoint, error) {
	value := strings.TrimSpace(text)
	var layout string
	switch strings.Count(value, ":") {
	case 1:
		layout = layoutMinutes
	case 2:
		layout = layoutHours
	default:
		return 0, fmt.Errorf("%w: %q: expected MM:SS or HH:MM:SS", ErrMalformedTimestamp, text)
	}
	// time.Parse tolerates fractional seconds the layout does not name.
	if strings.ContainsAny(value, ".,") {
		return 0, fmt.Errorf("%w: %q: fractional seconds are not supported", ErrMalformedTimestamp, text)
	}
	parsed, err := time.Parse(layout, value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrMalformedTimestamp, text, err)
	}
	offset := time.Duration(parsed.Hour())*time.Hour +
		time.Duration(parsed.Minute())*time.Minute +
		time.Duration(parsed.Second())*time.Second
	return TimePoint(offset), nil
}

// MustParse is Parse for constants and tests; it panics on invalid input.
func MustParse(text string) TimePoint {
	tp, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return tp
}

// Duration returns the offset as a time.Duration.
func (t TimePoint) Duration() time.Duration {
	return time.Duration(t)
}

// Sub returns the signed span t-u.
func (t TimePoint) Sub(u TimePoint) time.Duration {
	return time.Duration(t) - time.Duration(u)
}

// String renders the canonical HH:MM:SS form.
func (t TimePoint) String() string {
	total := int64(time.Duration(t) / time.Second)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

// Between parses both timestamps and returns end-start.
func Between(start, end string) (time.Duration, error) {
	from, err := Parse(start)
	if err != nil {
		return 0, err
	}
	to, err := Parse(end)
	if err != nil {
		return 0, err
	}
	return to.Sub(from), nil
}

// FormatDuration renders a signed span as H:MM:SS, e.g. "0:01:30" or "-0:00:10".
func FormatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%s%d:%02d:%02d", sign, total/3600, (total/60)%60, total%60)
}
