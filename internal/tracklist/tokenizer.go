package tracklist

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultPattern matches an optional hour, minutes and seconds followed by the
// rest of the line as the title.
const DefaultPattern = `((?:\d{1,2}:)?\d{1,2}:\d{2})(?:\s*)(.*)`

// ErrBadFormat reports a tracklist pattern that cannot be used for extraction.
var ErrBadFormat = errors.New("tracklist format / regex is not correct")

// Entry is one timestamp/title pair in source order.
type Entry struct {
	RawStart string
	Title    string
}

// Extractor pulls ordered entries out of tracklist text.
type Extractor interface {
	Extract(text string) []Entry
}

// Pattern is the regular-expression extraction strategy.
type Pattern struct {
	expr string
	re   *regexp.Regexp
}

// Compile validates expr and returns a multiline Pattern. An empty expr selects
// DefaultPattern.
func Compile(expr string) (*Pattern, error) {
	if strings.TrimSpace(expr) == "" {
		expr = DefaultPattern
	}
	re, err := regexp.Compile("(?m)" + expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	if re.NumSubexp() < 2 {
		return nil, fmt.Errorf("%w: pattern needs a time group and a title group, found %d group(s)", ErrBadFormat, re.NumSubexp())
	}
	return &Pattern{expr: expr, re: re}, nil
}

// String returns the expression as supplied, without the multiline flag.
func (p *Pattern) String() string {
	if p == nil {
		return ""
	}
	return p.expr
}

// Extract returns entries for every match, ignoring lines that do not match.
func (p *Pattern) Extract(text string) []Entry {
	if p == nil || p.re == nil {
		return nil
	}
	matches := p.re.FindAllStringSubmatch(text, -1)
	entries := make([]Entry, 0, len(matches))
	for _, m := range matches {
		entries = append(entries, Entry{
			RawStart: normalizeStart(m[1]),
			Title:    strings.TrimSpace(m[2]),
		})
	}
	return entries
}

// Tokenize compiles expr and extracts entries from text in one step.
func Tokenize(text, expr string) ([]Entry, error) {
	pattern, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	return pattern.Extract(text), nil
}

func normalizeStart(value string) string {
	if strings.Count(value, ":") == 1 {
		return "00:" + value
	}
	return value
}
