package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// consoleHandler renders one header line per record followed by indented
// fields. Attributes bound through WithAttrs are flattened once, at bind time.
type consoleHandler struct {
	sink      *consoleSink
	level     slog.Leveler
	bound     []field
	group     string
	addSource bool
}

type consoleSink struct {
	mu sync.Mutex
	w  io.Writer
}

type field struct {
	key   string
	value slog.Value
}

// subject is the run/segment/stage context pulled out of the fields.
type subject struct {
	component string
	runID     string
	segment   string
	stage     string
}

func newConsoleHandler(w io.Writer, level slog.Leveler, addSource bool) slog.Handler {
	return &consoleHandler{sink: &consoleSink{w: w}, level: level, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	if !h.Enabled(context.Background(), record.Level) {
		return nil
	}

	fields := slices.Clone(h.bound)
	record.Attrs(func(attr slog.Attr) bool {
		fields = appendField(fields, h.group, attr)
		return true
	})
	subj, fields := splitSubject(mergeFields(fields))

	var buf bytes.Buffer
	h.writeHeader(&buf, record, subj)
	writeFields(&buf, fields, record.Level < slog.LevelInfo)

	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	_, err := h.sink.w.Write(buf.Bytes())
	return err
}

func (h *consoleHandler) writeHeader(buf *bytes.Buffer, record slog.Record, subj subject) {
	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	buf.WriteString(stamp(ts))
	buf.WriteByte(' ')
	buf.WriteString(levelLabel(record.Level))
	if subj.component != "" {
		buf.WriteString(" [" + subj.component + "]")
	}
	if s := subj.String(); s != "" {
		buf.WriteString(" " + s)
	}
	msg := strings.TrimSpace(record.Message)
	if msg == "" {
		msg = "(no message)"
	}
	buf.WriteString(" – " + msg)
	if h.addSource {
		if src := record.Source(); src != nil && src.File != "" {
			buf.WriteString(" [" + filepath.Base(src.File) + ":" + strconv.Itoa(src.Line) + "]")
		}
	}
	buf.WriteByte('\n')
}

// writeFields prints info records with friendly labels and debug records with
// raw keys and quoted values.
func writeFields(buf *bytes.Buffer, fields []field, debug bool) {
	for _, f := range fields {
		if debug {
			buf.WriteString("    " + f.key + ": " + renderValue(f.key, f.value, true) + "\n")
			continue
		}
		if isSubjectKey(f.key) {
			continue
		}
		buf.WriteString("    - " + fieldLabel(f.key) + ": " + renderValue(f.key, f.value, false) + "\n")
	}
}

// String formats the subject as "Run abcd1234 · Segment #2 (cut)".
func (s subject) String() string {
	var parts []string
	if id := s.runID; id != "" {
		if len(id) > 8 {
			id = id[:8]
		}
		parts = append(parts, "Run "+id)
	}
	switch {
	case s.segment != "" && s.stage != "":
		parts = append(parts, "Segment #"+s.segment+" ("+s.stage+")")
	case s.segment != "":
		parts = append(parts, "Segment #"+s.segment)
	case s.stage != "":
		parts = append(parts, s.stage)
	}
	return strings.Join(parts, " · ")
}

// splitSubject removes the component from fields and records the run,
// segment and stage. Those three stay in fields for debug output only.
func splitSubject(fields []field) (subject, []field) {
	var subj subject
	out := fields[:0]
	for _, f := range fields {
		text := strings.TrimSpace(renderValue(f.key, f.value, false))
		switch f.key {
		case FieldComponent:
			subj.component = text
			continue
		case FieldRunID:
			subj.runID = text
		case FieldSegment:
			subj.segment = text
		case FieldStage:
			subj.stage = text
		}
		out = append(out, f)
	}
	return subj, out
}

// mergeFields keeps the first position of each key and the last value.
func mergeFields(fields []field) []field {
	index := make(map[string]int, len(fields))
	out := make([]field, 0, len(fields))
	for _, f := range fields {
		if i, ok := index[f.key]; ok {
			out[i].value = f.value
			continue
		}
		index[f.key] = len(out)
		out = append(out, f)
	}
	return out
}

func appendField(dst []field, group string, attr slog.Attr) []field {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return dst
	}
	key := attr.Key
	if group != "" && key != "" {
		key = group + "." + key
	} else if key == "" {
		key = group
	}
	if attr.Value.Kind() == slog.KindGroup {
		for _, member := range attr.Value.Group() {
			dst = appendField(dst, key, member)
		}
		return dst
	}
	if key == "" {
		return dst
	}
	return append(dst, field{key: key, value: attr.Value})
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.bound = slices.Clone(h.bound)
	for _, attr := range attrs {
		next.bound = appendField(next.bound, h.group, attr)
	}
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	if h.group != "" {
		next.group = h.group + "." + name
	} else {
		next.group = name
	}
	return &next
}

func isSubjectKey(key string) bool {
	return key == FieldRunID || key == FieldSegment || key == FieldStage
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
