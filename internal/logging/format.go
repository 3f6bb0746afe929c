package logging

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const stampLayout = "2006-01-02 15:04:05"

// Words that keep their own casing in console labels.
var labelWords = map[string]string{
	"ffmpeg":  "FFmpeg",
	"ffprobe": "FFprobe",
	"id":      "ID",
	"id3":     "ID3",
	"eof":     "EOF",
}

func stamp(ts time.Time) string {
	return ts.In(time.Local).Format(stampLayout)
}

// fieldLabel turns "output_path" into "Output Path".
func fieldLabel(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	for i, w := range words {
		lower := strings.ToLower(w)
		if fixed, ok := labelWords[lower]; ok {
			words[i] = fixed
			continue
		}
		words[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(words, " ")
}

// renderValue formats a field value. Byte counts are humanized and durations
// are rounded to milliseconds. With quote set, values containing spaces or
// separators are quoted so debug lines stay parseable.
func renderValue(key string, v slog.Value, quote bool) string {
	var text string
	switch v.Kind() {
	case slog.KindString:
		text = v.String()
	case slog.KindInt64:
		if isByteKey(key) && v.Int64() >= 0 {
			return humanize.Bytes(uint64(v.Int64()))
		}
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		if isByteKey(key) {
			return humanize.Bytes(v.Uint64())
		}
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindDuration:
		return v.Duration().Round(time.Millisecond).String()
	case slog.KindTime:
		return stamp(v.Time())
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			text = err.Error()
		} else {
			text = fmt.Sprint(v.Any())
		}
	default:
		text = v.String()
	}
	if quote && needsQuotes(text) {
		return strconv.Quote(text)
	}
	return text
}

func isByteKey(key string) bool {
	return key == "bytes" || strings.HasSuffix(key, "_bytes")
}

func needsQuotes(s string) bool {
	return s == "" || strings.ContainsFunc(s, func(r rune) bool {
		return r <= ' ' || r == '=' || r == '"'
	})
}
