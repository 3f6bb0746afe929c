package tracklist

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadFile loads a tracklist file and returns its UTF-8 text. An empty label,
// "auto" or "utf-8" honours byte order marks and otherwise assumes UTF-8; any
// other WHATWG label (e.g. "shift_jis", "windows-1252") selects that encoding.
func ReadFile(path, label string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open tracklist: %w", err)
	}
	defer file.Close()
	return Decode(file, label)
}

// Decode reads r with the encoding named by label.
func Decode(r io.Reader, label string) (string, error) {
	decoder, err := decoderFor(label)
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(transform.NewReader(r, decoder))
	if err != nil {
		return "", fmt.Errorf("decode tracklist: %w", err)
	}
	return string(data), nil
}

func decoderFor(label string) (transform.Transformer, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	switch label {
	case "", "auto", "utf-8", "utf8":
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("tracklist encoding %q: %w", label, err)
	}
	return unicode.BOMOverride(enc.NewDecoder()), nil
}
