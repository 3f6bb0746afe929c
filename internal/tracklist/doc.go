// Package tracklist turns free-form tracklist text into ordered timestamp and
// title entries.
//
// Extraction is pluggable through the Extractor interface. The stock strategy
// is a regular expression whose first capture group yields the time text and
// whose second yields the title; callers may supply their own expression.
// Every emitted entry carries an HH:MM:SS start (single-colon matches are
// prefixed with "00:") and a whitespace-trimmed title.
//
// ReadFile decodes tracklist files saved in UTF-16 or legacy code pages so the
// extractor always sees UTF-8.
package tracklist
