// Package splitter drives one split run: tokenize the tracklist, plan
// segments, then cut and tag each segment in order.
//
// Segments are processed sequentially. A failed cut is recorded in the
// Report and the run moves on to the next segment; a failed tag keeps the
// audio that was already written. Only tracklist, validation, and output
// directory problems abort a run before any file is produced.
package splitter
