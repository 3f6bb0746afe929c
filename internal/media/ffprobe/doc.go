// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video/attached-picture stream properties
//   - Format: container-level metadata (duration, size, bitrate)
//   - Prober: resolves a source recording's duration for bounds checks
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
package ffprobe
