// Package config loads, normalizes, and validates audiosplit configuration data.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the AUDIOSPLIT_FFMPEG / AUDIOSPLIT_FFPROBE
// environment overrides. CLI flags are applied on top of the loaded Config by
// the command layer.
package config
