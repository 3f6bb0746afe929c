// Package services defines shared utilities consumed by the split pipeline and
// its external tool adapters.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers, stage names, and segment
//     ordinals for logging.
//   - Structured error markers plus the Wrap helper that keep failures of the
//     transcoder, tagger, and validation steps classifiable with errors.Is.
//
// Use these helpers when wiring new pipeline steps so error handling and
// observability stay uniform.
package services
