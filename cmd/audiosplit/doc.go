// Package main hosts the audiosplit CLI entrypoint and command graph.
//
// The root command splits a recording according to a tracklist, prompting on
// stdin for anything not supplied as a flag and asking for confirmation
// after printing the planned tracks. "preview" prints the plan only, and
// "config" scaffolds and validates the TOML configuration.
//
// The heavy lifting lives in internal/splitter; commands here only resolve
// flags against configuration and render results.
package main
