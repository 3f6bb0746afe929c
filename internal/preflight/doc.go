// Package preflight provides readiness checks run before a split touches the
// filesystem: external binaries, the input recording, and the output
// directory's permissions and free space.
//
// Checks never mutate anything. The output directory may not exist yet, in
// which case its nearest existing ancestor is inspected instead.
package preflight
