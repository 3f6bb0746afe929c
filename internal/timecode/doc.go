// Package timecode parses tracklist timestamps into second-resolution offsets.
//
// Timestamps are accepted as MM:SS or HH:MM:SS. Components are validated with
// calendar-clock strictness (hours 0-23, minutes and seconds 0-59) so values
// such as "99:99" are rejected instead of being folded into a longer duration.
// TimePoint renders canonically as HH:MM:SS; FormatDuration renders signed
// spans as H:MM:SS for previews.
package timecode
