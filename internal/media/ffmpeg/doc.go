// Package ffmpeg cuts time ranges out of a recording with ffmpeg stream copy.
//
// Cutter builds the ffmpeg argument list for one segment (seek to the start,
// drop video and cover-art streams, copy the audio bitstream, stop at the end
// bound unless the segment runs to end of file), executes it through an
// injectable command runner, and confirms the output file exists. Calls block
// until ffmpeg exits; an optional per-call timeout bounds long cuts.
package ffmpeg
