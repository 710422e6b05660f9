// Package ffmpeg knows how to talk to an ffmpeg executable: encode
// presets with their output extensions, timestamp formatting for -ss
// and -to, and detection of inputs that can be cut with a stream copy
// instead of a re-encode.
//
// The package builds argument lists only; running the commands is the
// split package's job.
package ffmpeg
