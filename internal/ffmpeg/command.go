package ffmpeg

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CopyArgs cuts without re-encoding.
var CopyArgs = []string{"-c", "copy"}

// knownExts are containers ffmpeg can segment with a stream copy.
var knownExts = []string{"wav", "flac", "mp3", "aac", "m4a", "opus", "ogg"}

// FormatMilliseconds renders a millisecond offset the way ffmpeg wants
// its -ss and -to values: whole seconds, with a fractional part only
// when needed.
//
//	FormatMilliseconds(5000)  // "5"
//	FormatMilliseconds(5250)  // "5.250"
func FormatMilliseconds(ms int64) string {
	sec := ms / 1000
	rem := ms - sec*1000
	if rem == 0 {
		return fmt.Sprintf("%d", sec)
	}
	return fmt.Sprintf("%d.%03d", sec, rem)
}

// CopyCodecExt reports whether path has an audio extension that can be
// split with a stream copy, and returns the canonical lowercase
// extension when it does.
func CopyCodecExt(path string) (string, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", false
	}
	for _, known := range knownExts {
		if strings.EqualFold(ext, known) {
			return known, true
		}
	}
	return "", false
}

// MetadataArgs interleaves -metadata flags for a list of KEY=value
// entries.
func MetadataArgs(entries []string) []string {
	args := make([]string, 0, 2*len(entries))
	for _, e := range entries {
		args = append(args, "-metadata", e)
	}
	return args
}
