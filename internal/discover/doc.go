// Package discover locates cue sheet files on disk.
//
// Find accepts either a single .cue file or a directory, which is
// walked recursively:
//
//	paths, err := discover.Find("/rips/Artist - Album")
//
// Matching is by extension only, case-insensitively; the files are not
// opened or validated here.
package discover
