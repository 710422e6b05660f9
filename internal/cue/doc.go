// Package cue parses CUE sheet files: text documents that describe how
// one or more continuous audio images are divided into discs and tracks.
//
// # Parsing
//
// The entry point is Parse, which takes already-decoded text:
//
//	sheet, err := cue.Parse(text)
//	if err != nil {
//	    log.Fatal(err) // line 3: unknown field for a track: BOGUS
//	}
//
//	for _, disc := range sheet.Discs {
//	    fmt.Println(disc.File)
//	    for _, track := range disc.Tracks {
//	        fmt.Printf("  %d. %s @ %dms\n", track.Number, track.Title, track.Offset)
//	    }
//	}
//
// # Scoping
//
// Fields are strictly scoped by position. A declaration before any FILE
// belongs to the sheet, one between a FILE and its first TRACK belongs
// to the disc, and one after a TRACK belongs to that track. The parser
// performs no inheritance between scopes; falling back from a track
// performer to the disc or sheet performer is the consumer's business.
//
// # Offsets
//
// Each track records a single start offset in milliseconds, computed as
// the maximum of all INDEX times seen for the track. A pregap index
// (INDEX 00) followed by the playback index (INDEX 01) therefore
// collapses to the playback start. The rightmost colon-separated field
// of a time specifier is read as raw milliseconds, not CD frames.
//
// # Errors
//
// All errors are fatal; a malformed sheet never yields a partial
// result. Failures are returned as *Error carrying the 0-based index of
// the offending line.
package cue
