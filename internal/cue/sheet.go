package cue

import (
	"fmt"
	"strings"
)

// Sheet is the parsed form of one CUE sheet.
//
// Scalar fields hold the empty string when the sheet never declared
// them; a declared value is never empty, since empty values are a parse
// error. Repeated declarations of the same field overwrite.
type Sheet struct {
	// Comments holds REM key/value pairs declared before any FILE.
	// Repeated keys overwrite.
	Comments map[string]string

	// Title is the album title, if declared.
	Title string

	// Performer is the album artist, if declared.
	Performer string

	// Songwriter is the album songwriter, if declared.
	Songwriter string

	// Catalog is the media catalog number, if declared.
	Catalog string

	// Discs lists the FILE sections in order of appearance.
	// A successful parse always yields at least one disc.
	Discs []Disc
}

// Disc is one FILE declaration and everything scoped under it.
type Disc struct {
	// Comments holds disc-scoped REM key/value pairs.
	Comments map[string]string

	// Catalog, Performer, Songwriter and Title override the sheet-level
	// values for this disc, when declared.
	Catalog    string
	Performer  string
	Songwriter string
	Title      string

	// File is the audio file path exactly as written in the sheet.
	// It is not resolved against any directory.
	File string

	// Tracks lists the TRACK sections in order of appearance. The last
	// disc of a sheet may be empty when input ends right after its FILE
	// line; callers that need at least one track anywhere must check.
	Tracks []Track
}

// Track is one TRACK declaration and its fields.
type Track struct {
	// Number is the declared track number. It is not checked for
	// uniqueness or contiguity.
	Number int

	// Title, Performer, Songwriter and ISRC are per-track metadata,
	// when declared.
	Title      string
	Performer  string
	Songwriter string
	ISRC       string

	// Comments holds track-scoped REM key/value pairs.
	Comments map[string]string

	// Offset is the track start in milliseconds: the maximum of all
	// INDEX times declared for this track.
	Offset int64
}

// Error describes a parse failure.
type Error struct {
	// Line is the 0-based index of the line the fault was detected on.
	Line int

	// Msg is a human-readable description of the fault.
	Msg string

	// Src is the offending source line, when available.
	Src string
}

// Error renders the failure as `line <N>: <msg>` with a 1-based line
// number, followed by the offending source line when known.
func (e *Error) Error() string {
	if e.Src != "" {
		return fmt.Sprintf("line %d: %s\n> %s", e.Line+1, e.Msg, e.Src)
	}
	return fmt.Sprintf("line %d: %s", e.Line+1, e.Msg)
}

// Parse parses a complete CUE sheet from already-decoded text.
//
// The text is split into lines on "\n"; a trailing "\r" on a line is
// dropped so that CRLF input parses the same as LF input. Byte-level
// concerns such as character-set detection belong to the caller.
//
// On failure the returned error is a *Error annotated with the
// offending source line. No partial sheet is ever returned.
func Parse(text string) (*Sheet, error) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	sheet, err := ParseLines(lines)
	if err != nil {
		if perr, ok := err.(*Error); ok && perr.Line < len(lines) {
			perr.Src = lines[perr.Line]
		}
		return nil, err
	}
	return sheet, nil
}

// ParseLines parses a CUE sheet from an ordered sequence of lines with
// line-ending markers already removed.
//
// On failure the returned error is a *Error carrying the 0-based index
// of the offending line.
func ParseLines(lines []string) (*Sheet, error) {
	p := &parser{sc: &scanner{lines: lines}}
	sheet, err := p.parse()
	if err != nil {
		return nil, err
	}
	return sheet, nil
}
