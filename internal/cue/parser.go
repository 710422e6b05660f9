package cue

import (
	"fmt"
	"strconv"
	"strings"
)

// parser is the three-level state machine over the scanned field
// stream: sheet-level fields, then one disc per FILE, then one track
// per TRACK. A field that terminates the current scope is pushed back
// with seek so the enclosing scope sees it again.
type parser struct {
	sc *scanner
}

func errAt(ln int, format string, args ...any) *Error {
	return &Error{Line: ln, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parse() (*Sheet, *Error) {
	sheet := &Sheet{Comments: make(map[string]string)}

	// Sheet-level declarations run until the first FILE, which is
	// pushed back for parseDisc.
global:
	for {
		ln, field, rest, ok := p.sc.next()
		if !ok {
			break
		}

		switch strings.ToLower(field) {
		case "rem":
			k, v, err := parseComment(rest)
			if err != nil {
				return nil, errAt(ln, "%s", err)
			}
			sheet.Comments[k] = v
		case "title":
			v, err := parseValue(rest)
			if err != nil {
				return nil, errAt(ln, "%s", err)
			}
			sheet.Title = v
		case "performer":
			v, err := parseValue(rest)
			if err != nil {
				return nil, errAt(ln, "%s", err)
			}
			sheet.Performer = v
		case "catalog":
			v, err := parseValue(rest)
			if err != nil {
				return nil, errAt(ln, "%s", err)
			}
			sheet.Catalog = v
		case "songwriter":
			v, err := parseValue(rest)
			if err != nil {
				return nil, errAt(ln, "%s", err)
			}
			sheet.Songwriter = v
		case "file":
			p.sc.seek(ln)
			break global
		case "track":
			return nil, errAt(ln, "`TRACK` declared before any `FILE`")
		default:
			return nil, errAt(ln, "unknown field for a disc: %s", field)
		}
	}

	if p.sc.exhausted() {
		return nil, errAt(0, "cue sheet is missing a `FILE` declaration")
	}

	for !p.sc.exhausted() {
		disc, err := p.parseDisc()
		if err != nil {
			return nil, err
		}
		sheet.Discs = append(sheet.Discs, *disc)
	}

	return sheet, nil
}

// parseDisc consumes one FILE line and everything scoped under it. It
// returns when the next FILE is pushed back or input ends.
func (p *parser) parseDisc() (*Disc, *Error) {
	fileLn, _, rest, _ := p.sc.next()

	if strings.TrimSpace(rest) == "" {
		return nil, errAt(fileLn, "missing value")
	}

	// The word after the path names the file format and is discarded.
	_, file, err := parseWord(rest)
	if err != nil {
		return nil, errAt(fileLn, "%s", err)
	}

	disc := &Disc{File: file, Comments: make(map[string]string)}

	// Declarations before the first TRACK apply to the disc.
fields:
	for {
		ln, field, rest, ok := p.sc.next()
		if !ok {
			break
		}

		switch strings.ToLower(field) {
		case "track":
			p.sc.seek(ln)
			break fields
		case "rem":
			k, v, err := parseComment(rest)
			if err != nil {
				return nil, errAt(ln, "%s", err)
			}
			disc.Comments[k] = v
		case "title":
			v, err := parseValue(rest)
			if err != nil {
				return nil, errAt(ln, "%s", err)
			}
			disc.Title = v
		case "performer":
			v, err := parseValue(rest)
			if err != nil {
				return nil, errAt(ln, "%s", err)
			}
			disc.Performer = v
		case "songwriter":
			v, err := parseValue(rest)
			if err != nil {
				return nil, errAt(ln, "%s", err)
			}
			disc.Songwriter = v
		case "catalog":
			v, err := parseValue(rest)
			if err != nil {
				return nil, errAt(ln, "%s", err)
			}
			disc.Catalog = v
		case "file":
			p.sc.seek(ln)
			return disc, nil
		default:
			return nil, errAt(ln, "unknown field for disc: %s", field)
		}
	}

	// Input ended before any TRACK. The disc is returned empty; whether
	// a sheet with no tracks anywhere is acceptable is the caller's
	// decision, not a per-disc one.
	if p.sc.exhausted() {
		return disc, nil
	}

	for {
		ln, _, rest, ok := p.sc.next()
		if !ok {
			break
		}

		// The scanner is positioned at a TRACK line; its value is the
		// track number followed by a discarded kind word.
		_, numTok, err := parseWord(rest)
		if err != nil {
			return nil, errAt(ln, "%s", err)
		}
		num, perr := strconv.ParseUint(numTok, 10, 32)
		if perr != nil {
			return nil, errAt(ln, "invalid track number")
		}

		track := Track{Number: int(num), Comments: make(map[string]string)}
		trackLn := ln
		haveIndex := false

	trackFields:
		for {
			ln, field, rest, ok := p.sc.next()
			if !ok {
				break
			}

			switch strings.ToLower(field) {
			case "track":
				p.sc.seek(ln)
				break trackFields
			case "file":
				if !haveIndex {
					return nil, errAt(trackLn, "track is missing a `INDEX` declaration")
				}
				disc.Tracks = append(disc.Tracks, track)
				p.sc.seek(ln)
				return disc, nil
			case "index":
				off, err := parseTimeOffset(rest)
				if err != nil {
					return nil, errAt(ln, "%s", err)
				}
				if off > track.Offset {
					track.Offset = off
				}
				haveIndex = true
			case "title":
				v, err := parseValue(rest)
				if err != nil {
					return nil, errAt(ln, "%s", err)
				}
				track.Title = v
			case "performer":
				v, err := parseValue(rest)
				if err != nil {
					return nil, errAt(ln, "%s", err)
				}
				track.Performer = v
			case "songwriter":
				v, err := parseValue(rest)
				if err != nil {
					return nil, errAt(ln, "%s", err)
				}
				track.Songwriter = v
			case "isrc":
				v, err := parseValue(rest)
				if err != nil {
					return nil, errAt(ln, "%s", err)
				}
				track.ISRC = v
			case "flags":
				// Recognized but carried nowhere.
			case "rem":
				k, v, err := parseComment(rest)
				if err != nil {
					return nil, errAt(ln, "%s", err)
				}
				track.Comments[k] = v
			default:
				return nil, errAt(ln, "unknown field for a track: %s", field)
			}
		}

		if !haveIndex {
			return nil, errAt(trackLn, "track is missing a `INDEX` declaration")
		}
		disc.Tracks = append(disc.Tracks, track)
	}

	return disc, nil
}
