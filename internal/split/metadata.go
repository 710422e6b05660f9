package split

import (
	"fmt"
	"sort"
	"strings"

	"github.com/renard/cue-splitter/internal/cue"
)

// commentEntries renders a REM comment map as KEY=value entries in
// sorted key order, so repeated runs produce identical commands.
func commentEntries(comments map[string]string) []string {
	keys := make([]string, 0, len(comments))
	for k := range comments {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]string, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, k+"="+comments[k])
	}
	return entries
}

// sheetMetadata builds the metadata entries shared by every track of a
// cue sheet. ARTIST is doubled as PERFORMER because taggers disagree on
// which key to read.
func sheetMetadata(s *cue.Sheet) []string {
	md := commentEntries(s.Comments)

	if s.Performer != "" {
		md = append(md, "ARTIST="+s.Performer, "PERFORMER="+s.Performer)
	}
	if s.Title != "" {
		md = append(md, "ALBUM="+s.Title)
	}
	if s.Songwriter != "" {
		md = append(md, "SONGWRITER="+s.Songwriter)
	}
	return md
}

// appendDiscMetadata appends disc-scoped entries. Later -metadata flags
// win in ffmpeg, so disc values override sheet values per key.
func appendDiscMetadata(md []string, d *cue.Disc) []string {
	md = append(md, commentEntries(d.Comments)...)

	if d.Performer != "" {
		md = append(md, "ARTIST="+d.Performer, "PERFORMER="+d.Performer)
	}
	if d.Title != "" {
		md = append(md, "ALBUM="+d.Title)
	}
	if d.Songwriter != "" {
		md = append(md, "SONGWRITER="+d.Songwriter)
	}
	return md
}

// appendTrackMetadata appends track-scoped entries. Track comments with
// an empty key or a blank value are dropped.
func appendTrackMetadata(md []string, t *cue.Track) []string {
	keys := make([]string, 0, len(t.Comments))
	for k := range t.Comments {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := strings.TrimSpace(t.Comments[k])
		if k != "" && v != "" {
			md = append(md, k+"="+v)
		}
	}

	if t.Title != "" {
		md = append(md, "TITLE="+t.Title)
	}
	if t.Performer != "" {
		md = append(md, "ARTIST="+t.Performer, "PERFORMER="+t.Performer)
	}
	if t.Songwriter != "" {
		md = append(md, "SONGWRITER="+t.Songwriter)
	}
	if t.ISRC != "" {
		md = append(md, "ISRC="+t.ISRC)
	}

	md = append(md, fmt.Sprintf("TRACKNUMBER=%d", t.Number))
	return md
}
