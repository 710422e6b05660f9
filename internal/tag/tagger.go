package tag

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"
)

// Track holds the metadata written to one MP3 file.
//
// Empty string fields are skipped rather than written as empty frames.
type Track struct {
	// Path is the MP3 file to tag.
	Path string

	Title      string
	Artist     string
	Album      string
	Songwriter string
	ISRC       string
	Year       string

	// Number is the track number within the disc. Zero is skipped.
	Number int
}

// IsMP3 reports whether path names an MP3 file by extension.
func IsMP3(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".mp3")
}

// Apply writes ID3v2 frames for t to the file at t.Path.
//
// The file must already exist (it is an ffmpeg output). Frames written:
//   - TIT2 (title), TPE1 (artist), TALB (album)
//   - TRCK (track number), TYER (year)
//   - TCOM (composer) from the songwriter, TSRC from the ISRC
//
// Example:
//
//	if tag.IsMP3(out) {
//	    err := tag.Apply(tag.Track{Path: out, Title: "Intro", Number: 1})
//	}
func Apply(t Track) error {
	id3, err := id3v2.Open(t.Path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("opening %s for tagging: %w", t.Path, err)
	}
	defer id3.Close()

	if t.Title != "" {
		id3.SetTitle(t.Title)
	}
	if t.Artist != "" {
		id3.SetArtist(t.Artist)
	}
	if t.Album != "" {
		id3.SetAlbum(t.Album)
	}
	if t.Number > 0 {
		id3.AddTextFrame("TRCK", id3v2.EncodingUTF8, fmt.Sprintf("%d", t.Number))
	}
	if t.Year != "" {
		id3.AddTextFrame("TYER", id3v2.EncodingUTF8, t.Year)
	}
	if t.Songwriter != "" {
		id3.AddTextFrame("TCOM", id3v2.EncodingUTF8, t.Songwriter)
	}
	if t.ISRC != "" {
		id3.AddTextFrame("TSRC", id3v2.EncodingUTF8, t.ISRC)
	}

	return id3.Save()
}
