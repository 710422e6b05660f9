package playlist

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format represents supported playlist file formats.
//
// Each format has different features and compatibility:
//   - M3U: Simple text format, widely supported
//   - PLS: INI-style format, used by Winamp
type Format int

const (
	// FormatM3U creates .m3u files (most compatible).
	// Can be extended with EXTINF lines for duration/title info.
	FormatM3U Format = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	// INI-style format with file, title, and length info.
	FormatPLS
)

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	if f == FormatPLS {
		return "pls"
	}
	return "m3u"
}

// Entry is one track of a playlist.
//
// Path may be absolute; only its base name is written to the playlist,
// which assumes the playlist file sits in the same directory as the
// tracks. DurationSec may be -1 when the duration is unknown (the last
// track of a disc runs to the end of the source file).
type Entry struct {
	Path        string
	Title       string
	Artist      string
	DurationSec int
}

// Creator generates playlist content in a fixed format.
//
// Example:
//
//	creator := NewCreator(FormatM3U, true)
//	content := creator.Create("Album", "Artist", entries)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:180,Artist - Song Title
//	// 01. Song Title.flac
type Creator struct {
	format   Format
	extended bool // For M3U: include EXTINF lines with duration/title
}

// NewCreator creates a new Creator.
//
// The extended flag only affects M3U output; PLS always carries title
// and length fields.
func NewCreator(format Format, extended bool) *Creator {
	return &Creator{
		format:   format,
		extended: extended,
	}
}

// Create generates playlist content for one disc.
//
// Returns the playlist as a string, ready to be written to a file.
func (c *Creator) Create(title, artist string, entries []Entry) string {
	switch c.format {
	case FormatPLS:
		return c.createPLS(entries)
	default:
		return c.createM3U(entries)
	}
}

// createM3U generates an M3U playlist.
//
// Standard M3U format:
//
//	filename1.flac
//	filename2.flac
//
// Extended M3U format (when extended=true):
//
//	#EXTM3U
//	#EXTINF:180,Artist - Title
//	filename1.flac
func (c *Creator) createM3U(entries []Entry) string {
	var sb strings.Builder

	if c.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, e := range entries {
		if c.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:%d,%s - %s\n", e.DurationSec, e.Artist, e.Title))
		}
		sb.WriteString(filepath.Base(e.Path) + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
// PLS format is an INI-style text file:
//
//	[playlist]
//	File1=filename1.flac
//	Title1=Song Title
//	Length1=180
//	NumberOfEntries=2
//	Version=2
func (c *Creator) createPLS(entries []Entry) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, e := range entries {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, filepath.Base(e.Path)))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, e.Title))
		sb.WriteString(fmt.Sprintf("Length%d=%d\n", idx, e.DurationSec))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(entries)))
	sb.WriteString("Version=2\n")

	return sb.String()
}
