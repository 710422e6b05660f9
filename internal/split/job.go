package split

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/renard/cue-splitter/internal/cue"
	"github.com/renard/cue-splitter/internal/ffmpeg"
	"github.com/renard/cue-splitter/internal/template"
)

// Job is one planned ffmpeg invocation: every track of one disc, cut
// from that disc's source file in a single command.
type Job struct {
	// CuePath is the cue sheet the job came from.
	CuePath string

	// Args is the complete ffmpeg argument list, input and all
	// outputs included.
	Args []string

	// OutFiles are the files the command will create, in track order.
	OutFiles []string

	// Tracks carries per-track info for playlists and MP3 retagging,
	// parallel to OutFiles.
	Tracks []TrackOutput

	// PlaylistPath is where the disc playlist is written, or empty
	// when playlists are disabled.
	PlaylistPath string
}

// TrackOutput describes one output file of a Job.
type TrackOutput struct {
	Path       string
	Title      string
	Artist     string
	Album      string
	Songwriter string
	ISRC       string
	Year       string
	Number     int

	// DurationSec is -1 for the last track of a disc, whose length
	// depends on the source file.
	DurationSec int
}

// planJobs builds the ffmpeg invocations for one parsed sheet. Tracks
// are sorted by offset first; the sheet order only matters for scoping
// during parsing.
func (m *Manager) planJobs(sheet *cue.Sheet, cuePath, dir, year string) ([]*Job, error) {
	total := 0
	for i := range sheet.Discs {
		total += len(sheet.Discs[i].Tracks)
	}
	if total == 0 {
		return nil, errors.New("cuesheet has no tracks")
	}

	for i := range sheet.Discs {
		tracks := sheet.Discs[i].Tracks
		sort.Slice(tracks, func(a, b int) bool { return tracks[a].Offset < tracks[b].Offset })
	}

	outDir := m.settings.OutDir
	if outDir == "" {
		outDir = filepath.Join(dir, "split")
	}

	md := sheetMetadata(sheet)
	sheetTrunc := len(md)

	maxNumber := 1
	for _, d := range sheet.Discs {
		for _, t := range d.Tracks {
			if t.Number > maxNumber {
				maxNumber = t.Number
			}
		}
	}
	numberWidth := len(strconv.Itoa(maxNumber))

	// Resolved on first use; most templates never mention <dir-name>.
	dirName := ""
	haveDirName := false

	jobs := make([]*Job, 0, len(sheet.Discs))

	for di := range sheet.Discs {
		disc := &sheet.Discs[di]
		job := &Job{CuePath: cuePath}

		if m.forceOpt != "" {
			job.Args = append(job.Args, m.forceOpt)
		}
		job.Args = append(job.Args, "-loglevel", "error")

		toSplit := filepath.Join(dir, disc.File)
		job.Args = append(job.Args, "-i", toSplit)

		md = md[:sheetTrunc]
		md = appendDiscMetadata(md, disc)
		discTrunc := len(md)

		ext, encodeArgs := m.encodingFor(toSplit)

		rawArtist := disc.Performer
		if rawArtist == "" {
			rawArtist = sheet.Performer
		}
		rawAlbum := disc.Title
		if rawAlbum == "" {
			rawAlbum = sheet.Title
		}
		artist := template.Normalize(rawArtist)
		album := template.Normalize(rawAlbum)

		for ti := range disc.Tracks {
			track := &disc.Tracks[ti]

			from := ffmpeg.FormatMilliseconds(track.Offset)
			to := ""
			durationSec := -1
			if ti+1 < len(disc.Tracks) {
				next := disc.Tracks[ti+1].Offset
				to = ffmpeg.FormatMilliseconds(next)
				durationSec = int((next - track.Offset) / 1000)
			}

			title := template.Normalize(track.Title)

			out := m.tmpl.Expand(func(buf *strings.Builder, name string) {
				switch name {
				case "title":
					if title == "" {
						buf.WriteString("(untitled)")
					} else {
						buf.WriteString(title)
					}
				case "artist":
					switch {
					case track.Performer != "":
						buf.WriteString(track.Performer)
					case artist != "":
						buf.WriteString(artist)
					default:
						buf.WriteString("(unknown)")
					}
				case "album":
					if album == "" {
						buf.WriteString("(unknown)")
					} else {
						buf.WriteString(album)
					}
				case "year":
					buf.WriteString(year)
				case "no":
					fmt.Fprintf(buf, "%0*d", numberWidth, track.Number)
				case "dir-name":
					if !haveDirName {
						dirName = dirBase(dir)
						haveDirName = true
					}
					buf.WriteString(dirName)
				case "ext":
					buf.WriteString(ext)
				}
			})
			outPath := filepath.Join(outDir, out)

			md = md[:discTrunc]
			md = appendTrackMetadata(md, track)

			job.Args = append(job.Args, "-ss", from)
			if to != "" {
				job.Args = append(job.Args, "-to", to)
			}
			job.Args = append(job.Args, ffmpeg.MetadataArgs(md)...)
			job.Args = append(job.Args, encodeArgs...)
			job.Args = append(job.Args, outPath)

			job.OutFiles = append(job.OutFiles, outPath)
			job.Tracks = append(job.Tracks, TrackOutput{
				Path:        outPath,
				Title:       track.Title,
				Artist:      firstNonEmpty(track.Performer, rawArtist),
				Album:       rawAlbum,
				Songwriter:  firstNonEmpty(track.Songwriter, disc.Songwriter, sheet.Songwriter),
				ISRC:        track.ISRC,
				Year:        year,
				Number:      track.Number,
				DurationSec: durationSec,
			})
		}

		if m.creator != nil && len(job.OutFiles) > 0 {
			name := album
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(cuePath), filepath.Ext(cuePath))
			}
			job.PlaylistPath = filepath.Join(
				filepath.Dir(job.OutFiles[0]),
				name+"."+m.playlistFmt.Ext(),
			)
		}

		jobs = append(jobs, job)
	}

	return jobs, nil
}

// encodingFor picks the output extension and the encoding arguments for
// one source file.
//
// With a preset, a matching source extension gets a stream copy unless
// NoCopy is set. Without a preset or raw args, splittable containers
// are stream-copied and everything else becomes flac. Raw encode args
// always come with an explicit extension (Settings.Validate enforces
// the pairing).
func (m *Manager) encodingFor(toSplit string) (string, []string) {
	switch {
	case m.hasPreset:
		ext := m.preset.Ext()
		srcExt := strings.TrimPrefix(filepath.Ext(toSplit), ".")
		if !m.settings.NoCopy && strings.EqualFold(srcExt, ext) {
			return ext, ffmpeg.CopyArgs
		}
		return ext, m.preset.Args()

	case len(m.settings.EncodeArgs) == 0:
		if ext, ok := ffmpeg.CopyCodecExt(toSplit); ok {
			return ext, ffmpeg.CopyArgs
		}
		return "flac", ffmpeg.PresetFlac.Args()

	default:
		return m.settings.Ext, m.settings.EncodeArgs
	}
}

// dirBase names the directory holding the cue sheet, resolving the
// path first so "." does not leak into file names.
func dirBase(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return filepath.Base(abs)
	}
	return filepath.Base(dir)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
