package split

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/renard/cue-splitter/internal/config"
	"github.com/renard/cue-splitter/internal/cue"
	"github.com/renard/cue-splitter/internal/discover"
	"github.com/renard/cue-splitter/internal/encoding"
	"github.com/renard/cue-splitter/internal/ffmpeg"
	"github.com/renard/cue-splitter/internal/ledger"
	"github.com/renard/cue-splitter/internal/playlist"
	"github.com/renard/cue-splitter/internal/tag"
	"github.com/renard/cue-splitter/internal/template"
)

// TemplateVars are the variables a name template may use.
var TemplateVars = []string{"title", "album", "artist", "no", "year", "ext", "dir-name"}

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a splitting progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Manager coordinates cue sheet splitting.
type Manager struct {
	settings  *config.Settings
	tmpl      *template.Template
	preset    ffmpeg.Preset
	hasPreset bool
	forceOpt  string

	creator     *playlist.Creator
	playlistFmt playlist.Format
	led         *ledger.Ledger

	jobs       []*Job
	cuePaths   []string
	sheetNames []string

	totalJobs int32
	doneJobs  int32

	onProgress func(ProgressEvent)
}

// NewManager creates a Manager from validated settings. The template
// and preset are resolved here so bad values fail before any cue sheet
// is read.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) (*Manager, error) {
	m := &Manager{
		settings:   settings,
		tmpl:       template.New(settings.Template),
		onProgress: onProgress,
	}

	for _, v := range m.tmpl.Vars() {
		if !isTemplateVar(v) {
			return nil, fmt.Errorf("unrecognized template variable: <%s>\nrun with --template-help for usage", v)
		}
	}

	if settings.Preset != "" {
		p, err := ffmpeg.ParsePreset(settings.Preset)
		if err != nil {
			return nil, err
		}
		m.preset, m.hasPreset = p, true
	}

	switch settings.Overwrite {
	case config.OverwriteAlways:
		m.forceOpt = "-y"
	case config.OverwriteNever:
		m.forceOpt = "-n"
	}

	if settings.CreatePlaylist {
		m.playlistFmt = playlist.FormatM3U
		m.creator = playlist.NewCreator(m.playlistFmt, settings.M3UExtended)
	}

	if settings.LedgerPath != "" {
		led, err := ledger.Open(settings.LedgerPath)
		if err != nil {
			return nil, err
		}
		m.led = led
	}

	return m, nil
}

// Close releases the ledger, if one is open.
func (m *Manager) Close() error {
	if m.led != nil {
		return m.led.Close()
	}
	return nil
}

// Initialize finds cue sheets under path, parses them, and plans the
// ffmpeg jobs. All validation happens here: a non-nil error means
// nothing would have been written.
func (m *Manager) Initialize(ctx context.Context, path string) error {
	cues, err := discover.Find(path)
	if err != nil {
		return err
	}
	if len(cues) == 0 {
		return errors.New("no .cue files found")
	}

	needAlbum := m.tmpl.Contains("album")
	needYear := m.tmpl.Contains("year")

	// Output path -> cue sheet that claimed it, across all sheets.
	newFiles := make(map[string]string)

	for _, cuePath := range cues {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if m.led != nil && m.settings.Overwrite != config.OverwriteAlways {
			done, err := m.led.IsProcessed(cuePath)
			if err != nil {
				return err
			}
			if done {
				m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping already split: %s", cuePath), Level: LevelVerbose})
				continue
			}
		}

		sheet, err := m.readSheet(cuePath)
		if err != nil {
			return err
		}

		dir := filepath.Dir(cuePath)
		for i := range sheet.Discs {
			toSplit := filepath.Join(dir, sheet.Discs[i].File)
			if _, err := os.Stat(toSplit); err != nil {
				return fmt.Errorf("file specified in %s does not exist: %s", cuePath, toSplit)
			}
		}

		year := ""
		if needYear {
			year, err = yearFromSheet(sheet)
			if err != nil {
				return fmt.Errorf("<year> template variable is used but the file %s does not contain date information", cuePath)
			}
		}
		if needAlbum && sheet.Title == "" {
			return fmt.Errorf("the <album> template variable is used but the cuesheet at %s does not contain a disc title", cuePath)
		}

		jobs, err := m.planJobs(sheet, cuePath, dir, year)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", cuePath, err)
		}

		for _, job := range jobs {
			for _, f := range job.OutFiles {
				if prev, ok := newFiles[f]; ok {
					if prev == cuePath {
						return fmt.Errorf("multiple tracks in the file %s will have the same file name: %s\nhelp: specify a different file naming scheme with the --template option", cuePath, f)
					}
					return fmt.Errorf("tracks from %s and %s have the same file name\nhelp: specify a different file naming scheme with the --template option", prev, cuePath)
				}
				newFiles[f] = cuePath
			}
		}

		m.jobs = append(m.jobs, jobs...)
		m.cuePaths = append(m.cuePaths, cuePath)
		m.sheetNames = append(m.sheetNames, sheetName(sheet))
		m.progress(ProgressEvent{Message: fmt.Sprintf("Found cue sheet: %s", sheetName(sheet)), Level: LevelInfo})
	}

	atomic.StoreInt32(&m.totalJobs, int32(len(m.jobs)))
	return nil
}

// Run executes the planned jobs with at most Settings.Jobs parallel
// ffmpeg processes. With DryRun set, nothing is executed.
func (m *Manager) Run(ctx context.Context) error {
	if m.settings.DryRun {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Dry run: %d ffmpeg invocations planned", len(m.jobs)), Level: LevelInfo})
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.settings.Jobs)

	for _, job := range m.jobs {
		job := job // capture
		g.Go(func() error {
			return m.runJob(ctx, job)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if m.led != nil {
		for _, p := range m.cuePaths {
			if err := m.led.MarkProcessed(p); err != nil {
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error updating ledger for %s: %v", p, err), Level: LevelWarning})
			}
		}
	}

	return nil
}

// GetProgress returns how many jobs have finished out of the total.
func (m *Manager) GetProgress() (done, total int32) {
	return atomic.LoadInt32(&m.doneJobs), atomic.LoadInt32(&m.totalJobs)
}

// SheetNames returns a display name for every initialized cue sheet.
func (m *Manager) SheetNames() []string {
	return m.sheetNames
}

// Jobs returns the planned jobs. Useful for dry-run listings.
func (m *Manager) Jobs() []*Job {
	return m.jobs
}

func (m *Manager) readSheet(path string) (*cue.Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %v", path, err)
	}

	text, err := encoding.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %v", path, err)
	}

	sheet, err := cue.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %v", path, err)
	}
	return sheet, nil
}

func (m *Manager) runJob(ctx context.Context, job *Job) error {
	for _, out := range job.OutFiles {
		parent := filepath.Dir(out)
		if err := os.MkdirAll(parent, 0755); err != nil {
			return fmt.Errorf("error creating directory %s: %v", parent, err)
		}
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Splitting %s (%d tracks)", filepath.Base(job.CuePath), len(job.OutFiles)), Level: LevelVerbose})

	cmd := exec.CommandContext(ctx, m.settings.FFmpegPath, job.Args...)

	var stderr bytes.Buffer
	if m.forceOpt == "" {
		// Without -y or -n ffmpeg prompts before overwriting, so it
		// needs the real terminal.
		cmd.Stdin = os.Stdin
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("ffmpeg exited with %v: %s", err, msg)
		}
		return fmt.Errorf("ffmpeg exited with %v", err)
	}

	if job.PlaylistPath != "" {
		m.writePlaylist(job)
	}

	if m.settings.RetagMP3 {
		m.retag(job)
	}

	atomic.AddInt32(&m.doneJobs, 1)
	m.progress(ProgressEvent{Message: fmt.Sprintf("Split %s (%d tracks)", filepath.Base(job.CuePath), len(job.OutFiles)), Level: LevelSuccess})
	return nil
}

func (m *Manager) writePlaylist(job *Job) {
	entries := make([]playlist.Entry, len(job.Tracks))
	for i, t := range job.Tracks {
		entries[i] = playlist.Entry{
			Path:        t.Path,
			Title:       t.Title,
			Artist:      t.Artist,
			DurationSec: t.DurationSec,
		}
	}

	var title, artist string
	if len(job.Tracks) > 0 {
		title, artist = job.Tracks[0].Album, job.Tracks[0].Artist
	}

	content := m.creator.Create(title, artist, entries)
	if err := os.WriteFile(job.PlaylistPath, []byte(content), 0644); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		return
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist %s", filepath.Base(job.PlaylistPath)), Level: LevelVerbose})
}

func (m *Manager) retag(job *Job) {
	for _, t := range job.Tracks {
		if !tag.IsMP3(t.Path) {
			continue
		}
		err := tag.Apply(tag.Track{
			Path:       t.Path,
			Title:      t.Title,
			Artist:     t.Artist,
			Album:      t.Album,
			Songwriter: t.Songwriter,
			ISRC:       t.ISRC,
			Year:       t.Year,
			Number:     t.Number,
		})
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", filepath.Base(t.Path), err), Level: LevelWarning})
		}
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}

func isTemplateVar(name string) bool {
	for _, v := range TemplateVars {
		if v == name {
			return true
		}
	}
	return false
}

// yearFromSheet digs a release year out of the sheet's REM DATE
// comment. Dates come in many shapes ("2003", "2003-05-01",
// "01.05.2003"), so the value is split on common separators and the
// longest numeric segment wins.
func yearFromSheet(sheet *cue.Sheet) (string, error) {
	keys := make([]string, 0, len(sheet.Comments))
	for k := range sheet.Comments {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := sheet.Comments[k]
		if v == "" || !strings.EqualFold(k, "DATE") {
			continue
		}

		best := ""
		for _, part := range strings.FieldsFunc(v, isDateSeparator) {
			if len(part) >= len(best) {
				best = part
			}
		}
		if best == "" {
			continue
		}
		if _, err := strconv.ParseUint(best, 10, 16); err != nil {
			continue
		}
		return template.Normalize(best), nil
	}

	return "", errors.New("no date information")
}

func isDateSeparator(r rune) bool {
	return r == '-' || r == '.' || r == '/' || r == '\\'
}

func sheetName(sheet *cue.Sheet) string {
	artist, album := sheet.Performer, sheet.Title
	if artist == "" {
		artist = "(unknown)"
	}
	if album == "" {
		album = "(unknown)"
	}

	total := 0
	for i := range sheet.Discs {
		total += len(sheet.Discs[i].Tracks)
	}
	return fmt.Sprintf("%s - %s (%d tracks)", artist, album, total)
}
