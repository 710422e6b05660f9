package split

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/renard/cue-splitter/internal/cue"
)

func TestPlanJobs_TrackNumberPadding(t *testing.T) {
	text := `TITLE "Album"
FILE "image.flac" WAVE
  TRACK 01 AUDIO
    TITLE "First"
    INDEX 01 00:00:00
  TRACK 12 AUDIO
    TITLE "Last"
    INDEX 01 01:00:00
`
	cuePath := writeCueDir(t, text, "image.flac")
	outDir := t.TempDir()

	m := newTestManager(t, testSettings(outDir))
	if err := m.Initialize(context.Background(), cuePath); err != nil {
		t.Fatal(err)
	}

	want := []string{
		filepath.Join(outDir, "01. First.flac"),
		filepath.Join(outDir, "12. Last.flac"),
	}
	if got := m.Jobs()[0].OutFiles; !reflect.DeepEqual(got, want) {
		t.Errorf("out files = %q, want %q", got, want)
	}
}

func TestPlanJobs_MultipleDiscs(t *testing.T) {
	text := `PERFORMER "Artist"
TITLE "Album"
FILE "cd1.flac" WAVE
  TRACK 01 AUDIO
    TITLE "One"
    INDEX 01 00:00:00
FILE "cd2.flac" WAVE
  TRACK 02 AUDIO
    TITLE "Two"
    INDEX 01 00:00:00
`
	cuePath := writeCueDir(t, text, "cd1.flac")
	dir := filepath.Dir(cuePath)
	if err := os.WriteFile(filepath.Join(dir, "cd2.flac"), []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}

	m := newTestManager(t, testSettings(t.TempDir()))
	if err := m.Initialize(context.Background(), cuePath); err != nil {
		t.Fatal(err)
	}

	jobs := m.Jobs()
	if len(jobs) != 2 {
		t.Fatalf("got %d jobs, want one per disc", len(jobs))
	}
	if !strings.Contains(strings.Join(jobs[0].Args, " "), "cd1.flac") {
		t.Errorf("first job should read cd1.flac: %q", jobs[0].Args)
	}
	if !strings.Contains(strings.Join(jobs[1].Args, " "), "cd2.flac") {
		t.Errorf("second job should read cd2.flac: %q", jobs[1].Args)
	}
}

func TestPlanJobs_TracksSortedByOffset(t *testing.T) {
	text := `TITLE "Album"
FILE "image.flac" WAVE
  TRACK 02 AUDIO
    TITLE "Second"
    INDEX 01 01:00:00
  TRACK 01 AUDIO
    TITLE "First"
    INDEX 01 00:00:00
`
	cuePath := writeCueDir(t, text, "image.flac")
	outDir := t.TempDir()

	m := newTestManager(t, testSettings(outDir))
	if err := m.Initialize(context.Background(), cuePath); err != nil {
		t.Fatal(err)
	}

	job := m.Jobs()[0]
	if filepath.Base(job.OutFiles[0]) != "1. First.flac" {
		t.Errorf("earliest offset should come first: %q", job.OutFiles)
	}
	if job.Tracks[0].DurationSec != 60 {
		t.Errorf("first track duration = %d, want 60", job.Tracks[0].DurationSec)
	}
}

func TestPlanJobs_TemplateFallbacks(t *testing.T) {
	text := `FILE "image.flac" WAVE
  TRACK 01 AUDIO
    INDEX 01 00:00:00
`
	cuePath := writeCueDir(t, text, "image.flac")
	outDir := t.TempDir()

	s := testSettings(outDir)
	s.Template = "<artist>/<no>. <title>.<ext>"

	m := newTestManager(t, s)
	if err := m.Initialize(context.Background(), cuePath); err != nil {
		t.Fatal(err)
	}

	want := filepath.Join(outDir, "(unknown)", "1. (untitled).flac")
	if got := m.Jobs()[0].OutFiles[0]; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPlanJobs_NormalizesUnsafeNames(t *testing.T) {
	text := `TITLE "Album"
FILE "image.flac" WAVE
  TRACK 01 AUDIO
    TITLE "AC-DC: Back\\Forth"
    INDEX 01 00:00:00
`
	cuePath := writeCueDir(t, text, "image.flac")
	outDir := t.TempDir()

	m := newTestManager(t, testSettings(outDir))
	if err := m.Initialize(context.Background(), cuePath); err != nil {
		t.Fatal(err)
	}

	got := filepath.Base(m.Jobs()[0].OutFiles[0])
	if strings.ContainsAny(got, ":\\") {
		t.Errorf("unsafe characters left in %q", got)
	}
	if got != "1. AC-DC  Back-Forth.flac" {
		t.Errorf("got %q", got)
	}
}

func TestPlanJobs_DirNameVariable(t *testing.T) {
	text := `TITLE "Album"
FILE "image.flac" WAVE
  TRACK 01 AUDIO
    TITLE "Intro"
    INDEX 01 00:00:00
`
	cuePath := writeCueDir(t, text, "image.flac")
	dir := filepath.Dir(cuePath)
	outDir := t.TempDir()

	s := testSettings(outDir)
	s.Template = "<dir-name>/<no>. <title>.<ext>"

	m := newTestManager(t, s)
	if err := m.Initialize(context.Background(), cuePath); err != nil {
		t.Fatal(err)
	}

	want := filepath.Join(outDir, filepath.Base(dir), "1. Intro.flac")
	if got := m.Jobs()[0].OutFiles[0]; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPlanJobs_PlaylistPath(t *testing.T) {
	cuePath := writeCueDir(t, testCue, "image.flac")
	outDir := t.TempDir()

	s := testSettings(outDir)
	s.CreatePlaylist = true

	m := newTestManager(t, s)
	if err := m.Initialize(context.Background(), cuePath); err != nil {
		t.Fatal(err)
	}

	want := filepath.Join(outDir, "Album.m3u")
	if got := m.Jobs()[0].PlaylistPath; got != want {
		t.Errorf("playlist path = %q, want %q", got, want)
	}
}

func TestSheetMetadata(t *testing.T) {
	sheet := &cue.Sheet{
		Comments:   map[string]string{"GENRE": "Rock", "DATE": "2003"},
		Performer:  "Artist",
		Title:      "Album",
		Songwriter: "Writer",
	}

	want := []string{
		"DATE=2003",
		"GENRE=Rock",
		"ARTIST=Artist",
		"PERFORMER=Artist",
		"ALBUM=Album",
		"SONGWRITER=Writer",
	}
	if got := sheetMetadata(sheet); !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAppendTrackMetadata(t *testing.T) {
	track := &cue.Track{
		Number:    3,
		Title:     "Song",
		Performer: "Guest",
		ISRC:      "USX9P0312345",
		Comments: map[string]string{
			"REPLAYGAIN": "-8.5 dB",
			"BLANK":      "   ",
			"":           "nokey",
		},
	}

	want := []string{
		"REPLAYGAIN=-8.5 dB",
		"TITLE=Song",
		"ARTIST=Guest",
		"PERFORMER=Guest",
		"ISRC=USX9P0312345",
		"TRACKNUMBER=3",
	}
	if got := appendTrackMetadata(nil, track); !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}
