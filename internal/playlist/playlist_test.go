package playlist

import (
	"strings"
	"testing"
)

var testEntries = []Entry{
	{Path: "/out/01. Intro.flac", Title: "Intro", Artist: "Artist", DurationSec: 120},
	{Path: "/out/02. Outro.flac", Title: "Outro", Artist: "Artist", DurationSec: -1},
}

func TestCreateM3U_Simple(t *testing.T) {
	got := NewCreator(FormatM3U, false).Create("Album", "Artist", testEntries)
	want := "01. Intro.flac\n02. Outro.flac\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCreateM3U_Extended(t *testing.T) {
	got := NewCreator(FormatM3U, true).Create("Album", "Artist", testEntries)

	if !strings.HasPrefix(got, "#EXTM3U\n") {
		t.Errorf("missing header: %q", got)
	}
	if !strings.Contains(got, "#EXTINF:120,Artist - Intro\n01. Intro.flac\n") {
		t.Errorf("missing first entry: %q", got)
	}
	if !strings.Contains(got, "#EXTINF:-1,Artist - Outro\n02. Outro.flac\n") {
		t.Errorf("unknown duration should be -1: %q", got)
	}
}

func TestCreatePLS(t *testing.T) {
	got := NewCreator(FormatPLS, false).Create("Album", "Artist", testEntries)

	for _, want := range []string{
		"[playlist]\n",
		"File1=01. Intro.flac\n",
		"Title1=Intro\n",
		"Length1=120\n",
		"File2=02. Outro.flac\n",
		"NumberOfEntries=2\n",
		"Version=2\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
}

func TestFormatExt(t *testing.T) {
	if got := FormatM3U.Ext(); got != "m3u" {
		t.Errorf("m3u ext = %q", got)
	}
	if got := FormatPLS.Ext(); got != "pls" {
		t.Errorf("pls ext = %q", got)
	}
}
