package tag

import "testing"

func TestIsMP3(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/out/01. Intro.mp3", true},
		{"/out/01. Intro.MP3", true},
		{"/out/01. Intro.flac", false},
		{"/out/01. Intro", false},
		{"track.mp3.flac", false},
	}

	for _, tt := range tests {
		if got := IsMP3(tt.path); got != tt.want {
			t.Errorf("IsMP3(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestApply_MissingFile(t *testing.T) {
	err := Apply(Track{Path: "/nonexistent/file.mp3", Title: "x"})
	if err == nil {
		t.Error("expected error for missing file")
	}
}
