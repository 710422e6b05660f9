package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_ReportsSettledCueFile(t *testing.T) {
	root := t.TempDir()

	got := make(chan string, 1)
	w, err := New(root, func(path string) { got <- path })
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	cuePath := filepath.Join(root, "album.cue")
	if err := os.WriteFile(cuePath, []byte("FILE \"a.flac\" WAVE\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case path := <-got:
		if path != cuePath {
			t.Errorf("got %q, want %q", path, cuePath)
		}
	case <-time.After(settleDelay + 5*time.Second):
		t.Fatal("cue file never reported")
	}
}

func TestWatcher_IgnoresNonCueFiles(t *testing.T) {
	root := t.TempDir()

	got := make(chan string, 1)
	w, err := New(root, func(path string) { got <- path })
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case path := <-got:
		t.Errorf("unexpected report for %q", path)
	case <-time.After(settleDelay + time.Second):
	}
}

func TestWatcher_RunStopsOnCancel(t *testing.T) {
	w, err := New(t.TempDir(), func(string) {})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop")
	}
}
