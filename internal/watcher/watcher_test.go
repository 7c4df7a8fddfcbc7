package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/cutsheet/internal/logger"
)

func TestAccepts(t *testing.T) {
	w := &implWatcher{extensions: map[string]bool{".srt": true, ".vtt": true}}
	tests := []struct {
		path string
		want bool
	}{
		{"/in/a.srt", true},
		{"/in/B.VTT", true},
		{"/in/c.txt", false},
		{"/in/.hidden.srt", false},
	}
	for _, tt := range tests {
		if got := w.accepts(tt.path); got != tt.want {
			t.Errorf("accepts(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}

	all := &implWatcher{}
	if !all.accepts("/in/anything.bin") {
		t.Error("empty filter should accept every file")
	}
}

func TestWatcherHandlesNewFiles(t *testing.T) {
	dir := t.TempDir()

	handled := make(chan string, 4)
	handler := func(ctx context.Context, path string) error {
		handled <- filepath.Base(path)
		return nil
	}

	w, err := New(dir, handler, logger.New("error"), Options{
		Extensions: []string{".srt"},
		Ops:        fsnotify.Create,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// give the event loop a moment to start
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "skip.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "episode.srt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-handled:
		if name != "episode.srt" {
			t.Errorf("handled %q, want episode.srt", name)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("handler not called")
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Start() = %v, want context.Canceled", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Start() did not return after cancel")
	}
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent"), nil, logger.New("error"), Options{})
	if err == nil {
		t.Error("New() should fail for a missing directory")
	}
}
