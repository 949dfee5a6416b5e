package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestReloadOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.gltf")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w, err := New(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()
	w.Start(context.Background())

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte(`{"asset":{}}`), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	select {
	case <-w.Reloads():
	case <-time.After(3 * time.Second):
		t.Fatal("no reload request")
	}

	// The burst collapses into one request.
	select {
	case <-w.Reloads():
		t.Error("expected a single coalesced reload")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.glb")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w, err := New(path, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()
	w.Start(context.Background())

	if err := os.WriteFile(filepath.Join(dir, "other.png"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case <-w.Reloads():
		t.Error("unrelated file triggered a reload")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestRelevant(t *testing.T) {
	w := &Watcher{path: filepath.Join(string(filepath.Separator)+"models", "a.glb")}

	tests := []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: w.path, Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: w.path, Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: w.path, Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: w.path, Op: fsnotify.Remove}, false},
		{fsnotify.Event{Name: w.path + ".tmp", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		if got := w.relevant(tt.ev); got != tt.want {
			t.Errorf("relevant(%v) = %v, want %v", tt.ev, got, tt.want)
		}
	}
}

func TestNewMissingDir(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing", "a.glb"), 0); err == nil {
		t.Error("expected error for a missing directory")
	}
}
