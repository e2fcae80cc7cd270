package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTuning(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWatcherEmitsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	writeTuning(t, path, "engine:\n    tick_rate: 60\n")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	// A sibling file must not trigger the watcher.
	writeTuning(t, filepath.Join(dir, "other.yaml"), "x: 1\n")
	writeTuning(t, path, "engine:\n    tick_rate: 30\n")

	select {
	case got := <-w.Events:
		if filepath.Clean(got) != filepath.Clean(path) {
			t.Errorf("expected change for %s, got %s", path, got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change event within 2s")
	}
}

func TestWatcherCloseDuringWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	writeTuning(t, path, "engine:\n    tick_rate: 60\n")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}

	// Hammer the file while Close lands mid-burst.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			_ = os.WriteFile(path, []byte("engine:\n    tick_rate: 30\n"), 0o644)
			time.Sleep(time.Millisecond)
		}
	}()

	time.Sleep(10 * time.Millisecond)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil { // idempotent
		t.Fatal(err)
	}
	<-done

	// The watch goroutine owns the channels and closes them on exit;
	// draining to completion proves it shut down cleanly.
	for range w.Events {
	}
	for range w.Errors {
	}
}
