package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type recordingLoader struct {
	mu    sync.Mutex
	loads []string
}

func (l *recordingLoader) Load(raw string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	changed := len(l.loads) == 0 || l.loads[len(l.loads)-1] != raw
	l.loads = append(l.loads, raw)
	return changed, nil
}

func (l *recordingLoader) last() (string, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.loads) == 0 {
		return "", 0
	}
	return l.loads[len(l.loads)-1], len(l.loads)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte("3,1,2"), 0644); err != nil {
		t.Fatal(err)
	}

	loader := &recordingLoader{}
	var reloads int
	var mu sync.Mutex
	w, err := New(path, loader, Options{
		Debounce: 20 * time.Millisecond,
		OnReload: func(bool, error) {
			mu.Lock()
			reloads++
			mu.Unlock()
		},
	})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !w.IsWatching() {
		t.Error("expected watcher to be active")
	}

	if got, _ := loader.last(); got != "3,1,2" {
		t.Errorf("initial load = %q", got)
	}

	if err := os.WriteFile(path, []byte("9,8,7"), 0644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool {
		got, _ := loader.last()
		return got == "9,8,7"
	})

	mu.Lock()
	defer mu.Unlock()
	if reloads < 2 {
		t.Errorf("expected at least 2 reload callbacks, got %d", reloads)
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte("1"), 0644); err != nil {
		t.Fatal(err)
	}

	loader := &recordingLoader{}
	w, err := New(path, loader, Options{Debounce: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Stop()
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("2"), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)
	if _, n := loader.last(); n != 1 {
		t.Errorf("sibling write triggered %d loads", n)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte("1"), 0644); err != nil {
		t.Fatal(err)
	}
	w, err := New(path, &recordingLoader{}, Options{})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	w.Stop()
	w.Stop()
	if w.IsWatching() {
		t.Error("stopped watcher reports watching")
	}
}

func TestStartFailureLeavesWatcherIdle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "input.txt")
	loader := &recordingLoader{}
	w, err := New(path, loader, Options{})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	for i := range 2 {
		if err := w.Start(ctx); err == nil {
			t.Fatalf("start %d: expected an error for a missing directory", i+1)
		}
		if w.IsWatching() {
			t.Errorf("start %d: failed watcher reports watching", i+1)
		}
	}
	if _, n := loader.last(); n != 0 {
		t.Errorf("failed start loaded the file %d times", n)
	}
}
