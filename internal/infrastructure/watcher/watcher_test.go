package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestWatcherFiresAfterSettle(t *testing.T) {
	watchDir := t.TempDir()

	var mu sync.Mutex
	var fired []string

	w, err := New(watchDir, 100*time.Millisecond, func(path string) {
		mu.Lock()
		fired = append(fired, path)
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	itemPath := filepath.Join(watchDir, "New.Show.S01E01")
	if err := os.Mkdir(itemPath, 0755); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		mu.Lock()
		n := len(fired)
		mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("watcher did not fire within deadline")
		case <-time.After(50 * time.Millisecond):
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if fired[0] != itemPath {
		t.Errorf("fired path = %q, want %q", fired[0], itemPath)
	}
}

func TestWatcherIgnoresHiddenEntries(t *testing.T) {
	watchDir := t.TempDir()

	var mu sync.Mutex
	fired := 0

	w, err := New(watchDir, 50*time.Millisecond, func(path string) {
		mu.Lock()
		fired++
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	if err := os.Mkdir(filepath.Join(watchDir, ".partial"), 0755); err != nil {
		t.Fatal(err)
	}

	time.Sleep(2 * time.Second)

	mu.Lock()
	defer mu.Unlock()
	if fired != 0 {
		t.Errorf("watcher fired %d times for hidden entry, want 0", fired)
	}
}

func TestWatcherRemovedEntryNotFired(t *testing.T) {
	watchDir := t.TempDir()

	var mu sync.Mutex
	fired := 0

	w, err := New(watchDir, 300*time.Millisecond, func(path string) {
		mu.Lock()
		fired++
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	itemPath := filepath.Join(watchDir, "vanishing")
	if err := os.Mkdir(itemPath, 0755); err != nil {
		t.Fatal(err)
	}
	// 静置结束前删除
	time.Sleep(50 * time.Millisecond)
	if err := os.Remove(itemPath); err != nil {
		t.Fatal(err)
	}

	time.Sleep(2 * time.Second)

	mu.Lock()
	defer mu.Unlock()
	if fired != 0 {
		t.Errorf("watcher fired %d times for removed entry, want 0", fired)
	}
}
