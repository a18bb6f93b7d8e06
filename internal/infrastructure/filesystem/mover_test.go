package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMoveCreatesDestinationDirs(t *testing.T) {
	tmp := t.TempDir()

	src := filepath.Join(tmp, "src", "movie.mkv")
	mkfile(t, src)
	dest := filepath.Join(tmp, "dest", "Movies", "Movie (2019)", "Movie (2019).mkv")

	m := NewMover()
	if err := m.Move(src, dest); err != nil {
		t.Fatalf("Move() error = %v", err)
	}

	if _, err := os.Stat(dest); err != nil {
		t.Errorf("destination missing after move: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Errorf("source still exists after move")
	}
}

func TestCleanupEmptyDirs(t *testing.T) {
	tmp := t.TempDir()

	root := filepath.Join(tmp, "item")
	if err := os.MkdirAll(filepath.Join(root, "a", "b"), 0755); err != nil {
		t.Fatal(err)
	}
	keep := filepath.Join(root, "keep")
	mkfile(t, filepath.Join(keep, "file.txt"))

	m := NewMover()
	m.CleanupEmptyDirs(root)

	if _, err := os.Stat(filepath.Join(root, "a")); !os.IsNotExist(err) {
		t.Error("empty subtree not removed")
	}
	if _, err := os.Stat(keep); err != nil {
		t.Error("non-empty directory was removed")
	}
	if _, err := os.Stat(root); err != nil {
		t.Error("root with remaining content was removed")
	}
}

func TestCleanupEmptyDirsRemovesEmptyRoot(t *testing.T) {
	tmp := t.TempDir()

	root := filepath.Join(tmp, "item")
	if err := os.MkdirAll(filepath.Join(root, "a"), 0755); err != nil {
		t.Fatal(err)
	}

	m := NewMover()
	m.CleanupEmptyDirs(root)

	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Error("fully empty root not removed")
	}
}
