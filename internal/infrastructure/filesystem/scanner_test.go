package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func mkfile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestListEntries(t *testing.T) {
	watchDir := t.TempDir()

	if err := os.Mkdir(filepath.Join(watchDir, "Some.Show.S01E01"), 0755); err != nil {
		t.Fatal(err)
	}
	mkfile(t, filepath.Join(watchDir, "Loose.Movie.mkv"))
	mkfile(t, filepath.Join(watchDir, "notes.txt"))
	mkfile(t, filepath.Join(watchDir, ".hidden.mkv"))

	s := NewScanner(nil, nil)
	entries, err := s.ListEntries(watchDir)
	if err != nil {
		t.Fatalf("ListEntries() error = %v", err)
	}

	got := make(map[string]bool)
	for _, e := range entries {
		got[e.Name] = e.IsDir
	}

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2: %v", len(entries), got)
	}
	if isDir, ok := got["Some.Show.S01E01"]; !ok || !isDir {
		t.Error("directory entry missing or not marked as dir")
	}
	if isDir, ok := got["Loose.Movie.mkv"]; !ok || isDir {
		t.Error("loose video entry missing or wrongly marked as dir")
	}
}

func TestFindVideoAndSubtitleFiles(t *testing.T) {
	root := t.TempDir()

	mkfile(t, filepath.Join(root, "movie.mkv"))
	mkfile(t, filepath.Join(root, "nested", "episode.MP4"))
	mkfile(t, filepath.Join(root, "movie.eng.srt"))
	mkfile(t, filepath.Join(root, "readme.txt"))

	s := NewScanner(nil, nil)

	videos, err := s.FindVideoFiles(root)
	if err != nil {
		t.Fatalf("FindVideoFiles() error = %v", err)
	}
	if len(videos) != 2 {
		t.Errorf("got %d videos, want 2: %v", len(videos), videos)
	}

	subs, err := s.FindSubtitleFiles(root)
	if err != nil {
		t.Fatalf("FindSubtitleFiles() error = %v", err)
	}
	if len(subs) != 1 {
		t.Errorf("got %d subtitles, want 1: %v", len(subs), subs)
	}
}

func TestListEntriesCustomExtensions(t *testing.T) {
	watchDir := t.TempDir()

	mkfile(t, filepath.Join(watchDir, "recording.ts"))
	mkfile(t, filepath.Join(watchDir, "movie.mkv"))

	s := NewScanner([]string{"ts"}, nil)
	entries, err := s.ListEntries(watchDir)
	if err != nil {
		t.Fatalf("ListEntries() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "recording.ts" {
		t.Errorf("entries = %v, want only recording.ts", entries)
	}
}
