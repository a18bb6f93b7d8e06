package sorting

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/easayliu/media-sorter/internal/domain/entities"
	"github.com/easayliu/media-sorter/internal/infrastructure/filesystem"
)

func newTestPipeline(probe filesystem.Probe, tvDir, moviesDir string) *Pipeline {
	normalizer := NewNormalizer()
	return NewPipeline(
		NewClassifier(normalizer),
		NewResolver(nil, time.Second),
		NewNamer(probe, ConflictPolicyVersion, 0),
		NewMatcher(),
		filesystem.NewScanner(nil, nil),
		tvDir,
		moviesDir,
	)
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func instructionByKind(instructions []entities.RelocationInstruction, kind entities.FileKind) []entities.RelocationInstruction {
	var out []entities.RelocationInstruction
	for _, ins := range instructions {
		if ins.Kind == kind {
			out = append(out, ins)
		}
	}
	return out
}

func TestProcessEpisodeFolderWithSubtitle(t *testing.T) {
	watchDir := t.TempDir()
	tvDir := "/media/tv"

	itemDir := filepath.Join(watchDir, "Show.Name.S02E05.1080p.WEB-DL.x264-GROUP")
	writeFile(t, filepath.Join(itemDir, "Show.Name.S02E05.1080p.WEB-DL.x264-GROUP.mkv"))
	writeFile(t, filepath.Join(itemDir, "Show.Name.S02E05.eng.forced.srt"))

	p := newTestPipeline(newFakeProbe(), tvDir, "/media/movies")
	instructions, err := p.Process(context.Background(), SourceItem{
		Path:  itemDir,
		Name:  filepath.Base(itemDir),
		IsDir: true,
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	videos := instructionByKind(instructions, entities.FileKindVideo)
	if len(videos) != 1 {
		t.Fatalf("got %d video instructions, want 1", len(videos))
	}
	wantVideoDest := filepath.Join(tvDir, "Show Name", "Season 02", "Show Name - S02E05.1080p.mkv")
	if videos[0].DestPath != wantVideoDest {
		t.Errorf("video dest = %q, want %q", videos[0].DestPath, wantVideoDest)
	}

	subs := instructionByKind(instructions, entities.FileKindSubtitle)
	if len(subs) != 1 {
		t.Fatalf("got %d subtitle instructions, want 1", len(subs))
	}
	wantSubDest := filepath.Join(tvDir, "Show Name", "Season 02", "Show Name - S02E05.1080p.en.forced.srt")
	if subs[0].DestPath != wantSubDest {
		t.Errorf("subtitle dest = %q, want %q", subs[0].DestPath, wantSubDest)
	}
}

func TestProcessLooseMovieFile(t *testing.T) {
	watchDir := t.TempDir()
	moviesDir := "/media/movies"

	moviePath := filepath.Join(watchDir, "Some.Movie.2019.BluRay.1080p.mkv")
	writeFile(t, moviePath)

	p := newTestPipeline(newFakeProbe(), "/media/tv", moviesDir)
	instructions, err := p.Process(context.Background(), SourceItem{
		Path:  moviePath,
		Name:  filepath.Base(moviePath),
		IsDir: false,
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(instructions) != 1 {
		t.Fatalf("got %d instructions, want 1", len(instructions))
	}
	// 无元数据查询时年份不单独提取，目录名即清洗后的标题
	wantDest := filepath.Join(moviesDir, "Some Movie 2019", "Some Movie 2019.1080p.mkv")
	if instructions[0].DestPath != wantDest {
		t.Errorf("dest = %q, want %q", instructions[0].DestPath, wantDest)
	}
	if instructions[0].Kind != entities.FileKindVideo {
		t.Errorf("kind = %v, want video", instructions[0].Kind)
	}
}

func TestProcessResolutionFallsBackToItemName(t *testing.T) {
	watchDir := t.TempDir()

	itemDir := filepath.Join(watchDir, "Show.Name.S01E01.720p.HDTV")
	writeFile(t, filepath.Join(itemDir, "episode.mkv"))

	p := newTestPipeline(newFakeProbe(), "/media/tv", "/media/movies")
	instructions, err := p.Process(context.Background(), SourceItem{
		Path:  itemDir,
		Name:  filepath.Base(itemDir),
		IsDir: true,
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(instructions) != 1 {
		t.Fatalf("got %d instructions, want 1", len(instructions))
	}
	wantDest := filepath.Join("/media/tv", "Show Name", "Season 01", "Show Name - S01E01.720p.mkv")
	if instructions[0].DestPath != wantDest {
		t.Errorf("dest = %q, want %q", instructions[0].DestPath, wantDest)
	}
}

func TestProcessDuplicateVideosGetVersionSuffix(t *testing.T) {
	watchDir := t.TempDir()

	itemDir := filepath.Join(watchDir, "Movie.Name.1080p")
	writeFile(t, filepath.Join(itemDir, "copy-a", "Movie.Name.1080p.mkv"))
	writeFile(t, filepath.Join(itemDir, "copy-b", "Movie.Name.1080p.mkv"))

	p := newTestPipeline(newFakeProbe(), "/media/tv", "/media/movies")
	instructions, err := p.Process(context.Background(), SourceItem{
		Path:  itemDir,
		Name:  filepath.Base(itemDir),
		IsDir: true,
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(instructions) != 2 {
		t.Fatalf("got %d instructions, want 2", len(instructions))
	}
	if instructions[0].DestPath == instructions[1].DestPath {
		t.Errorf("both videos assigned the same destination %q", instructions[0].DestPath)
	}
}

func TestProcessSkipPolicyOmitsExisting(t *testing.T) {
	watchDir := t.TempDir()
	moviesDir := "/media/movies"

	moviePath := filepath.Join(watchDir, "Some.Movie.2019.1080p.mkv")
	writeFile(t, moviePath)

	existing := filepath.Join(moviesDir, "Some Movie 2019", "Some Movie 2019.1080p.mkv")
	probe := newFakeProbe(existing)

	normalizer := NewNormalizer()
	p := NewPipeline(
		NewClassifier(normalizer),
		NewResolver(nil, time.Second),
		NewNamer(probe, ConflictPolicySkip, 0),
		NewMatcher(),
		filesystem.NewScanner(nil, nil),
		"/media/tv",
		moviesDir,
	)

	instructions, err := p.Process(context.Background(), SourceItem{
		Path:  moviePath,
		Name:  filepath.Base(moviePath),
		IsDir: false,
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(instructions) != 0 {
		t.Errorf("got %d instructions with skip policy, want 0", len(instructions))
	}
}

func TestProcessUnmatchedSubtitleLeftInPlace(t *testing.T) {
	watchDir := t.TempDir()

	itemDir := filepath.Join(watchDir, "Show.Name.S01E02.1080p")
	writeFile(t, filepath.Join(itemDir, "Show.Name.S01E02.1080p.mkv"))
	writeFile(t, filepath.Join(itemDir, "unrelated.notes.srt"))

	p := newTestPipeline(newFakeProbe(), "/media/tv", "/media/movies")
	instructions, err := p.Process(context.Background(), SourceItem{
		Path:  itemDir,
		Name:  filepath.Base(itemDir),
		IsDir: true,
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if subs := instructionByKind(instructions, entities.FileKindSubtitle); len(subs) != 0 {
		t.Errorf("got %d subtitle instructions, want 0", len(subs))
	}
}

func TestProcessEmptyFolder(t *testing.T) {
	watchDir := t.TempDir()

	itemDir := filepath.Join(watchDir, "Empty.Folder.S01E01")
	if err := os.MkdirAll(itemDir, 0755); err != nil {
		t.Fatal(err)
	}

	p := newTestPipeline(newFakeProbe(), "/media/tv", "/media/movies")
	instructions, err := p.Process(context.Background(), SourceItem{
		Path:  itemDir,
		Name:  filepath.Base(itemDir),
		IsDir: true,
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(instructions) != 0 {
		t.Errorf("got %d instructions for empty folder, want 0", len(instructions))
	}
}
