package sorting

import (
	"errors"
	"testing"

	"github.com/easayliu/media-sorter/internal/domain/valueobjects"
	apperrors "github.com/easayliu/media-sorter/internal/shared/errors"
)

// fakeProbe 内存探测器，可记录已分配路径模拟文件逐个落地
type fakeProbe struct {
	existing map[string]bool
}

func newFakeProbe(paths ...string) *fakeProbe {
	p := &fakeProbe{existing: make(map[string]bool)}
	for _, path := range paths {
		p.existing[path] = true
	}
	return p
}

func (p *fakeProbe) Exists(path string) bool {
	return p.existing[path]
}

func (p *fakeProbe) add(path string) {
	p.existing[path] = true
}

func TestUniquePathFirstCallUnsuffixed(t *testing.T) {
	namer := NewNamer(newFakeProbe(), ConflictPolicyVersion, 0)

	got, err := namer.UniquePath("/dest", "Show Name - S02E05", ".mkv", valueobjects.Resolution1080p)
	if err != nil {
		t.Fatalf("UniquePath() error = %v", err)
	}
	want := "/dest/Show Name - S02E05.1080p.mkv"
	if got != want {
		t.Errorf("UniquePath() = %q, want %q", got, want)
	}
}

func TestUniquePathNoResolution(t *testing.T) {
	namer := NewNamer(newFakeProbe(), ConflictPolicyVersion, 0)

	got, err := namer.UniquePath("/dest", "Some Movie 2019", ".mp4", valueobjects.ResolutionNone)
	if err != nil {
		t.Fatalf("UniquePath() error = %v", err)
	}
	want := "/dest/Some Movie 2019.mp4"
	if got != want {
		t.Errorf("UniquePath() = %q, want %q", got, want)
	}
}

func TestUniquePathNeverRepeats(t *testing.T) {
	probe := newFakeProbe()
	namer := NewNamer(probe, ConflictPolicyVersion, 0)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		got, err := namer.UniquePath("/dest", "Movie", ".mkv", valueobjects.Resolution1080p)
		if err != nil {
			t.Fatalf("call %d: UniquePath() error = %v", i, err)
		}
		if seen[got] {
			t.Fatalf("call %d: path %q returned twice", i, got)
		}
		seen[got] = true
		probe.add(got)
	}

	if !seen["/dest/Movie.1080p.mkv"] {
		t.Error("first call did not produce unsuffixed version-1 path")
	}
	if !seen["/dest/Movie.1080p.v2.mkv"] {
		t.Error("second call did not produce .v2 path")
	}
}

func TestUniquePathSameResolutionCollision(t *testing.T) {
	// 同分辨率冲突走版本后缀，不改分辨率标记
	probe := newFakeProbe("/dest/Movie.1080p.mkv")
	namer := NewNamer(probe, ConflictPolicyVersion, 0)

	got, err := namer.UniquePath("/dest", "Movie", ".mkv", valueobjects.Resolution1080p)
	if err != nil {
		t.Fatalf("UniquePath() error = %v", err)
	}
	want := "/dest/Movie.1080p.v2.mkv"
	if got != want {
		t.Errorf("UniquePath() = %q, want %q", got, want)
	}
}

func TestUniquePathDifferentResolutionNoCollision(t *testing.T) {
	// 不同分辨率的副本互不冲突
	probe := newFakeProbe("/dest/Movie.1080p.mkv")
	namer := NewNamer(probe, ConflictPolicyVersion, 0)

	got, err := namer.UniquePath("/dest", "Movie", ".mkv", valueobjects.Resolution720p)
	if err != nil {
		t.Fatalf("UniquePath() error = %v", err)
	}
	want := "/dest/Movie.720p.mkv"
	if got != want {
		t.Errorf("UniquePath() = %q, want %q", got, want)
	}
}

func TestUniquePathSkipPolicy(t *testing.T) {
	probe := newFakeProbe("/dest/Movie.1080p.mkv")
	namer := NewNamer(probe, ConflictPolicySkip, 0)

	_, err := namer.UniquePath("/dest", "Movie", ".mkv", valueobjects.Resolution1080p)
	if !errors.Is(err, ErrSkipExisting) {
		t.Errorf("UniquePath() error = %v, want ErrSkipExisting", err)
	}
}

func TestUniquePathOverwritePolicy(t *testing.T) {
	probe := newFakeProbe("/dest/Movie.1080p.mkv")
	namer := NewNamer(probe, ConflictPolicyOverwrite, 0)

	got, err := namer.UniquePath("/dest", "Movie", ".mkv", valueobjects.Resolution1080p)
	if err != nil {
		t.Fatalf("UniquePath() error = %v", err)
	}
	if got != "/dest/Movie.1080p.mkv" {
		t.Errorf("UniquePath() = %q, want version-1 path for overwrite", got)
	}
}

func TestUniquePathExhaustion(t *testing.T) {
	probe := newFakeProbe(
		"/dest/Movie.mkv",
		"/dest/Movie.v2.mkv",
		"/dest/Movie.v3.mkv",
	)
	namer := NewNamer(probe, ConflictPolicyVersion, 3)

	_, err := namer.UniquePath("/dest", "Movie", ".mkv", valueobjects.ResolutionNone)
	if err == nil {
		t.Fatal("expected exhaustion error")
	}

	var svcErr *apperrors.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("error type = %T, want *ServiceError", err)
	}
	if svcErr.Code != apperrors.ErrorCodeCollisionExhausted {
		t.Errorf("error code = %v, want %v", svcErr.Code, apperrors.ErrorCodeCollisionExhausted)
	}
}
