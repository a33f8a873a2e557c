package engine

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/pixelcore/internal/config"
	"github.com/vovakirdan/pixelcore/internal/core"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"level-1.start", "level-1.start"},
		{"a/b c", "a_b_c"},
		{"ünï", "_n_"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotWrittenAfterPresent(t *testing.T) {
	s, _, _, _ := newTestScheduler(config.RedrawContinuous)
	dir := t.TempDir()
	s.Engine().ScreenshotDir = dir
	_ = s.Start()

	frame := core.NewInputFrame()
	frame.Set(core.ActionScreenshot)
	if err := s.Step(Events{Input: true, Actions: frame}); err != nil {
		t.Fatalf("Step() failed: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*_capture.png"))
	if err != nil {
		t.Fatalf("Glob() failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("found %d screenshots, expected 1", len(matches))
	}

	f, err := os.Open(matches[0])
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if got := core.ColorFrom(img.At(0, 0)); got != core.Black {
		t.Errorf("screenshot pixel = %v, expected %v", got, core.Black)
	}
}

func TestSaveSnapshot(t *testing.T) {
	e, _ := newTestEngine(3, 2)
	e.PixelDirect(core.Yellow, core.Pt(2, 1))
	path := filepath.Join(t.TempDir(), "out.png")

	if err := e.SaveSnapshot(path); err != nil {
		t.Fatalf("SaveSnapshot() failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("bounds = %v, expected 3x2", img.Bounds())
	}
	if got := core.ColorFrom(img.At(2, 1)); got != core.Yellow {
		t.Errorf("At(2, 1) = %v, expected %v", got, core.Yellow)
	}
}

func TestSaveSnapshotBadPath(t *testing.T) {
	e, _ := newTestEngine(1, 1)

	if err := e.SaveSnapshot(filepath.Join(t.TempDir(), "missing", "out.png")); err == nil {
		t.Error("SaveSnapshot() should fail when the directory does not exist")
	}
}
