package engine

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pixelcore/internal/core"
)

func TestNewEngineMatchesSettings(t *testing.T) {
	e := New(testSettings(64, 32), nil)

	if e.Width() != 64 || e.Height() != 32 {
		t.Errorf("size = %dx%d, expected 64x32", e.Width(), e.Height())
	}
	if e.Eye() != core.Pt(0, 0) {
		t.Errorf("Eye() = %v, expected zero", e.Eye())
	}
	if !e.Input().Empty() {
		t.Error("New engine should have an empty input frame")
	}
	if e.Logger() == nil {
		t.Error("Logger() should never be nil")
	}
	if e.Frames() != 0 {
		t.Errorf("Frames() = %d, expected 0", e.Frames())
	}
}

func writeAtlas(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 0, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "atlas.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	return path
}

func TestLoadSpritesLogsRemainder(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	s := testSettings(16, 16)
	s.Assets.Atlas = writeAtlas(t, 40, 20)
	s.Render.TileSize = 16
	e := New(s, logger)

	atlas, err := e.LoadSprites()
	if err != nil {
		t.Fatalf("LoadSprites() failed: %v", err)
	}
	if atlas.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", atlas.Len())
	}
	if !strings.Contains(buf.String(), "atlas edge truncated") {
		t.Errorf("expected truncation to be logged, got %q", buf.String())
	}
}

func TestLoadSpritesMissingFile(t *testing.T) {
	s := testSettings(16, 16)
	s.Assets.Atlas = filepath.Join(t.TempDir(), "nope.png")

	if _, err := New(s, nil).LoadSprites(); err == nil {
		t.Error("LoadSprites() should fail for a missing atlas")
	}
}

func TestStats(t *testing.T) {
	s, _, _, ft := newTestScheduler("continuous")
	_ = s.Start()

	for i := 0; i < 10; i++ {
		ft.advance(100 * time.Millisecond)
		_ = s.Step(Events{Input: true})
	}

	st := s.Engine().Stats()
	if st.Frames != 10 || st.Ticks != 10 {
		t.Errorf("Stats() = %+v, expected 10 frames and ticks", st)
	}
	if st.Duration != time.Second {
		t.Errorf("Duration = %v, expected 1s", st.Duration)
	}
	if st.AvgFPS != 10 {
		t.Errorf("AvgFPS = %v, expected 10", st.AvgFPS)
	}
}

func TestStatsBeforeAnyTime(t *testing.T) {
	e, _ := newTestEngine(4, 4)

	if st := e.Stats(); st.AvgFPS != 0 {
		t.Errorf("AvgFPS = %v, expected 0 with no elapsed time", st.AvgFPS)
	}
}
