package flappy

import (
	"math/rand"

	"github.com/vovakirdan/pixelcore/internal/core"
)

// Obstacle layout in world pixels.
const (
	PipeWidth    = 16
	PipeSpacing  = 80 // Distance between the left edges of two pipes
	MinGapSize   = 40
	MaxGapSize   = 64
	TopMargin    = 12
	BottomMargin = 12
	FirstPipeX   = 160
)

// Pipe is a vertical obstacle with a gap the bird must pass through.
// X is fixed in world space; the camera does the scrolling.
type Pipe struct {
	X         int  // World position of the left edge
	GapY      int  // Top of the gap
	GapHeight int  // Height of the passable gap
	Passed    bool // Whether the bird has passed this pipe
}

// TopRect returns the collision rectangle of the upper half.
func (p Pipe) TopRect() core.Rect {
	return core.NewRect(p.X, 0, PipeWidth, p.GapY)
}

// BottomRect returns the collision rectangle of the lower half, down to floorY.
func (p Pipe) BottomRect(floorY int) core.Rect {
	bottomY := p.GapY + p.GapHeight
	return core.NewRect(p.X, bottomY, PipeWidth, floorY-bottomY)
}

// pipeField spawns pipes ahead of the bird and drops those far behind.
type pipeField struct {
	pipes  []Pipe
	rng    *rand.Rand
	floorY int
	nextX  int
}

func newPipeField(seed int64, floorY int) *pipeField {
	f := &pipeField{pipes: make([]Pipe, 0, 8)}
	f.reset(seed, floorY)
	return f
}

// reset clears all pipes and reseeds the generator.
func (f *pipeField) reset(seed int64, floorY int) {
	f.pipes = f.pipes[:0]
	f.rng = rand.New(rand.NewSource(seed))
	f.floorY = floorY
	f.nextX = FirstPipeX
}

// update keeps pipes spawned up to aheadX and removed behind behindX.
// Returns the number of pipes the bird at birdX passed this call.
func (f *pipeField) update(birdX, aheadX, behindX int) int {
	passed := 0
	for i := range f.pipes {
		if !f.pipes[i].Passed && f.pipes[i].X+PipeWidth < birdX {
			f.pipes[i].Passed = true
			passed++
		}
	}

	kept := f.pipes[:0]
	for _, p := range f.pipes {
		if p.X+PipeWidth > behindX {
			kept = append(kept, p)
		}
	}
	f.pipes = kept

	for f.nextX < aheadX {
		f.spawn(f.nextX)
		f.nextX += PipeSpacing
	}
	return passed
}

// spawn creates a pipe at x with a random gap.
func (f *pipeField) spawn(x int) {
	gapHeight := MinGapSize + f.rng.Intn(MaxGapSize-MinGapSize+1)

	minGapY := TopMargin
	maxGapY := f.floorY - BottomMargin - gapHeight
	if maxGapY < minGapY {
		maxGapY = minGapY // Edge case for very short worlds
	}

	gapY := minGapY
	if maxGapY > minGapY {
		gapY = minGapY + f.rng.Intn(maxGapY-minGapY+1)
	}

	f.pipes = append(f.pipes, Pipe{X: x, GapY: gapY, GapHeight: gapHeight})
}

// collides tests r against every pipe.
func (f *pipeField) collides(r core.Rect) bool {
	for _, p := range f.pipes {
		if r.Intersects(p.TopRect()) || r.Intersects(p.BottomRect(f.floorY)) {
			return true
		}
	}
	return false
}
