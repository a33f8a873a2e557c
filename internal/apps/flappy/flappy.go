// Package flappy is a side-scrolling demo: the bird flies right through
// a field of pipes fixed in world space while the camera keeps it at a
// quarter of the view width.
package flappy

import (
	"time"

	"github.com/vovakirdan/pixelcore/internal/core"
	"github.com/vovakirdan/pixelcore/internal/engine"
	"github.com/vovakirdan/pixelcore/internal/registry"
)

// Physics in world pixels per fixed step.
const (
	Gravity      = 0.25
	FlapImpulse  = -3.5 // Upward velocity after a flap (negative = up)
	MaxFallSpeed = 5.0
	ForwardSpeed = 1.5

	BirdSize     = 8
	GroundHeight = 8

	stepSeconds = 1.0 / 60
	// maxBacklog bounds the catch-up after a stall.
	maxBacklog = 0.25
)

var (
	skyColor    = core.Hex(0x1B2838)
	pipeColor   = core.Green
	capColor    = core.BrightGreen
	groundColor = core.Hex(0x8B5A2B)
	birdColor   = core.Yellow
)

// Game implements the flappy demo.
type Game struct {
	seed    int64
	birdX   float64 // World position of the bird's left edge
	birdY   float64 // World position of the bird's top edge
	birdVel float64
	pipes   *pipeField
	worldH  int
	score   int
	steps   int
	acc     float64

	gameOver bool
	paused   bool
}

// New creates a flappy game whose pipe gaps are driven by seed.
func New(seed int64) *Game {
	return &Game{seed: seed}
}

func init() {
	registry.Register("flappy", "Flappy", func() engine.App {
		return New(time.Now().UnixNano())
	})
}

// Start sizes the world to the view height and frames the bird.
func (g *Game) Start(e *engine.Engine) error {
	g.worldH = e.Height()
	g.reset(g.seed)
	g.follow(e)
	return nil
}

// reset initializes or restarts the game.
func (g *Game) reset(seed int64) {
	g.seed = seed
	g.birdX = 0
	g.birdY = float64(g.floorY()-BirdSize) / 2
	g.birdVel = 0
	g.score = 0
	g.steps = 0
	g.acc = 0
	g.gameOver = false
	g.paused = false

	if g.pipes == nil {
		g.pipes = newPipeField(seed, g.floorY())
	} else {
		g.pipes.reset(seed, g.floorY())
	}
}

func (g *Game) floorY() int {
	return g.worldH - GroundHeight
}

// Input applies flaps and advances the simulation by the elapsed time.
func (g *Game) Input(e *engine.Engine) {
	in := e.Input()

	if g.gameOver {
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
			g.reset(g.seed + 1)
			g.follow(e)
		}
		return
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return
	}

	flap := in.Has(core.ActionConfirm) || in.Has(core.ActionUp)

	g.acc = min(g.acc+e.Clock().DT(), maxBacklog)
	for g.acc >= stepSeconds && !g.gameOver {
		g.acc -= stepSeconds
		g.step(flap, e.Width())
		flap = false
	}

	g.follow(e)
}

// step advances one fixed step.
func (g *Game) step(flap bool, viewW int) {
	g.steps++

	if flap {
		g.birdVel = FlapImpulse
	}
	g.birdVel = min(g.birdVel+Gravity, MaxFallSpeed)
	g.birdY += g.birdVel
	g.birdX += ForwardSpeed

	bx := int(g.birdX)
	g.score += g.pipes.update(bx, bx+viewW+PipeSpacing, bx-viewW)

	switch {
	case g.birdY < 0:
		g.birdY = 0
		g.gameOver = true
	case int(g.birdY)+BirdSize >= g.floorY():
		g.birdY = float64(g.floorY() - BirdSize)
		g.gameOver = true
	case g.pipes.collides(g.birdRect()):
		g.gameOver = true
	}
}

// follow keeps the bird at a quarter of the view width and the world
// vertically centered.
func (g *Game) follow(e *engine.Engine) {
	x := int(g.birdX) + e.Width()/2 - e.Width()/4
	e.CenterOn(core.Pt(x, g.worldH/2))
}

func (g *Game) birdRect() core.Rect {
	return core.NewRect(int(g.birdX), int(g.birdY), BirdSize, BirdSize)
}

// Draw renders the sky, pipes, ground and bird in world space and the
// score in screen space.
func (g *Game) Draw(e *engine.Engine) {
	e.Clear(skyColor)

	floor := g.floorY()
	for _, p := range g.pipes.pipes {
		top, bottom := p.TopRect(), p.BottomRect(floor)
		e.FillRect(pipeColor, top)
		e.FillRect(pipeColor, bottom)
		// Caps overhang by one pixel
		e.FillRect(capColor, core.NewRect(p.X-1, top.Bottom()-3, PipeWidth+2, 3))
		e.FillRect(capColor, core.NewRect(p.X-1, bottom.Y, PipeWidth+2, 3))
	}

	// Ground spans the visible world columns
	left := -e.Eye().X
	e.FillRect(groundColor, core.NewRect(left, floor, e.Width(), GroundHeight))

	bird := g.bodyColor()
	e.FillRect(bird, g.birdRect())
	e.Pixel(core.Black, core.Pt(int(g.birdX)+BirdSize-3, int(g.birdY)+2))

	g.drawHUD(e)
}

func (g *Game) bodyColor() core.Color {
	if g.gameOver {
		return core.BrightMagenta
	}
	return birdColor
}

// drawHUD draws one 2x2 dot per pipe passed and a pause bar.
func (g *Game) drawHUD(e *engine.Engine) {
	for i := 0; i < g.score; i++ {
		x := 2 + i*3
		for dy := 0; dy < 2; dy++ {
			for dx := 0; dx < 2; dx++ {
				e.PixelDirect(core.White, core.Pt(x+dx, 2+dy))
			}
		}
	}
	if g.paused {
		for x := 0; x < e.Width(); x++ {
			e.PixelDirect(core.Yellow, core.Pt(x, 0))
		}
	}
}

// End reports the final result.
func (g *Game) End(e *engine.Engine) {
	e.Logger().Info("flappy finished", "score", g.score, "distance", int(g.birdX), "steps", g.steps)
}

// Score returns the number of pipes passed.
func (g *Game) Score() int {
	return g.score
}

// GameOver reports whether the bird crashed.
func (g *Game) GameOver() bool {
	return g.gameOver
}
