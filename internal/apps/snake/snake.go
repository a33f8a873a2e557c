// Package snake is a grid snake demo drawn with world-space pixel blocks.
// The arena is larger than the view and the camera follows the head.
package snake

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/pixelcore/internal/core"
	"github.com/vovakirdan/pixelcore/internal/engine"
	"github.com/vovakirdan/pixelcore/internal/registry"
)

const (
	// CellSize is the edge of one arena cell in world pixels.
	CellSize = 6

	// stepSeconds is the time between two snake moves.
	stepSeconds = 0.1
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

type cell struct {
	X, Y int
}

// Game implements the snake demo. All state lives here; the engine is only
// used for timing, input and drawing.
type Game struct {
	rng   *rand.Rand
	moves uint64
	score int
	acc   float64

	// Snake state
	snake     []cell // Head at index 0
	direction Direction
	nextDir   Direction // Buffered direction for next move
	growing   bool      // If true, don't remove tail on next move

	// Arena state
	walls  map[cell]bool
	arenaW int
	arenaH int
	food   cell

	gameOver bool
	paused   bool
}

// New creates a snake game whose food placement is driven by seed.
func New(seed int64) *Game {
	g := &Game{}
	g.reset(seed)
	return g
}

func init() {
	registry.Register("snake", "Snake", func() engine.App {
		return New(time.Now().UnixNano())
	})
}

// Start centers the camera on the head.
func (g *Game) Start(e *engine.Engine) error {
	e.CenterOn(g.headWorld())
	return nil
}

// reset initializes or restarts the game.
func (g *Game) reset(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
	g.moves = 0
	g.score = 0
	g.acc = 0
	g.gameOver = false
	g.paused = false
	g.walls, g.arenaW, g.arenaH = parseArena(arenaLayout)
	g.initSnake()
	g.spawnFood()
}

// initSnake places a three segment snake heading right.
func (g *Game) initSnake() {
	startX := g.arenaW / 4
	startY := g.arenaH / 2

	g.snake = []cell{
		{X: startX + 2, Y: startY}, // Head
		{X: startX + 1, Y: startY},
		{X: startX, Y: startY},
	}
	g.direction = DirRight
	g.nextDir = DirRight
	g.growing = false
}

// spawnFood places food at a random empty cell.
func (g *Game) spawnFood() {
	var empty []cell
	for y := 1; y < g.arenaH-1; y++ {
		for x := 1; x < g.arenaW-1; x++ {
			c := cell{X: x, Y: y}
			if !g.walls[c] && !g.isSnakeAt(c) {
				empty = append(empty, c)
			}
		}
	}

	if len(empty) == 0 {
		g.food = cell{X: -1, Y: -1}
		return
	}

	g.food = empty[g.rng.Intn(len(empty))]
}

// isSnakeAt checks if the snake occupies the given cell.
func (g *Game) isSnakeAt(c cell) bool {
	for _, seg := range g.snake {
		if seg == c {
			return true
		}
	}
	return false
}

// Input applies the pressed actions and advances the snake by the elapsed time.
func (g *Game) Input(e *engine.Engine) {
	in := e.Input()

	if in.Has(core.ActionRestart) && g.gameOver {
		g.reset(g.rng.Int63())
		e.CenterOn(g.headWorld())
		return
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.gameOver || g.paused {
		return
	}

	g.processInput(in)

	g.acc += e.Clock().DT()
	for g.acc >= stepSeconds && !g.gameOver {
		g.acc -= stepSeconds
		g.moveSnake()
	}

	e.CenterOn(g.headWorld())
}

// processInput handles direction changes.
func (g *Game) processInput(in core.InputFrame) {
	newDir := g.nextDir

	switch {
	case in.Has(core.ActionUp):
		newDir = DirUp
	case in.Has(core.ActionDown):
		newDir = DirDown
	case in.Has(core.ActionLeft):
		newDir = DirLeft
	case in.Has(core.ActionRight):
		newDir = DirRight
	}

	// Prevent instant reversal
	if !isOpposite(newDir, g.direction) {
		g.nextDir = newDir
	}
}

func isOpposite(d1, d2 Direction) bool {
	return (d1 == DirUp && d2 == DirDown) ||
		(d1 == DirDown && d2 == DirUp) ||
		(d1 == DirLeft && d2 == DirRight) ||
		(d1 == DirRight && d2 == DirLeft)
}

// moveSnake moves the snake one cell in the current direction.
func (g *Game) moveSnake() {
	if len(g.snake) == 0 {
		return
	}
	g.moves++

	// Apply buffered direction
	g.direction = g.nextDir

	head := g.snake[0]
	next := head
	switch g.direction {
	case DirUp:
		next.Y--
	case DirDown:
		next.Y++
	case DirLeft:
		next.X--
	case DirRight:
		next.X++
	}

	if g.walls[next] || next.X < 0 || next.X >= g.arenaW ||
		next.Y < 0 || next.Y >= g.arenaH {
		g.gameOver = true
		return
	}

	// The tail moves away this step unless growing
	checkLen := len(g.snake)
	if !g.growing {
		checkLen--
	}
	for i := range checkLen {
		if g.snake[i] == next {
			g.gameOver = true
			return
		}
	}

	g.snake = append([]cell{next}, g.snake...)

	if next == g.food {
		g.score++
		g.growing = true
		g.spawnFood()
	}

	if g.growing {
		g.growing = false
	} else if len(g.snake) > 1 {
		g.snake = g.snake[:len(g.snake)-1]
	}
}

// Draw renders walls, food and the snake in world space, and the score
// as a row of dots in screen space.
func (g *Game) Draw(e *engine.Engine) {
	e.Clear(core.Black)

	for w := range g.walls {
		e.FillRect(core.Gray, cellRect(w))
	}

	if g.food.X >= 0 {
		e.FillRect(core.Red, cellRect(g.food).Inset(1))
	}

	for i, seg := range g.snake {
		c := core.Green
		if i == 0 {
			c = core.BrightGreen
			if g.gameOver {
				c = core.BrightMagenta
			}
		}
		e.FillRect(c, cellRect(seg))
	}

	g.drawHUD(e)
}

// drawHUD draws one 2x2 dot per point and a pause bar, unaffected by the camera.
func (g *Game) drawHUD(e *engine.Engine) {
	for i := 0; i < g.score; i++ {
		x := 2 + i*3
		for dy := 0; dy < 2; dy++ {
			for dx := 0; dx < 2; dx++ {
				e.PixelDirect(core.Yellow, core.Pt(x+dx, 2+dy))
			}
		}
	}
	if g.paused {
		for x := 0; x < e.Width(); x++ {
			e.PixelDirect(core.Yellow, core.Pt(x, e.Height()-1))
		}
	}
}

// End reports the final result.
func (g *Game) End(e *engine.Engine) {
	e.Logger().Info("snake finished", "score", g.score, "length", len(g.snake), "moves", g.moves)
}

// Score returns the food eaten so far.
func (g *Game) Score() int {
	return g.score
}

func (g *Game) headWorld() core.Point {
	return cellRect(g.snake[0]).Center()
}

func cellRect(c cell) core.Rect {
	return core.NewRect(c.X*CellSize, c.Y*CellSize, CellSize, CellSize)
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}
