// Package tiles is the sprite grid demo: atlas tile (0, 0) repeated over a
// 16x16 grid in world space, with a pannable camera.
package tiles

import (
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/pixelcore/internal/core"
	"github.com/vovakirdan/pixelcore/internal/engine"
	"github.com/vovakirdan/pixelcore/internal/registry"
)

const (
	// GridSize is the number of tiles along each axis.
	GridSize = 16

	panStep     = 4
	glideSecond = 0.5
)

// App draws the tile grid. It owns the atlas loaded at start.
type App struct {
	sprite *core.SpriteBuffer
	tileW  int
	tileH  int

	// focus is the world point kept at the view center.
	focus core.Point
	home  core.Point
}

// New creates the tiles demo.
func New() *App {
	return &App{}
}

func init() {
	registry.Register("tiles", "Tile Grid", func() engine.App {
		return New()
	})
}

// Start loads the atlas and places the grid origin at the top-left corner.
func (a *App) Start(e *engine.Engine) error {
	atlas, err := e.LoadSprites()
	if err != nil {
		return err
	}
	a.sprite = atlas.Tile(0, 0)
	a.tileW, a.tileH = atlas.TileSize()

	a.home = core.Pt(e.Width()/2, e.Height()/2)
	a.focus = a.home
	e.CenterOn(a.focus)
	return nil
}

// Input pans with the arrows and glides home on confirm.
func (a *App) Input(e *engine.Engine) {
	in := e.Input()

	if in.Has(core.ActionConfirm) {
		a.focus = a.home
		e.Glide(a.home, glideSecond, ease.InOutQuad)
		return
	}

	d := in.Direction()
	if d == (core.Point{}) {
		return
	}
	a.focus = a.focus.Add(core.Pt(d.X*panStep, d.Y*panStep))
	e.CenterOn(a.focus)
}

// Draw clears to black and blits the grid.
func (a *App) Draw(e *engine.Engine) {
	e.Clear(core.Black)
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			e.Sprite(a.sprite, core.Pt(x*a.tileW, y*a.tileH))
		}
	}
}

// End logs where the camera was left.
func (a *App) End(e *engine.Engine) {
	e.Logger().Debug("tiles finished", "focus", a.focus, "eye", e.Eye())
}

// Focus returns the world point currently kept at the view center.
func (a *App) Focus() core.Point {
	return a.focus
}
