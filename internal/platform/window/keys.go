package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/pixelcore/internal/core"
)

// Key repeat timing in ticks: a held key fires once, then again after
// repeatDelay ticks and every repeatInterval ticks from there.
const (
	repeatDelay    = 15
	repeatInterval = 4
)

// Bindings maps physical keys onto engine actions.
type Bindings map[ebiten.Key]core.Action

// DefaultBindings mirrors the terminal key map: arrows, WASD and vim keys.
func DefaultBindings() Bindings {
	return Bindings{
		ebiten.KeyArrowUp:    core.ActionUp,
		ebiten.KeyW:          core.ActionUp,
		ebiten.KeyK:          core.ActionUp,
		ebiten.KeyArrowDown:  core.ActionDown,
		ebiten.KeyS:          core.ActionDown,
		ebiten.KeyJ:          core.ActionDown,
		ebiten.KeyArrowLeft:  core.ActionLeft,
		ebiten.KeyA:          core.ActionLeft,
		ebiten.KeyH:          core.ActionLeft,
		ebiten.KeyArrowRight: core.ActionRight,
		ebiten.KeyD:          core.ActionRight,
		ebiten.KeyL:          core.ActionRight,
		ebiten.KeyEnter:      core.ActionConfirm,
		ebiten.KeySpace:      core.ActionConfirm,
		ebiten.KeyEscape:     core.ActionBack,
		ebiten.KeyB:          core.ActionBack,
		ebiten.KeyP:          core.ActionPause,
		ebiten.KeyR:          core.ActionRestart,
		ebiten.KeyF12:        core.ActionScreenshot,
		ebiten.KeyQ:          core.ActionQuit,
	}
}

// keyState reports how many ticks a key has been held, 0 when released,
// and whether a control modifier is down.
type keyState interface {
	Duration(k ebiten.Key) int
	Ctrl() bool
}

// ebitenKeys reads the live keyboard.
type ebitenKeys struct{}

func (ebitenKeys) Duration(k ebiten.Key) int {
	return inpututil.KeyPressDuration(k)
}

func (ebitenKeys) Ctrl() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl)
}

// repeating reports whether a key held for d ticks fires this tick.
func repeating(d int) bool {
	if d == 1 {
		return true
	}
	return d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0
}

// Frame collects the actions fired this tick. Ctrl+S is a screenshot
// rather than a step down.
func (b Bindings) Frame(keys keyState) (frame core.InputFrame, quit bool) {
	frame = core.NewInputFrame()
	ctrl := keys.Ctrl()
	for k, action := range b {
		if !repeating(keys.Duration(k)) {
			continue
		}
		switch {
		case action == core.ActionQuit:
			quit = true
		case ctrl && k == ebiten.KeyS:
			frame.Set(core.ActionScreenshot)
		default:
			frame.Set(action)
		}
	}
	return frame, quit
}
