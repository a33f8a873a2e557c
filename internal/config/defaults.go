package config

import (
	_ "embed"
)

//go:embed defaults/settings.yaml
var defaultSettingsYAML []byte

// DefaultSettings returns the built-in settings: a 256×256 windowed,
// non-resizable framebuffer redrawn continuously.
func DefaultSettings() Settings {
	return Settings{
		Window: WindowConfig{
			Title:      "pixelcore",
			Width:      256,
			Height:     256,
			Fullscreen: false,
			Resizable:  false,
			Scale:      2,
		},
		Render: RenderConfig{
			Redraw:   RedrawContinuous,
			TickRate: 60,
			TileSize: 16,
		},
		Assets: AssetsConfig{
			Atlas: "assets/sprites.png",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
