package core

import (
	"fmt"
	"image"
	_ "image/gif"  // GIF atlases
	_ "image/jpeg" // JPEG atlases
	_ "image/png"  // PNG atlases
	"os"

	_ "golang.org/x/image/bmp"  // BMP atlases
	_ "golang.org/x/image/webp" // WebP atlases
)

// DefaultTileSize is the edge length of atlas tiles when none is configured.
const DefaultTileSize = 16

// Atlas holds the tiles sliced out of one source image, keyed by their
// grid coordinate in that image.
type Atlas struct {
	tileW, tileH int
	cols, rows   int
	remX, remY   int
	sprites      map[GridPos]*SpriteBuffer
}

// LoadSprites reads and decodes the image at path and slices it into
// tileW×tileH sprites. Failing to open or decode the file is an error;
// callers treat it as fatal because the atlas is a required resource.
func LoadSprites(path string, tileW, tileH int) (*Atlas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("atlas: cannot open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("atlas: cannot decode %s: %w", path, err)
	}
	return SliceAtlas(img, tileW, tileH)
}

// SliceAtlas partitions img into a grid of (width/tileW)×(height/tileH)
// tiles. Integer division is intended: a trailing partial column or row is
// dropped, and its size is reported by Remainder.
func SliceAtlas(img image.Image, tileW, tileH int) (*Atlas, error) {
	if tileW <= 0 || tileH <= 0 {
		return nil, fmt.Errorf("atlas: invalid tile size %dx%d", tileW, tileH)
	}

	src := SpriteFromImage(img)
	a := &Atlas{
		tileW:   tileW,
		tileH:   tileH,
		cols:    src.Width() / tileW,
		rows:    src.Height() / tileH,
		remX:    src.Width() % tileW,
		remY:    src.Height() % tileH,
		sprites: make(map[GridPos]*SpriteBuffer),
	}

	for row := 0; row < a.rows; row++ {
		for col := 0; col < a.cols; col++ {
			tile := NewSpriteBuffer(tileW, tileH)
			CopySprite(src, tile, NewRect(col*tileW, row*tileH, tileW, tileH), Point{})
			a.sprites[GridPos{Col: col, Row: row}] = tile
		}
	}

	return a, nil
}

// Sprite returns the tile at (col, row) and whether it exists.
func (a *Atlas) Sprite(col, row int) (*SpriteBuffer, bool) {
	s, ok := a.sprites[GridPos{Col: col, Row: row}]
	return s, ok
}

// Tile returns the tile at (col, row), or a magenta placeholder of tile
// size when the atlas has no such tile.
func (a *Atlas) Tile(col, row int) *SpriteBuffer {
	if s, ok := a.Sprite(col, row); ok {
		return s
	}
	s := NewSpriteBuffer(a.tileW, a.tileH)
	s.Fill(Magenta)
	return s
}

// Sprites returns the underlying tile map. The returned map MUST NOT be mutated.
func (a *Atlas) Sprites() map[GridPos]*SpriteBuffer {
	return a.sprites
}

// Len returns the number of tiles.
func (a *Atlas) Len() int {
	return len(a.sprites)
}

// Grid returns the number of tile columns and rows.
func (a *Atlas) Grid() (cols, rows int) {
	return a.cols, a.rows
}

// TileSize returns the tile width and height.
func (a *Atlas) TileSize() (w, h int) {
	return a.tileW, a.tileH
}

// Remainder returns the width and height of the source strip that did not
// fit a whole tile and was discarded.
func (a *Atlas) Remainder() (w, h int) {
	return a.remX, a.remY
}
