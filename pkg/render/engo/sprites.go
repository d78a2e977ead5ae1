// pkg/render/engo/sprites.go
package engo

import (
	"image"
	"image/draw"

	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-freecg/pkg/entity"
)

type spriteKey struct {
	x, y, w, h int
}

// SpriteCache cuts tile textures out of the tile sheet and uploads each
// distinct frame once.
type SpriteCache struct {
	sheet    *image.NRGBA
	frames   map[spriteKey]*image.NRGBA
	textures map[spriteKey]common.Drawable

	// upload turns a frame into something the render system can draw
	upload func(img *image.NRGBA) common.Drawable
}

// NewSpriteCache creates a cache over sheet. A nil sheet yields no sprites,
// and every tile falls back to a coloured rectangle.
func NewSpriteCache(sheet image.Image) *SpriteCache {
	c := &SpriteCache{
		frames:   make(map[spriteKey]*image.NRGBA),
		textures: make(map[spriteKey]common.Drawable),
		upload:   uploadTexture,
	}
	if sheet != nil {
		b := sheet.Bounds()
		c.sheet = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(c.sheet, c.sheet.Bounds(), sheet, b.Min, draw.Src)
	}
	return c
}

// Frame returns the sheet pixels under t's texture rectangle, or nil when
// there is no sheet or the rectangle leaves it.
func (c *SpriteCache) Frame(t entity.Tile) *image.NRGBA {
	if c.sheet == nil || t.W <= 0 || t.H <= 0 {
		return nil
	}
	key := spriteKey{t.TexX, t.TexY, t.W, t.H}
	if img, ok := c.frames[key]; ok {
		return img
	}

	src := image.Rect(t.TexX, t.TexY, t.TexX+t.W, t.TexY+t.H)
	if !src.In(c.sheet.Bounds()) {
		return nil
	}
	img := image.NewNRGBA(image.Rect(0, 0, t.W, t.H))
	draw.Draw(img, img.Bounds(), c.sheet, src.Min, draw.Src)
	c.frames[key] = img
	return img
}

// Drawable returns the texture for t, or nil if it has no frame
func (c *SpriteCache) Drawable(t entity.Tile) common.Drawable {
	key := spriteKey{t.TexX, t.TexY, t.W, t.H}
	if d, ok := c.textures[key]; ok {
		return d
	}
	img := c.Frame(t)
	if img == nil {
		return nil
	}
	d := c.upload(img)
	c.textures[key] = d
	return d
}

func uploadTexture(img *image.NRGBA) common.Drawable {
	return common.NewTextureSingle(common.NewImageObject(img))
}
