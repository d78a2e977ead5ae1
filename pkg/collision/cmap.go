// Package collision implements pixel-accurate collision between the ship
// and level tiles: the opacity map of the tile sheet, decoding of the sheet
// itself, and the engine that finds colliding tiles and runs their
// handlers.
package collision

import (
	"fmt"
	"image"

	"github.com/opd-ai/go-freecg/pkg/physics"
)

// Map records which pixels of the tile sheet are opaque. Coordinates are
// sheet (texture) pixels.
type Map struct {
	W, H int
	bits []bool
}

// NewMap creates a fully transparent map.
func NewMap(w, h int) *Map {
	return &Map{W: w, H: h, bits: make([]bool, w*h)}
}

// SolidMap creates a fully opaque map. It stands in for a missing tile
// sheet: every overlap then counts as a hit.
func SolidMap(w, h int) *Map {
	m := NewMap(w, h)
	for i := range m.bits {
		m.bits[i] = true
	}
	return m
}

// MapFromImage marks a pixel opaque iff its alpha is non-zero.
func MapFromImage(img image.Image) *Map {
	b := img.Bounds()
	m := NewMap(b.Dx(), b.Dy())
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			m.bits[y*m.W+x] = a != 0
		}
	}
	return m
}

func (m *Map) index(x, y int) int {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		panic(fmt.Sprintf("collision: pixel (%d,%d) outside %dx%d map", x, y, m.W, m.H))
	}
	return y*m.W + x
}

// Opaque reports whether sheet pixel (x, y) is solid. Reading outside the
// map means a level references texture that does not exist, and panics.
func (m *Map) Opaque(x, y int) bool {
	return m.bits[m.index(x, y)]
}

// Set marks sheet pixel (x, y)
func (m *Map) Set(x, y int, opaque bool) {
	m.bits[m.index(x, y)] = opaque
}

// Fill marks every pixel of r
func (m *Map) Fill(r physics.Rect, opaque bool) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			m.Set(x, y, opaque)
		}
	}
}

// Contains reports whether r lies entirely inside the map
func (m *Map) Contains(r physics.Rect) bool {
	return r.X >= 0 && r.Y >= 0 && r.X+r.W <= m.W && r.Y+r.H <= m.H
}
