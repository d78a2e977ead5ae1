// pkg/level/grid.go
package level

import (
	"github.com/opd-ai/go-freecg/pkg/entity"
	"github.com/opd-ai/go-freecg/pkg/physics"
)

// Block is the list of tiles overlapping one grid cell, in insertion order.
type Block []*entity.Tile

// Grid buckets tiles into square blocks so collision checks only look at
// tiles near the ship. A tile is listed in every block it overlaps.
type Grid struct {
	Width, Height int // in blocks
	BlockSize     int
	blocks        [][]Block
}

// NewGrid creates an empty grid of width × height blocks.
func NewGrid(width, height, blockSize int) *Grid {
	blocks := make([][]Block, height)
	for j := range blocks {
		blocks[j] = make([]Block, width)
	}
	return &Grid{Width: width, Height: height, BlockSize: blockSize, blocks: blocks}
}

// Insert adds t to every block its current bounds overlap. Tiles that slide
// must be inserted at their full extent.
func (g *Grid) Insert(t *entity.Tile) {
	g.InsertSpan(t, t.Bounds())
}

// InsertSpan adds t to every block overlapped by span.
func (g *Grid) InsertSpan(t *entity.Tile, span physics.Rect) {
	if span.Empty() {
		return
	}
	x0 := max(0, floorDiv(span.X, g.BlockSize))
	y0 := max(0, floorDiv(span.Y, g.BlockSize))
	x1 := min(g.Width-1, floorDiv(span.X+span.W-1, g.BlockSize))
	y1 := min(g.Height-1, floorDiv(span.Y+span.H-1, g.BlockSize))
	for j := y0; j <= y1; j++ {
		for i := x0; i <= x1; i++ {
			g.blocks[j][i] = append(g.blocks[j][i], t)
		}
	}
}

// Block returns the tiles of block (i, j). Out-of-range indices panic.
func (g *Grid) Block(i, j int) Block {
	return g.blocks[j][i]
}

// BlockRange returns the half-open block index range [x0,x1)×[y0,y1) of
// blocks overlapping r, clamped to the grid.
func (g *Grid) BlockRange(r physics.Rect) (x0, y0, x1, y1 int) {
	x0 = max(0, floorDiv(r.X, g.BlockSize))
	y0 = max(0, floorDiv(r.Y, g.BlockSize))
	endX := min(r.X+r.W, g.Width*g.BlockSize)
	endY := min(r.Y+r.H, g.Height*g.BlockSize)
	x1 = max(x0, ceilDiv(endX, g.BlockSize))
	y1 = max(y0, ceilDiv(endY, g.BlockSize))
	return x0, y0, x1, y1
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
