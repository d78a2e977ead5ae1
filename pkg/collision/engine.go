// pkg/collision/engine.go
package collision

import (
	"github.com/opd-ai/go-freecg/pkg/entity"
	"github.com/opd-ai/go-freecg/pkg/level"
	"github.com/opd-ai/go-freecg/pkg/physics"
)

// Engine finds the tiles the ship collides with and runs their handlers.
type Engine struct {
	cmap *Map
}

// NewEngine creates an engine testing against the given sheet opacity map.
func NewEngine(m *Map) *Engine {
	return &Engine{cmap: m}
}

// Map returns the opacity map the engine tests against
func (e *Engine) Map() *Map {
	return e.cmap
}

// Resolve runs one collision pass for l.Ship and reports whether any
// handler found the contact lethal. Only blocks under the ship's bounding
// box are scanned. A tile listed in several of those blocks has its
// handler run once per block; every handler tolerates that.
func (e *Engine) Resolve(l *level.Level) (lethal bool) {
	ship := l.Ship.Tile()
	bounds := ship.Bounds()
	x0, y0, x1, y1 := l.Grid.BlockRange(bounds)

	for j := y0; j < y1; j++ {
		for i := x0; i < x1; i++ {
			for _, tile := range l.Grid.Block(i, j) {
				overlap, ok := bounds.Intersect(tile.Bounds())
				if !ok || !e.Collides(&ship, tile, overlap) {
					continue
				}
				if dispatch(l, tile) {
					lethal = true
				}
			}
		}
	}
	return lethal
}

// Collides runs the narrow-phase test of tile against the ship tile.
// overlap is the intersection of their bounds.
func (e *Engine) Collides(ship, tile *entity.Tile, overlap physics.Rect) bool {
	switch tile.Test {
	case entity.RectPoint:
		return rectPoint(ship, tile)
	case entity.Rect:
		return e.rect(ship, overlap)
	case entity.Bitmap:
		return e.bitmap(ship, tile, overlap)
	case entity.Cannon:
		// Cannons have no mask of their own yet; any overlap hits.
		return true
	default:
		return false
	}
}

// rectPoint is true when the ship centre lies inside the tile.
func rectPoint(ship, tile *entity.Tile) bool {
	cx := float64(ship.X + ship.W/2)
	cy := float64(ship.Y + ship.H/2)
	return tile.Bounds().ContainsPoint(cx, cy)
}

// rect is true when the ship sprite is opaque anywhere in the overlap.
func (e *Engine) rect(ship *entity.Tile, r physics.Rect) bool {
	sx := ship.TexX + (r.X - ship.X)
	sy := ship.TexY + (r.Y - ship.Y)
	for j := 0; j < r.H; j++ {
		for i := 0; i < r.W; i++ {
			if e.cmap.Opaque(sx+i, sy+j) {
				return true
			}
		}
	}
	return false
}

// bitmap is true when the ship sprite and the tile art are both opaque at
// some pixel of the overlap.
func (e *Engine) bitmap(ship, tile *entity.Tile, r physics.Rect) bool {
	sx := ship.TexX + (r.X - ship.X)
	sy := ship.TexY + (r.Y - ship.Y)
	tx := tile.TexX + (r.X - tile.X)
	ty := tile.TexY + (r.Y - tile.Y)
	for j := 0; j < r.H; j++ {
		for i := 0; i < r.W; i++ {
			if e.cmap.Opaque(sx+i, sy+j) && e.cmap.Opaque(tx+i, ty+j) {
				return true
			}
		}
	}
	return false
}

// dispatch runs the handler of tile's owner and returns its lethal signal.
func dispatch(l *level.Level, tile *entity.Tile) bool {
	idx := tile.Owner.Index
	switch tile.Action() {
	case entity.ActionGate:
		l.Gates[idx].Touch()
	case entity.ActionLGate:
		l.LGates[idx].Touch(l.Ship)
	case entity.ActionAirgen:
		l.Airgens[idx].Touch()
	case entity.ActionAirport:
		return l.Airports[idx].Touch(l.Ship)
	case entity.ActionFan:
		l.Fans[idx].Touch(l.Ship)
	case entity.ActionMagnet:
		l.Magnets[idx].Touch(l.Ship)
	case entity.ActionKaboom:
		return true
	}
	return false
}
