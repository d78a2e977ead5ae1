// pkg/entity/tile.go
package entity

import (
	"github.com/opd-ai/go-freecg/pkg/physics"
)

// TestKind selects the narrow-phase collision test applied to a tile.
type TestKind int

const (
	NoCollision TestKind = iota
	RectPoint
	Rect
	Bitmap
	Cannon
)

var testKindNames = map[TestKind]string{
	NoCollision: "none",
	RectPoint:   "rect_point",
	Rect:        "rect",
	Bitmap:      "bitmap",
	Cannon:      "cannon",
}

// String returns the level-file name of the test kind
func (k TestKind) String() string {
	if name, ok := testKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// TestKindFromString parses a level-file test name. Unknown names report false.
func TestKindFromString(s string) (TestKind, bool) {
	for k, name := range testKindNames {
		if name == s {
			return k, true
		}
	}
	return NoCollision, false
}

// ActionKind selects which object handler runs when a tile is hit.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionGate
	ActionLGate
	ActionAirgen
	ActionAirport
	ActionFan
	ActionMagnet
	ActionKaboom
)

var actionKindNames = map[ActionKind]string{
	ActionNone:    "none",
	ActionGate:    "gate",
	ActionLGate:   "lgate",
	ActionAirgen:  "airgen",
	ActionAirport: "airport",
	ActionFan:     "fan",
	ActionMagnet:  "magnet",
	ActionKaboom:  "kaboom",
}

// String returns the level-file name of the action kind
func (k ActionKind) String() string {
	if name, ok := actionKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ActionKindFromString parses a level-file action name.
func ActionKindFromString(s string) (ActionKind, bool) {
	for k, name := range actionKindNames {
		if name == s {
			return k, true
		}
	}
	return ActionNone, false
}

// Visual is how a renderer should draw a tile.
type Visual int

const (
	Simple Visual = iota
	Transparent
	Blink
)

// String returns the name of the visual
func (v Visual) String() string {
	switch v {
	case Simple:
		return "simple"
	case Transparent:
		return "transparent"
	case Blink:
		return "blink"
	default:
		return "unknown"
	}
}

// Handle points from a tile back to the object that owns it: Kind names the
// collection and Index the position inside it. Kaboom and None handles carry
// no index.
type Handle struct {
	Kind  ActionKind
	Index int
}

// Tile is a rectangle of level geometry with its texture origin on the tile
// sheet. Sliding objects resize and retexture their tiles every step.
type Tile struct {
	X, Y int
	W, H int
	TexX int
	TexY int

	Test   TestKind
	Owner  Handle
	Visual Visual
}

// NewTile creates a visible tile with no owner.
func NewTile(x, y, w, h, texX, texY int, test TestKind) *Tile {
	return &Tile{X: x, Y: y, W: w, H: h, TexX: texX, TexY: texY, Test: test}
}

// Action returns the handler kind invoked when the tile is hit
func (t *Tile) Action() ActionKind {
	return t.Owner.Kind
}

// Bounds returns the tile rectangle in level space
func (t *Tile) Bounds() physics.Rect {
	return physics.Rect{X: t.X, Y: t.Y, W: t.W, H: t.H}
}

// Dir is the direction a sliding edge moves in or a field points at.
type Dir int

const (
	Up Dir = iota
	Down
	Left
	Right
)

// String returns the level-file name of the direction
func (d Dir) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// DirFromString parses a level-file direction name.
func DirFromString(s string) (Dir, bool) {
	for _, d := range []Dir{Up, Down, Left, Right} {
		if d.String() == s {
			return d, true
		}
	}
	return Up, false
}

// slide resizes t to length along dir. Growing right or down keeps the
// tile's origin and pulls more texture in from before it; growing left or
// up moves the origin so the far edge stays put.
func slide(dir Dir, t *Tile, length int) {
	switch dir {
	case Right:
		t.TexX -= length - t.W
		t.W = length
	case Left:
		t.X -= length - t.W
		t.W = length
	case Down:
		t.TexY -= length - t.H
		t.H = length
	case Up:
		t.Y -= length - t.H
		t.H = length
	}
}

// slidTexture is the sheet region t shows after sliding to length.
func slidTexture(dir Dir, t *Tile, length int) physics.Rect {
	c := *t
	slide(dir, &c, length)
	return physics.Rect{X: c.TexX, Y: c.TexY, W: c.W, H: c.H}
}
