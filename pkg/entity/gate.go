// pkg/entity/gate.go
package entity

import "github.com/opd-ai/go-freecg/pkg/physics"

// GateType is the side of the opening a gate bar is anchored to.
type GateType int

const (
	GateTop GateType = iota
	GateBottom
	GateLeft
	GateRight
)

// String returns the level-file name of the gate type
func (g GateType) String() string {
	switch g {
	case GateTop:
		return "top"
	case GateBottom:
		return "bottom"
	case GateLeft:
		return "left"
	case GateRight:
		return "right"
	default:
		return "unknown"
	}
}

// GateTypeFromString parses a level-file gate type.
func GateTypeFromString(s string) (GateType, bool) {
	for _, g := range []GateType{GateTop, GateBottom, GateLeft, GateRight} {
		if g.String() == s {
			return g, true
		}
	}
	return GateTop, false
}

// growDir is the direction the bar's free edge moves when closing.
func (g GateType) growDir() Dir {
	switch g {
	case GateTop:
		return Down
	case GateBottom:
		return Up
	case GateLeft:
		return Right
	default:
		return Left
	}
}

// Gate is a bar that retracts while the ship is in its trigger zone and
// closes again once it leaves.
type Gate struct {
	Type   GateType
	Bar    *Tile
	Len    float64
	MaxLen float64
	Active bool // set by Touch, cleared by Step
}

// Touch is the collision handler
func (g *Gate) Touch() {
	g.Active = true
}

// Step eases the bar and clears the trigger.
func (g *Gate) Step(f *Frame) {
	g.ease(g.Active, f)
	g.Active = false
}

func (g *Gate) ease(retract bool, f *Frame) {
	t := f.Tuning
	if !retract && g.Len < g.MaxLen {
		g.Len = min(g.MaxLen, g.Len+t.GateBarSpeed*f.DT)
	}
	if retract && g.Len > 0 {
		g.Len = max(t.GateBarMinLen, g.Len-t.GateBarSpeed*f.DT)
	}
	slide(g.Type.growDir(), g.Bar, int(g.Len))
}

// Reach returns the sheet region the bar shows when fully closed.
func (g *Gate) Reach() physics.Rect {
	return slidTexture(g.Type.growDir(), g.Bar, int(g.MaxLen))
}

// LGate is a gate that only opens for a ship holding every required key.
// Its lights show which keys are required and which are missing.
type LGate struct {
	Gate
	Keys   [NumKeys]bool
	Lights [NumKeys]*Tile
	Open   bool
}

// Touch is the collision handler
func (l *LGate) Touch(s *Ship) {
	l.Active = true
	l.Open = l.Unlocks(s)
}

// Unlocks reports whether s holds every key the gate requires
func (l *LGate) Unlocks(s *Ship) bool {
	for i, required := range l.Keys {
		if required && !s.Keys[i] {
			return false
		}
	}
	return true
}

// Step updates the lights, eases the bar and clears both triggers.
func (l *LGate) Step(f *Frame) {
	for i, light := range l.Lights {
		if light == nil {
			continue
		}
		switch {
		case !l.Active || !l.Keys[i]:
			light.Visual = Transparent
		case !f.Ship.Keys[i]:
			light.Visual = Blink
		default:
			light.Visual = Simple
		}
	}
	l.ease(l.Open, f)
	l.Open = false
	l.Active = false
}
