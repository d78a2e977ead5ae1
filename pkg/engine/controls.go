package engine

import (
	"github.com/opd-ai/go-freecg/pkg/entity"
	"github.com/opd-ai/go-freecg/pkg/level"
)

// Controls is the player input sampled for one frame
type Controls struct {
	Thrust bool
	// Turn is -1 to turn left, 1 to turn right and 0 to hold the heading.
	Turn int
	// ToggleKeys flips the held keys. Debug only.
	ToggleKeys [entity.NumKeys]bool
}

// Apply hands c to the ship. Input is ignored while the ship is exploding
// and after the game has ended.
func (g *Game) Apply(c Controls) {
	g.StateLock.Lock()
	defer g.StateLock.Unlock()
	c.ApplyTo(g.Level)
}

// ApplyTo is Apply for callers already holding the state lock, such as a
// frame callback of Run.
func (c Controls) ApplyTo(l *level.Level) {
	s := l.Ship
	if l.Status != level.Alive || s.Dead {
		return
	}

	s.SetEngine(c.Thrust)
	s.SetRotation(float64(max(-1, min(c.Turn, 1))) * l.Tuning.RotSpeed)
	for i, flip := range c.ToggleKeys {
		if flip {
			s.ToggleKey(i)
		}
	}
}
