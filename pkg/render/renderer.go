// pkg/render/renderer.go
package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/opd-ai/go-freecg/pkg/entity"
	"github.com/opd-ai/go-freecg/pkg/level"
	"github.com/opd-ai/go-freecg/pkg/logging"
)

// Renderer draws a level. Render is called with the game lock held, once
// per frame.
type Renderer interface {
	Render(l *level.Level) error
	Close()
}

// NullRenderer draws nothing and logs each frame at debug level.
type NullRenderer struct {
	logger *logging.Logger
	Frames int
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Nop()
	}
	return &NullRenderer{logger: logger}
}

// Render implements Renderer.
func (d *NullRenderer) Render(l *level.Level) error {
	d.Frames++
	d.logger.Debug(context.Background(), "Render called",
		"time", l.Time,
		"x", l.Ship.Position.X,
		"y", l.Ship.Position.Y,
		"status", l.Status.String(),
	)
	return nil
}

// Close implements Renderer.
func (d *NullRenderer) Close() {}

// StatusLine summarises the ship and the game for a HUD.
func StatusLine(l *level.Level) string {
	switch l.Status {
	case level.Lost:
		return "Dead. Game over!"
	case level.Victory:
		return "You won!"
	}

	s := l.Ship
	var keys strings.Builder
	for i, held := range s.Keys {
		if held {
			keys.WriteByte(byte('1' + i))
		} else {
			keys.WriteByte('-')
		}
	}
	return fmt.Sprintf("Fuel %3.0f  Lives %d  Keys %s  Hold %d/%d  Left %d  Home %d/%d",
		s.Fuel, max(s.Life, 0), keys.String(),
		s.Freight.Len(), s.MaxFreight,
		l.FreightRemaining(),
		l.Homebase.CargoCount(), l.NumAllFreight,
	)
}

// Visible reports whether a tile shows at time t. Blinking tiles are on
// for a quarter second out of every half.
func Visible(t *entity.Tile, time float64) bool {
	switch t.Visual {
	case entity.Transparent:
		return false
	case entity.Blink:
		return int(time*4)%2 == 0
	default:
		return true
	}
}

// Role is what a tile stands for when it is drawn without its texture
type Role int

const (
	RoleWall Role = iota
	RoleDecoration
	RoleHazard
	RoleGate
	RoleField
	RoleAirport
	RoleCargo
)

// TileRole classifies t by its owner
func TileRole(l *level.Level, t *entity.Tile) Role {
	switch t.Action() {
	case entity.ActionAirport:
		if l.Airports[t.Owner.Index].Base != t {
			return RoleCargo
		}
		return RoleAirport
	case entity.ActionKaboom:
		return RoleHazard
	case entity.ActionGate, entity.ActionLGate:
		return RoleGate
	case entity.ActionFan, entity.ActionMagnet, entity.ActionAirgen:
		return RoleField
	}
	if t.Test == entity.NoCollision {
		return RoleDecoration
	}
	return RoleWall
}
