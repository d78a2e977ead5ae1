package engo

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-freecg/pkg/engine"
)

// ClockSystem advances the game by the frame time engo reports
type ClockSystem struct {
	game *engine.Game
	time float64
}

// NewClockSystem creates a clock starting at the game's current time
func NewClockSystem(game *engine.Game) *ClockSystem {
	c := &ClockSystem{game: game}
	c.game.StateLock.Lock()
	c.time = game.Level.Time
	c.game.StateLock.Unlock()
	return c
}

// Priority runs the step between input and drawing
func (c *ClockSystem) Priority() int {
	return 20
}

// Remove satisfies the ecs.System interface
func (c *ClockSystem) Remove(basic ecs.BasicEntity) {}

// Update implements ecs.System
func (c *ClockSystem) Update(dt float32) {
	c.time += float64(dt)
	c.game.Step(c.time)
}

// Time returns the simulation time of the last step
func (c *ClockSystem) Time() float64 {
	return c.time
}
