// pkg/engine/game.go
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/opd-ai/go-freecg/pkg/collision"
	"github.com/opd-ai/go-freecg/pkg/event"
	"github.com/opd-ai/go-freecg/pkg/level"
	"github.com/opd-ai/go-freecg/pkg/logging"
)

// Game drives one playthrough of a level: it owns the clock, runs every
// simulator, the ship and the collision pass, and moves the level between
// Alive, Victory and Lost.
type Game struct {
	Level     *level.Level
	Collision *collision.Engine
	EventBus  *event.Bus

	// StateLock guards Level against input and render goroutines. Step
	// holds it for the whole frame.
	StateLock sync.Mutex

	logger *logging.Logger
	ctx    context.Context
}

// NewGame initialises l and prepares it for stepping. cmap is the opacity
// map of the tile sheet the level is drawn from.
func NewGame(l *level.Level, cmap *collision.Map, bus *event.Bus, logger *logging.Logger) (*Game, error) {
	if bus == nil {
		bus = event.NewEventBus()
	}
	if logger == nil {
		logger = logging.Nop()
	}
	if err := l.Init(bus); err != nil {
		return nil, logging.WrapError(err, "failed to start level %q", l.Name)
	}

	g := &Game{
		Level:     l,
		Collision: collision.NewEngine(cmap),
		EventBus:  bus,
		logger:    logger,
		ctx:       logging.WithRunID(context.Background(), ""),
	}
	g.logger.Info(g.ctx, "Level started",
		"level", l.Name,
		"freight", l.NumAllFreight,
		"lives", l.Ship.Life,
	)
	return g, nil
}

// Status returns the current game status
func (g *Game) Status() level.Status {
	g.StateLock.Lock()
	defer g.StateLock.Unlock()
	return g.Level.Status
}

// Do runs fn with the state lock held. Input handlers and renderers use it
// to touch the level between steps.
func (g *Game) Do(fn func(l *level.Level)) {
	g.StateLock.Lock()
	defer g.StateLock.Unlock()
	fn(g.Level)
}

// Step advances the game to absolute time t. A clock that stands still or
// runs backwards advances nothing.
func (g *Game) Step(t float64) {
	g.StateLock.Lock()
	defer g.StateLock.Unlock()

	l := g.Level
	if t < l.Time {
		t = l.Time
	}
	dt := t - l.Time

	g.animateObjects(t)
	g.stepObjects(t, dt)

	switch {
	case l.Status != level.Alive:
		// terminal
	case l.Delivered():
		g.setStatus(level.Victory, t)
	case !l.Ship.Dead:
		l.Ship.Step(dt)
		if g.Collision.Resolve(l) && !l.Ship.Dead {
			g.killShip(t)
		}
	default:
		g.kaboomStep(t)
	}

	l.Time = t
}

// animateObjects moves texture offsets only.
func (g *Game) animateObjects(t float64) {
	l := g.Level
	for _, m := range l.Magnets {
		m.Animate(l.Tuning, t)
	}
	for _, f := range l.Fans {
		f.Animate(l.Tuning, t)
	}
	for _, a := range l.Airgens {
		a.Animate(l.Tuning, t)
	}
	for _, b := range l.Bars {
		b.Animate(l.Tuning, t)
	}
	for _, a := range l.Airports {
		a.Animate(l.Tuning, t)
	}
}

// stepObjects runs every object simulator, whatever the ship is doing.
func (g *Game) stepObjects(t, dt float64) {
	l := g.Level
	f := l.Frame(t, dt)
	for _, a := range l.Airgens {
		a.Step(f)
	}
	for _, b := range l.Bars {
		b.Step(f)
	}
	for _, gate := range l.Gates {
		gate.Step(f)
	}
	for _, lg := range l.LGates {
		lg.Step(f)
	}
	for _, a := range l.Airports {
		a.Step(f)
	}
	for _, fan := range l.Fans {
		fan.Step(f)
	}
	for _, m := range l.Magnets {
		m.Step(f)
	}
}

// KillShip destroys the ship now, as if it had crashed.
func (g *Game) KillShip() {
	g.StateLock.Lock()
	defer g.StateLock.Unlock()
	if !g.Level.Ship.Dead {
		g.killShip(g.Level.Time)
	}
}

// killShip starts the explosion window.
// Note: Called from within locked context
func (g *Game) killShip(t float64) {
	l := g.Level
	s := l.Ship
	s.Dead = true
	s.SetEngine(false)
	l.KaboomEnd = t + l.Tuning.KaboomDuration
	l.KaboomProgress = 0

	g.EventBus.Publish(event.NewShipEvent(event.ShipCrashed, g, t, s.Position.X, s.Position.Y, s.Life))
	g.logger.Debug(g.ctx, "Ship crashed",
		"x", s.Position.X,
		"y", s.Position.Y,
		"lives", s.Life,
	)
}

// kaboomStep plays out the explosion and then respawns the ship or ends
// the game.
// Note: Called from within locked context
func (g *Game) kaboomStep(t float64) {
	l := g.Level
	if l.KaboomEnd > t {
		if d := l.Tuning.KaboomDuration; d > 0 {
			l.KaboomProgress = min(1, max(0, 1-(l.KaboomEnd-t)/d))
		}
		return
	}

	l.KaboomProgress = 1
	s := l.Ship
	s.Life--
	if s.Life < 0 {
		g.setStatus(level.Lost, t)
		return
	}

	s.Restart(l.Homebase)
	l.KaboomProgress = 0
	g.EventBus.Publish(event.NewShipEvent(event.ShipRespawned, g, t, s.Position.X, s.Position.Y, s.Life))
	g.logger.Info(g.ctx, "Ship respawned", "lives", s.Life)
}

// setStatus moves the game into a terminal state.
// Note: Called from within locked context
func (g *Game) setStatus(status level.Status, t float64) {
	l := g.Level
	l.Status = status
	typ := event.GameWon
	if status == level.Lost {
		typ = event.GameLost
	}
	g.EventBus.Publish(event.NewShipEvent(typ, g, t, l.Ship.Position.X, l.Ship.Position.Y, l.Ship.Life))
	g.logger.Info(g.ctx, "Game over",
		"status", status.String(),
		"time", t,
		"delivered", l.Homebase.CargoCount(),
	)
}

// Run steps the game against the wall clock every tick until ctx is
// cancelled. onFrame, when set, is called after each step with the lock
// held, for drawing.
func (g *Game) Run(ctx context.Context, tick time.Duration, onFrame func(l *level.Level)) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			g.Step(now.Sub(start).Seconds())
			if onFrame != nil {
				g.Do(onFrame)
			}
		}
	}
}
