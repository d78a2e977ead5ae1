// Package level holds the aggregate state of one playthrough: the tile
// grid, every level object, the ship and the game status.
package level

import (
	"errors"
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-freecg/pkg/entity"
	"github.com/opd-ai/go-freecg/pkg/event"
	"github.com/opd-ai/go-freecg/pkg/physics"
)

// Status is the state of a playthrough. Victory and Lost are terminal.
type Status int

const (
	Alive Status = iota
	Victory
	Lost
)

// String returns the status name
func (s Status) String() string {
	switch s {
	case Alive:
		return "Alive"
	case Victory:
		return "Victory"
	case Lost:
		return "Lost"
	default:
		return "Unknown"
	}
}

// ErrNoHomebase is returned by Init for a level without a home base.
var ErrNoHomebase = errors.New("level has no home base")

// Level owns every tile and object of a loaded level. Objects refer to
// tiles by pointer; tiles refer back to objects by Handle.
type Level struct {
	Name   string
	Grid   *Grid
	Tiles  []*entity.Tile // every tile, in draw order
	Tuning *entity.Tuning
	Rand   *rand.Rand

	Gates    []*entity.Gate
	LGates   []*entity.LGate
	Airgens  []*entity.Airgen
	Bars     []*entity.Bar
	Airports []*entity.Airport
	Fans     []*entity.Fan
	Magnets  []*entity.Magnet

	Homebase      *entity.Airport
	Ship          *entity.Ship
	NumAllFreight int

	Time           float64
	KaboomEnd      float64
	KaboomProgress float64 // 0 at the crash, 1 when the ship respawns
	Status         Status
}

// New creates an empty level of width × height blocks.
func New(name string, width, height int, t *entity.Tuning, rng *rand.Rand) *Level {
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 1))
	}
	return &Level{
		Name:   name,
		Grid:   NewGrid(width, height, t.BlockSize),
		Tuning: t,
		Rand:   rng,
	}
}

// Width returns the level width in pixels
func (l *Level) Width() int {
	return l.Grid.Width * l.Grid.BlockSize
}

// Height returns the level height in pixels
func (l *Level) Height() int {
	return l.Grid.Height * l.Grid.BlockSize
}

// AddTile registers t for drawing and collision at its current bounds.
func (l *Level) AddTile(t *entity.Tile) {
	l.Tiles = append(l.Tiles, t)
	l.Grid.Insert(t)
}

// AddTileSpan registers t for drawing and indexes it under span, the
// largest area a sliding tile can reach.
func (l *Level) AddTileSpan(t *entity.Tile, span physics.Rect) {
	l.Tiles = append(l.Tiles, t)
	l.Grid.InsertSpan(t, span)
}

// AddGate registers g and returns the handle its tiles must carry.
func (l *Level) AddGate(g *entity.Gate) entity.Handle {
	l.Gates = append(l.Gates, g)
	return entity.Handle{Kind: entity.ActionGate, Index: len(l.Gates) - 1}
}

// AddLGate registers g and returns the handle its tiles must carry.
func (l *Level) AddLGate(g *entity.LGate) entity.Handle {
	l.LGates = append(l.LGates, g)
	return entity.Handle{Kind: entity.ActionLGate, Index: len(l.LGates) - 1}
}

// AddAirgen registers a and returns the handle its tiles must carry.
func (l *Level) AddAirgen(a *entity.Airgen) entity.Handle {
	l.Airgens = append(l.Airgens, a)
	return entity.Handle{Kind: entity.ActionAirgen, Index: len(l.Airgens) - 1}
}

// AddBar registers b. Bars have no handler of their own; their segments
// are usually lethal.
func (l *Level) AddBar(b *entity.Bar) {
	l.Bars = append(l.Bars, b)
}

// AddAirport registers a, sets its ID and returns the handle its tiles must
// carry. The first home base added becomes the spawn point.
func (l *Level) AddAirport(a *entity.Airport) entity.Handle {
	a.ID = len(l.Airports)
	l.Airports = append(l.Airports, a)
	if a.Kind == entity.Homebase && l.Homebase == nil {
		l.Homebase = a
	}
	return entity.Handle{Kind: entity.ActionAirport, Index: a.ID}
}

// AddFan registers f and returns the handle its tiles must carry.
func (l *Level) AddFan(f *entity.Fan) entity.Handle {
	l.Fans = append(l.Fans, f)
	return entity.Handle{Kind: entity.ActionFan, Index: len(l.Fans) - 1}
}

// AddMagnet registers m and returns the handle its tiles must carry.
func (l *Level) AddMagnet(m *entity.Magnet) entity.Handle {
	l.Magnets = append(l.Magnets, m)
	return entity.Handle{Kind: entity.ActionMagnet, Index: len(l.Magnets) - 1}
}

// Init counts the level's freight, creates the ship on the home base and
// resets the clock. Events raised by the ship go to events.
func (l *Level) Init(events event.Publisher) error {
	if l.Homebase == nil {
		return ErrNoHomebase
	}
	l.NumAllFreight = l.Homebase.CargoCount()
	for _, a := range l.Airports {
		if a.Kind == entity.FreightAirport {
			l.NumAllFreight += a.CargoCount()
		}
	}
	l.Homebase.SetCapacity(max(l.NumAllFreight, l.Homebase.CargoCount()))

	l.Ship = entity.NewShip(l.Tuning, l.NumAllFreight, events)
	l.Ship.Restart(l.Homebase)
	l.Time = 0
	l.KaboomEnd = math.Inf(-1)
	l.KaboomProgress = 0
	l.Status = Alive
	return nil
}

// Frame returns the simulator inputs for a step ending at time.
func (l *Level) Frame(time, dt float64) *entity.Frame {
	return &entity.Frame{
		Time:   time,
		DT:     dt,
		Ship:   l.Ship,
		Tuning: l.Tuning,
		Rand:   l.Rand,
	}
}

// Delivered reports whether every freight unit is on the home base
func (l *Level) Delivered() bool {
	return l.Homebase.CargoCount() == l.NumAllFreight
}

// FreightRemaining returns the number of freight units still waiting on
// freight airports.
func (l *Level) FreightRemaining() int {
	n := 0
	for _, a := range l.Airports {
		if a.Kind == entity.FreightAirport {
			n += a.CargoCount()
		}
	}
	return n
}

// FreightOnAirports lists the freight still waiting on freight airports.
func (l *Level) FreightOnAirports() []entity.Freight {
	var out []entity.Freight
	for _, a := range l.Airports {
		if a.Kind != entity.FreightAirport {
			continue
		}
		for i := 0; i < a.CargoCount(); i++ {
			out = append(out, a.CargoAt(i).Freight)
		}
	}
	return out
}

// CameraAnchor is the point a renderer should keep centred.
func (l *Level) CameraAnchor() physics.Vector2D {
	return l.Ship.Center()
}
