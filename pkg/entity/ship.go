// pkg/entity/ship.go
package entity

import (
	"math"

	"github.com/opd-ai/go-freecg/pkg/event"
	"github.com/opd-ai/go-freecg/pkg/physics"
)

// Freight is one unit of cargo that has to reach the home base. Origin is the
// airport it was picked up from, so it can be returned when the ship dies.
type Freight struct {
	Origin *Airport
}

// Ship is the player's craft
type Ship struct {
	Position physics.Vector2D // top-left corner of the sprite
	Velocity physics.Vector2D
	Rot      float64 // heading in radians, 3π/2 is up
	RotSpeed float64

	Fuel         float64
	Life         int
	MaxVX, MaxVY float64
	Dead         bool

	// Airport is the pad the ship is docked on, nil while airborne.
	Airport *Airport

	Freight    *Stack[Freight]
	MaxFreight int
	Keys       [NumKeys]bool
	HasTurbo   bool

	Events event.Publisher

	engine bool
	tuning *Tuning
}

// NewShip creates a ship able to hold up to freightCapacity freight units.
// The ship is not placed anywhere until Restart is called.
func NewShip(t *Tuning, freightCapacity int, events event.Publisher) *Ship {
	if events == nil {
		events = event.Discard
	}
	return &Ship{
		Rot:        3 * math.Pi / 2,
		Fuel:       t.MaxFuel,
		Life:       t.DefaultLife,
		MaxVX:      t.MaxVX,
		MaxVY:      t.MaxVY,
		Freight:    NewStack[Freight](freightCapacity),
		MaxFreight: t.MaxFreight,
		Events:     events,
		tuning:     t,
	}
}

// Restart puts the ship back on its home pad after a death: upright, at
// rest, fully fuelled and with any held freight sent back where it came from.
func (s *Ship) Restart(home *Airport) {
	t := s.tuning
	s.Velocity = physics.Vector2D{}
	s.RotSpeed = 0
	s.Position = physics.Vector2D{
		X: float64(home.Base.X + (home.Base.W-t.ShipW)/2),
		Y: float64(home.Base.Y) - t.HoverOffset,
	}
	s.setEngine(false)
	s.Rot = 3 * math.Pi / 2
	s.Airport = home
	s.Fuel = t.MaxFuel
	s.Dead = false
	s.RevertFreight()
}

// Engine reports whether the engine is running
func (s *Ship) Engine() bool {
	return s.engine
}

// SetEngine switches the engine. It only starts while there is fuel left.
func (s *Ship) SetEngine(on bool) {
	s.setEngine(on && s.Fuel > 0)
}

// setEngine publishes an event on every change of engine state.
func (s *Ship) setEngine(on bool) {
	if on == s.engine {
		return
	}
	s.engine = on
	typ := event.EngineStopped
	if on {
		typ = event.EngineStarted
	}
	s.Events.Publish(event.NewShipEvent(typ, s, 0, s.Position.X, s.Position.Y, s.Life))
}

// SetRotation sets the turn rate applied while airborne
func (s *Ship) SetRotation(speed float64) {
	s.RotSpeed = speed
}

// Rotate turns the ship by delta radians
func (s *Ship) Rotate(delta float64) {
	s.Rot = physics.NormalizeAngle(s.Rot + delta)
}

// ToggleKey flips key i. Only used by debug input.
func (s *Ship) ToggleKey(i int) {
	s.Keys[i] = !s.Keys[i]
}

// DiscreteRot returns the sprite/thrust sector of the current heading
func (s *Ship) DiscreteRot() int {
	return physics.DiscreteRot(s.Rot)
}

// Center returns the centre of the ship sprite
func (s *Ship) Center() physics.Vector2D {
	return physics.Vector2D{
		X: s.Position.X + float64(s.tuning.ShipW)/2,
		Y: s.Position.Y + float64(s.tuning.ShipH)/2,
	}
}

// Tile returns the ship as a tile: its pixel bounds and the sheet origin of
// the sprite frame for the current rotation.
func (s *Ship) Tile() Tile {
	t := s.tuning
	return Tile{
		X:    int(math.Floor(s.Position.X)),
		Y:    int(math.Floor(s.Position.Y)),
		W:    t.ShipW,
		H:    t.ShipH,
		TexX: t.ShipTexX + s.DiscreteRot()*t.ShipW,
		TexY: t.ShipTexY,
		Test: Bitmap,
	}
}

// Step integrates the ship over dt. Thrust follows the quantized heading.
// A docked ship stays pinned to its pad until the net vertical
// acceleration points up.
func (s *Ship) Step(dt float64) {
	t := s.tuning
	var accel physics.Vector2D

	if s.Airport == nil {
		s.Rotate(s.RotSpeed * dt)
	} else {
		// fans and magnets may have nudged a parked ship
		s.Velocity = physics.Vector2D{}
	}

	if s.engine {
		accel = physics.FromAngle(physics.DiscreteAngle(s.DiscreteRot()), t.EngineAccel)
		s.Fuel -= t.FuelSpeed * dt
		if s.Fuel < 0 {
			s.Fuel = 0
			s.setEngine(false)
		}
	}

	accel = accel.Sub(s.Velocity.Scale(t.AirResistance))
	if s.Airport == nil {
		accel.Y += t.Gravity
	}

	if s.Airport != nil && accel.Y < 0 {
		s.Airport.CancelTransfer()
		s.Airport = nil
	}
	if s.Airport != nil {
		return
	}

	s.Velocity = s.Velocity.Add(accel.Scale(dt))
	s.Position = s.Position.Add(s.Velocity.Scale(dt))
}

// LoadFreight moves the top freight unit of a onto the ship
func (s *Ship) LoadFreight(a *Airport) {
	c := a.PopCargo()
	s.Freight.Push(c.Freight)
}

// UnloadFreight moves the most recently loaded freight unit onto a
func (s *Ship) UnloadFreight(a *Airport) {
	f := s.Freight.Pop()
	a.cargo.Push(Cargo{Freight: f})
}

// RevertFreight returns every held freight unit to its origin airport
func (s *Ship) RevertFreight() {
	for s.Freight.Len() > 0 {
		f := s.Freight.Pop()
		f.Origin.PushCargo(Cargo{Freight: f})
	}
}
