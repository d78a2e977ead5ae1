// pkg/entity/airport.go
package entity

import (
	"math"

	"github.com/opd-ai/go-freecg/pkg/event"
	"github.com/opd-ai/go-freecg/pkg/physics"
)

// AirportKind decides what an airport trades with a docked ship.
type AirportKind int

const (
	KeyAirport AirportKind = iota
	ExtrasAirport
	FreightAirport
	Homebase
	FuelAirport
)

var airportKindNames = map[AirportKind]string{
	KeyAirport:     "key",
	ExtrasAirport:  "extras",
	FreightAirport: "freight",
	Homebase:       "homebase",
	FuelAirport:    "fuel",
}

// String returns the level-file name of the airport kind
func (k AirportKind) String() string {
	if name, ok := airportKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// AirportKindFromString parses a level-file airport kind.
func AirportKindFromString(s string) (AirportKind, bool) {
	for k, name := range airportKindNames {
		if name == s {
			return k, true
		}
	}
	return KeyAirport, false
}

// ExtraKind is the bonus carried by an extras airport.
type ExtraKind int

const (
	Turbo ExtraKind = iota
	CargoCapacity
	ExtraLife
)

// String returns the level-file name of the extra
func (e ExtraKind) String() string {
	switch e {
	case Turbo:
		return "turbo"
	case CargoCapacity:
		return "cargo"
	case ExtraLife:
		return "life"
	default:
		return "unknown"
	}
}

// ExtraKindFromString parses a level-file extra name.
func ExtraKindFromString(s string) (ExtraKind, bool) {
	for _, e := range []ExtraKind{Turbo, CargoCapacity, ExtraLife} {
		if e.String() == s {
			return e, true
		}
	}
	return Turbo, false
}

// Cargo is one item stacked on an airport. Extra is meaningful on extras
// airports, Freight on freight airports and the home base.
type Cargo struct {
	Extra   ExtraKind
	Freight Freight
}

// Airport is a landing pad with a stack of cargo. A ship that lands upright
// and slowly enough docks, and after TransferDelay one cargo transfer
// happens.
type Airport struct {
	ID          int
	Kind        AirportKind
	Base        *Tile
	LandingZone physics.Rect // the ship centre must be inside to land
	Key         int          // key index granted by a key airport

	// Slots are the tiles drawing the cargo stack, bottom first. Slot i is
	// visible while the stack holds more than i items.
	Slots []*Tile

	cargo        *Stack[Cargo]
	touched      bool
	scheduled    bool
	transferTime float64
}

// NewAirport creates an airport with room for capacity cargo items.
func NewAirport(id int, kind AirportKind, base *Tile, zone physics.Rect, capacity int) *Airport {
	return &Airport{
		ID:          id,
		Kind:        kind,
		Base:        base,
		LandingZone: zone,
		cargo:       NewStack[Cargo](capacity),
	}
}

// CargoCount returns the number of items left on the airport
func (a *Airport) CargoCount() int {
	return a.cargo.Len()
}

// CargoAt returns the i-th cargo item from the bottom
func (a *Airport) CargoAt(i int) Cargo {
	return a.cargo.At(i)
}

// SetCapacity resizes the cargo stack. The home base needs room for every
// freight unit of the level.
func (a *Airport) SetCapacity(capacity int) {
	a.cargo.Grow(capacity)
}

// Touched reports whether the ship landed on the airport this frame
func (a *Airport) Touched() bool {
	return a.touched
}

// Scheduled returns whether a transfer is pending and when it happens
func (a *Airport) Scheduled() (bool, float64) {
	return a.scheduled, a.transferTime
}

// CancelTransfer drops a pending transfer, used when the ship takes off.
func (a *Airport) CancelTransfer() {
	a.scheduled = false
}

// PopCargo removes the top item and hides its slot tile.
func (a *Airport) PopCargo() Cargo {
	c := a.cargo.Pop()
	if slot := a.slot(a.cargo.Len()); slot != nil {
		slot.Visual = Transparent
		slot.Test = NoCollision
	}
	return c
}

// PushCargo puts an item back on top and shows its slot tile again.
func (a *Airport) PushCargo(c Cargo) {
	if slot := a.slot(a.cargo.Len()); slot != nil {
		slot.Visual = Simple
		slot.Test = Rect
	}
	a.cargo.Push(c)
}

func (a *Airport) slot(i int) *Tile {
	if i < len(a.Slots) {
		return a.Slots[i]
	}
	return nil
}

// Touch is the collision handler. Landing requires the ship to be upright,
// centred over the landing zone and under its speed limits; anything else
// is a crash.
func (a *Airport) Touch(s *Ship) (lethal bool) {
	st := s.Tile()
	cx := float64(st.X + st.W/2)
	cy := float64(st.Y + st.H/2)
	if s.DiscreteRot() != physics.RotUp ||
		!a.LandingZone.ContainsPoint(cx, cy) ||
		math.Abs(s.Velocity.X) >= s.MaxVX ||
		math.Abs(s.Velocity.Y) >= s.MaxVY {
		return true
	}
	if !a.touched && s.Airport != a {
		s.Events.Publish(event.NewShipEvent(event.ShipLanded, a, 0, s.Position.X, s.Position.Y, s.Life))
	}
	a.touched = true
	return false
}

// Step runs a due transfer, then docks a ship that touched down this frame
// and schedules the next transfer when this airport has something to offer.
func (a *Airport) Step(f *Frame) {
	s := f.Ship
	if a.scheduled && a.transferTime < f.Time {
		a.scheduled = false
		a.transfer(s, f.Tuning)
	}
	if !a.touched {
		return
	}
	s.Position.Y = float64(a.Base.Y) - f.Tuning.HoverOffset
	s.Velocity = physics.Vector2D{}
	s.Airport = a
	if !a.scheduled && a.canTransfer(s, f.Tuning) {
		a.scheduled = true
		a.transferTime = f.Time + f.Tuning.TransferDelay
	}
	a.touched = false
}

func (a *Airport) canTransfer(s *Ship, t *Tuning) bool {
	n := a.cargo.Len()
	switch a.Kind {
	case FreightAirport:
		return n > 0 && s.Freight.Len() < s.MaxFreight
	case ExtrasAirport, KeyAirport:
		return n > 0
	case FuelAirport:
		return n > 0 && s.Fuel <= t.MaxFuel-1
	case Homebase:
		return s.Freight.Len() > 0
	}
	return false
}

func (a *Airport) transfer(s *Ship, t *Tuning) {
	var typ event.Type
	switch a.Kind {
	case KeyAirport:
		s.Keys[a.Key] = true
		a.PopCargo()
		typ = event.KeyCollected
	case ExtrasAirport:
		switch a.cargo.Top().Extra {
		case Turbo:
			s.HasTurbo = true
		case CargoCapacity:
			s.MaxFreight++
		case ExtraLife:
			s.Life++
		}
		a.PopCargo()
		typ = event.ExtraCollected
	case FreightAirport:
		s.LoadFreight(a)
		typ = event.FreightPickedUp
	case Homebase:
		for s.Freight.Len() > 0 {
			s.UnloadFreight(a)
		}
		typ = event.FreightDelivered
	case FuelAirport:
		s.Fuel = min(t.MaxFuel, s.Fuel+t.FuelBarrel)
		a.PopCargo()
		typ = event.FuelLoaded
	default:
		return
	}
	s.Events.Publish(event.NewCargoEvent(typ, a, a.ID, a.cargo.Len()))
}

// Animate spins the key shown on a key airport
func (a *Airport) Animate(t *Tuning, time float64) {
	if a.Kind != KeyAirport || len(a.Slots) == 0 {
		return
	}
	slot := a.Slots[0]
	slot.TexX = t.KeyTexX + animFrame(keyAnimOrder, time, t.Anim.Key)*slot.W
}
