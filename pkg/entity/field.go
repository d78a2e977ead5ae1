// pkg/entity/field.go
package entity

import "math"

// FieldModifier returns the strength in [0,1] of a field blowing along dir
// through zone, felt by s. It is 1 at the emitter face and falls off
// linearly to 0 at the far side of the zone.
func FieldModifier(dir Dir, zone *Tile, s *Ship) float64 {
	c := s.Center()
	var m float64
	switch dir {
	case Up:
		m = 1 - math.Abs(float64(zone.Y+zone.H)-c.Y)/float64(zone.H)
	case Down:
		m = 1 - math.Abs(float64(zone.Y)-c.Y)/float64(zone.H)
	case Left:
		m = 1 - math.Abs(float64(zone.X+zone.W)-c.X)/float64(zone.W)
	case Right:
		m = 1 - math.Abs(float64(zone.X)-c.X)/float64(zone.W)
	}
	return min(1, max(0, m))
}

// Fan pushes the ship away from its face.
type Fan struct {
	Zone     *Tile
	Base     *Tile // animated blades
	TexX     int
	Dir      Dir
	Power    int // index into Tuning.FanAccel, 0 is strong
	Modifier float64
}

// Touch is the collision handler
func (fn *Fan) Touch(s *Ship) {
	fn.Modifier = FieldModifier(fn.Dir, fn.Zone, s)
}

// Step applies this frame's push and resets the modifier.
func (fn *Fan) Step(f *Frame) {
	if fn.Modifier == 0 {
		return
	}
	dv := f.Tuning.FanAccel[fn.Power] * fn.Modifier * f.DT
	v := &f.Ship.Velocity
	switch fn.Dir {
	case Down:
		v.Y += dv
	case Up:
		v.Y -= dv
	case Right:
		v.X += dv
	case Left:
		v.X -= dv
	}
	fn.Modifier = 0
}

// Animate spins the blades
func (fn *Fan) Animate(t *Tuning, time float64) {
	if fn.Base == nil {
		return
	}
	fn.Base.TexX = fn.TexX + animFrame(fanAnimOrder, time, t.Anim.Fan)*fn.Base.W
}

// Magnet pulls the ship towards its face.
type Magnet struct {
	Zone     *Tile
	Magnet   *Tile // animated coil
	TexX     int
	Dir      Dir
	Modifier float64
}

// Touch is the collision handler
func (m *Magnet) Touch(s *Ship) {
	m.Modifier = FieldModifier(m.Dir, m.Zone, s)
}

// Step applies this frame's pull and resets the modifier.
func (m *Magnet) Step(f *Frame) {
	if m.Modifier == 0 {
		return
	}
	dv := f.Tuning.MagnetAccel * m.Modifier * f.DT
	v := &f.Ship.Velocity
	switch m.Dir {
	case Down:
		v.Y -= dv
	case Up:
		v.Y += dv
	case Right:
		v.X -= dv
	case Left:
		v.X += dv
	}
	m.Modifier = 0
}

// Animate pulses the coil
func (m *Magnet) Animate(t *Tuning, time float64) {
	if m.Magnet == nil {
		return
	}
	m.Magnet.TexX = m.TexX + animFrame(magnetAnimOrder, time, t.Anim.Magnet)*m.Magnet.W
}
