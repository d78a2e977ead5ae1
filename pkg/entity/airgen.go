// pkg/entity/airgen.go
package entity

// Spin is the direction an air generator turns the ship.
type Spin int

const (
	CW Spin = iota
	CCW
)

// Airgen spins the ship while it flies through the generator's zone.
type Airgen struct {
	Spin   Spin
	Base   *Tile // animated rotor
	TexX   int
	Active bool
}

// Touch is the collision handler
func (a *Airgen) Touch() {
	a.Active = true
}

// Step rotates the ship if it was in the zone this frame.
func (a *Airgen) Step(f *Frame) {
	if !a.Active {
		return
	}
	delta := f.Tuning.AirgenRotSpeed * f.DT
	if a.Spin == CCW {
		delta = -delta
	}
	f.Ship.Rotate(delta)
	a.Active = false
}

// Animate turns the rotor
func (a *Airgen) Animate(t *Tuning, time float64) {
	if a.Base == nil {
		return
	}
	a.Base.TexX = a.TexX + animFrame(airgenAnimOrder, time, t.Anim.Airgen)*a.Base.W
}
