// Package entity holds the level objects of the simulation: tiles, the ship
// and the interactive objects (bars, gates, locked gates, air generators,
// airports, fans and magnets). Each object has up to three entry points:
// Touch, called by the collision engine when the ship hits one of its tiles;
// Step, called once per frame; and Animate, which only moves texture
// offsets.
package entity

import (
	"math"
	"math/rand/v2"
)

// NumKeys is the number of key colours a ship can carry.
const NumKeys = 4

// Frame carries the per-step inputs shared by every object simulator.
type Frame struct {
	Time   float64 // absolute simulation time of this step
	DT     float64
	Ship   *Ship
	Tuning *Tuning
	Rand   *rand.Rand
}

var (
	magnetAnimOrder = []int{0, 1, 2, 1}
	fanAnimOrder    = []int{0, 1, 2}
	airgenAnimOrder = []int{0, 1, 2, 3, 4, 5, 6, 7}
	barAnimOrder    = [2][]int{{0, 1}, {1, 0}}
	keyAnimOrder    = []int{0, 1, 2, 3, 4, 5, 6, 7}
)

// animFrame maps absolute time to an entry of order.
func animFrame(order []int, time, speed float64) int {
	phase := int(math.Round(time*speed)) % len(order)
	if phase < 0 {
		phase += len(order)
	}
	return order[phase]
}
