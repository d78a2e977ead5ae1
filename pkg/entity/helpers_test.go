package entity

import (
	"math/rand/v2"

	"github.com/opd-ai/go-freecg/pkg/event"
)

type recorder struct {
	events []event.Event
}

func (r *recorder) Publish(e event.Event) {
	r.events = append(r.events, e)
}

func (r *recorder) types() []event.Type {
	out := make([]event.Type, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.GetType())
	}
	return out
}

func (r *recorder) count(t event.Type) int {
	n := 0
	for _, e := range r.events {
		if e.GetType() == t {
			n++
		}
	}
	return n
}

func newTestShip() (*Ship, *Tuning, *recorder) {
	tun := DefaultTuning()
	rec := &recorder{}
	return NewShip(&tun, 4, rec), &tun, rec
}

func newFrame(s *Ship, t *Tuning, time, dt float64) *Frame {
	return &Frame{
		Time:   time,
		DT:     dt,
		Ship:   s,
		Tuning: t,
		Rand:   rand.New(rand.NewPCG(1, 2)),
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
