// cmd/freecg/input.go
package main

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-freecg/pkg/engine"
	"github.com/opd-ai/go-freecg/pkg/entity"
)

// turnHold is how long one arrow key event keeps the ship turning. Terminals
// report presses and auto-repeats but never releases.
const turnHold = 150 * time.Millisecond

// termInput turns terminal key events into per-frame controls. The engine
// is a switch: up or space flips it.
type termInput struct {
	mu        sync.Mutex
	thrust    bool
	turn      int
	turnUntil time.Time
	toggles   [entity.NumKeys]bool
}

// handle records ev and reports whether the player asked to quit
func (in *termInput) handle(ev *tcell.EventKey, now time.Time) bool {
	in.mu.Lock()
	defer in.mu.Unlock()

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		in.thrust = !in.thrust
	case tcell.KeyLeft:
		in.turn, in.turnUntil = -1, now.Add(turnHold)
	case tcell.KeyRight:
		in.turn, in.turnUntil = 1, now.Add(turnHold)
	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r == 'q':
			return true
		case r == ' ':
			in.thrust = !in.thrust
		case r >= '1' && r < '1'+entity.NumKeys:
			in.toggles[r-'1'] = true
		}
	}
	return false
}

// controls returns the input for the frame at now. Key toggles are
// delivered once.
func (in *termInput) controls(now time.Time) engine.Controls {
	in.mu.Lock()
	defer in.mu.Unlock()

	c := engine.Controls{Thrust: in.thrust, ToggleKeys: in.toggles}
	if now.Before(in.turnUntil) {
		c.Turn = in.turn
	}
	in.toggles = [entity.NumKeys]bool{}
	return c
}

// stop switches the engine off, after the ship has crashed
func (in *termInput) stop() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.thrust = false
}
