package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestTermInput_Quit(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want bool
	}{
		{"escape", key(tcell.KeyEscape), true},
		{"ctrl-c", key(tcell.KeyCtrlC), true},
		{"q", runeKey('q'), true},
		{"up", key(tcell.KeyUp), false},
		{"digit", runeKey('2'), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &termInput{}
			if got := in.handle(tt.ev, time.Now()); got != tt.want {
				t.Errorf("Expected quit %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTermInput_ThrustToggles(t *testing.T) {
	in := &termInput{}
	now := time.Now()

	in.handle(key(tcell.KeyUp), now)
	if !in.controls(now).Thrust {
		t.Error("Expected up to start the engine")
	}
	in.handle(runeKey(' '), now)
	if in.controls(now).Thrust {
		t.Error("Expected space to stop the engine")
	}

	in.handle(key(tcell.KeyUp), now)
	in.stop()
	if in.controls(now).Thrust {
		t.Error("Expected stop to switch the engine off")
	}
}

func TestTermInput_TurnExpires(t *testing.T) {
	in := &termInput{}
	now := time.Now()

	in.handle(key(tcell.KeyLeft), now)
	if got := in.controls(now.Add(turnHold / 2)).Turn; got != -1 {
		t.Errorf("Expected a left turn, got %d", got)
	}
	if got := in.controls(now.Add(turnHold)).Turn; got != 0 {
		t.Errorf("Expected the turn to expire, got %d", got)
	}

	in.handle(key(tcell.KeyRight), now)
	if got := in.controls(now).Turn; got != 1 {
		t.Errorf("Expected a right turn, got %d", got)
	}
}

func TestTermInput_TogglesOnce(t *testing.T) {
	in := &termInput{}
	now := time.Now()

	in.handle(runeKey('3'), now)
	in.handle(runeKey('9'), now)
	c := in.controls(now)
	if !c.ToggleKeys[2] {
		t.Error("Expected key 3 to toggle the third key")
	}
	for i, on := range c.ToggleKeys {
		if on && i != 2 {
			t.Errorf("Expected only the third key, got key %d", i+1)
		}
	}
	if in.controls(now).ToggleKeys[2] {
		t.Error("Expected the toggle to be delivered once")
	}
}
