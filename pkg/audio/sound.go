// Package audio plays the game's sound effects with beep. Sounds are
// loaded from SOUND1.WAV .. SOUND8.WAV and replaced by synthesized
// effects when a file is missing.
package audio

import (
	"fmt"

	"github.com/opd-ai/go-freecg/pkg/event"
)

// Sound identifies one effect
type Sound int

const (
	SoundEngine Sound = iota // looped while the engine runs
	SoundLanding
	SoundCollision
	SoundPickup
	SoundDropItem
	SoundFuel
	SoundKey
	SoundExtra

	numSounds
)

var soundNames = [numSounds]string{
	"engine", "landing", "collision", "pickup", "dropitem", "fuel", "key", "extra",
}

// String returns the effect name
func (s Sound) String() string {
	if s < 0 || s >= numSounds {
		return "unknown"
	}
	return soundNames[s]
}

// FileName returns the WAV file the effect is loaded from
func (s Sound) FileName() string {
	return fmt.Sprintf("SOUND%d.WAV", int(s)+1)
}

// SoundFor returns the one-shot effect an event triggers. Engine events
// control the engine loop instead and report false.
func SoundFor(t event.Type) (Sound, bool) {
	switch t {
	case event.ShipLanded:
		return SoundLanding, true
	case event.ShipCrashed:
		return SoundCollision, true
	case event.FreightPickedUp:
		return SoundPickup, true
	case event.FreightDelivered:
		return SoundDropItem, true
	case event.FuelLoaded:
		return SoundFuel, true
	case event.KeyCollected:
		return SoundKey, true
	case event.ExtraCollected:
		return SoundExtra, true
	}
	return 0, false
}
