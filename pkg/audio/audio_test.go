package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/opd-ai/go-freecg/pkg/event"
)

func TestSoundFileNames(t *testing.T) {
	tests := []struct {
		sound Sound
		file  string
		name  string
	}{
		{SoundEngine, "SOUND1.WAV", "engine"},
		{SoundLanding, "SOUND2.WAV", "landing"},
		{SoundCollision, "SOUND3.WAV", "collision"},
		{SoundExtra, "SOUND8.WAV", "extra"},
	}
	for _, tt := range tests {
		if got := tt.sound.FileName(); got != tt.file {
			t.Errorf("Expected %s, got %s", tt.file, got)
		}
		if got := tt.sound.String(); got != tt.name {
			t.Errorf("Expected %s, got %s", tt.name, got)
		}
	}
	if Sound(42).String() != "unknown" {
		t.Error("Expected unknown name for an out-of-range sound")
	}
}

func TestSoundFor(t *testing.T) {
	tests := []struct {
		typ  event.Type
		want Sound
		ok   bool
	}{
		{event.ShipLanded, SoundLanding, true},
		{event.ShipCrashed, SoundCollision, true},
		{event.FreightPickedUp, SoundPickup, true},
		{event.FreightDelivered, SoundDropItem, true},
		{event.FuelLoaded, SoundFuel, true},
		{event.KeyCollected, SoundKey, true},
		{event.ExtraCollected, SoundExtra, true},
		{event.EngineStarted, 0, false},
		{event.GameWon, 0, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			got, ok := SoundFor(tt.typ)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("Expected %v/%v, got %v/%v", tt.want, tt.ok, got, ok)
			}
		})
	}
}

func TestSynthesizedEffectsHaveSamples(t *testing.T) {
	sm := NewSoundManager(Config{SampleRate: 22050, MasterVolume: 1}, nil)
	for s := Sound(0); s < numSounds; s++ {
		if sm.buffers[s].Len() == 0 {
			t.Errorf("Expected samples for %s", s)
		}
		if sm.Loaded(s) {
			t.Errorf("Expected %s to be synthesized", s)
		}
	}
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(100, 50*time.Millisecond, 0, WaveSquare, rate)

	buf := make([][2]float64, 128)
	n, ok := osc.Stream(buf)
	if n != 50 || !ok {
		t.Errorf("Expected 50 samples, got %d (ok=%v)", n, ok)
	}
	if buf[0][0] != 1 {
		t.Errorf("Expected square wave to start high, got %f", buf[0][0])
	}
	if n, ok := osc.Stream(buf); n != 0 || ok {
		t.Errorf("Expected drained oscillator, got %d (ok=%v)", n, ok)
	}
}

// writeWAV encodes a short tone to path
func writeWAV(t *testing.T, path string, rate beep.SampleRate) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, tone(rate, 440, 100*time.Millisecond), format); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeWAV(t, filepath.Join(dir, "SOUND4.WAV"), 22050)
	writeWAV(t, filepath.Join(dir, "SOUND6.WAV"), 11025)
	if err := os.WriteFile(filepath.Join(dir, "SOUND7.WAV"), []byte("not a wav"), 0o644); err != nil {
		t.Fatal(err)
	}

	sm := NewSoundManager(Config{SampleRate: 22050, SoundDir: dir}, nil)
	key := sm.buffers[SoundKey]
	if err := sm.Load(); err == nil {
		t.Error("Expected an error for the broken SOUND7.WAV")
	}

	if !sm.Loaded(SoundPickup) || !sm.Loaded(SoundFuel) {
		t.Error("Expected pickup and fuel to load from disk")
	}
	if sm.Loaded(SoundEngine) || sm.Loaded(SoundKey) {
		t.Error("Expected engine and key to stay synthesized")
	}
	if sm.buffers[SoundKey] != key {
		t.Error("Expected broken file to keep the synthesized key sound")
	}
	// 100ms at either source rate is about 2205 samples at 22050
	if n := sm.buffers[SoundFuel].Len(); n < 2150 || n > 2260 {
		t.Errorf("Expected resampled fuel sound of ~2205 samples, got %d", n)
	}
}

// recorder replaces the speaker
type recorder struct {
	played []beep.Streamer
}

func (r *recorder) play(s beep.Streamer) {
	r.played = append(r.played, s)
}

func newTestManager() (*SoundManager, *recorder) {
	sm := NewSoundManager(Config{SampleRate: 8000, MasterVolume: 0.5}, nil)
	rec := &recorder{}
	sm.play = rec.play
	return sm, rec
}

func TestSetEngine(t *testing.T) {
	sm, rec := newTestManager()

	sm.SetEngine(false)
	if len(rec.played) != 0 || sm.EngineRunning() {
		t.Error("Expected stopping a silent engine to do nothing")
	}

	sm.SetEngine(true)
	sm.SetEngine(true)
	if len(rec.played) != 1 || !sm.EngineRunning() {
		t.Errorf("Expected one engine loop, got %d", len(rec.played))
	}

	sm.SetEngine(false)
	if sm.EngineRunning() {
		t.Error("Expected engine paused")
	}
	sm.SetEngine(true)
	if len(rec.played) != 1 || !sm.EngineRunning() {
		t.Error("Expected the same loop to resume")
	}
}

func TestAttach(t *testing.T) {
	sm, rec := newTestManager()
	bus := event.NewEventBus()
	sm.Attach(bus)

	bus.Publish(event.NewCargoEvent(event.FuelLoaded, nil, 0, 2))
	bus.Publish(event.NewShipEvent(event.ShipCrashed, nil, 0, 0, 0, 1))
	bus.Publish(event.NewShipEvent(event.GameWon, nil, 0, 0, 0, 1))
	bus.Publish(event.NewShipEvent(event.EngineStarted, nil, 0, 0, 0, 1))

	if len(rec.played) != 3 {
		t.Errorf("Expected 3 streams, got %d", len(rec.played))
	}
	if !sm.EngineRunning() {
		t.Error("Expected engine loop after EngineStarted")
	}

	sm.Detach()
	bus.Publish(event.NewCargoEvent(event.KeyCollected, nil, 0, 0))
	if len(rec.played) != 3 {
		t.Error("Expected no sound after Detach")
	}
}

func TestUninitializedIsSilent(t *testing.T) {
	sm := NewSoundManager(Config{Enabled: false}, nil)
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	if err := sm.Initialize(); err != nil {
		t.Errorf("Expected disabled audio to initialize as a no-op, got %v", err)
	}
	sm.Play(SoundKey)
	sm.Play(Sound(99))
	sm.SetEngine(true)
	sm.SetEngine(false)
	sm.Cleanup()
}
