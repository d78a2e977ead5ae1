package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/opd-ai/go-freecg/pkg/event"
	"github.com/opd-ai/go-freecg/pkg/logging"
)

// Config contains the audio settings the manager needs
type Config struct {
	Enabled      bool
	MasterVolume float64
	SampleRate   int
	SoundDir     string
}

// SoundManager turns game events into sound. It is safe to use from the
// goroutine publishing events while the speaker plays in the background.
type SoundManager struct {
	mu          sync.Mutex
	cfg         Config
	format      beep.Format
	buffers     [numSounds]*beep.Buffer
	loaded      [numSounds]bool // false means synthesized
	mixer       *beep.Mixer
	engine      *beep.Ctrl
	initialized bool

	// play hands a finished streamer to the output
	play func(beep.Streamer)

	subs   []event.SubscriptionID
	bus    *event.Bus
	logger *logging.Logger
}

// NewSoundManager creates a sound manager with every effect synthesized.
// Call Load to replace them with WAV files.
func NewSoundManager(cfg Config, logger *logging.Logger) *SoundManager {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 44100
	}
	if logger == nil {
		logger = logging.Nop()
	}
	sm := &SoundManager{
		cfg:    cfg,
		format: beep.Format{SampleRate: beep.SampleRate(cfg.SampleRate), NumChannels: 2, Precision: 2},
		mixer:  &beep.Mixer{},
		logger: logger,
	}
	sm.play = sm.mixerPlay
	for s := Sound(0); s < numSounds; s++ {
		buf := beep.NewBuffer(sm.format)
		buf.Append(synthesize(s, sm.format.SampleRate))
		sm.buffers[s] = buf
	}
	return sm
}

// Load decodes SOUND1.WAV .. SOUND8.WAV from the sound directory. Missing
// files keep their synthesized stand-in; files that fail to decode do too,
// and are reported in the returned error.
func (sm *SoundManager) Load() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	var errs []error
	for s := Sound(0); s < numSounds; s++ {
		path := filepath.Join(sm.cfg.SoundDir, s.FileName())
		f, err := os.Open(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		buf, err := decodeWAV(f, sm.format)
		f.Close()
		if err != nil {
			errs = append(errs, logging.WrapError(err, "failed to decode %s", path))
			continue
		}
		sm.buffers[s] = buf
		sm.loaded[s] = true
	}
	return errors.Join(errs...)
}

// decodeWAV reads a whole WAV stream into a buffer at format's rate
func decodeWAV(r io.Reader, format beep.Format) (*beep.Buffer, error) {
	stream, f, err := wav.Decode(r)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	var s beep.Streamer = stream
	if f.SampleRate != format.SampleRate {
		s = beep.Resample(4, f.SampleRate, format.SampleRate, stream)
	}
	buf := beep.NewBuffer(format)
	buf.Append(s)
	if err := stream.Err(); err != nil {
		return nil, err
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("no samples")
	}
	return buf, nil
}

// Loaded reports whether s came from a WAV file
func (sm *SoundManager) Loaded(s Sound) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.loaded[s]
}

// Initialize opens the speaker. It does nothing when audio is disabled or
// already initialized.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	rate := sm.format.SampleRate
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return logging.WrapError(err, "failed to open audio device")
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and detaches from the event bus
func (sm *SoundManager) Cleanup() {
	sm.Detach()

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	if sm.engine != nil {
		sm.engine.Paused = true
	}
	sm.mixer.Clear()
	speaker.Unlock()
	sm.engine = nil
	sm.initialized = false
}

// mixerPlay adds s to the speaker mix
func (sm *SoundManager) mixerPlay(s beep.Streamer) {
	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// streamer returns a fresh reader of sound s
// Note: Called from within locked context
func (sm *SoundManager) streamer(s Sound) beep.StreamSeeker {
	buf := sm.buffers[s]
	return buf.Streamer(0, buf.Len())
}

// Play starts one-shot effect s
func (sm *SoundManager) Play(s Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if s < 0 || s >= numSounds {
		return
	}
	sm.play(newVolume(sm.streamer(s), sm.cfg.MasterVolume))
}

// SetEngine starts or pauses the engine loop. Repeated calls with the
// same state do nothing.
func (sm *SoundManager) SetEngine(on bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.engine == nil {
		if !on {
			return
		}
		sm.engine = &beep.Ctrl{Streamer: beep.Loop(-1, sm.streamer(SoundEngine))}
		sm.play(newVolume(sm.engine, sm.cfg.MasterVolume))
		return
	}
	if sm.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	sm.engine.Paused = !on
}

// EngineRunning reports whether the engine loop is audible
func (sm *SoundManager) EngineRunning() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.engine != nil && !sm.engine.Paused
}

// Handle plays whatever e calls for
func (sm *SoundManager) Handle(e event.Event) {
	switch e.GetType() {
	case event.EngineStarted:
		sm.SetEngine(true)
	case event.EngineStopped:
		sm.SetEngine(false)
	default:
		if s, ok := SoundFor(e.GetType()); ok {
			sm.Play(s)
			sm.logger.Debug(context.Background(), "Sound played", "sound", s.String())
		}
	}
}

// Attach subscribes the manager to every sound-bearing event on bus
func (sm *SoundManager) Attach(bus *event.Bus) {
	types := []event.Type{
		event.EngineStarted, event.EngineStopped,
		event.ShipLanded, event.ShipCrashed,
		event.FreightPickedUp, event.FreightDelivered,
		event.FuelLoaded, event.KeyCollected, event.ExtraCollected,
	}
	subs := make([]event.SubscriptionID, 0, len(types))
	for _, t := range types {
		subs = append(subs, bus.Subscribe(t, sm.Handle))
	}

	sm.mu.Lock()
	sm.bus, sm.subs = bus, subs
	sm.mu.Unlock()
}

// Detach removes the subscriptions made by Attach
func (sm *SoundManager) Detach() {
	sm.mu.Lock()
	bus, subs := sm.bus, sm.subs
	sm.bus, sm.subs = nil, nil
	sm.mu.Unlock()

	for _, id := range subs {
		bus.Unsubscribe(id)
	}
}
