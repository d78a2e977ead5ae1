package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length wave that decays exponentially
type oscillator struct {
	freq     float64
	phase    float64
	decay    float64 // per second, 0 holds the level
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a wave generator of the given length
func NewOscillator(freq float64, duration time.Duration, decay float64, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		decay:    decay,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewPCG(uint64(freq), 7)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}
		t := float64(o.position) / float64(o.rate)
		val *= math.Exp(-o.decay * t)

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// newVolume scales s by vol in [0,1]
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is a plain sine of the given length
func tone(rate beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		// frequency above Nyquist
		return beep.Silence(rate.N(d))
	}
	return beep.Take(rate.N(d), sine)
}

// synthesize builds the stand-in for a missing WAV file
func synthesize(s Sound, rate beep.SampleRate) beep.Streamer {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }

	switch s {
	case SoundEngine:
		return beep.Mix(
			newVolume(NewOscillator(0, ms(500), 0, WaveNoise, rate), 0.15),
			newVolume(NewOscillator(70, ms(500), 0, WaveSaw, rate), 0.25),
		)
	case SoundLanding:
		return newVolume(NewOscillator(220, ms(150), 12, WaveSine, rate), 0.6)
	case SoundCollision:
		return beep.Mix(
			newVolume(NewOscillator(0, ms(600), 6, WaveNoise, rate), 0.6),
			newVolume(NewOscillator(60, ms(600), 5, WaveSine, rate), 0.5),
		)
	case SoundPickup:
		return beep.Seq(tone(rate, 660, ms(80)), tone(rate, 880, ms(120)))
	case SoundDropItem:
		return beep.Seq(tone(rate, 880, ms(80)), tone(rate, 660, ms(120)))
	case SoundFuel:
		return newVolume(NewOscillator(440, ms(300), 4, WaveSquare, rate), 0.3)
	case SoundKey:
		return newVolume(NewOscillator(1320, ms(200), 10, WaveSine, rate), 0.6)
	case SoundExtra:
		return beep.Seq(tone(rate, 523.25, ms(90)), tone(rate, 659.25, ms(90)), tone(rate, 783.99, ms(160)))
	}
	return beep.Silence(0)
}
