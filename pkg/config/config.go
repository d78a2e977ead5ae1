// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/opd-ai/go-freecg/pkg/entity"
)

// ErrInvalidConfig is wrapped by every error returned from Validate.
var ErrInvalidConfig = errors.New("invalid config")

// GameConfig contains configuration for a freecg session
type GameConfig struct {
	Tuning  entity.Tuning `json:"tuning"`
	Assets  AssetConfig   `json:"assets"`
	Audio   AudioConfig   `json:"audio"`
	Display DisplayConfig `json:"display"`
}

// AssetConfig locates the level, tile sheet and sounds
type AssetConfig struct {
	LevelPath   string `json:"levelPath"`
	GFXPath     string `json:"gfxPath"`
	SoundDir    string `json:"soundDir"`
	SheetWidth  int    `json:"sheetWidth"` // used with a solid map when gfxPath is empty
	SheetHeight int    `json:"sheetHeight"`
}

// AudioConfig contains sound settings
type AudioConfig struct {
	Enabled      bool    `json:"enabled"`
	MasterVolume float64 `json:"masterVolume"` // 0..1
	SampleRate   int     `json:"sampleRate"`
}

// DisplayConfig selects and sizes the renderer
type DisplayConfig struct {
	Renderer   string  `json:"renderer"` // terminal or engo
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Fullscreen bool    `json:"fullscreen"`
	Scale      float64 `json:"scale"`
}

// LoadConfig loads a configuration from a file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Tuning: entity.DefaultTuning(),
		Assets: AssetConfig{
			LevelPath:   "levels/demo.yaml",
			GFXPath:     "",
			SoundDir:    "sounds",
			SheetWidth:  512,
			SheetHeight: 512,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 0.8,
			SampleRate:   44100,
		},
		Display: DisplayConfig{
			Renderer:   "terminal",
			Width:      800,
			Height:     600,
			Fullscreen: false,
			Scale:      1,
		},
	}
}

// Validate reports every setting that would make the game unplayable.
func (c *GameConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	t := &c.Tuning
	check(t.ShipW > 0 && t.ShipH > 0, "ship size %dx%d must be positive", t.ShipW, t.ShipH)
	check(t.Gravity >= 0, "gravity %g must not be negative", t.Gravity)
	check(t.EngineAccel > t.Gravity, "engine acceleration %g cannot lift against gravity %g", t.EngineAccel, t.Gravity)
	check(t.AirResistance >= 0, "air resistance %g must not be negative", t.AirResistance)
	check(t.MaxFuel > 0, "max fuel %g must be positive", t.MaxFuel)
	check(t.FuelSpeed >= 0, "fuel speed %g must not be negative", t.FuelSpeed)
	check(t.DefaultLife >= 0, "default lives %d must not be negative", t.DefaultLife)
	check(t.MaxFreight > 0, "max freight %d must be positive", t.MaxFreight)
	check(t.MaxVX > 0 && t.MaxVY > 0, "landing speed limits must be positive")
	check(t.BlockSize > 0, "block size %d must be positive", t.BlockSize)
	check(len(t.BarSpeeds) > 0, "bar speed table is empty")
	check(t.BarMinLen >= 0 && t.GateBarMinLen >= 0, "bar minimum lengths must not be negative")
	check(t.KaboomDuration >= 0 && t.TransferDelay >= 0, "delays must not be negative")

	check(c.Assets.SheetWidth > 0 && c.Assets.SheetHeight > 0,
		"sheet size %dx%d must be positive", c.Assets.SheetWidth, c.Assets.SheetHeight)
	check(c.Audio.MasterVolume >= 0 && c.Audio.MasterVolume <= 1,
		"master volume %g must be within [0,1]", c.Audio.MasterVolume)
	check(!c.Audio.Enabled || c.Audio.SampleRate > 0, "sample rate %d must be positive", c.Audio.SampleRate)
	check(c.Display.Renderer == "terminal" || c.Display.Renderer == "engo",
		"unknown renderer %q", c.Display.Renderer)
	check(c.Display.Width > 0 && c.Display.Height > 0,
		"display size %dx%d must be positive", c.Display.Width, c.Display.Height)
	check(c.Display.Scale > 0, "display scale %g must be positive", c.Display.Scale)

	return errors.Join(errs...)
}
