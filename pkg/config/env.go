// pkg/config/env.go
package config

import (
	"os"
	"strconv"
	"time"
)

// ApplyEnvironmentOverrides replaces settings with any FREECG_* variables
// that are set. Unparseable values leave the setting unchanged.
func (c *GameConfig) ApplyEnvironmentOverrides() {
	c.Assets.LevelPath = getEnvOrDefault("FREECG_LEVEL", c.Assets.LevelPath)
	c.Assets.GFXPath = getEnvOrDefault("FREECG_GFX", c.Assets.GFXPath)
	c.Assets.SoundDir = getEnvOrDefault("FREECG_SOUND_DIR", c.Assets.SoundDir)

	c.Audio.Enabled = getEnvAsBoolOrDefault("FREECG_AUDIO", c.Audio.Enabled)
	c.Audio.MasterVolume = getEnvAsFloatOrDefault("FREECG_VOLUME", c.Audio.MasterVolume)

	c.Display.Renderer = getEnvOrDefault("FREECG_RENDERER", c.Display.Renderer)
	c.Display.Width = getEnvAsIntOrDefault("FREECG_WIDTH", c.Display.Width)
	c.Display.Height = getEnvAsIntOrDefault("FREECG_HEIGHT", c.Display.Height)

	c.Tuning.Gravity = getEnvAsFloatOrDefault("FREECG_GRAVITY", c.Tuning.Gravity)
	c.Tuning.DefaultLife = getEnvAsIntOrDefault("FREECG_LIVES", c.Tuning.DefaultLife)
}

// TickInterval returns the frame interval from FREECG_TICK, defaulting to
// 60 frames per second.
func TickInterval() time.Duration {
	d := getEnvAsDurationOrDefault("FREECG_TICK", time.Second/60)
	if d <= 0 {
		return time.Second / 60
	}
	return d
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
