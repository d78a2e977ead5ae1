package config

import (
	"testing"
	"time"
)

func TestApplyEnvironmentOverrides(t *testing.T) {
	t.Setenv("FREECG_LEVEL", "levels/cave.yaml")
	t.Setenv("FREECG_GFX", "CG.GFX")
	t.Setenv("FREECG_AUDIO", "false")
	t.Setenv("FREECG_VOLUME", "0.25")
	t.Setenv("FREECG_RENDERER", "engo")
	t.Setenv("FREECG_WIDTH", "1024")
	t.Setenv("FREECG_GRAVITY", "9.5")
	t.Setenv("FREECG_LIVES", "5")

	c := DefaultConfig()
	c.ApplyEnvironmentOverrides()

	if c.Assets.LevelPath != "levels/cave.yaml" {
		t.Errorf("Expected level 'levels/cave.yaml', got '%s'", c.Assets.LevelPath)
	}
	if c.Assets.GFXPath != "CG.GFX" {
		t.Errorf("Expected gfx 'CG.GFX', got '%s'", c.Assets.GFXPath)
	}
	if c.Audio.Enabled {
		t.Error("Expected audio disabled")
	}
	if c.Audio.MasterVolume != 0.25 {
		t.Errorf("Expected volume 0.25, got %f", c.Audio.MasterVolume)
	}
	if c.Display.Renderer != "engo" || c.Display.Width != 1024 {
		t.Errorf("Expected engo at width 1024, got %s at %d", c.Display.Renderer, c.Display.Width)
	}
	if c.Display.Height != 600 {
		t.Errorf("Expected untouched height 600, got %d", c.Display.Height)
	}
	if c.Tuning.Gravity != 9.5 || c.Tuning.DefaultLife != 5 {
		t.Errorf("Expected gravity 9.5 and 5 lives, got %f and %d", c.Tuning.Gravity, c.Tuning.DefaultLife)
	}
}

func TestApplyEnvironmentOverrides_InvalidValues(t *testing.T) {
	t.Setenv("FREECG_WIDTH", "wide")
	t.Setenv("FREECG_AUDIO", "maybe")
	t.Setenv("FREECG_GRAVITY", "heavy")

	c := DefaultConfig()
	c.ApplyEnvironmentOverrides()

	if c.Display.Width != 800 {
		t.Errorf("Expected default width 800, got %d", c.Display.Width)
	}
	if !c.Audio.Enabled {
		t.Error("Expected audio to stay enabled")
	}
	if c.Tuning.Gravity != 20 {
		t.Errorf("Expected default gravity 20, got %f", c.Tuning.Gravity)
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("FREECG_TEST_STR", "value")
	t.Setenv("FREECG_TEST_INT", "42")
	t.Setenv("FREECG_TEST_BOOL", "true")
	t.Setenv("FREECG_TEST_FLOAT", "0.5")
	t.Setenv("FREECG_TEST_DUR", "250ms")

	if v := getEnvOrDefault("FREECG_TEST_STR", "x"); v != "value" {
		t.Errorf("Expected 'value', got '%s'", v)
	}
	if v := getEnvOrDefault("FREECG_TEST_UNSET", "x"); v != "x" {
		t.Errorf("Expected 'x', got '%s'", v)
	}
	if v := getEnvAsIntOrDefault("FREECG_TEST_INT", 1); v != 42 {
		t.Errorf("Expected 42, got %d", v)
	}
	if v := getEnvAsBoolOrDefault("FREECG_TEST_BOOL", false); !v {
		t.Error("Expected true, got false")
	}
	if v := getEnvAsFloatOrDefault("FREECG_TEST_FLOAT", 1); v != 0.5 {
		t.Errorf("Expected 0.5, got %f", v)
	}
	if v := getEnvAsDurationOrDefault("FREECG_TEST_DUR", time.Second); v != 250*time.Millisecond {
		t.Errorf("Expected 250ms, got %v", v)
	}
}

func TestTickInterval(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", time.Second / 60},
		{"10ms", 10 * time.Millisecond},
		{"-5ms", time.Second / 60},
		{"soon", time.Second / 60},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("FREECG_TICK", tt.value)
			if got := TickInterval(); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
