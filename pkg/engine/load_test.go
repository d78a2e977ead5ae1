package engine

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/opd-ai/go-freecg/pkg/config"
)

func demoConfig() *config.GameConfig {
	cfg := config.DefaultConfig()
	cfg.Assets.LevelPath = "../../levels/demo.yaml"
	return cfg
}

func TestLoadGame_SolidMap(t *testing.T) {
	cfg := demoConfig()
	g, sheet, err := LoadGame(cfg, nil, nil, nil)
	if err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}
	if sheet != nil {
		t.Error("Expected no sheet without a gfx path")
	}
	m := g.Collision.Map()
	if m.W != cfg.Assets.SheetWidth || m.H != cfg.Assets.SheetHeight {
		t.Errorf("Expected a %dx%d map, got %dx%d", cfg.Assets.SheetWidth, cfg.Assets.SheetHeight, m.W, m.H)
	}
	if !m.Opaque(3, 3) {
		t.Error("Expected a solid map")
	}
	if g.Level.Name != "Demo" {
		t.Errorf("Expected level Demo, got %q", g.Level.Name)
	}
}

func TestLoadGame_TuningFromConfig(t *testing.T) {
	cfg := demoConfig()
	cfg.Tuning.DefaultLife = 7
	g, _, err := LoadGame(cfg, nil, nil, nil)
	if err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}
	if g.Level.Ship.Life != 7 {
		t.Errorf("Expected 7 lives, got %d", g.Level.Ship.Life)
	}
}

func TestLoadGame_Sheet(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 512, 512))
	img.Set(1, 1, color.NRGBA{255, 255, 255, 255})
	path := filepath.Join(t.TempDir(), "sheet.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	cfg := demoConfig()
	cfg.Assets.GFXPath = path
	g, sheet, err := LoadGame(cfg, nil, nil, nil)
	if err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}
	if sheet == nil {
		t.Fatal("Expected the decoded sheet")
	}
	m := g.Collision.Map()
	if !m.Opaque(1, 1) || m.Opaque(2, 2) {
		t.Error("Expected the map to follow the sheet alpha")
	}
}

func TestLoadGame_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.GameConfig)
	}{
		{"missing level", func(c *config.GameConfig) { c.Assets.LevelPath = "does-not-exist.yaml" }},
		{"missing sheet", func(c *config.GameConfig) { c.Assets.GFXPath = "does-not-exist.gfx" }},
		{"sheet too small", func(c *config.GameConfig) { c.Assets.SheetWidth, c.Assets.SheetHeight = 16, 16 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := demoConfig()
			tt.modify(cfg)
			if _, _, err := LoadGame(cfg, nil, nil, nil); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
