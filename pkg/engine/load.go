package engine

import (
	"image"
	"math/rand/v2"

	"github.com/opd-ai/go-freecg/pkg/collision"
	"github.com/opd-ai/go-freecg/pkg/config"
	"github.com/opd-ai/go-freecg/pkg/event"
	"github.com/opd-ai/go-freecg/pkg/levelfile"
	"github.com/opd-ai/go-freecg/pkg/logging"
)

// LoadGame builds a game from the level and tile sheet named in cfg. The
// returned sheet is nil when cfg names none, and every texel then counts as
// solid. rng may be nil for the default seed.
func LoadGame(cfg *config.GameConfig, rng *rand.Rand, bus *event.Bus, logger *logging.Logger) (*Game, image.Image, error) {
	var sheet image.Image
	cmap := collision.SolidMap(cfg.Assets.SheetWidth, cfg.Assets.SheetHeight)
	if cfg.Assets.GFXPath != "" {
		img, err := collision.LoadSheet(cfg.Assets.GFXPath)
		if err != nil {
			return nil, nil, err
		}
		sheet = img
		cmap = collision.MapFromImage(img)
	}

	tun := cfg.Tuning
	l, err := levelfile.LoadFile(cfg.Assets.LevelPath, levelfile.Options{
		Tuning: &tun,
		Rand:   rng,
		SheetW: cmap.W,
		SheetH: cmap.H,
	})
	if err != nil {
		return nil, nil, err
	}

	g, err := NewGame(l, cmap, bus, logger)
	if err != nil {
		return nil, nil, err
	}
	return g, sheet, nil
}
