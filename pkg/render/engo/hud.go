// pkg/render/engo/hud.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-freecg/pkg/engine"
	"github.com/opd-ai/go-freecg/pkg/entity"
	"github.com/opd-ai/go-freecg/pkg/level"
	"github.com/opd-ai/go-freecg/pkg/render"
)

// HUD geometry in screen pixels
const (
	hudMargin   = 8
	hudFuelW    = 100
	hudBarH     = 8
	hudPips     = 8 // most lives drawn
	hudPipSize  = 8
	hudPipSpace = 4
	zHUD        = 10
)

var (
	hudFrameColor = color.NRGBA{48, 48, 48, 255}
	hudFuelColor  = color.NRGBA{0, 200, 255, 255}
	hudLowColor   = color.NRGBA{255, 64, 0, 255}
	hudLifeColor  = color.NRGBA{0, 255, 0, 255}
	hudKeyOff     = color.NRGBA{64, 64, 64, 255}
	hudKeyColors  = [entity.NumKeys]color.NRGBA{
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
		{255, 255, 0, 255},
	}
)

// Gauge is one rectangle of the HUD
type Gauge struct {
	X, Y, W, H float32
	Color      color.NRGBA
	Hidden     bool
}

// numGauges is the fuel frame and bar, the life pips and the key lights
const numGauges = 2 + hudPips + entity.NumKeys

// Layout returns the HUD gauges for l in a fixed order: fuel frame, fuel
// bar, life pips, key lights.
func Layout(l *level.Level) []Gauge {
	s := l.Ship
	out := make([]Gauge, 0, numGauges)

	fuel := float32(0)
	if l.Tuning.MaxFuel > 0 {
		fuel = float32(max(0, min(s.Fuel/l.Tuning.MaxFuel, 1)))
	}
	fuelColor := hudFuelColor
	if fuel < 0.2 {
		fuelColor = hudLowColor
	}
	out = append(out,
		Gauge{X: hudMargin, Y: hudMargin, W: hudFuelW, H: hudBarH, Color: hudFrameColor},
		Gauge{X: hudMargin, Y: hudMargin, W: hudFuelW * fuel, H: hudBarH, Color: fuelColor, Hidden: fuel == 0},
	)

	y := float32(hudMargin + hudBarH + hudPipSpace)
	for i := range hudPips {
		out = append(out, Gauge{
			X:      hudMargin + float32(i*(hudPipSize+hudPipSpace)),
			Y:      y,
			W:      hudPipSize,
			H:      hudPipSize,
			Color:  hudLifeColor,
			Hidden: i >= s.Life,
		})
	}

	y += hudPipSize + hudPipSpace
	for i, held := range s.Keys {
		c := hudKeyOff
		if held {
			c = hudKeyColors[i]
		}
		out = append(out, Gauge{
			X:     hudMargin + float32(i*(hudPipSize+hudPipSpace)),
			Y:     y,
			W:     hudPipSize,
			H:     hudPipSize,
			Color: c,
		})
	}
	return out
}

type hudEntity struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// HUDSystem draws the gauges and, with a font, the status line in screen
// space.
type HUDSystem struct {
	game   *engine.Game
	render renderAdder

	gauges []*hudEntity
	status *hudEntity
	font   *common.Font
	text   string
}

// NewHUDSystem creates a HUD. font may be nil to draw gauges only.
func NewHUDSystem(game *engine.Game, rs renderAdder, font *common.Font) *HUDSystem {
	return &HUDSystem{game: game, render: rs, font: font}
}

// Populate adds the HUD entities to the render system. It must run after
// engo has started.
func (hud *HUDSystem) Populate() {
	for range numGauges {
		hud.gauges = append(hud.gauges, hud.newEntity(common.Rectangle{}))
	}
	if hud.font != nil {
		hud.status = hud.newEntity(common.Text{Font: hud.font})
		hud.status.Color = color.White
		hud.status.Position = engo.Point{X: hudMargin, Y: engo.GameHeight() - hudMargin - float32(hud.font.Size)}
	}
	hud.Update(0)
}

func (hud *HUDSystem) newEntity(d common.Drawable) *hudEntity {
	e := &hudEntity{BasicEntity: ecs.NewBasic()}
	e.Drawable = d
	e.SetShader(common.HUDShader)
	e.SetZIndex(zHUD)
	hud.render.Add(&e.BasicEntity, &e.RenderComponent, &e.SpaceComponent)
	return e
}

// Priority runs the HUD last
func (hud *HUDSystem) Priority() int {
	return 0
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update implements ecs.System
func (hud *HUDSystem) Update(dt float32) {
	var gauges []Gauge
	var text string
	hud.game.Do(func(l *level.Level) {
		gauges = Layout(l)
		text = render.StatusLine(l)
	})

	for i, g := range gauges {
		if i >= len(hud.gauges) {
			break
		}
		e := hud.gauges[i]
		e.Position = engo.Point{X: g.X, Y: g.Y}
		e.Width, e.Height = g.W, g.H
		e.Color = g.Color
		e.Hidden = g.Hidden
	}

	if hud.status != nil && text != hud.text {
		hud.text = text
		hud.status.Drawable = common.Text{Font: hud.font, Text: text}
	}
}
