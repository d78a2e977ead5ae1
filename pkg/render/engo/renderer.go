// pkg/render/engo/renderer.go
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

var (
	kaboomColor = color.NRGBA{255, 96, 0, 255}
	shipColor   = color.NRGBA{0, 255, 255, 255}
)

// roleColors are used for tiles without a sheet texture
var roleColors = map[render.Role]color.NRGBA{
	render.RoleWall:       {128, 128, 128, 255},
	render.RoleDecoration: {64, 64, 64, 255},
	render.RoleHazard:     {200, 32, 32, 255},
	render.RoleGate:       {255, 64, 64, 128},
	render.RoleField:      {64, 64, 255, 96},
	render.RoleAirport:    {0, 255, 0, 255},
	render.RoleCargo:      {255, 255, 0, 255},
}

// renderAdder is the part of common.RenderSystem the tile system needs
type renderAdder interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

type tileEntity struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// TileSystem mirrors every level tile and the ship into render entities and
// keeps their position, size, texture and visibility in step with the game.
type TileSystem struct {
	game    *engine.Game
	sprites *SpriteCache
	render  renderAdder

	tiles []*tileEntity
	ship  *tileEntity
}

// NewTileSystem creates a tile system drawing game through rs
func NewTileSystem(game *engine.Game, sprites *SpriteCache, rs renderAdder) *TileSystem {
	return &TileSystem{game: game, sprites: sprites, render: rs}
}

// Populate creates one entity per tile plus one for the ship. Entities of
// equal depth draw in creation order, so the ship ends up on top.
func (ts *TileSystem) Populate() {
	ts.game.Do(func(l *level.Level) {
		for range l.Tiles {
			ts.tiles = append(ts.tiles, ts.newEntity())
		}
		ts.ship = ts.newEntity()
		ts.sync(l)
	})
}

func (ts *TileSystem) newEntity() *tileEntity {
	e := &tileEntity{BasicEntity: ecs.NewBasic()}
	e.Drawable = common.Rectangle{}
	ts.render.Add(&e.BasicEntity, &e.RenderComponent, &e.SpaceComponent)
	return e
}

// Priority places the tile sync after the simulation step
func (ts *TileSystem) Priority() int {
	return 10
}

// Update implements ecs.System
func (ts *TileSystem) Update(dt float32) {
	ts.game.Do(ts.sync)
}

// Remove implements ecs.System. The slot of a removed tile stays empty so
// the remaining entities keep lining up with l.Tiles.
func (ts *TileSystem) Remove(basic ecs.BasicEntity) {
	for i, e := range ts.tiles {
		if e != nil && e.ID() == basic.ID() {
			ts.render.Remove(basic)
			ts.tiles[i] = nil
			return
		}
	}
}

func (ts *TileSystem) sync(l *level.Level) {
	for i, t := range l.Tiles {
		if i >= len(ts.tiles) {
			break
		}
		if ts.tiles[i] == nil {
			continue
		}
		ts.syncTile(ts.tiles[i], *t, render.Visible(t, l.Time), roleColors[render.TileRole(l, t)])
	}
	if ts.ship == nil {
		return
	}

	s := l.Ship
	if !s.Dead {
		ts.syncTile(ts.ship, s.Tile(), true, shipColor)
		return
	}
	// the wreck fades out over the explosion
	ts.place(ts.ship, s.Tile(), l.KaboomProgress < 1)
	ts.ship.Drawable = common.Rectangle{}
	ts.ship.Color = fade(kaboomColor, 1-l.KaboomProgress)
}

func fade(c color.NRGBA, f float64) color.NRGBA {
	c.A = uint8(float64(c.A) * max(0, min(f, 1)))
	return c
}

func (ts *TileSystem) place(e *tileEntity, t entity.Tile, visible bool) {
	e.Position = engo.Point{X: float32(t.X), Y: float32(t.Y)}
	e.Width = float32(t.W)
	e.Height = float32(t.H)
	e.Hidden = !visible || t.W <= 0 || t.H <= 0
}

func (ts *TileSystem) syncTile(e *tileEntity, t entity.Tile, visible bool, fallback color.NRGBA) {
	ts.place(e, t, visible)
	if e.Hidden {
		return
	}

	if d := ts.sprites.Drawable(t); d != nil {
		e.Drawable = d
		e.Color = color.White
		return
	}
	e.Drawable = common.Rectangle{}
	e.Color = fallback
}
