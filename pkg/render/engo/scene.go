// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-freecg/pkg/engine"
	"github.com/opd-ai/go-freecg/pkg/event"
	"github.com/opd-ai/go-freecg/pkg/logging"
)

// GameScene plays one level in an engo window
type GameScene struct {
	game   *engine.Game
	sheet  image.Image
	font   *common.Font
	logger *logging.Logger

	viewW, viewH float32

	clock  *ClockSystem
	tiles  *TileSystem
	camera *CameraSystem
	input  *InputSystem
	hud    *HUDSystem

	subs []event.SubscriptionID
}

// NewGameScene creates a scene for game. sheet is the decoded tile sheet,
// nil to draw plain rectangles.
func NewGameScene(game *engine.Game, sheet image.Image, viewW, viewH float32, logger *logging.Logger) *GameScene {
	if logger == nil {
		logger = logging.Nop()
	}
	return &GameScene{
		game:   game,
		sheet:  sheet,
		logger: logger,
		viewW:  viewW,
		viewH:  viewH,
	}
}

// SetFont enables the status line. The font must be created before Setup.
func (scene *GameScene) SetFont(font *common.Font) {
	scene.font = font
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *GameScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		scene.logger.Error(context.Background(), "Unexpected updater", nil)
		return
	}
	common.SetBackground(color.Black)
	SetupInputBindings()

	rs := &common.RenderSystem{}
	world.AddSystem(rs)

	scene.input = NewInputSystem(scene.game)
	scene.clock = NewClockSystem(scene.game)
	scene.tiles = NewTileSystem(scene.game, NewSpriteCache(scene.sheet), rs)
	scene.camera = NewCameraSystem(scene.game, scene.viewW, scene.viewH)
	scene.hud = NewHUDSystem(scene.game, rs, scene.font)

	world.AddSystem(scene.input)
	world.AddSystem(scene.clock)
	world.AddSystem(scene.tiles)
	world.AddSystem(scene.camera)
	world.AddSystem(scene.hud)

	scene.tiles.Populate()
	scene.hud.Populate()
	scene.subscribeToEvents()
}

// subscribeToEvents logs the end of the game
func (scene *GameScene) subscribeToEvents() {
	ctx := context.Background()
	for _, typ := range []event.Type{event.GameWon, event.GameLost} {
		id := scene.game.EventBus.Subscribe(typ, func(e event.Event) {
			scene.logger.Info(ctx, "Game finished", "event", string(e.GetType()))
		})
		scene.subs = append(scene.subs, id)
	}
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *GameScene) Exit() {
	for _, id := range scene.subs {
		scene.game.EventBus.Unsubscribe(id)
	}
	scene.subs = nil
}

// Run opens a window and plays scene until the player quits
func Run(scene *GameScene, title string, fullscreen bool) {
	engo.Run(engo.RunOptions{
		Title:      title,
		Width:      int(scene.viewW),
		Height:     int(scene.viewH),
		Fullscreen: fullscreen,
	}, scene)
}
