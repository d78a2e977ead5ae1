// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-freecg/pkg/engine"
	"github.com/opd-ai/go-freecg/pkg/entity"
)

// Button names registered by SetupInputBindings
const (
	buttonThrust = "thrust"
	buttonLeft   = "turnLeft"
	buttonRight  = "turnRight"
	buttonQuit   = "quit"
)

var keyButtons = [entity.NumKeys]string{"key1", "key2", "key3", "key4"}

// InputSystem samples the keyboard once per frame and feeds it to the game
type InputSystem struct {
	game *engine.Game
	read func() (c engine.Controls, quit bool)
	quit func()
}

// NewInputSystem creates an input system reading engo's button state
func NewInputSystem(game *engine.Game) *InputSystem {
	return &InputSystem{
		game: game,
		read: readControls,
		quit: engo.Exit,
	}
}

// Priority runs input ahead of the simulation step
func (is *InputSystem) Priority() int {
	return 30
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update implements ecs.System
func (is *InputSystem) Update(dt float32) {
	c, quit := is.read()
	if quit {
		is.quit()
		return
	}
	is.game.Apply(c)
}

func readControls() (engine.Controls, bool) {
	var c engine.Controls
	c.Thrust = engo.Input.Button(buttonThrust).Down()
	if engo.Input.Button(buttonLeft).Down() {
		c.Turn--
	}
	if engo.Input.Button(buttonRight).Down() {
		c.Turn++
	}
	for i, name := range keyButtons {
		c.ToggleKeys[i] = engo.Input.Button(name).JustPressed()
	}
	return c, engo.Input.Button(buttonQuit).JustPressed()
}

// SetupInputBindings sets up the key bindings for the game
func SetupInputBindings() {
	engo.Input.RegisterButton(buttonThrust, engo.KeyArrowUp, engo.KeySpace)
	engo.Input.RegisterButton(buttonLeft, engo.KeyArrowLeft)
	engo.Input.RegisterButton(buttonRight, engo.KeyArrowRight)
	engo.Input.RegisterButton(buttonQuit, engo.KeyEscape, engo.KeyQ)

	// debug: toggle keys without collecting them
	engo.Input.RegisterButton(keyButtons[0], engo.KeyOne)
	engo.Input.RegisterButton(keyButtons[1], engo.KeyTwo)
	engo.Input.RegisterButton(keyButtons[2], engo.KeyThree)
	engo.Input.RegisterButton(keyButtons[3], engo.KeyFour)
}
