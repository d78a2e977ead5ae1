// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-freecg/pkg/engine"
	"github.com/opd-ai/go-freecg/pkg/level"
	"github.com/opd-ai/go-freecg/pkg/physics"
)

// CameraSystem keeps the level's camera anchor in the middle of the view
// without showing anything past the level edges.
type CameraSystem struct {
	game         *engine.Game
	viewW, viewH float32

	current engo.Point
	// dispatch delivers camera moves; engo's mailbox outside of tests
	dispatch func(msg common.CameraMessage)
}

// NewCameraSystem creates a camera for a viewW × viewH view
func NewCameraSystem(game *engine.Game, viewW, viewH float32) *CameraSystem {
	return &CameraSystem{
		game:  game,
		viewW: viewW,
		viewH: viewH,
		dispatch: func(msg common.CameraMessage) {
			engo.Mailbox.Dispatch(msg)
		},
	}
}

// Priority runs the camera after the tiles have moved
func (cs *CameraSystem) Priority() int {
	return 5
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {}

// Update implements ecs.System
func (cs *CameraSystem) Update(dt float32) {
	var target engo.Point
	cs.game.Do(func(l *level.Level) {
		target = Follow(l.CameraAnchor(), l.Width(), l.Height(), cs.viewW, cs.viewH)
	})
	if target == cs.current {
		return
	}
	cs.current = target
	cs.dispatch(common.CameraMessage{Axis: common.XAxis, Value: target.X})
	cs.dispatch(common.CameraMessage{Axis: common.YAxis, Value: target.Y})
}

// Position returns the centre of the view in level pixels
func (cs *CameraSystem) Position() engo.Point {
	return cs.current
}

// Follow returns the view centre that keeps anchor in sight on a
// levelW × levelH level. A level narrower than the view is centred.
func Follow(anchor physics.Vector2D, levelW, levelH int, viewW, viewH float32) engo.Point {
	return engo.Point{
		X: followAxis(float32(anchor.X), float32(levelW), viewW),
		Y: followAxis(float32(anchor.Y), float32(levelH), viewH),
	}
}

func followAxis(v, levelLen, viewLen float32) float32 {
	if levelLen <= viewLen {
		return levelLen / 2
	}
	half := viewLen / 2
	return max(half, min(v, levelLen-half))
}
