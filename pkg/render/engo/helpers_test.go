package engo

import (
	"testing"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-freecg/pkg/collision"
	"github.com/opd-ai/go-freecg/pkg/engine"
	"github.com/opd-ai/go-freecg/pkg/levelfile"
)

// fakeRender stands in for common.RenderSystem, which needs a GL context
type fakeRender struct {
	added   []*common.RenderComponent
	removed []uint64
}

func (f *fakeRender) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	f.added = append(f.added, render)
}

func (f *fakeRender) Remove(basic ecs.BasicEntity) {
	f.removed = append(f.removed, basic.ID())
}

func newDemoGame(t *testing.T) *engine.Game {
	t.Helper()
	l, err := levelfile.LoadFile("../../../levels/demo.yaml", levelfile.Options{})
	if err != nil {
		t.Fatalf("Failed to load demo level: %v", err)
	}
	g, err := engine.NewGame(l, collision.SolidMap(512, 512), nil, nil)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	return g
}
