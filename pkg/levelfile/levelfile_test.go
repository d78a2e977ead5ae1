package levelfile

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/opd-ai/go-freecg/pkg/entity"
	"github.com/opd-ai/go-freecg/pkg/level"
	"github.com/opd-ai/go-freecg/pkg/validation"
)

func TestLoadFile_Demo(t *testing.T) {
	l, err := LoadFile("../../levels/demo.yaml", Options{SheetW: 512, SheetH: 512})
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if l.Name != "Demo" {
		t.Errorf("Expected name 'Demo', got '%s'", l.Name)
	}
	if l.Width() != 512 || l.Height() != 384 {
		t.Errorf("Expected 512x384, got %dx%d", l.Width(), l.Height())
	}
	if len(l.Airports) != 3 || len(l.Gates) != 1 || len(l.Bars) != 1 || len(l.Fans) != 1 {
		t.Errorf("Unexpected object counts: %d airports, %d gates, %d bars, %d fans",
			len(l.Airports), len(l.Gates), len(l.Bars), len(l.Fans))
	}
	if len(l.Tiles) != 17 {
		t.Errorf("Expected 17 tiles, got %d", len(l.Tiles))
	}
	if l.NumAllFreight != 2 {
		t.Errorf("Expected 2 freight units, got %d", l.NumAllFreight)
	}
	if l.Ship == nil || l.Ship.Airport != l.Homebase {
		t.Error("Expected ship docked at the home base")
	}
	if l.Status != level.Alive {
		t.Errorf("Expected Alive, got %v", l.Status)
	}
}

func TestLoadFile_DemoWiring(t *testing.T) {
	l, err := LoadFile("../../levels/demo.yaml", Options{})
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	freight := l.Airports[1]
	if freight.Kind != entity.FreightAirport || freight.CargoCount() != 2 {
		t.Fatalf("Expected freight airport with 2 units, got %v with %d", freight.Kind, freight.CargoCount())
	}
	if freight.CargoAt(0).Freight.Origin != freight {
		t.Error("Expected freight to remember its origin")
	}
	for i, slot := range freight.Slots {
		if slot.Visual != entity.Simple || slot.Test != entity.Rect {
			t.Errorf("Expected slot %d visible, got %v/%v", i, slot.Visual, slot.Test)
		}
		if slot.Owner != (entity.Handle{Kind: entity.ActionAirport, Index: 1}) {
			t.Errorf("Expected slot %d owned by airport 1, got %+v", i, slot.Owner)
		}
	}

	g := l.Gates[0]
	if g.Len != 96 || g.MaxLen != 96 {
		t.Errorf("Expected closed gate of 96, got %f/%f", g.Len, g.MaxLen)
	}
	if g.Bar.Action() != entity.ActionKaboom {
		t.Errorf("Expected lethal gate bar, got %v", g.Bar.Action())
	}

	bar := l.Bars[0]
	if bar.FLen != 40 || bar.SLen != 40 || bar.Gap != 80 {
		t.Errorf("Expected segments 40/40 with gap 80, got %f/%f/%f", bar.FLen, bar.SLen, bar.Gap)
	}
	// the first segment can reach y=199, block row 3
	if !slices.Contains(l.Grid.Block(5, 3), bar.First) {
		t.Error("Expected first segment indexed over its full reach")
	}

	fan := l.Fans[0]
	if fan.Zone.Owner != (entity.Handle{Kind: entity.ActionFan, Index: 0}) || fan.Zone.Test != entity.RectPoint {
		t.Errorf("Unexpected fan zone %+v", fan.Zone)
	}
	if fan.Base == nil || fan.TexX != 320 {
		t.Error("Expected animated fan base")
	}
}

func TestLoad_Objects(t *testing.T) {
	src := `
name: Objects
width: 4
height: 4
airports:
  - kind: homebase
    base: {rect: [0, 200, 40, 8], tex: [0, 0]}
    zone: [0, 170, 40, 30]
  - kind: extras
    base: {rect: [100, 200, 40, 8], tex: [0, 0]}
    zone: [100, 170, 40, 30]
    extras: [life, turbo]
  - kind: key
    base: {rect: [160, 200, 40, 8], tex: [0, 0]}
    zone: [160, 170, 40, 30]
    key: 2
    cargo: 1
    slots:
      - {rect: [170, 190, 10, 10], tex: [0, 0]}
lgates:
  - type: left
    bar: {rect: [50, 0, 60, 8], tex: [0, 0]}
    trigger: {rect: [40, 0, 80, 40], tex: [0, 0]}
    keys: [2]
    lights:
      - {rect: [50, 10, 4, 4], tex: [0, 0]}
airgens:
  - spin: ccw
    zone: {rect: [200, 20, 30, 30], tex: [0, 0]}
magnets:
  - dir: left
    zone: {rect: [10, 60, 60, 40], tex: [0, 0]}
`
	l, err := Load(strings.NewReader(src), Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	extras := l.Airports[1]
	if extras.CargoCount() != 2 || extras.CargoAt(1).Extra != entity.Turbo {
		t.Errorf("Expected turbo on top of the extras stack")
	}
	key := l.Airports[2]
	if key.Key != 2 || key.CargoCount() != 1 {
		t.Errorf("Expected key airport granting key 2, got %d with %d items", key.Key, key.CargoCount())
	}

	lg := l.LGates[0]
	if !lg.Keys[2] || lg.Keys[0] {
		t.Errorf("Expected only key 2 required, got %v", lg.Keys)
	}
	if lg.MaxLen != 60 || lg.Type != entity.GateLeft {
		t.Errorf("Expected left gate of 60, got %v of %f", lg.Type, lg.MaxLen)
	}
	if lg.Lights[0] == nil || lg.Lights[1] != nil {
		t.Error("Expected one light")
	}
	if l.Airgens[0].Spin != entity.CCW {
		t.Error("Expected counter-clockwise airgen")
	}
	if l.Magnets[0].Dir != entity.Left {
		t.Error("Expected magnet pointing left")
	}
}

func TestLoad_Errors(t *testing.T) {
	home := `
airports:
  - kind: homebase
    base: {rect: [0, 200, 40, 8], tex: [0, 0]}
    zone: [0, 170, 40, 30]
`
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"malformed yaml", "name: [", "failed to parse"},
		{"unknown field", "name: X\nwidth: 1\nheight: 1\nlives: 3\n", "failed to parse"},
		{"bad name", "name: ''\nwidth: 1\nheight: 1\n", "is empty"},
		{"zero size", "name: X\nwidth: 0\nheight: 1\n", "not positive"},
		{"bad test", "name: X\nwidth: 4\nheight: 4\ntiles:\n  - {rect: [0,0,1,1], test: circle}\n", "unknown collision test"},
		{"bad action", "name: X\nwidth: 4\nheight: 4\ntiles:\n  - {rect: [0,0,1,1], action: fan}\n", "none or kaboom"},
		{"bad kind", "name: X\nwidth: 4\nheight: 4\nairports:\n  - kind: bank\n", "unknown kind"},
		{"bad gate", "name: X\nwidth: 4\nheight: 4\n" + home + "gates:\n  - type: middle\n", "unknown gate type"},
		{"bad fan dir", "name: X\nwidth: 4\nheight: 4\n" + home + "fans:\n  - dir: sideways\n", "unknown direction"},
		{"bad key", "name: X\nwidth: 4\nheight: 4\n" + home + "lgates:\n  - type: top\n    keys: [7]\n", "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.src), Options{})
			if err == nil {
				t.Fatalf("Expected error containing '%s', got nil", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing '%s', got '%v'", tt.want, err)
			}
		})
	}
}

func TestLoad_NoHomebase(t *testing.T) {
	_, err := Load(strings.NewReader("name: X\nwidth: 2\nheight: 2\n"), Options{})
	if !errors.Is(err, level.ErrNoHomebase) {
		t.Errorf("Expected ErrNoHomebase, got %v", err)
	}
}

func TestLoad_ValidatesAgainstSheet(t *testing.T) {
	_, err := LoadFile("../../levels/demo.yaml", Options{SheetW: 256, SheetH: 256})
	if !errors.Is(err, validation.ErrInvalidLevel) {
		t.Errorf("Expected ErrInvalidLevel, got %v", err)
	}
}

func TestLoad_SlidingBitmapReach(t *testing.T) {
	src := `
name: Slide
width: 4
height: 4
airports:
  - kind: homebase
    base: {rect: [0, 200, 40, 8], tex: [0, 0]}
    zone: [0, 170, 40, 30]
bars:
  - orientation: horizontal
    gap_kind: variable
    len: 100
    min_speed: 0
    max_speed: 2
    first: {rect: [20, 100, 4, 8], tex: [%d, 480], test: bitmap}
    second: {rect: [116, 100, 4, 8], tex: [0, 488], test: bitmap}
`
	tests := []struct {
		name    string
		texX    int
		wantErr bool
	}{
		{"reaches past the sheet edge", 0, true},
		{"stays on the sheet", 200, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(fmt.Sprintf(src, tt.texX)), Options{SheetW: 512, SheetH: 512})
			if !tt.wantErr {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, validation.ErrInvalidLevel) {
				t.Fatalf("Expected ErrInvalidLevel, got %v", err)
			}
			if !strings.Contains(err.Error(), "bar 0 slides its bitmap") {
				t.Errorf("Expected sliding bitmap error, got '%v'", err)
			}
		})
	}
}

func TestBuild_TuningIsCopied(t *testing.T) {
	tun := entity.DefaultTuning()
	doc := &Document{Name: "Copy", Width: 2, Height: 2, BlockSize: 32}
	doc.Airports = []AirportSpec{{
		Kind: "homebase",
		Base: TileSpec{Rect: [4]int{0, 40, 20, 4}},
		Zone: [4]int{0, 20, 20, 20},
	}}

	l, err := Build(doc, Options{Tuning: &tun})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if l.Tuning.BlockSize != 32 {
		t.Errorf("Expected block size 32, got %d", l.Tuning.BlockSize)
	}
	if tun.BlockSize != 64 {
		t.Errorf("Expected caller tuning untouched, got %d", tun.BlockSize)
	}
}
