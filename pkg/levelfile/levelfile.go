// Package levelfile loads level descriptions written in YAML.
//
// A level lists its static tiles and then each object with the tiles it
// owns. Tiles are written inline:
//
//	{rect: [x, y, w, h], tex: [x, y], test: bitmap}
//
// The loader wires tile owners, indexes sliding tiles over their full
// reach, initialises the ship on the home base and validates the result.
package levelfile

import (
	"bytes"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-freecg/pkg/entity"
	"github.com/opd-ai/go-freecg/pkg/event"
	"github.com/opd-ai/go-freecg/pkg/level"
	"github.com/opd-ai/go-freecg/pkg/logging"
	"github.com/opd-ai/go-freecg/pkg/physics"
	"github.com/opd-ai/go-freecg/pkg/validation"
)

// Document is the top-level YAML layout
type Document struct {
	Name      string `yaml:"name"`
	Width     int    `yaml:"width"`  // blocks
	Height    int    `yaml:"height"` // blocks
	BlockSize int    `yaml:"block_size,omitempty"`

	Tiles    []TileSpec    `yaml:"tiles"`
	Airports []AirportSpec `yaml:"airports"`
	Gates    []GateSpec    `yaml:"gates"`
	LGates   []LGateSpec   `yaml:"lgates"`
	Bars     []BarSpec     `yaml:"bars"`
	Airgens  []AirgenSpec  `yaml:"airgens"`
	Fans     []FanSpec     `yaml:"fans"`
	Magnets  []MagnetSpec  `yaml:"magnets"`
}

// TileSpec describes one tile. Action is honoured on static tiles only;
// object tiles get their owner from the object they belong to.
type TileSpec struct {
	Rect   [4]int `yaml:"rect"`
	Tex    [2]int `yaml:"tex"`
	Test   string `yaml:"test,omitempty"`
	Action string `yaml:"action,omitempty"`
	Visual string `yaml:"visual,omitempty"`
}

type AirportSpec struct {
	Kind   string     `yaml:"kind"`
	Base   TileSpec   `yaml:"base"`
	Zone   [4]int     `yaml:"zone"`
	Key    int        `yaml:"key,omitempty"`
	Cargo  int        `yaml:"cargo,omitempty"`  // freight units, fuel barrels or keys
	Extras []string   `yaml:"extras,omitempty"` // extras airports, bottom first
	Slots  []TileSpec `yaml:"slots,omitempty"`
}

type GateSpec struct {
	Type    string   `yaml:"type"`
	Bar     TileSpec `yaml:"bar"`
	Trigger TileSpec `yaml:"trigger"`
}

type LGateSpec struct {
	GateSpec `yaml:",inline"`
	Keys     []int      `yaml:"keys"`
	Lights   []TileSpec `yaml:"lights,omitempty"`
}

type BarSpec struct {
	Orientation string    `yaml:"orientation"`
	GapKind     string    `yaml:"gap_kind,omitempty"`
	Len         float64   `yaml:"len"`
	Gap         *float64  `yaml:"gap,omitempty"`
	MinSpeed    int       `yaml:"min_speed"`
	MaxSpeed    int       `yaml:"max_speed"`
	Freq        bool      `yaml:"freq,omitempty"`
	First       TileSpec  `yaml:"first"`
	Second      TileSpec  `yaml:"second"`
	Begin       *TileSpec `yaml:"begin,omitempty"`
	End         *TileSpec `yaml:"end,omitempty"`
}

type AirgenSpec struct {
	Spin string    `yaml:"spin"`
	Zone TileSpec  `yaml:"zone"`
	Base *TileSpec `yaml:"base,omitempty"`
}

type FanSpec struct {
	Dir   string    `yaml:"dir"`
	Power int       `yaml:"power,omitempty"`
	Zone  TileSpec  `yaml:"zone"`
	Base  *TileSpec `yaml:"base,omitempty"`
}

type MagnetSpec struct {
	Dir    string    `yaml:"dir"`
	Zone   TileSpec  `yaml:"zone"`
	Magnet *TileSpec `yaml:"magnet,omitempty"`
}

// Options control how a document becomes a level
type Options struct {
	Tuning *entity.Tuning // nil means entity.DefaultTuning
	Rand   *rand.Rand
	SheetW int // tile sheet size used for validation
	SheetH int
}

// LoadFile reads and builds the level at path
func LoadFile(path string, opts Options) (*level.Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, logging.WrapError(err, "failed to read level file %s", path)
	}
	return Load(bytes.NewReader(data), opts)
}

// Load decodes a document from r and builds it
func Load(r io.Reader, opts Options) (*level.Level, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, logging.WrapError(err, "failed to parse level file")
	}
	return Build(&doc, opts)
}

// Build turns doc into an initialised, validated level.
func Build(doc *Document, opts Options) (*level.Level, error) {
	name, err := validation.ValidateLevelName(doc.Name)
	if err != nil {
		return nil, err
	}

	tun := entity.DefaultTuning()
	if opts.Tuning != nil {
		tun = *opts.Tuning
	}
	if doc.BlockSize > 0 {
		tun.BlockSize = doc.BlockSize
	}
	if doc.Width <= 0 || doc.Height <= 0 || tun.BlockSize <= 0 {
		return nil, fmt.Errorf("level %q: size %dx%d blocks of %d is not positive", name, doc.Width, doc.Height, tun.BlockSize)
	}

	b := &builder{l: level.New(name, doc.Width, doc.Height, &tun, opts.Rand)}
	steps := []func(*Document) error{
		b.tiles, b.airports, b.gates, b.lgates, b.bars, b.airgens, b.fans, b.magnets,
	}
	for _, step := range steps {
		if err := step(doc); err != nil {
			return nil, logging.WrapError(err, "level %q", name)
		}
	}

	l := b.l
	if err := l.Init(event.Discard); err != nil {
		return nil, logging.WrapError(err, "level %q", name)
	}
	if opts.SheetW > 0 && opts.SheetH > 0 {
		if err := validation.ValidateLevel(l, opts.SheetW, opts.SheetH); err != nil {
			return nil, logging.WrapError(err, "level %q", name)
		}
	}
	return l, nil
}

type builder struct {
	l *level.Level
}

func toRect(r [4]int) physics.Rect {
	return physics.Rect{X: r[0], Y: r[1], W: r[2], H: r[3]}
}

// tile creates the tile described by desc, owned by owner. def is the test
// used when desc names none.
func tile(desc TileSpec, owner entity.Handle, def entity.TestKind) (*entity.Tile, error) {
	test := def
	if desc.Test != "" {
		var ok bool
		if test, ok = entity.TestKindFromString(desc.Test); !ok {
			return nil, fmt.Errorf("unknown collision test %q", desc.Test)
		}
	}
	r := toRect(desc.Rect)
	t := entity.NewTile(r.X, r.Y, r.W, r.H, desc.Tex[0], desc.Tex[1], test)
	t.Owner = owner

	switch desc.Visual {
	case "", "simple":
	case "transparent":
		t.Visual = entity.Transparent
	case "blink":
		t.Visual = entity.Blink
	default:
		return nil, fmt.Errorf("unknown visual %q", desc.Visual)
	}
	return t, nil
}

// add creates and registers a tile at its own bounds
func (b *builder) add(desc TileSpec, owner entity.Handle, def entity.TestKind) (*entity.Tile, error) {
	t, err := tile(desc, owner, def)
	if err != nil {
		return nil, err
	}
	b.l.AddTile(t)
	return t, nil
}

// addOptional is add for tiles an object can do without
func (b *builder) addOptional(desc *TileSpec, owner entity.Handle, def entity.TestKind) (*entity.Tile, error) {
	if desc == nil {
		return nil, nil
	}
	return b.add(*desc, owner, def)
}

var kaboom = entity.Handle{Kind: entity.ActionKaboom}

func (b *builder) tiles(doc *Document) error {
	for i, desc := range doc.Tiles {
		var owner entity.Handle
		switch desc.Action {
		case "", "none":
		case "kaboom":
			owner = kaboom
		default:
			return fmt.Errorf("tile %d: static tiles take action none or kaboom, got %q", i, desc.Action)
		}
		if _, err := b.add(desc, owner, entity.Bitmap); err != nil {
			return fmt.Errorf("tile %d: %w", i, err)
		}
	}
	return nil
}

func (b *builder) airports(doc *Document) error {
	for i, desc := range doc.Airports {
		kind, ok := entity.AirportKindFromString(desc.Kind)
		if !ok {
			return fmt.Errorf("airport %d: unknown kind %q", i, desc.Kind)
		}

		var payload []entity.Cargo
		if kind == entity.ExtrasAirport {
			for _, name := range desc.Extras {
				extra, ok := entity.ExtraKindFromString(name)
				if !ok {
					return fmt.Errorf("airport %d: unknown extra %q", i, name)
				}
				payload = append(payload, entity.Cargo{Extra: extra})
			}
		} else {
			payload = make([]entity.Cargo, desc.Cargo)
		}

		base, err := tile(desc.Base, entity.Handle{}, entity.Rect)
		if err != nil {
			return fmt.Errorf("airport %d base: %w", i, err)
		}
		capacity := max(len(payload), len(desc.Slots))
		a := entity.NewAirport(0, kind, base, toRect(desc.Zone), capacity)
		a.Key = desc.Key
		h := b.l.AddAirport(a)
		base.Owner = h
		b.l.AddTile(base)

		for j, s := range desc.Slots {
			slot, err := b.add(s, h, entity.Rect)
			if err != nil {
				return fmt.Errorf("airport %d slot %d: %w", i, j, err)
			}
			// hidden until cargo is pushed onto it
			slot.Visual = entity.Transparent
			slot.Test = entity.NoCollision
			a.Slots = append(a.Slots, slot)
		}
		for _, c := range payload {
			if kind == entity.FreightAirport {
				c.Freight = entity.Freight{Origin: a}
			}
			a.PushCargo(c)
		}
	}
	return nil
}

// gate builds the shared part of gates and locked gates. The bar starts
// closed at the length it is drawn with.
func (b *builder) gate(desc GateSpec, g *entity.Gate, h entity.Handle) error {
	typ, ok := entity.GateTypeFromString(desc.Type)
	if !ok {
		return fmt.Errorf("unknown gate type %q", desc.Type)
	}
	bar, err := b.add(desc.Bar, kaboom, entity.Rect)
	if err != nil {
		return fmt.Errorf("bar: %w", err)
	}
	if _, err := b.add(desc.Trigger, h, entity.RectPoint); err != nil {
		return fmt.Errorf("trigger: %w", err)
	}

	g.Type = typ
	g.Bar = bar
	g.MaxLen = float64(bar.H)
	if typ == entity.GateLeft || typ == entity.GateRight {
		g.MaxLen = float64(bar.W)
	}
	g.Len = g.MaxLen
	return nil
}

func (b *builder) gates(doc *Document) error {
	for i, desc := range doc.Gates {
		g := &entity.Gate{}
		if err := b.gate(desc, g, b.l.AddGate(g)); err != nil {
			return fmt.Errorf("gate %d: %w", i, err)
		}
	}
	return nil
}

func (b *builder) lgates(doc *Document) error {
	for i, desc := range doc.LGates {
		g := &entity.LGate{}
		if err := b.gate(desc.GateSpec, &g.Gate, b.l.AddLGate(g)); err != nil {
			return fmt.Errorf("locked gate %d: %w", i, err)
		}
		for _, k := range desc.Keys {
			if k < 0 || k >= entity.NumKeys {
				return fmt.Errorf("locked gate %d: key %d out of range", i, k)
			}
			g.Keys[k] = true
		}
		if len(desc.Lights) > entity.NumKeys {
			return fmt.Errorf("locked gate %d: %d lights for %d keys", i, len(desc.Lights), entity.NumKeys)
		}
		for j, s := range desc.Lights {
			light, err := b.add(s, entity.Handle{}, entity.NoCollision)
			if err != nil {
				return fmt.Errorf("locked gate %d light %d: %w", i, j, err)
			}
			light.Visual = entity.Transparent
			g.Lights[j] = light
		}
	}
	return nil
}

func (b *builder) bars(doc *Document) error {
	for i, desc := range doc.Bars {
		bar, err := b.bar(desc)
		if err != nil {
			return fmt.Errorf("bar %d: %w", i, err)
		}
		b.l.AddBar(bar)
	}
	return nil
}

func (b *builder) bar(desc BarSpec) (*entity.Bar, error) {
	bar := &entity.Bar{
		Len:      desc.Len,
		MinSpeed: desc.MinSpeed,
		MaxSpeed: desc.MaxSpeed,
		Freq:     desc.Freq,
	}
	switch desc.Orientation {
	case "vertical":
		bar.Orientation = entity.Vertical
	case "horizontal":
		bar.Orientation = entity.Horizontal
	default:
		return nil, fmt.Errorf("unknown orientation %q", desc.Orientation)
	}
	switch desc.GapKind {
	case "", "constant":
		bar.GapKind = entity.ConstantGap
	case "variable":
		bar.GapKind = entity.VariableGap
	default:
		return nil, fmt.Errorf("unknown gap kind %q", desc.GapKind)
	}

	first, err := tile(desc.First, kaboom, entity.Rect)
	if err != nil {
		return nil, fmt.Errorf("first: %w", err)
	}
	second, err := tile(desc.Second, kaboom, entity.Rect)
	if err != nil {
		return nil, fmt.Errorf("second: %w", err)
	}
	bar.First, bar.Second = first, second

	n := int(desc.Len)
	if bar.Orientation == entity.Vertical {
		bar.FLen, bar.SLen = float64(first.H), float64(second.H)
		b.l.AddTileSpan(first, physics.Rect{X: first.X, Y: first.Y, W: first.W, H: n})
		b.l.AddTileSpan(second, physics.Rect{X: second.X, Y: second.Y + second.H - n, W: second.W, H: n})
	} else {
		bar.FLen, bar.SLen = float64(first.W), float64(second.W)
		b.l.AddTileSpan(first, physics.Rect{X: first.X, Y: first.Y, W: n, H: first.H})
		b.l.AddTileSpan(second, physics.Rect{X: second.X + second.W - n, Y: second.Y, W: n, H: second.H})
	}
	bar.Gap = bar.Len - bar.FLen - bar.SLen
	if desc.Gap != nil {
		bar.Gap = *desc.Gap
	}

	if bar.Begin, err = b.addOptional(desc.Begin, entity.Handle{}, entity.Rect); err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	if bar.End, err = b.addOptional(desc.End, entity.Handle{}, entity.Rect); err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}
	if bar.Begin != nil {
		bar.BeginTexX = bar.Begin.TexX
	}
	if bar.End != nil {
		bar.EndTexX = bar.End.TexX
	}
	return bar, nil
}

func (b *builder) airgens(doc *Document) error {
	for i, desc := range doc.Airgens {
		a := &entity.Airgen{}
		switch desc.Spin {
		case "cw":
			a.Spin = entity.CW
		case "ccw":
			a.Spin = entity.CCW
		default:
			return fmt.Errorf("airgen %d: unknown spin %q", i, desc.Spin)
		}
		h := b.l.AddAirgen(a)
		if _, err := b.add(desc.Zone, h, entity.RectPoint); err != nil {
			return fmt.Errorf("airgen %d zone: %w", i, err)
		}
		base, err := b.addOptional(desc.Base, kaboom, entity.Bitmap)
		if err != nil {
			return fmt.Errorf("airgen %d base: %w", i, err)
		}
		if base != nil {
			a.Base, a.TexX = base, base.TexX
		}
	}
	return nil
}

func (b *builder) fans(doc *Document) error {
	for i, desc := range doc.Fans {
		dir, ok := entity.DirFromString(desc.Dir)
		if !ok {
			return fmt.Errorf("fan %d: unknown direction %q", i, desc.Dir)
		}
		fan := &entity.Fan{Dir: dir, Power: desc.Power}
		h := b.l.AddFan(fan)
		zone, err := b.add(desc.Zone, h, entity.RectPoint)
		if err != nil {
			return fmt.Errorf("fan %d zone: %w", i, err)
		}
		fan.Zone = zone
		base, err := b.addOptional(desc.Base, kaboom, entity.Bitmap)
		if err != nil {
			return fmt.Errorf("fan %d base: %w", i, err)
		}
		if base != nil {
			fan.Base, fan.TexX = base, base.TexX
		}
	}
	return nil
}

func (b *builder) magnets(doc *Document) error {
	for i, desc := range doc.Magnets {
		dir, ok := entity.DirFromString(desc.Dir)
		if !ok {
			return fmt.Errorf("magnet %d: unknown direction %q", i, desc.Dir)
		}
		m := &entity.Magnet{Dir: dir}
		h := b.l.AddMagnet(m)
		zone, err := b.add(desc.Zone, h, entity.RectPoint)
		if err != nil {
			return fmt.Errorf("magnet %d zone: %w", i, err)
		}
		m.Zone = zone
		coil, err := b.addOptional(desc.Magnet, kaboom, entity.Bitmap)
		if err != nil {
			return fmt.Errorf("magnet %d coil: %w", i, err)
		}
		if coil != nil {
			m.Magnet, m.TexX = coil, coil.TexX
		}
	}
	return nil
}
