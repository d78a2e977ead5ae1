// Package validation checks loaded levels for problems that would make the
// simulator panic or misbehave.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/opd-ai/go-freecg/pkg/entity"
	"github.com/opd-ai/go-freecg/pkg/level"
	"github.com/opd-ai/go-freecg/pkg/physics"
)

// Level limits
const (
	MaxLevelNameLen = 64
	MaxLevelBlocks  = 256 // per axis
)

// ErrInvalidLevel is wrapped by every problem ValidateLevel reports.
var ErrInvalidLevel = errors.New("invalid level")

var validLevelNameChars = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.'!()]+$`)

// nameRules are checked in order against a trimmed level name.
var nameRules = []struct {
	bad  func(string) bool
	what string
}{
	{func(s string) bool { return s == "" }, "is empty"},
	{func(s string) bool { return len(s) > MaxLevelNameLen }, fmt.Sprintf("is longer than %d bytes", MaxLevelNameLen)},
	{func(s string) bool { return !utf8.ValidString(s) }, "is not valid UTF-8"},
	{func(s string) bool { return strings.ContainsFunc(s, unicode.IsControl) }, "contains control characters"},
	{func(s string) bool { return !validLevelNameChars.MatchString(s) }, "contains invalid characters"},
}

func nameProblem(name string) string {
	for _, rule := range nameRules {
		if rule.bad(name) {
			return rule.what
		}
	}
	return ""
}

// ValidateLevelName trims name and checks it against the level name rules.
func ValidateLevelName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if p := nameProblem(trimmed); p != "" {
		return "", fmt.Errorf("%w: level name %q %s", ErrInvalidLevel, name, p)
	}
	return trimmed, nil
}

// report collects level problems
type report struct {
	errs []error
}

func (r *report) add(format string, args ...any) {
	r.errs = append(r.errs, fmt.Errorf("%w: %s", ErrInvalidLevel, fmt.Sprintf(format, args...)))
}

func (r *report) err() error {
	return errors.Join(r.errs...)
}

// ValidateLevel checks l against a tile sheet of sheetW × sheetH pixels and
// returns every problem found, joined. The result matches ErrInvalidLevel
// with errors.Is.
func ValidateLevel(l *level.Level, sheetW, sheetH int) error {
	r := &report{}
	sheet := physics.Rect{W: sheetW, H: sheetH}

	if p := nameProblem(l.Name); p != "" {
		r.add("level name %q %s", l.Name, p)
	}

	if l.Grid.Width <= 0 || l.Grid.Height <= 0 || l.Grid.Width > MaxLevelBlocks || l.Grid.Height > MaxLevelBlocks {
		r.add("grid of %dx%d blocks out of range", l.Grid.Width, l.Grid.Height)
	}
	if l.Homebase == nil {
		r.add("no home base")
	}

	t := l.Tuning
	frames := physics.Rect{X: t.ShipTexX, Y: t.ShipTexY, W: physics.NumRotations * t.ShipW, H: t.ShipH}
	if !within(sheet, frames) {
		r.add("ship frames %v fall outside the %dx%d sheet", frames, sheetW, sheetH)
	}

	for i, tile := range l.Tiles {
		checkTile(r, l, sheet, i, tile)
	}
	checkObjects(r, l, sheet)

	return r.err()
}

func within(outer, inner physics.Rect) bool {
	return inner.X >= outer.X && inner.Y >= outer.Y &&
		inner.X+inner.W <= outer.X+outer.W && inner.Y+inner.H <= outer.Y+outer.H
}

func checkTile(r *report, l *level.Level, sheet physics.Rect, i int, tile *entity.Tile) {
	if tile.W < 0 || tile.H < 0 {
		r.add("tile %d has negative size %dx%d", i, tile.W, tile.H)
	}
	if tile.Test == entity.Bitmap {
		tex := physics.Rect{X: tile.TexX, Y: tile.TexY, W: tile.W, H: tile.H}
		if !within(sheet, tex) {
			r.add("tile %d bitmap %v falls outside the sheet", i, tex)
		}
	}

	idx := tile.Owner.Index
	var n int
	switch tile.Action() {
	case entity.ActionNone, entity.ActionKaboom:
		return
	case entity.ActionGate:
		n = len(l.Gates)
	case entity.ActionLGate:
		n = len(l.LGates)
	case entity.ActionAirgen:
		n = len(l.Airgens)
	case entity.ActionAirport:
		n = len(l.Airports)
	case entity.ActionFan:
		n = len(l.Fans)
	case entity.ActionMagnet:
		n = len(l.Magnets)
	default:
		r.add("tile %d has unknown action %d", i, tile.Action())
		return
	}
	if idx < 0 || idx >= n {
		r.add("tile %d points at %s %d of %d", i, tile.Action(), idx, n)
	}
}

func checkObjects(r *report, l *level.Level, sheet physics.Rect) {
	t := l.Tuning

	for i, a := range l.Airports {
		if a.Base == nil {
			r.add("airport %d has no base tile", i)
		}
		if a.Kind == entity.KeyAirport && (a.Key < 0 || a.Key >= entity.NumKeys) {
			r.add("key airport %d grants key %d", i, a.Key)
		}
		if a.LandingZone.Empty() {
			r.add("airport %d has an empty landing zone", i)
		}
	}
	for i, b := range l.Bars {
		if b.First == nil || b.Second == nil {
			r.add("bar %d is missing a segment", i)
		}
		if b.Len <= 0 {
			r.add("bar %d has length %g", i, b.Len)
		}
		if b.MinSpeed < 0 || b.MinSpeed > b.MaxSpeed || b.MaxSpeed >= len(t.BarSpeeds) {
			r.add("bar %d speed range [%d,%d] outside the speed table", i, b.MinSpeed, b.MaxSpeed)
		}
		if b.GapKind == entity.ConstantGap && (b.Gap < 0 || b.Gap > b.Len-2*t.BarMinLen) {
			r.add("bar %d gap %g leaves no room for two segments in %g", i, b.Gap, b.Len)
		}
		if b.First != nil && b.Second != nil {
			first, second := b.Reach()
			checkSlide(r, sheet, "bar", i, b.First, first)
			checkSlide(r, sheet, "bar", i, b.Second, second)
		}
	}
	for i, g := range l.Gates {
		if g.Bar == nil || g.MaxLen < 0 {
			r.add("gate %d has no bar", i)
			continue
		}
		checkSlide(r, sheet, "gate", i, g.Bar, g.Reach())
	}
	for i, g := range l.LGates {
		if g.Bar == nil || g.MaxLen < 0 {
			r.add("locked gate %d has no bar", i)
			continue
		}
		checkSlide(r, sheet, "locked gate", i, g.Bar, g.Reach())
	}
	for i, f := range l.Fans {
		if f.Zone == nil || f.Zone.W <= 0 || f.Zone.H <= 0 {
			r.add("fan %d has no zone", i)
		}
		if f.Power < 0 || f.Power >= len(t.FanAccel) {
			r.add("fan %d has power %d", i, f.Power)
		}
	}
	for i, m := range l.Magnets {
		if m.Zone == nil || m.Zone.W <= 0 || m.Zone.H <= 0 {
			r.add("magnet %d has no zone", i)
		}
	}
}

// checkSlide reports a bitmap tile whose texture leaves the sheet as it slides.
func checkSlide(r *report, sheet physics.Rect, kind string, i int, tile *entity.Tile, reach physics.Rect) {
	if tile.Test == entity.Bitmap && !within(sheet, reach) {
		r.add("%s %d slides its bitmap to %v outside the sheet", kind, i, reach)
	}
}
