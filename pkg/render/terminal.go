package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-freecg/pkg/entity"
	"github.com/opd-ai/go-freecg/pkg/level"
	"github.com/opd-ai/go-freecg/pkg/physics"
)

var (
	styleDefault = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleWall    = styleDefault.Foreground(tcell.ColorGray)
	styleHazard  = styleDefault.Foreground(tcell.ColorRed)
	styleAirport = styleDefault.Foreground(tcell.ColorLime)
	styleCargo   = styleDefault.Foreground(tcell.ColorYellow)
	styleShip    = styleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleKaboom  = styleDefault.Foreground(tcell.ColorOrangeRed).Bold(true)
	styleStatus  = styleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
)

// shipGlyphs are indexed by heading octant, clockwise from pointing right
var shipGlyphs = [8]rune{'>', '\\', 'v', '/', '<', '\\', '^', '/'}

// TerminalRenderer draws a level as text, one cell per CellW × CellH
// level pixels, with a status line on the bottom row.
type TerminalRenderer struct {
	screen tcell.Screen
	CellW  int
	CellH  int

	// origin is the level cell in the top-left corner
	originX, originY int
}

// NewTerminalRenderer creates a renderer on an initialised screen
func NewTerminalRenderer(screen tcell.Screen, cellW, cellH int) *TerminalRenderer {
	return &TerminalRenderer{
		screen: screen,
		CellW:  max(1, cellW),
		CellH:  max(1, cellH),
	}
}

// Origin returns the level cell drawn in the top-left corner
func (r *TerminalRenderer) Origin() (int, int) {
	return r.originX, r.originY
}

// follow centres the view on the camera anchor, clamped to the level
func (r *TerminalRenderer) follow(l *level.Level, viewW, viewH int) {
	anchor := l.CameraAnchor()
	levelW := l.Width() / r.CellW
	levelH := l.Height() / r.CellH
	r.originX = clampView(int(anchor.X)/r.CellW-viewW/2, levelW-viewW)
	r.originY = clampView(int(anchor.Y)/r.CellH-viewH/2, levelH-viewH)
}

func clampView(v, maxV int) int {
	return max(0, min(v, maxV))
}

// Render implements Renderer.
func (r *TerminalRenderer) Render(l *level.Level) error {
	r.screen.Clear()
	w, h := r.screen.Size()
	viewH := max(0, h-1)
	r.follow(l, w, viewH)

	for _, t := range l.Tiles {
		if !Visible(t, l.Time) {
			continue
		}
		glyph, style := tileGlyph(l, t)
		r.fill(t.Bounds(), glyph, style, w, viewH)
	}
	r.drawShip(l, w, viewH)
	r.drawText(0, h-1, StatusLine(l), styleStatus, w)

	r.screen.Show()
	return nil
}

// Close implements Renderer.
func (r *TerminalRenderer) Close() {
	r.screen.Fini()
}

func tileGlyph(l *level.Level, t *entity.Tile) (rune, tcell.Style) {
	switch TileRole(l, t) {
	case RoleAirport:
		return '=', styleAirport
	case RoleCargo:
		return 'o', styleCargo
	case RoleHazard:
		return '#', styleHazard
	case RoleGate:
		return ':', styleHazard
	case RoleField:
		return '~', styleWall
	case RoleDecoration:
		return '.', styleWall
	}
	return '+', styleWall
}

// fill paints every cell r covers that lies inside the view
func (r *TerminalRenderer) fill(rect physics.Rect, glyph rune, style tcell.Style, viewW, viewH int) {
	if rect.Empty() {
		return
	}
	x0 := rect.X/r.CellW - r.originX
	y0 := rect.Y/r.CellH - r.originY
	x1 := (rect.X+rect.W-1)/r.CellW - r.originX
	y1 := (rect.Y+rect.H-1)/r.CellH - r.originY
	for y := max(0, y0); y <= min(y1, viewH-1); y++ {
		for x := max(0, x0); x <= min(x1, viewW-1); x++ {
			r.screen.SetContent(x, y, glyph, nil, style)
		}
	}
}

func (r *TerminalRenderer) drawShip(l *level.Level, viewW, viewH int) {
	s := l.Ship
	c := s.Center()
	x := int(c.X)/r.CellW - r.originX
	y := int(c.Y)/r.CellH - r.originY
	if x < 0 || y < 0 || x >= viewW || y >= viewH {
		return
	}

	if s.Dead {
		glyph := '*'
		if l.KaboomProgress > 0.5 {
			glyph = '.'
		}
		r.screen.SetContent(x, y, glyph, nil, styleKaboom)
		return
	}
	octant := (s.DiscreteRot()*8 + physics.NumRotations/2) / physics.NumRotations % 8
	r.screen.SetContent(x, y, shipGlyphs[octant], nil, styleShip)
}

func (r *TerminalRenderer) drawText(x, y int, text string, style tcell.Style, width int) {
	for _, ch := range text {
		if x >= width {
			return
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
