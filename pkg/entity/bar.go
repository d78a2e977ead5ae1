// pkg/entity/bar.go
package entity

import (
	"math/rand/v2"

	"github.com/opd-ai/go-freecg/pkg/physics"
)

// Orientation is the axis a bar slides along.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// GapKind selects how the second segment of a bar moves.
type GapKind int

const (
	// ConstantGap keeps the second segment at Len - FLen - Gap.
	ConstantGap GapKind = iota
	// VariableGap moves the second segment at its own random speed.
	VariableGap
)

// Bar is a pair of sliding segments closing in on each other from opposite
// ends of a span of length Len.
type Bar struct {
	First, Second *Tile // sliding segments
	Begin, End    *Tile // animated end caps, optional
	BeginTexX     int
	EndTexX       int

	Orientation Orientation
	GapKind     GapKind
	Len         float64
	Gap         float64

	FLen, SLen     float64
	FSpeed, SSpeed float64

	// MinSpeed and MaxSpeed are indices into Tuning.BarSpeeds.
	MinSpeed, MaxSpeed int
	// Freq makes segments reverse at random intervals.
	Freq bool

	fNextChange float64
	sNextChange float64
}

func (b *Bar) randSpeed(t *Tuning, r *rand.Rand) float64 {
	return t.BarSpeeds[b.MinSpeed+r.IntN(b.MaxSpeed-b.MinSpeed+1)]
}

func randSign(r *rand.Rand) float64 {
	if r.IntN(2) == 0 {
		return -1
	}
	return 1
}

func nextChange(t *Tuning, r *rand.Rand, time float64) float64 {
	return time + (r.Float64()+0.5)*t.BarSpeedChangeInterval
}

// Step moves both segments and resizes their tiles.
func (b *Bar) Step(f *Frame) {
	t, r := f.Tuning, f.Rand

	switch {
	case b.FLen+b.SLen > b.Len:
		b.SLen = b.Len - b.FLen
		b.FSpeed = -b.randSpeed(t, r)
		b.SSpeed = -b.randSpeed(t, r)
	case b.FLen <= t.BarMinLen:
		b.FSpeed = b.randSpeed(t, r)
	case b.GapKind == ConstantGap && b.SLen <= t.BarMinLen:
		b.FSpeed = -b.randSpeed(t, r)
	case b.Freq && b.fNextChange <= f.Time:
		b.FSpeed = randSign(r) * b.randSpeed(t, r)
		b.fNextChange = nextChange(t, r, f.Time)
	}
	switch b.GapKind {
	case ConstantGap:
		// The second segment must keep BarMinLen beyond the gap.
		b.FLen = min(b.Len-b.Gap-t.BarMinLen, max(t.BarMinLen, b.FLen+b.FSpeed*f.DT))
		b.SLen = max(t.BarMinLen, b.Len-b.FLen-b.Gap)
	case VariableGap:
		b.FLen = min(b.Len-t.BarMinLen, max(t.BarMinLen, b.FLen+b.FSpeed*f.DT))
		if b.SLen <= t.BarMinLen {
			b.SSpeed = b.randSpeed(t, r)
		} else if b.Freq && b.sNextChange <= f.Time {
			b.SSpeed = randSign(r) * b.randSpeed(t, r)
			b.sNextChange = nextChange(t, r, f.Time)
		}
		b.SLen = min(b.Len, max(t.BarMinLen, b.SLen+b.SSpeed*f.DT))
		if b.FLen+b.SLen > b.Len {
			b.SLen = b.Len - b.FLen
			b.FSpeed = -b.randSpeed(t, r)
			b.SSpeed = -b.randSpeed(t, r)
		}
	}

	fd, sd := b.Orientation.dirs()
	slide(fd, b.First, int(b.FLen))
	slide(sd, b.Second, int(b.SLen))
}

// dirs returns the directions the first and second segments grow in.
func (o Orientation) dirs() (first, second Dir) {
	if o == Horizontal {
		return Right, Left
	}
	return Down, Up
}

// Reach returns the sheet regions the segments show at full length.
// Shorter segments show a part of the same region.
func (b *Bar) Reach() (first, second physics.Rect) {
	fd, sd := b.Orientation.dirs()
	return slidTexture(fd, b.First, int(b.Len)), slidTexture(sd, b.Second, int(b.Len))
}

// Animate flickers the end caps in opposite phase
func (b *Bar) Animate(t *Tuning, time float64) {
	if b.Begin != nil {
		b.Begin.TexX = b.BeginTexX + animFrame(barAnimOrder[0], time, t.Anim.Bar)*t.BarTexOffset
	}
	if b.End != nil {
		b.End.TexX = b.EndTexX + animFrame(barAnimOrder[1], time, t.Anim.Bar)*t.BarTexOffset
	}
}
