package snake

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ricrios/hero-arcade/internal/core"
	"github.com/ricrios/hero-arcade/internal/timeofday"
)

// Variant is a visual treatment of the same game.
type Variant string

const (
	Editorial    Variant = "editorial"
	SteelGrid    Variant = "steelgrid"
	LuxCyberpunk Variant = "luxcyberpunk"
)

// Variants lists every variant in cycle order.
var Variants = []Variant{Editorial, SteelGrid, LuxCyberpunk}

// ParseVariant accepts any case and ignores spaces, dashes and underscores.
func ParseVariant(s string) (Variant, error) {
	norm := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
	for _, v := range Variants {
		if string(v) == norm {
			return v, nil
		}
	}
	return "", fmt.Errorf("snake: unknown variant %q", s)
}

// Next returns the variant after v in cycle order.
func (v Variant) Next() Variant {
	for i, known := range Variants {
		if known == v {
			return Variants[(i+1)%len(Variants)]
		}
	}
	return Variants[0]
}

// Title returns the display name.
func (v Variant) Title() string {
	switch v {
	case SteelGrid:
		return "SteelGrid"
	case LuxCyberpunk:
		return "LuxCyberpunk"
	default:
		return "Editorial"
	}
}

// StyleInput is everything the visual state depends on.
type StyleInput struct {
	Variant       Variant
	DayPart       timeofday.DayPart
	Throttled     bool
	ReducedMotion bool
	Adj           timeofday.Adjustment
}

// Style is the computed visual state. The painter applies it as-is.
type Style struct {
	Snake core.Color
	Head  core.Color
	Fruit core.Color
	Glow  core.Color
	HUD   core.Color

	Stroke float64 // Line width in px
	GlowPx int     // Shadow blur radius; 0 disables glow
	Pulse  float64 // HUD pulse amplitude; 0 disables pulsing

	BodyRune  rune
	HeadRune  rune
	FruitRune rune
}

// ComputeStyle derives the visual state. Pure: no clock, no host reads.
//
// Glow is 8px in the evening and 3px otherwise, scaled by the seasonal glow
// amplitude. Reduced motion and throttled rendering both disable glow and
// pulsing; logic timing is never affected.
func ComputeStyle(in StyleInput) Style {
	adj := in.Adj
	if adj.Sat == 0 {
		adj = timeofday.Neutral
	}

	snake := core.ColorIcyBlue
	if in.Variant == Editorial {
		snake = core.ColorBaseWhite
	}
	edge := core.ColorIcyBlue
	if in.Variant == SteelGrid {
		edge = core.ColorSteelBlue
	}

	st := Style{
		Snake:     Saturate(snake, adj.Sat),
		Head:      Saturate(Blend(snake, edge, 0.5), adj.Sat),
		Fruit:     Saturate(core.ColorIcyBlue, adj.Sat),
		Glow:      Saturate(core.ColorIcyBlue, adj.Sat),
		HUD:       core.ColorGray,
		Stroke:    strokeFor(in.Variant),
		FruitRune: '●',
		HeadRune:  '█',
	}
	st.BodyRune = bodyRune(st.Stroke)

	if !in.ReducedMotion && !in.Throttled {
		base := 3.0
		if in.DayPart == timeofday.Evening {
			base = 8
		}
		st.GlowPx = max(0, int(math.Round(base*adj.GlowAmp)))
		st.Pulse = adj.PulseAmp
	}
	return st
}

func strokeFor(v Variant) float64 {
	switch v {
	case SteelGrid:
		return 3
	case LuxCyberpunk:
		return 2.5
	default:
		return 2
	}
}

// bodyRune picks a block density that reads as the stroke width.
func bodyRune(stroke float64) rune {
	switch {
	case stroke >= 3:
		return '█'
	case stroke >= 2.5:
		return '▓'
	default:
		return '▒'
	}
}

// Saturate scales the HSV saturation of a hex color. Non-hex colors are
// returned unchanged.
func Saturate(c core.Color, factor float64) core.Color {
	col, err := colorful.Hex(string(c))
	if err != nil || factor == 1 {
		return c
	}
	h, s, v := col.Hsv()
	return core.Color(colorful.Hsv(h, core.Clamp(s*factor, 0, 1), v).Clamped().Hex())
}

// Blend mixes two hex colors in Lab space; t=0 is a, t=1 is b.
func Blend(a, b core.Color, t float64) core.Color {
	ca, errA := colorful.Hex(string(a))
	cb, errB := colorful.Hex(string(b))
	if errA != nil || errB != nil {
		return a
	}
	return core.Color(ca.BlendLab(cb, t).Clamped().Hex())
}

// ParallaxMax is the largest canvas shift in px.
const ParallaxMax = 6.0

// Parallax returns the canvas shift for a pointer at (px, py) inside a
// container of the given size. The HUD moves at half this offset.
// Disabled (zero) when parallax is off or motion is reduced.
func Parallax(px, py int, container core.Size, enabled, reducedMotion bool) (dx, dy float64) {
	if !enabled || reducedMotion || container.W <= 0 || container.H <= 0 {
		return 0, 0
	}
	nx := float64(px)/float64(container.W) - 0.5
	ny := float64(py)/float64(container.H) - 0.5
	return core.Clamp(nx, -1, 1) * ParallaxMax, core.Clamp(ny, -1, 1) * ParallaxMax
}
