// Package viewport classifies the host display: device class, orientation,
// pointer capability and pixel density.
package viewport

import "github.com/ricrios/hero-arcade/internal/core"

// DeviceClass is a coarse bucket derived from viewport width.
type DeviceClass string

const (
	Mobile  DeviceClass = "mobile"
	Tablet  DeviceClass = "tablet"
	Desktop DeviceClass = "desktop"
)

// Orientation of the viewport.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// Breakpoints in px.
const (
	MobileMaxWidth = 768
	TabletMaxWidth = 1024
)

// Insets are safe-area insets in px (notches, rounded corners, status bars).
type Insets struct {
	Top, Right, Bottom, Left int
}

// Env carries the raw facts a host knows about its display.
type Env struct {
	Width  int
	Height int

	HasTouch bool
	HasMouse bool

	// DevicePixelRatio is backing pixels per layout pixel. <= 0 means unknown.
	DevicePixelRatio float64

	SafeArea Insets
}

// Viewport is the classified view of an Env. Recomputed on every resize.
type Viewport struct {
	Width            int
	Height           int
	IsTouch          bool
	HasPointer       bool
	DeviceClass      DeviceClass
	Orientation      Orientation
	DevicePixelRatio float64
	SafeArea         Insets
}

// Probe classifies env. It never fails: missing values fall back to defaults.
func Probe(env Env) Viewport {
	w, h := max(0, env.Width), max(0, env.Height)
	return Viewport{
		Width:            w,
		Height:           h,
		IsTouch:          env.HasTouch,
		HasPointer:       env.HasTouch || env.HasMouse,
		DeviceClass:      Classify(w),
		Orientation:      orientationOf(w, h),
		DevicePixelRatio: ClampDPR(env.DevicePixelRatio),
		SafeArea:         env.SafeArea,
	}
}

// Classify returns the device class for a viewport width.
func Classify(width int) DeviceClass {
	switch {
	case width <= MobileMaxWidth:
		return Mobile
	case width <= TabletMaxWidth:
		return Tablet
	default:
		return Desktop
	}
}

func orientationOf(w, h int) Orientation {
	if w > h {
		return Landscape
	}
	return Portrait
}

// ClampDPR bounds the device-pixel-ratio to [1, 2]. Unknown ratios are 1.
func ClampDPR(dpr float64) float64 {
	if dpr <= 0 {
		return 1
	}
	return core.Clamp(dpr, 1, 2)
}

// Size returns the usable area after safe-area insets.
func (v Viewport) Size() core.Size {
	return core.Size{
		W: max(0, v.Width-v.SafeArea.Left-v.SafeArea.Right),
		H: max(0, v.Height-v.SafeArea.Top-v.SafeArea.Bottom),
	}
}

// Glyph is the pixel footprint of one terminal character.
type Glyph struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// DefaultGlyph is the usual 8x16 px character cell.
var DefaultGlyph = Glyph{W: 8, H: 16}

// Valid reports whether both dimensions are positive.
func (g Glyph) Valid() bool {
	return g.W > 0 && g.H > 0
}

// OrDefault returns g, or DefaultGlyph when g is not usable.
func (g Glyph) OrDefault() Glyph {
	if !g.Valid() {
		return DefaultGlyph
	}
	return g
}

// FromTerminal builds an Env for a terminal of cols x rows characters.
// Terminals report no touch and render at a fixed density of 1.
func FromTerminal(cols, rows int, glyph Glyph, mouse bool) Env {
	glyph = glyph.OrDefault()
	return Env{
		Width:            max(0, cols) * glyph.W,
		Height:           max(0, rows) * glyph.H,
		HasMouse:         mouse,
		DevicePixelRatio: 1,
	}
}

// Warnings lists capability gaps the host should log. Never fatal.
func (v Viewport) Warnings() []string {
	var out []string
	if !v.HasPointer {
		out = append(out, "no pointer input: drag and swipe disabled, keyboard only")
	}
	if v.Width == 0 || v.Height == 0 {
		out = append(out, "zero-area viewport: nothing will render")
	}
	return out
}
