// Package surface owns the drawing target of a game: its sizing props, the
// device-pixel-ratio scale, and the transforms between container pixels and
// grid cells.
package surface

import (
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/ricrios/hero-arcade/internal/core"
	"github.com/ricrios/hero-arcade/internal/grid"
	"github.com/ricrios/hero-arcade/internal/viewport"
)

// Props is the sizing a painter must apply to its target.
type Props struct {
	// Layout size in px.
	CSSW int
	CSSH int

	// Backing-store size in physical px (CSS * DPR, floored).
	BackingW int
	BackingH int

	// Transform scale for the drawing context.
	Scale float64

	// Canvas origin in container px.
	Origin core.Point
}

// Surface maps between container pixels and grid cells.
// The zero value has a 1x1 grid at the origin.
type Surface struct {
	spec  grid.Spec
	props Props
}

// New creates a surface with an initial layout.
func New(spec grid.Spec, vp viewport.Viewport) *Surface {
	s := &Surface{}
	s.Apply(spec, vp)
	return s
}

// Apply recomputes the props for a new layout. Called on construction and on
// every confirmed resize.
func (s *Surface) Apply(spec grid.Spec, vp viewport.Viewport) Props {
	dpr := viewport.ClampDPR(vp.DevicePixelRatio)
	r := spec.CanvasRect()
	s.spec = spec
	s.props = Props{
		CSSW:     spec.CanvasW,
		CSSH:     spec.CanvasH,
		BackingW: int(math.Floor(float64(spec.CanvasW) * dpr)),
		BackingH: int(math.Floor(float64(spec.CanvasH) * dpr)),
		Scale:    dpr,
		Origin:   core.Point{X: r.X, Y: r.Y},
	}
	return s.props
}

// Spec returns the current grid layout.
func (s *Surface) Spec() grid.Spec {
	return s.spec
}

// Props returns the current sizing props.
func (s *Surface) Props() Props {
	return s.props
}

// ScreenToGrid converts a container pixel to a cell.
// ok is false when the point lies outside the grid.
func (s *Surface) ScreenToGrid(px, py int) (core.Point, bool) {
	cell := max(1, s.spec.CellSize)
	lx := px - s.props.Origin.X
	ly := py - s.props.Origin.Y
	if lx < 0 || ly < 0 {
		return core.Point{}, false
	}
	p := core.Point{X: lx / cell, Y: ly / cell}
	return p, s.spec.Contains(p)
}

// GridToScreen returns the top-left container pixel of cell (x, y).
func (s *Surface) GridToScreen(x, y int) (int, int) {
	return s.props.Origin.X + x*s.spec.CellSize, s.props.Origin.Y + y*s.spec.CellSize
}

// CellRect returns the pixel bounds of a cell in container px.
func (s *Surface) CellRect(p core.Point) core.Rect {
	px, py := s.GridToScreen(p.X, p.Y)
	return core.NewRect(px, py, s.spec.CellSize, s.spec.CellSize)
}

// PaintFunc returns what to draw for a cell. ok false leaves the raster blank.
type PaintFunc func(cell core.Point) (r rune, c core.Color, ok bool)

// Rasterize fills dst by sampling, for every character of the host raster,
// the grid cell under the character's center.
// Characters outside the grid are cleared. Wide runes are replaced by a
// single-column fallback so the raster stays aligned.
func (s *Surface) Rasterize(dst *core.Screen, glyph viewport.Glyph, paint PaintFunc) {
	glyph = glyph.OrDefault()
	dst.Clear()
	for y := 0; y < dst.Height(); y++ {
		cy := y*glyph.H + glyph.H/2
		for x := 0; x < dst.Width(); x++ {
			cx := x*glyph.W + glyph.W/2
			cell, inside := s.ScreenToGrid(cx, cy)
			if !inside {
				continue
			}
			r, c, ok := paint(cell)
			if !ok {
				continue
			}
			dst.SetCell(x, y, Printable(r), c)
		}
	}
}

// Printable returns r when it occupies exactly one terminal column.
func Printable(r rune) rune {
	if runewidth.RuneWidth(r) != 1 {
		return '#'
	}
	return r
}

// CharToPixel returns the container pixel at the center of raster
// character (col, row). Used to turn terminal mouse positions into px.
func CharToPixel(col, row int, glyph viewport.Glyph) (int, int) {
	glyph = glyph.OrDefault()
	return col*glyph.W + glyph.W/2, row*glyph.H + glyph.H/2
}
