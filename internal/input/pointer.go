package input

import (
	"github.com/ricrios/hero-arcade/internal/core"
)

// Press starts a pointer sequence. A press on an on-screen button fires the
// button's event and does not start a drag.
func (r *Router) Press(p PointerEvent) {
	if r.detached {
		return
	}
	if b, ok := r.hitButton(p.X, p.Y); ok {
		r.Push(b.Event)
		return
	}
	r.active = &press{id: p.ID, x: p.X, y: p.Y, at: p.At}
	r.pushPointer(PhaseDown, p)
}

// Move continues a drag. Moves without an active press are ignored.
func (r *Router) Move(p PointerEvent) {
	if r.detached || r.active == nil || r.active.id != p.ID {
		return
	}
	r.pushPointer(PhaseMove, p)
}

// Release ends a pointer sequence and resolves a swipe when the gesture was
// long and fast enough. Releases without a matching press are dropped.
func (r *Router) Release(p PointerEvent) {
	if r.detached || r.active == nil || r.active.id != p.ID {
		return
	}
	start := *r.active
	r.active = nil
	r.pushPointer(PhaseUp, p)

	if d, ok := r.swipe(start, p); ok {
		r.Push(Direction(d))
	}
}

// Dragging reports whether a press is active.
func (r *Router) Dragging() bool {
	return r.active != nil
}

func (r *Router) swipe(start press, end PointerEvent) (core.Direction, bool) {
	dx := end.X - start.x
	dy := end.Y - start.y
	dt := end.At.Sub(start.at)
	if dt < 0 || dt >= r.cfg.SwipeMaxDuration {
		return core.DirNone, false
	}
	if dx*dx+dy*dy <= r.cfg.SwipeMinDistance*r.cfg.SwipeMinDistance {
		return core.DirNone, false
	}
	return SwipeDirection(dx, dy), true
}

// SwipeDirection resolves the dominant axis of a displacement.
// Horizontal wins only when |dx| > |dy|.
func SwipeDirection(dx, dy int) core.Direction {
	if core.Abs(dx) > core.Abs(dy) {
		if dx > 0 {
			return core.DirRight
		}
		return core.DirLeft
	}
	if dy > 0 {
		return core.DirDown
	}
	return core.DirUp
}

func (r *Router) pushPointer(phase Phase, p PointerEvent) {
	ev := Event{Type: EventPointer, Phase: phase, Pixel: core.Point{X: p.X, Y: p.Y}, Cell: core.Point{X: -1, Y: -1}}
	if r.hit != nil {
		if cell, ok := r.hit.ScreenToGrid(p.X, p.Y); ok {
			ev.Cell = cell
		}
	}
	r.Push(ev)
}
