// Package engine mounts a game into a host container: it probes the
// viewport, sizes the grid, routes input, drives the frame loop and exposes
// a small handle the host talks to.
//
// The engine owns no goroutines and no host resources. The host calls Frame
// on every frame request (tagging requests with Generation) and Render when
// it is ready to paint.
package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ricrios/hero-arcade/internal/config"
	"github.com/ricrios/hero-arcade/internal/core"
	"github.com/ricrios/hero-arcade/internal/frameloop"
	"github.com/ricrios/hero-arcade/internal/grid"
	"github.com/ricrios/hero-arcade/internal/input"
	"github.com/ricrios/hero-arcade/internal/registry"
	"github.com/ricrios/hero-arcade/internal/surface"
	"github.com/ricrios/hero-arcade/internal/timeofday"
	"github.com/ricrios/hero-arcade/internal/viewport"
)

// ErrNoContainer is returned by Mount when there is nothing to mount into.
var ErrNoContainer = errors.New("engine: mount target does not exist")

// Container is the host element a game renders into.
type Container interface {
	// Env reports the current size and capabilities.
	Env() viewport.Env
}

// MotionPreference is implemented by containers that know the user's
// reduced-motion setting.
type MotionPreference interface {
	PrefersReducedMotion() bool
}

// PointerKind selects the pointer phase passed to Handle.Pointer.
type PointerKind int

const (
	PointerPress PointerKind = iota
	PointerMove
	PointerRelease
)

// Handle is a mounted game. Its methods are safe for concurrent use, so a
// control goroutine may query Status while the host drives frames.
type Handle struct {
	mu sync.Mutex

	container Container
	game      registry.Game
	cfg       config.EngineConfig
	opts      options

	glyph    viewport.Glyph
	gridCfg  grid.Config
	vp       viewport.Viewport
	surface  *surface.Surface
	router   *input.Router
	loop     *frameloop.Loop
	debounce *surface.Debouncer

	reducedMotion bool
	scoreSaved    bool
	unmounted     bool
}

// Mount attaches game to container and starts its frame loop.
// The only failure is a missing container.
func Mount(container Container, game registry.Game, cfg config.EngineConfig, opts ...Option) (*Handle, error) {
	if container == nil {
		return nil, ErrNoContainer
	}
	if game == nil {
		return nil, fmt.Errorf("engine: mount: nil game")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.time == nil {
		o.time = timeofday.NewBinder(timeofday.Clock{Now: o.clock}, cfg.Seasonal)
		o.time.Now = o.clock
	}
	if o.seed == 0 {
		o.seed = o.clock().UnixNano()
	}

	h := &Handle{
		container: container,
		game:      game,
		cfg:       cfg,
		opts:      o,
		glyph:     cfg.Glyph.OrDefault(),
		debounce:  surface.NewDebouncer(time.Duration(cfg.ResizeDebounceMs) * time.Millisecond),
	}

	// A cell must be at least one character tall or rows would vanish.
	h.gridCfg = cfg.Grid
	h.gridCfg.MinCellPx = max(h.gridCfg.MinCellPx, h.glyph.H)

	h.reducedMotion = h.resolveReducedMotion()

	h.surface = surface.New(grid.Spec{}, viewport.Viewport{})
	h.router = input.NewRouter(input.DefaultConfig(), h.surface)
	h.loop = frameloop.New(frameloop.Options{
		TargetFPS:  cfg.TargetFPS,
		LowFPS:     cfg.LowFPSThreshold,
		OnFrame:    h.step,
		OnThrottle: h.onThrottle,
	})

	h.layout(container.Env())
	for _, w := range h.vp.Warnings() {
		h.opts.log.Warn(w)
	}

	game.Reset(core.RuntimeConfig{TargetFPS: cfg.TargetFPS, Seed: o.seed})
	h.loop.Start(o.clock())

	h.opts.log.Info("mounted",
		"game", game.ID(),
		"grid", h.surface.Spec().String(),
		"device", h.vp.DeviceClass,
		"reduced_motion", h.reducedMotion,
		"seed", o.seed)
	return h, nil
}

func (h *Handle) resolveReducedMotion() bool {
	if h.opts.reducedMotion != nil {
		return *h.opts.reducedMotion
	}
	if h.cfg.ReducedMotion != nil {
		return *h.cfg.ReducedMotion
	}
	if mp, ok := h.container.(MotionPreference); ok {
		return mp.PrefersReducedMotion()
	}
	return false
}

// layout recomputes the viewport, grid, surface and on-screen buttons.
func (h *Handle) layout(env viewport.Env) {
	h.vp = viewport.Probe(env)
	spec := grid.Compute(h.vp.Size(), h.gridCfg)
	prev := h.surface.Spec()
	h.surface.Apply(spec, h.vp)

	var buttons []input.Button
	if h.vp.IsTouch {
		strip := h.stripPx()
		if strip.H > 0 {
			pad := h.game.Pad()
			gap := h.glyph.W
			w := max(h.glyph.W*3, (strip.W-gap*(len(pad)-1))/max(1, len(pad)))
			buttons = input.LayoutRow(strip, pad, w, gap)
		}
	}
	h.router.SetButtons(buttons)

	if !spec.Equal(prev) {
		h.game.Resize(spec)
	}
}

// stripPx returns the reserved UI strip below the canvas, in container px.
func (h *Handle) stripPx() core.Rect {
	size := h.vp.Size()
	top := max(0, size.H-h.gridCfg.PaddingPx-h.gridCfg.ReservedUIHeight)
	return core.NewRect(0, top, size.W, max(0, size.H-top-h.gridCfg.PaddingPx))
}

// hudRect returns the reserved strip in raster characters for a screen of
// the given height.
func (h *Handle) hudRect(cols, rows int) core.Rect {
	if h.gridCfg.ReservedUIHeight <= 0 {
		return core.Rect{}
	}
	top := core.Clamp(h.stripPx().Y/h.glyph.H, 0, rows)
	return core.NewRect(0, top, cols, rows-top)
}

// step runs one frame of game time. Called by the loop with mu held.
func (h *Handle) step(dtMs float64) {
	for _, ev := range h.router.Drain() {
		h.game.Handle(ev)
	}
	h.game.Update(dtMs)
	h.recordScore()
}

func (h *Handle) recordScore() {
	st := h.game.State()
	if !st.GameOver {
		h.scoreSaved = false
		return
	}
	if !h.scoreSaved {
		h.saveScore(st.Score)
	}
}

func (h *Handle) saveScore(score int) {
	h.scoreSaved = true
	if h.opts.scores == nil || score <= 0 {
		return
	}
	if _, err := h.opts.scores.SaveScore(h.game.ID(), score); err != nil {
		h.opts.log.Warn("cannot save score", "game", h.game.ID(), "score", score, "err", err)
	}
}

func (h *Handle) onThrottle(throttled bool) {
	if throttled {
		h.opts.log.Info("low frame rate, effects simplified", "fps", fmt.Sprintf("%.1f", h.loop.FPS()))
	} else {
		h.opts.log.Info("frame rate recovered")
	}
}

// Resize requests a new container size in px. The grid is recomputed once
// the burst of resize requests has settled, at the start of a frame.
func (h *Handle) Resize(w, hgt int, now time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.unmounted {
		return
	}
	h.debounce.Request(core.Size{W: w, H: hgt}, now)
}

// Key routes a key name. Returns false for unbound keys.
func (h *Handle) Key(k string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.router.Key(k)
}

// Pointer routes a pointer press, move or release.
func (h *Handle) Pointer(kind PointerKind, ev input.PointerEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch kind {
	case PointerPress:
		h.router.Press(ev)
	case PointerMove:
		h.router.Move(ev)
	case PointerRelease:
		h.router.Release(ev)
	}
}

// Frame is called on every host frame. It applies a settled resize and
// advances the loop. Returns true when game time advanced.
func (h *Handle) Frame(now time.Time) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.unmounted {
		return false
	}
	if size, ok := h.debounce.Due(now); ok {
		env := h.container.Env()
		env.Width, env.Height = size.W, size.H
		h.layout(env)
		h.opts.log.Debug("resized", "grid", h.surface.Spec().String())
	}
	return h.loop.Advance(now)
}

// Render paints the current state into dst, one character per glyph.
func (h *Handle) Render(dst *core.Screen) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.game.Render(registry.Frame{
		Screen:        dst,
		Surface:       h.surface,
		Glyph:         h.glyph,
		Throttled:     h.loop.Throttled(),
		ReducedMotion: h.reducedMotion,
		HUD:           h.hudRect(dst.Width(), dst.Height()),
	})
}

// Unmount stops the loop, detaches input and drops pending resizes.
// An endless game has its open run saved here; an unfinished run of any
// other game is dropped. Safe to call twice.
func (h *Handle) Unmount() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.unmounted {
		return
	}
	h.unmounted = true
	h.loop.Stop()
	h.router.Detach()
	h.debounce.Cancel()
	if !h.scoreSaved && h.game.Details().Endless {
		h.saveScore(h.game.State().Score)
	}
	h.opts.log.Info("unmounted", "game", h.game.ID())
}

// Unmounted reports whether Unmount was called.
func (h *Handle) Unmounted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.unmounted
}

// Generation identifies the current loop run. Frame requests tagged with an
// older generation must be dropped.
func (h *Handle) Generation() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loop.Generation()
}

// Interval returns the frame interval the host should request frames at.
func (h *Handle) Interval() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loop.Interval()
}

// Spec returns the current grid layout.
func (h *Handle) Spec() grid.Spec {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.surface.Spec()
}

// Viewport returns the last probed viewport.
func (h *Handle) Viewport() viewport.Viewport {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.vp
}

// Buttons returns the on-screen controls currently laid out.
func (h *Handle) Buttons() []input.Button {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.router.Buttons()
}

// Game returns the mounted game.
func (h *Handle) Game() registry.Game {
	return h.game
}

// Do runs fn with the handle locked, for hosts that call game-specific
// methods (such as loading a draft) between frames.
func (h *Handle) Do(fn func(g registry.Game)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(h.game)
}
