package engine

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ricrios/hero-arcade/internal/config"
	"github.com/ricrios/hero-arcade/internal/core"
	"github.com/ricrios/hero-arcade/internal/games/snake"
	"github.com/ricrios/hero-arcade/internal/grid"
	"github.com/ricrios/hero-arcade/internal/input"
	"github.com/ricrios/hero-arcade/internal/registry"
	"github.com/ricrios/hero-arcade/internal/storage"
	"github.com/ricrios/hero-arcade/internal/timeofday"
	"github.com/ricrios/hero-arcade/internal/viewport"
)

var t0 = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type container struct {
	env viewport.Env
}

func (c *container) Env() viewport.Env { return c.env }

type motionContainer struct {
	container
	reduced bool
}

func (c *motionContainer) PrefersReducedMotion() bool { return c.reduced }

func terminal(cols, rows int) *container {
	return &container{env: viewport.FromTerminal(cols, rows, viewport.DefaultGlyph, true)}
}

// stubGame records what the engine asks of it.
type stubGame struct {
	seed    int64
	resizes []grid.Spec
	events  []input.Event
	steps   []float64
	frames  []registry.Frame
	state   core.GameState
	endless bool
}

func (g *stubGame) ID() string { return "stub" }
func (g *stubGame) Title() string { return "Stub" }
func (g *stubGame) EngineConfig() config.EngineConfig { return testConfig() }
func (g *stubGame) Pad() []input.PadButton { return input.SnakePad() }
func (g *stubGame) Reset(rc core.RuntimeConfig) { g.seed = rc.Seed }
func (g *stubGame) Resize(spec grid.Spec) { g.resizes = append(g.resizes, spec) }
func (g *stubGame) Handle(ev input.Event) { g.events = append(g.events, ev) }
func (g *stubGame) Update(dtMs float64) { g.steps = append(g.steps, dtMs) }
func (g *stubGame) Render(f registry.Frame) { g.frames = append(g.frames, f) }
func (g *stubGame) State() core.GameState { return g.state }
func (g *stubGame) Details() registry.Details {
	return registry.Details{Variant: "stub", ScoreGoal: 3, Endless: g.endless}
}

type scoreRecorder struct {
	saved []int
}

func (s *scoreRecorder) SaveScore(_ string, score int) (int64, error) {
	s.saved = append(s.saved, score)
	return int64(len(s.saved)), nil
}

func (s *scoreRecorder) HighScore(string) (int, error) { return 0, nil }

func testConfig() config.EngineConfig {
	cfg := config.DefaultEngineConfig()
	cfg.Grid.PaddingPx = 0
	cfg.Grid.ReservedUIHeight = 32
	return cfg
}

func mount(t *testing.T, c Container, g registry.Game, opts ...Option) *Handle {
	t.Helper()
	opts = append([]Option{
		WithLogger(log.New(io.Discard)),
		WithClock(func() time.Time { return t0 }),
	}, opts...)
	h, err := Mount(c, g, testConfig(), opts...)
	if err != nil {
		t.Fatalf("Mount() failed: %v", err)
	}
	return h
}

func TestMountWithoutContainer(t *testing.T) {
	_, err := Mount(nil, &stubGame{}, testConfig())
	if !errors.Is(err, ErrNoContainer) {
		t.Errorf("Mount(nil) error = %v, expected ErrNoContainer", err)
	}
}

func TestMountLayout(t *testing.T) {
	g := &stubGame{}
	h := mount(t, terminal(40, 12), g)

	// MinCellPx is raised to the glyph height, so 160px of canvas gives 16px cells.
	spec := h.Spec()
	if spec.Cols != 20 || spec.Rows != 10 || spec.CellSize != 16 {
		t.Errorf("Spec() = %s, expected 20x10 @ 16px", spec)
	}
	if len(g.resizes) != 1 || !g.resizes[0].Equal(spec) {
		t.Errorf("game saw %d resizes, expected exactly the mount layout", len(g.resizes))
	}
	if g.seed != t0.UnixNano() {
		t.Errorf("seed = %d, expected the clock", g.seed)
	}
	if len(h.Buttons()) != 0 {
		t.Errorf("Buttons() = %d on a terminal, expected none", len(h.Buttons()))
	}
	if !h.Status().Running {
		t.Error("loop not running after Mount()")
	}
}

func TestMountSeed(t *testing.T) {
	g := &stubGame{}
	mount(t, terminal(40, 12), g, WithSeed(42))
	if g.seed != 42 {
		t.Errorf("seed = %d, expected 42", g.seed)
	}
}

func TestReducedMotionPrecedence(t *testing.T) {
	yes, no := true, false
	tests := []struct {
		name      string
		option    *bool
		cfg       *bool
		container Container
		expected  bool
	}{
		{"default", nil, nil, terminal(40, 12), false},
		{"container preference", nil, nil, &motionContainer{container: *terminal(40, 12), reduced: true}, true},
		{"config beats container", nil, &no, &motionContainer{container: *terminal(40, 12), reduced: true}, false},
		{"option beats config", &yes, &no, terminal(40, 12), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.ReducedMotion = tt.cfg
			opts := []Option{WithLogger(log.New(io.Discard))}
			if tt.option != nil {
				opts = append(opts, WithReducedMotion(*tt.option))
			}
			h, err := Mount(tt.container, &stubGame{}, cfg, opts...)
			if err != nil {
				t.Fatalf("Mount() failed: %v", err)
			}
			if got := h.Status().ReducedMotion; got != tt.expected {
				t.Errorf("ReducedMotion = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestFrameStepping(t *testing.T) {
	g := &stubGame{}
	h := mount(t, terminal(40, 12), g)

	if h.Frame(t0) {
		t.Error("first Frame() only primes the clock")
	}
	if h.Frame(t0.Add(5 * time.Millisecond)) {
		t.Error("Frame() before a full interval should not step")
	}
	if !h.Frame(t0.Add(20 * time.Millisecond)) {
		t.Fatal("Frame() after an interval should step")
	}
	if len(g.steps) != 1 || g.steps[0] != 20 {
		t.Errorf("steps = %v, expected one of 20ms", g.steps)
	}
}

func TestInputDrainedOnFrame(t *testing.T) {
	g := &stubGame{}
	h := mount(t, terminal(40, 12), g)

	if !h.Key("up") || !h.Key(" ") {
		t.Fatal("bound keys reported unhandled")
	}
	if h.Key("F13") {
		t.Error("unbound key reported handled")
	}
	h.Pointer(PointerPress, input.PointerEvent{X: 3*16 + 1, Y: 2*16 + 1, At: t0})
	if len(g.events) != 0 {
		t.Fatal("events reached the game before a frame")
	}

	h.Frame(t0)
	h.Frame(t0.Add(20 * time.Millisecond))
	if len(g.events) != 3 {
		t.Fatalf("game saw %d events, expected 3", len(g.events))
	}
	if g.events[0].Dir != core.DirUp || g.events[1].Name != core.ActionPrimary {
		t.Errorf("events out of order: %+v", g.events[:2])
	}
	if g.events[2].Cell != (core.Point{X: 3, Y: 2}) {
		t.Errorf("pointer cell = %v, expected (3,2)", g.events[2].Cell)
	}
}

func TestTouchButtons(t *testing.T) {
	g := &stubGame{}
	phone := &container{env: viewport.Env{Width: 390, Height: 844, HasTouch: true, DevicePixelRatio: 3}}
	h := mount(t, phone, g)

	buttons := h.Buttons()
	if len(buttons) != len(input.SnakePad()) {
		t.Fatalf("len(Buttons()) = %d, expected the full pad", len(buttons))
	}
	if buttons[0].Rect.Y != 844-32 {
		t.Errorf("button row at y=%d, expected the reserved strip", buttons[0].Rect.Y)
	}

	x, y := buttons[0].Rect.Center()
	h.Pointer(PointerPress, input.PointerEvent{X: x, Y: y, At: t0})
	h.Frame(t0)
	h.Frame(t0.Add(20 * time.Millisecond))
	if len(g.events) != 1 || g.events[0] != buttons[0].Event {
		t.Errorf("events = %+v, expected the first button's event", g.events)
	}
}

func TestResizeDebounced(t *testing.T) {
	g := &stubGame{}
	c := terminal(40, 12)
	h := mount(t, c, g)
	h.Frame(t0)

	h.Resize(480, 272, t0)
	h.Resize(640, 384, t0.Add(50*time.Millisecond))

	h.Frame(t0.Add(120 * time.Millisecond))
	if len(g.resizes) != 1 {
		t.Fatal("resize applied before the burst settled")
	}

	h.Frame(t0.Add(160 * time.Millisecond))
	if len(g.resizes) != 2 {
		t.Fatalf("game saw %d resizes, expected the settled one", len(g.resizes))
	}
	// 640x352 of canvas area: 17px cells.
	if got := h.Spec(); got.CellSize != 17 || got.Cols != 37 || got.Rows != 20 {
		t.Errorf("Spec() = %s after resize", got)
	}
	if v := h.Viewport(); v.Width != 640 || v.Height != 384 {
		t.Errorf("Viewport() = %dx%d, expected 640x384", v.Width, v.Height)
	}

	h.Resize(640, 384, t0.Add(200*time.Millisecond))
	h.Frame(t0.Add(400 * time.Millisecond))
	if len(g.resizes) != 2 {
		t.Error("an identical layout should not resize the game again")
	}
}

func TestScoreSavedOncePerGameOver(t *testing.T) {
	g := &stubGame{}
	scores := &scoreRecorder{}
	h := mount(t, terminal(40, 12), g, WithScores(scores))

	now := t0
	step := func() {
		now = now.Add(20 * time.Millisecond)
		h.Frame(now)
	}
	h.Frame(now)

	g.state = core.GameState{Score: 7, GameOver: true}
	step()
	step()
	g.state = core.GameState{Score: 0}
	step()
	g.state = core.GameState{Score: 3, GameOver: true}
	step()
	g.state = core.GameState{Score: 0}
	step()
	g.state = core.GameState{Score: 0, GameOver: true}
	step()

	if len(scores.saved) != 2 || scores.saved[0] != 7 || scores.saved[1] != 3 {
		t.Errorf("saved scores = %v, expected [7 3]", scores.saved)
	}

	h.Unmount()
	if len(scores.saved) != 2 {
		t.Error("Unmount() saved a game over score twice")
	}
}

func TestUnmountSavesOpenScore(t *testing.T) {
	g := &stubGame{state: core.GameState{Score: 12}, endless: true}
	scores := &scoreRecorder{}
	h := mount(t, terminal(40, 12), g, WithScores(scores))
	h.Unmount()
	if len(scores.saved) != 1 || scores.saved[0] != 12 {
		t.Errorf("saved scores = %v, expected [12]", scores.saved)
	}
}

func TestUnmountDropsUnfinishedRun(t *testing.T) {
	g := &stubGame{state: core.GameState{Score: 5, Phase: "running"}}
	scores := &scoreRecorder{}
	h := mount(t, terminal(40, 12), g, WithScores(scores))
	h.Frame(t0)
	h.Frame(t0.Add(100 * time.Millisecond))
	if len(g.steps) == 0 {
		t.Fatal("game never stepped")
	}
	h.Unmount()
	if len(scores.saved) != 0 {
		t.Errorf("saved scores = %v, expected an unfinished run to be dropped", scores.saved)
	}
}

func TestUnmount(t *testing.T) {
	g := &stubGame{}
	h := mount(t, terminal(40, 12), g)
	h.Frame(t0)
	gen := h.Generation()

	h.Resize(640, 384, t0)
	h.Unmount()
	h.Unmount()

	if !h.Unmounted() {
		t.Error("Unmounted() = false")
	}
	if h.Generation() == gen {
		t.Error("generation unchanged; stale frame requests would still match")
	}
	if h.Key("up") {
		t.Error("Key() accepted input after Unmount()")
	}
	if h.Frame(t0.Add(time.Second)) {
		t.Error("Frame() stepped after Unmount()")
	}
	if len(g.resizes) != 1 {
		t.Error("pending resize applied after Unmount()")
	}
	if h.Status().Running {
		t.Error("Status().Running after Unmount()")
	}
}

func TestRenderFrame(t *testing.T) {
	g := &stubGame{}
	h := mount(t, terminal(40, 12), g, WithReducedMotion(true))
	screen := core.NewScreen(40, 12)
	h.Render(screen)

	if len(g.frames) != 1 {
		t.Fatal("Render() did not reach the game")
	}
	f := g.frames[0]
	if f.HUD != core.NewRect(0, 10, 40, 2) {
		t.Errorf("HUD = %+v, expected rows 10-11", f.HUD)
	}
	if f.Screen != screen || !f.ReducedMotion || f.Glyph != viewport.DefaultGlyph {
		t.Errorf("Frame = %+v", f)
	}
	if f.Surface.Spec() != h.Spec() {
		t.Error("frame surface does not match the layout")
	}
}

func TestStatusWithSnake(t *testing.T) {
	tod := timeofday.NewBinder(timeofday.Fixed(timeofday.Evening), timeofday.SeasonalConfig{})
	game := snake.NewWithConfig(config.DefaultSnakeConfig(), registry.Deps{
		Store:  storage.NewMemoryKV(),
		Time:   tod,
		Logger: log.New(io.Discard),
	})
	h := mount(t, terminal(40, 12), game, WithTime(tod), WithSeed(1))

	st := h.Status()
	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"time of day", st.TimeOfDay, timeofday.Evening},
		{"variant", st.Variant, snake.Editorial.Title()},
		{"score goal", st.ScoreGoal, 5},
		{"score", st.Score, 0},
		{"game over", st.GameOver, false},
		{"throttled", st.FPSThrottled, false},
		{"grid cols", st.Grid.Cols, 20},
		{"speed", st.Extra["speed_ms"], "108"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Status() %s = %v, expected %v", tt.name, tt.got, tt.expected)
			}
		})
	}
}
