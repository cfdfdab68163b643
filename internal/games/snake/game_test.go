package snake

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/ricrios/hero-arcade/internal/audio"
	"github.com/ricrios/hero-arcade/internal/config"
	"github.com/ricrios/hero-arcade/internal/core"
	"github.com/ricrios/hero-arcade/internal/grid"
	"github.com/ricrios/hero-arcade/internal/input"
	"github.com/ricrios/hero-arcade/internal/registry"
	"github.com/ricrios/hero-arcade/internal/storage"
	"github.com/ricrios/hero-arcade/internal/surface"
	"github.com/ricrios/hero-arcade/internal/timeofday"
	"github.com/ricrios/hero-arcade/internal/viewport"
)

// 40x12 characters of 8x16 px; 2 rows of HUD leave a 20x10 board of 16 px cells.
const (
	termCols = 40
	termRows = 12
)

type fixture struct {
	game  *Game
	kv    *storage.MemoryKV
	sound *audio.Recorder
	tod   *timeofday.Switchable
	spec  grid.Spec
}

func testConfig() config.SnakeConfig {
	cfg := config.DefaultSnakeConfig()
	cfg.Engine.Grid.MinCellPx = viewport.DefaultGlyph.H
	return cfg
}

func newFixture(t *testing.T, kv *storage.MemoryKV, variant string) *fixture {
	t.Helper()
	if kv == nil {
		kv = storage.NewMemoryKV()
	}
	f := &fixture{
		kv:    kv,
		sound: &audio.Recorder{},
		tod:   timeofday.NewSwitchable(timeofday.Morning),
	}
	cfg := testConfig()
	f.game = NewWithConfig(cfg, registry.Deps{
		Store:   kv,
		Time:    timeofday.NewBinder(f.tod, timeofday.SeasonalConfig{}),
		Sound:   f.sound,
		Logger:  log.New(io.Discard),
		Variant: variant,
	})
	env := viewport.FromTerminal(termCols, termRows, viewport.DefaultGlyph, true)
	f.spec = grid.Compute(viewport.Probe(env).Size(), cfg.Engine.Grid)
	f.game.Resize(f.spec)
	f.game.Reset(core.RuntimeConfig{Seed: 42})
	return f
}

func (f *fixture) played(e audio.Effect) int {
	n := 0
	for _, p := range f.sound.Played() {
		if p == e {
			n++
		}
	}
	return n
}

func TestGameBoardFromLayout(t *testing.T) {
	f := newFixture(t, nil, "")
	if f.spec.Cols != 20 || f.spec.Rows != 10 || f.spec.CellSize != 16 {
		t.Fatalf("layout = %s, expected 20x10 @ 16px", f.spec)
	}
	s := f.game.Session()
	if s.Cols() != 20 || s.Rows() != 10 {
		t.Errorf("session board = %dx%d, expected 20x10", s.Cols(), s.Rows())
	}
	if f.game.State().Phase != string(PhaseIdle) {
		t.Errorf("State().Phase = %q, expected idle", f.game.State().Phase)
	}
}

func TestGameDirectionStarts(t *testing.T) {
	f := newFixture(t, nil, "")
	f.game.Handle(input.Direction(core.DirUp))
	if f.game.Session().Phase() != PhaseRunning {
		t.Fatalf("Phase() = %s, a direction should start the run", f.game.Session().Phase())
	}
	f.game.Update(100)
	if f.game.Session().Head() != pt(10, 4) {
		t.Errorf("Head() = %v, expected (10,4)", f.game.Session().Head())
	}
}

func TestGamePersistsHighScore(t *testing.T) {
	kv := storage.NewMemoryKV()
	f := newFixture(t, kv, "")
	f.game.Handle(input.Action(core.ActionPrimary))

	f.game.feed()
	f.game.step()

	if f.game.State().Score != 1 {
		t.Fatalf("Score = %d, expected 1", f.game.State().Score)
	}
	if v, ok, _ := kv.GetItem(HighScoreKey); !ok || v != "1" {
		t.Errorf("stored high score = %q, %v, expected \"1\"", v, ok)
	}
	if f.played(audio.EffectEat) != 1 {
		t.Errorf("eat sound played %d times, expected 1", f.played(audio.EffectEat))
	}

	again := newFixture(t, kv, "")
	if again.game.HighScore() != 1 {
		t.Errorf("HighScore() after reload = %d, expected 1", again.game.HighScore())
	}
}

func TestGameCorruptHighScore(t *testing.T) {
	kv := storage.NewMemoryKV()
	kv.SetItem(HighScoreKey, "{broken")
	f := newFixture(t, kv, "")
	if f.game.HighScore() != 0 {
		t.Errorf("HighScore() = %d, expected 0 for a corrupt value", f.game.HighScore())
	}
}

func TestGameMilestoneAndUnlock(t *testing.T) {
	f := newFixture(t, nil, "")
	f.game.Handle(input.Action(core.ActionPrimary))
	f.game.Handle(input.Direction(core.DirUp))

	for i := 0; i < 5; i++ {
		if !f.game.feed() {
			t.Fatalf("feed() failed at %d", i)
		}
		f.game.step()
	}

	if got := f.game.Session().SpeedMs(); got != 98 {
		t.Errorf("SpeedMs() after first milestone = %v, expected 98", got)
	}
	if f.played(audio.EffectUnlock) != 1 || f.played(audio.EffectMilestone) != 1 {
		t.Errorf("sounds = %v, expected one unlock and one milestone", f.sound.Played())
	}
	if d := f.game.Details(); d.Extra["unlocked"] != "true" || d.ScoreGoal != 5 || d.Endless {
		t.Errorf("Details() = %+v", d)
	}
}

func TestGameDayPartChangeRecomputesSpeed(t *testing.T) {
	f := newFixture(t, nil, "")
	f.game.Handle(input.Action(core.ActionPrimary))
	if got := f.game.Session().SpeedMs(); got != 100 {
		t.Fatalf("SpeedMs() = %v, expected 100 in the morning", got)
	}

	f.tod.Set(timeofday.Evening)
	f.game.Update(0)

	if got := f.game.Session().SpeedMs(); got != 108 {
		t.Errorf("SpeedMs() after evening = %v, expected 108", got)
	}
	if st := f.game.Style(false, false); st.GlowPx != 8 {
		t.Errorf("Style().GlowPx = %d, expected 8 in the evening", st.GlowPx)
	}
}

func TestGameBypassKeepsRunning(t *testing.T) {
	f := newFixture(t, nil, "")
	f.game.Handle(input.Action(core.ActionPrimary))
	f.game.Handle(input.Action(core.ActionBypass))

	if !f.game.OverlayOpen() {
		t.Fatal("OverlayOpen() = false after bypass")
	}
	f.game.Update(100)
	if f.game.Session().Moves() != 1 || f.game.Session().Phase() != PhaseRunning {
		t.Errorf("game behind the overlay: moves %d phase %s", f.game.Session().Moves(), f.game.Session().Phase())
	}

	f.game.Handle(input.Action(core.ActionBypass))
	if f.game.OverlayOpen() {
		t.Error("second bypass should close the overlay")
	}
}

func TestGameRestartAfterGameOver(t *testing.T) {
	f := newFixture(t, nil, "")
	f.game.Handle(input.Action(core.ActionPrimary))
	for i := 0; i < 20 && !f.game.State().GameOver; i++ {
		f.game.step()
	}
	if !f.game.State().GameOver {
		t.Fatal("snake should have hit the right wall")
	}
	if f.played(audio.EffectGameOver) != 1 {
		t.Errorf("game over sound played %d times, expected 1", f.played(audio.EffectGameOver))
	}

	f.game.Handle(input.Direction(core.DirUp))
	if !f.game.State().GameOver {
		t.Error("a direction must not leave gameOver")
	}

	f.game.Handle(input.Action(core.ActionPrimary))
	if st := f.game.State(); st.GameOver || st.Phase != string(PhaseIdle) || st.Score != 0 {
		t.Errorf("State() after restart = %+v, expected idle", st)
	}
}

func TestGamePauseToggle(t *testing.T) {
	f := newFixture(t, nil, "")
	f.game.Handle(input.Action(core.ActionPrimary))
	f.game.Handle(input.Action(core.ActionPause))
	if !f.game.State().Paused {
		t.Fatal("State().Paused = false after pause")
	}
	f.game.Update(500)
	if f.game.Session().Moves() != 0 {
		t.Errorf("paused game moved %d times", f.game.Session().Moves())
	}
	f.game.Handle(input.Action(core.ActionPrimary))
	if f.game.State().Paused {
		t.Error("primary should resume a paused game")
	}
}

func TestGameVariantSelection(t *testing.T) {
	tests := []struct {
		in       string
		expected Variant
	}{
		{"", Editorial},
		{"steel-grid", SteelGrid},
		{"LuxCyberpunk", LuxCyberpunk},
		{"bogus", Editorial},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f := newFixture(t, nil, tt.in)
			if f.game.Variant() != tt.expected {
				t.Errorf("Variant() = %s, expected %s", f.game.Variant(), tt.expected)
			}
		})
	}

	f := newFixture(t, nil, "")
	f.game.Handle(input.Action(core.ActionVariant))
	if f.game.Variant() != SteelGrid {
		t.Errorf("Variant() after cycling = %s, expected steelgrid", f.game.Variant())
	}
	f.game.SetVariant("nope")
	if f.game.Variant() != SteelGrid {
		t.Error("SetVariant() with an unknown variant should be ignored")
	}
}

func renderFrame(t *testing.T, f *fixture, reducedMotion bool) *core.Screen {
	t.Helper()
	env := viewport.FromTerminal(termCols, termRows, viewport.DefaultGlyph, true)
	screen := core.NewScreen(termCols, termRows)
	hudRows := f.spec.AvailH / viewport.DefaultGlyph.H
	f.game.Render(registry.Frame{
		Screen:        screen,
		Surface:       surface.New(f.spec, viewport.Probe(env)),
		Glyph:         viewport.DefaultGlyph,
		ReducedMotion: reducedMotion,
		HUD:           core.NewRect(0, hudRows, termCols, termRows-hudRows),
	})
	return screen
}

func TestGameRender(t *testing.T) {
	f := newFixture(t, nil, "")
	screen := renderFrame(t, f, false)

	// Head at cell (10,5) covers characters 20-21 of row 5.
	if got := screen.Get(20, 5); got != '█' {
		t.Errorf("head glyph = %q, expected █", got)
	}
	if got := screen.Get(18, 5); got != '▒' {
		t.Errorf("body glyph = %q, expected ▒", got)
	}
	if !strings.Contains(screen.Row(10), "Score: 0") {
		t.Errorf("HUD row = %q, expected the score", screen.Row(10))
	}
	if !strings.Contains(screen.Row(10), "Enter site") {
		t.Errorf("HUD row = %q, expected the bypass label", screen.Row(10))
	}
	if !strings.Contains(screen.Row(11), "start") {
		t.Errorf("hint row = %q, expected a start hint", screen.Row(11))
	}

	fruit := f.game.Session().Fruit()
	if got := screen.Get(fruit.X*2, fruit.Y); got != '●' {
		t.Errorf("fruit glyph at %v = %q, expected ●", fruit, got)
	}
}

func TestGameRenderOverlay(t *testing.T) {
	f := newFixture(t, nil, "")
	f.game.Handle(input.Action(core.ActionBypass))
	screen := renderFrame(t, f, false)
	if !strings.Contains(screen.String(), "Back to game") {
		t.Error("overlay text missing from the frame")
	}
}

func TestGameRenderParallax(t *testing.T) {
	f := newFixture(t, nil, "")
	// A pointer far to the right shifts the canvas 6 px, one character.
	f.game.Handle(input.Event{Type: input.EventPointer, Phase: input.PhaseMove, Pixel: core.Point{X: 100000, Y: 96}})

	moved := renderFrame(t, f, false)
	if moved.Get(22, 5) != '█' {
		t.Errorf("shifted head glyph = %q, expected █", moved.Get(22, 5))
	}
	still := renderFrame(t, f, true)
	if still.Get(22, 5) == '█' || still.Get(20, 5) != '█' {
		t.Error("reduced motion should disable parallax")
	}
}

// step forces exactly one tick.
func (g *Game) step() { g.session.Tick() }

// feed places the fruit in front of the head.
func (g *Game) feed() bool { return g.session.Feed() }
