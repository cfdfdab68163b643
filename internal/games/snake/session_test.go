package snake

import (
	"math/rand"
	"testing"

	"github.com/ricrios/hero-arcade/internal/core"
)

func pt(x, y int) core.Point { return core.Point{X: x, Y: y} }

func newRunning(cols, rows int, body []core.Point, dir core.Direction, fruit core.Point) *Session {
	s := NewSession(cols, rows, Rules{InitialLength: 1, ScoreGoal: 5, MilestoneEvery: 5}, Events{}, 1)
	s.body = body
	s.dir = dir
	s.fruit = fruit
	s.Start()
	return s
}

func assertUnique(t *testing.T, body []core.Point) {
	t.Helper()
	seen := make(map[core.Point]bool, len(body))
	for _, p := range body {
		if seen[p] {
			t.Fatalf("body has duplicate cell %v: %v", p, body)
		}
		seen[p] = true
	}
}

func TestEatScenario(t *testing.T) {
	s := newRunning(10, 10, []core.Point{pt(5, 5)}, core.DirRight, pt(6, 5))

	s.Tick()

	if s.Head() != pt(6, 5) {
		t.Errorf("Head() = %v, expected (6,5)", s.Head())
	}
	if s.Score() != 1 {
		t.Errorf("Score() = %d, expected 1", s.Score())
	}
	if len(s.Body()) != 2 {
		t.Errorf("len(Body()) = %d, expected 2", len(s.Body()))
	}
	f := s.Fruit()
	if f == pt(5, 5) || f == pt(6, 5) {
		t.Errorf("Fruit() = %v, must not be inside the body", f)
	}
	if f.X < 0 || f.X >= 10 || f.Y < 0 || f.Y >= 10 {
		t.Errorf("Fruit() = %v is off the board", f)
	}
	if s.Phase() != PhaseRunning {
		t.Errorf("Phase() = %s, expected running", s.Phase())
	}
}

func TestSelfCollision(t *testing.T) {
	// Head came from the right; turning down hits a body cell that is not the tail.
	body := []core.Point{pt(5, 5), pt(6, 5), pt(6, 6), pt(5, 6), pt(4, 6)}
	s := newRunning(10, 10, body, core.DirLeft, pt(0, 0))

	var over int
	s.events.OnGameOver = func(int, bool) { over++ }

	if !s.SetDirection(core.DirDown) {
		t.Fatal("SetDirection(down) should be accepted while moving left")
	}
	s.Tick()

	if s.Phase() != PhaseGameOver {
		t.Errorf("Phase() = %s, expected gameOver", s.Phase())
	}
	if over != 1 {
		t.Errorf("OnGameOver fired %d times, expected 1", over)
	}
}

func TestMoveIntoVacatingTail(t *testing.T) {
	body := []core.Point{pt(5, 5), pt(6, 5), pt(6, 6), pt(5, 6)}
	s := newRunning(10, 10, body, core.DirLeft, pt(0, 0))

	s.SetDirection(core.DirDown)
	s.Tick()

	if s.Phase() != PhaseRunning {
		t.Fatalf("Phase() = %s, moving into the vacating tail should be allowed", s.Phase())
	}
	if s.Head() != pt(5, 6) || len(s.Body()) != 4 {
		t.Errorf("Head() = %v len %d, expected (5,6) len 4", s.Head(), len(s.Body()))
	}
	assertUnique(t, s.Body())
}

func TestWallCollision(t *testing.T) {
	tests := []struct {
		name string
		head core.Point
		dir  core.Direction
	}{
		{"right", pt(9, 5), core.DirRight},
		{"left", pt(0, 5), core.DirLeft},
		{"up", pt(3, 0), core.DirUp},
		{"down", pt(3, 9), core.DirDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newRunning(10, 10, []core.Point{tt.head}, tt.dir, pt(5, 5))
			s.Tick()
			if s.Phase() != PhaseGameOver {
				t.Errorf("Phase() = %s, expected gameOver", s.Phase())
			}
		})
	}
}

func TestReversalGuard(t *testing.T) {
	tests := []struct {
		name     string
		body     []core.Point
		dir      core.Direction
		turn     core.Direction
		accepted bool
	}{
		{"reverse long body", []core.Point{pt(5, 5), pt(4, 5), pt(3, 5)}, core.DirRight, core.DirLeft, false},
		{"reverse length two", []core.Point{pt(5, 5), pt(5, 4)}, core.DirDown, core.DirUp, false},
		{"reverse length one", []core.Point{pt(5, 5)}, core.DirRight, core.DirLeft, true},
		{"perpendicular", []core.Point{pt(5, 5), pt(4, 5)}, core.DirRight, core.DirUp, true},
		{"same direction", []core.Point{pt(5, 5), pt(4, 5)}, core.DirRight, core.DirRight, true},
		{"none", []core.Point{pt(5, 5)}, core.DirRight, core.DirNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newRunning(10, 10, tt.body, tt.dir, pt(0, 0))
			before := s.Snapshot()

			if got := s.SetDirection(tt.turn); got != tt.accepted {
				t.Errorf("SetDirection(%v) = %v, expected %v", tt.turn, got, tt.accepted)
			}
			if !tt.accepted && s.pending != core.DirNone {
				t.Errorf("rejected turn left pending = %v", s.pending)
			}
			if !tt.accepted && s.Snapshot() != before {
				t.Error("rejected turn changed the state")
			}
		})
	}
}

func TestReverseLengthOneMoves(t *testing.T) {
	s := newRunning(10, 10, []core.Point{pt(5, 5)}, core.DirRight, pt(0, 0))
	s.SetDirection(core.DirLeft)
	s.Tick()
	if s.Head() != pt(4, 5) || s.Phase() != PhaseRunning {
		t.Errorf("Head() = %v phase %s, expected (4,5) running", s.Head(), s.Phase())
	}
}

func TestMovementInvariant(t *testing.T) {
	dirs := []core.Direction{core.DirUp, core.DirDown, core.DirLeft, core.DirRight}
	for seed := int64(1); seed <= 40; seed++ {
		rng := rand.New(rand.NewSource(seed))
		s := NewSession(12, 9, Rules{InitialLength: 3, MilestoneEvery: 5}, Events{}, seed)
		s.Start()
		for i := 0; i < 400; i++ {
			if s.Phase() == PhaseGameOver {
				s.Reset(12, 9, seed+int64(i))
				s.Start()
			}
			if rng.Intn(3) == 0 {
				s.SetDirection(dirs[rng.Intn(len(dirs))])
			}
			if rng.Intn(4) == 0 {
				s.Feed()
			}
			prev := s.Head()
			s.Tick()
			if s.Phase() == PhaseGameOver {
				continue
			}
			if d := s.Head().Manhattan(prev); d != 1 {
				t.Fatalf("seed %d: head moved %d cells (%v -> %v)", seed, d, prev, s.Head())
			}
			assertUnique(t, s.body)
			if s.occupies(s.Fruit()) {
				t.Fatalf("seed %d: fruit %v inside body", seed, s.Fruit())
			}
		}
	}
}

func TestFruitNeverInBody(t *testing.T) {
	for seed := int64(0); seed < 300; seed++ {
		s := NewSession(6, 5, Rules{InitialLength: 3}, Events{}, seed)
		s.Start()
		for eat := 0; eat < 3 && s.Phase() == PhaseRunning; eat++ {
			if !s.Feed() {
				break
			}
			s.Tick()
			if s.occupies(s.Fruit()) {
				t.Fatalf("seed %d: fruit %v placed inside body %v", seed, s.Fruit(), s.body)
			}
		}
	}
}

func TestAdvanceAccumulates(t *testing.T) {
	s := newRunning(20, 5, []core.Point{pt(2, 2)}, core.DirRight, pt(0, 0))
	s.SetSpeedMs(100, 40)

	tests := []struct {
		dt       float64
		expected int // moves after this advance
	}{
		{50, 0},
		{49.9, 0},
		{0.1, 1},
		{250, 3},
		{50, 4},
	}
	for i, tt := range tests {
		s.Advance(tt.dt)
		if s.Moves() != tt.expected {
			t.Errorf("step %d: Moves() = %d, expected %d", i, s.Moves(), tt.expected)
		}
	}
}

func TestSetSpeedFloor(t *testing.T) {
	s := NewSession(5, 5, Rules{}, Events{}, 0)
	s.SetSpeedMs(10, 40)
	if s.SpeedMs() != 40 {
		t.Errorf("SpeedMs() = %v, expected floor 40", s.SpeedMs())
	}
}

func TestPauseStopsTime(t *testing.T) {
	s := newRunning(20, 5, []core.Point{pt(2, 2)}, core.DirRight, pt(0, 0))
	s.TogglePause()
	s.Advance(1000)
	if s.Moves() != 0 || s.Phase() != PhasePaused {
		t.Errorf("paused session moved %d times, phase %s", s.Moves(), s.Phase())
	}
	s.TogglePause()
	s.Advance(100)
	if s.Moves() != 1 {
		t.Errorf("Moves() after resume = %d, expected 1", s.Moves())
	}
}

func TestIdleDoesNotAdvance(t *testing.T) {
	s := NewSession(10, 10, Rules{InitialLength: 3}, Events{}, 0)
	s.Advance(1000)
	s.Tick()
	if s.Moves() != 0 || s.Phase() != PhaseIdle {
		t.Errorf("idle session moved: moves %d phase %s", s.Moves(), s.Phase())
	}
}

func TestGameOverIsSticky(t *testing.T) {
	s := newRunning(10, 10, []core.Point{pt(9, 0)}, core.DirRight, pt(0, 5))
	s.Tick()
	if s.Phase() != PhaseGameOver {
		t.Fatal("expected gameOver")
	}

	before := s.Snapshot()
	s.Start()
	s.TogglePause()
	s.SetDirection(core.DirDown)
	s.Advance(1000)
	s.Tick()
	if s.Snapshot() != before {
		t.Errorf("gameOver state changed: %+v -> %+v", before, s.Snapshot())
	}

	s.Reset(10, 10, 3)
	if s.Phase() != PhaseIdle || s.Score() != 0 {
		t.Errorf("Reset() = phase %s score %d, expected idle 0", s.Phase(), s.Score())
	}
}

func TestMilestoneAndUnlock(t *testing.T) {
	var eats, unlocks []int
	var milestones []int
	s := NewSession(30, 3, Rules{InitialLength: 1, ScoreGoal: 3, MilestoneEvery: 2}, Events{
		OnEat:       func(score int) { eats = append(eats, score) },
		OnUnlock:    func(score int) { unlocks = append(unlocks, score) },
		OnMilestone: func(score int) { milestones = append(milestones, score) },
	}, 7)
	s.Start()

	for i := 0; i < 6; i++ {
		if !s.Feed() {
			t.Fatalf("Feed() failed at %d", i)
		}
		s.Tick()
	}

	if len(eats) != 6 {
		t.Errorf("OnEat fired %d times, expected 6", len(eats))
	}
	if len(unlocks) != 1 || unlocks[0] != 3 {
		t.Errorf("OnUnlock = %v, expected exactly [3]", unlocks)
	}
	if len(milestones) != 3 || milestones[0] != 2 || milestones[2] != 6 {
		t.Errorf("OnMilestone = %v, expected [2 4 6]", milestones)
	}
	if !s.Unlocked() {
		t.Error("Unlocked() = false after reaching goal")
	}
}

func TestPerfectBoard(t *testing.T) {
	var perfect int
	var overPerfect bool
	s := NewSession(2, 1, Rules{InitialLength: 1}, Events{
		OnPerfect:  func(int) { perfect++ },
		OnGameOver: func(_ int, p bool) { overPerfect = p },
	}, 0)
	if s.Head() != pt(1, 0) || s.Fruit() != pt(0, 0) {
		t.Fatalf("setup: head %v fruit %v", s.Head(), s.Fruit())
	}
	s.Start()
	s.SetDirection(core.DirLeft)
	s.Tick()

	if perfect != 1 || !overPerfect || !s.Perfect() {
		t.Errorf("perfect fired %d, game over perfect %v", perfect, overPerfect)
	}
	if s.Phase() != PhaseGameOver {
		t.Errorf("Phase() = %s, a full board ends the run", s.Phase())
	}
	if s.Fruit() != noFruit {
		t.Errorf("Fruit() = %v, expected none on a full board", s.Fruit())
	}
}

func TestTinyBoard(t *testing.T) {
	s := NewSession(0, -3, Rules{InitialLength: 3}, Events{}, 0)
	if s.Cols() != 1 || s.Rows() != 1 || len(s.Body()) != 1 {
		t.Fatalf("degenerate board = %dx%d len %d", s.Cols(), s.Rows(), len(s.Body()))
	}
	if s.Fruit() != noFruit {
		t.Errorf("Fruit() = %v, expected none", s.Fruit())
	}
	s.Start()
	s.Tick()
	if s.Phase() != PhaseGameOver {
		t.Errorf("Phase() = %s, expected gameOver", s.Phase())
	}
}

func TestInitialBodyFitsNarrowBoard(t *testing.T) {
	s := NewSession(3, 3, Rules{InitialLength: 5}, Events{}, 0)
	for _, p := range s.Body() {
		if !s.inBounds(p) {
			t.Errorf("body cell %v off a 3x3 board", p)
		}
	}
	if len(s.Body()) != 2 {
		t.Errorf("len(Body()) = %d, expected 2 on a 3 column board", len(s.Body()))
	}
}

func TestResize(t *testing.T) {
	t.Run("idle relays", func(t *testing.T) {
		s := NewSession(10, 10, Rules{InitialLength: 3}, Events{}, 0)
		if s.Resize(20, 8) {
			t.Error("Resize() of idle session reported a reset")
		}
		if s.Head() != pt(10, 4) {
			t.Errorf("Head() = %v, expected new center (10,4)", s.Head())
		}
	})

	t.Run("running fits", func(t *testing.T) {
		s := newRunning(20, 20, []core.Point{pt(3, 3), pt(2, 3)}, core.DirRight, pt(15, 15))
		if s.Resize(10, 10) {
			t.Error("Resize() reported a reset for a snake that fits")
		}
		if s.Phase() != PhaseRunning || s.Head() != pt(3, 3) {
			t.Errorf("running snake disturbed: phase %s head %v", s.Phase(), s.Head())
		}
		if f := s.Fruit(); f.X >= 10 || f.Y >= 10 || s.occupies(f) {
			t.Errorf("Fruit() = %v, expected relocation onto the new board", f)
		}
	})

	t.Run("running does not fit", func(t *testing.T) {
		s := newRunning(20, 20, []core.Point{pt(15, 3), pt(14, 3)}, core.DirRight, pt(0, 0))
		if !s.Resize(10, 10) {
			t.Error("Resize() should reset a snake that falls off the board")
		}
		if s.Phase() != PhaseIdle || s.Cols() != 10 {
			t.Errorf("after reset phase %s cols %d", s.Phase(), s.Cols())
		}
	})

	t.Run("game over kept", func(t *testing.T) {
		s := newRunning(10, 10, []core.Point{pt(9, 0)}, core.DirRight, pt(0, 5))
		s.Tick()
		s.Resize(5, 5)
		if s.Phase() != PhaseGameOver {
			t.Errorf("Phase() = %s, gameOver must survive a resize", s.Phase())
		}
	})
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		s := NewSession(16, 12, Rules{InitialLength: 3, MilestoneEvery: 5}, Events{}, 12345)
		s.Start()
		s.SetSpeedMs(100, 40)
		for i := 0; i < 60; i++ {
			switch i {
			case 3:
				s.SetDirection(core.DirDown)
			case 6:
				s.SetDirection(core.DirLeft)
			case 9:
				s.SetDirection(core.DirUp)
			}
			if i%4 == 0 {
				s.Feed()
			}
			s.Advance(100)
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("snapshots differ with the same seed:\n%+v\n%+v", a, b)
	}
}
