package snake

import (
	"math/rand"

	"github.com/ricrios/hero-arcade/internal/core"
)

// Phase is the session state machine position.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseRunning  Phase = "running"
	PhasePaused   Phase = "paused"
	PhaseGameOver Phase = "gameOver"
)

// Rules are the gameplay constants of a session.
type Rules struct {
	InitialLength  int
	ScoreGoal      int
	MilestoneEvery int
}

// Events are optional callbacks fired synchronously from Tick.
type Events struct {
	OnEat       func(score int)
	OnMilestone func(score int)
	OnUnlock    func(score int)
	OnPerfect   func(score int)
	OnGameOver  func(score int, perfect bool)
}

// noFruit marks a board with no empty cell left.
var noFruit = core.Point{X: -1, Y: -1}

// Session holds the rules and state of one Snake run.
// Not safe for concurrent use.
type Session struct {
	cols, rows int
	rules      Rules
	events     Events
	rng        *rand.Rand

	body    []core.Point // Head at index 0
	dir     core.Direction
	pending core.Direction
	fruit   core.Point
	score   int
	phase   Phase
	moves   int

	speedMs float64
	acc     float64

	unlocked bool
	perfect  bool
}

// NewSession creates an idle session on a cols x rows board.
func NewSession(cols, rows int, rules Rules, events Events, seed int64) *Session {
	if rules.InitialLength <= 0 {
		rules.InitialLength = 1
	}
	if rules.MilestoneEvery <= 0 {
		rules.MilestoneEvery = 5
	}
	s := &Session{rules: rules, events: events, speedMs: 100}
	s.Reset(cols, rows, seed)
	return s
}

// Reset re-initializes body, fruit and score and returns to idle.
// This is the only way out of gameOver.
func (s *Session) Reset(cols, rows int, seed int64) {
	s.cols, s.rows = max(1, cols), max(1, rows)
	s.rng = rand.New(rand.NewSource(seed))
	s.score = 0
	s.moves = 0
	s.acc = 0
	s.unlocked = false
	s.perfect = false
	s.phase = PhaseIdle
	s.placeBody()
	s.fruit = s.placeFruit()
}

// placeBody lays the initial body at the board center heading right,
// shortened when the board is too narrow.
func (s *Session) placeBody() {
	head := core.Point{X: s.cols / 2, Y: s.rows / 2}
	n := max(1, min(s.rules.InitialLength, head.X+1))
	s.body = make([]core.Point, n)
	for i := range s.body {
		s.body[i] = core.Point{X: head.X - i, Y: head.Y}
	}
	s.dir = core.DirRight
	s.pending = core.DirNone
}

// placeFruit picks a uniformly random empty cell, or noFruit when the body
// fills the board.
func (s *Session) placeFruit() core.Point {
	occupied := make([]bool, s.cols*s.rows)
	for _, p := range s.body {
		if s.inBounds(p) {
			occupied[p.Y*s.cols+p.X] = true
		}
	}
	empty := make([]core.Point, 0, max(0, len(occupied)-len(s.body)))
	for i, taken := range occupied {
		if !taken {
			empty = append(empty, core.Point{X: i % s.cols, Y: i / s.cols})
		}
	}
	if len(empty) == 0 {
		return noFruit
	}
	return empty[s.rng.Intn(len(empty))]
}

func (s *Session) inBounds(p core.Point) bool {
	return p.X >= 0 && p.X < s.cols && p.Y >= 0 && p.Y < s.rows
}

// Start moves idle to running; paused resumes.
func (s *Session) Start() {
	if s.phase == PhaseIdle || s.phase == PhasePaused {
		s.phase = PhaseRunning
	}
}

// Pause moves running to paused.
func (s *Session) Pause() {
	if s.phase == PhaseRunning {
		s.phase = PhasePaused
	}
}

// TogglePause flips between running and paused.
func (s *Session) TogglePause() {
	switch s.phase {
	case PhaseRunning:
		s.phase = PhasePaused
	case PhasePaused:
		s.phase = PhaseRunning
	}
}

// SetDirection queues a turn for the next tick.
// A 180 degree reversal is ignored while the body is longer than one cell.
// Returns whether the turn was accepted.
func (s *Session) SetDirection(d core.Direction) bool {
	if d == core.DirNone || s.phase == PhaseGameOver {
		return false
	}
	if len(s.body) > 1 && d == s.dir.Opposite() {
		return false
	}
	s.pending = d
	return true
}

// SetSpeedMs sets the step interval, floored at floorMs.
func (s *Session) SetSpeedMs(ms float64, floorMs int) {
	s.speedMs = max(float64(max(1, floorMs)), ms)
}

// SpeedMs returns the step interval.
func (s *Session) SpeedMs() float64 {
	return s.speedMs
}

// Advance accumulates frame time and steps once per interval.
// Does nothing unless running.
func (s *Session) Advance(dtMs float64) {
	if s.phase != PhaseRunning || dtMs <= 0 {
		return
	}
	s.acc += dtMs
	for s.acc >= s.speedMs {
		s.acc -= s.speedMs
		s.Tick()
		if s.phase != PhaseRunning {
			s.acc = 0
			break
		}
	}
}

// Tick moves the snake one cell. Leaving the board or running into the body
// (other than the tail cell that vacates this tick) ends the run.
func (s *Session) Tick() {
	if s.phase != PhaseRunning {
		return
	}
	if s.pending != core.DirNone {
		s.dir = s.pending
		s.pending = core.DirNone
	}

	next := s.body[0].Add(s.dir.Vector())
	if !s.inBounds(next) {
		s.end()
		return
	}

	grows := next == s.fruit
	check := len(s.body)
	if !grows {
		check--
	}
	for i := 0; i < check; i++ {
		if s.body[i] == next {
			s.end()
			return
		}
	}

	s.body = append([]core.Point{next}, s.body...)
	if !grows {
		s.body = s.body[:len(s.body)-1]
	}
	s.moves++

	if grows {
		s.eat()
	}
}

func (s *Session) eat() {
	s.score++
	full := len(s.body) >= s.cols*s.rows
	if full {
		s.fruit = noFruit
	} else {
		s.fruit = s.placeFruit()
	}

	if s.events.OnEat != nil {
		s.events.OnEat(s.score)
	}
	if !s.unlocked && s.rules.ScoreGoal > 0 && s.score >= s.rules.ScoreGoal {
		s.unlocked = true
		if s.events.OnUnlock != nil {
			s.events.OnUnlock(s.score)
		}
	}
	if s.score%s.rules.MilestoneEvery == 0 && s.events.OnMilestone != nil {
		s.events.OnMilestone(s.score)
	}

	if full {
		s.perfect = true
		if s.events.OnPerfect != nil {
			s.events.OnPerfect(s.score)
		}
		s.end()
	}
}

func (s *Session) end() {
	s.phase = PhaseGameOver
	s.pending = core.DirNone
	if s.events.OnGameOver != nil {
		s.events.OnGameOver(s.score, s.perfect)
	}
}

// Resize adapts the session to a new board.
// Idle sessions are re-laid on the new board. A running or paused snake
// that still fits keeps playing (the fruit moves if it fell off the board);
// one that does not fit is reset to idle. Game over keeps its final state.
// Returns true when the run was reset.
func (s *Session) Resize(cols, rows int) bool {
	cols, rows = max(1, cols), max(1, rows)
	if cols == s.cols && rows == s.rows {
		return false
	}

	switch s.phase {
	case PhaseIdle:
		s.cols, s.rows = cols, rows
		s.placeBody()
		s.fruit = s.placeFruit()
		return false
	case PhaseGameOver:
		s.cols, s.rows = cols, rows
		return false
	}

	s.cols, s.rows = cols, rows
	fits := len(s.body) < cols*rows
	for _, p := range s.body {
		if !s.inBounds(p) {
			fits = false
			break
		}
	}
	if !fits {
		s.Reset(cols, rows, s.rng.Int63())
		return true
	}
	if !s.inBounds(s.fruit) || s.occupies(s.fruit) {
		s.fruit = s.placeFruit()
	}
	return false
}

func (s *Session) occupies(p core.Point) bool {
	for _, b := range s.body {
		if b == p {
			return true
		}
	}
	return false
}

// Feed places the fruit directly in front of the head so the next tick eats it.
// Ignored when that cell is off the board or part of the body.
func (s *Session) Feed() bool {
	dir := s.dir
	if s.pending != core.DirNone {
		dir = s.pending
	}
	next := s.body[0].Add(dir.Vector())
	if !s.inBounds(next) || s.occupies(next) {
		return false
	}
	s.fruit = next
	return true
}

// Accessors.

func (s *Session) Phase() Phase              { return s.phase }
func (s *Session) Score() int                { return s.score }
func (s *Session) Fruit() core.Point         { return s.fruit }
func (s *Session) Direction() core.Direction { return s.dir }
func (s *Session) Unlocked() bool            { return s.unlocked }
func (s *Session) Perfect() bool             { return s.perfect }
func (s *Session) Moves() int                { return s.moves }
func (s *Session) Cols() int                 { return s.cols }
func (s *Session) Rows() int                 { return s.rows }

// Body returns a copy of the body, head first.
func (s *Session) Body() []core.Point {
	out := make([]core.Point, len(s.body))
	copy(out, s.body)
	return out
}

// Head returns the head cell.
func (s *Session) Head() core.Point {
	return s.body[0]
}
