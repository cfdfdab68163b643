package engine

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/ricrios/hero-arcade/internal/storage"
	"github.com/ricrios/hero-arcade/internal/timeofday"
)

type options struct {
	log           *log.Logger
	time          *timeofday.Binder
	clock         func() time.Time
	reducedMotion *bool
	scores        storage.ScoreKeeper
	seed          int64
}

func defaultOptions() options {
	return options{
		log:   log.Default(),
		clock: time.Now,
	}
}

// Option configures Mount.
type Option func(*options)

// WithLogger sets the logger for lifecycle and layout messages.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithTime sets the time-of-day binder reported by Status. Pass the same
// binder the game was built with.
func WithTime(b *timeofday.Binder) Option {
	return func(o *options) { o.time = b }
}

// WithClock replaces time.Now for the loop start and the default seed.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.clock = now
		}
	}
}

// WithReducedMotion forces the reduced-motion preference, overriding both
// the game config and the container.
func WithReducedMotion(v bool) Option {
	return func(o *options) { o.reducedMotion = &v }
}

// WithScores records each finished game's score.
func WithScores(s storage.ScoreKeeper) Option {
	return func(o *options) { o.scores = s }
}

// WithSeed fixes the game seed. 0 seeds from the clock.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}
