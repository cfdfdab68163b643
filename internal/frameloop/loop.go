// Package frameloop implements a fixed-interval stepper driven by host frame
// requests. It measures frame rate and flags sustained low frame rate so
// renderers can drop expensive effects without touching logic timing.
package frameloop

import (
	"context"
	"time"
)

const (
	// MaxFPS caps the frame callback rate.
	MaxFPS = 60
	// DefaultLowFPS is the threshold under which frames count as slow.
	DefaultLowFPS = 50
	// MaxDeltaMs bounds a single raw frame delta, so a stalled host does
	// not produce a huge catch-up step.
	MaxDeltaMs = 100
	// DefaultThrottleWindow is how long frames must stay slow before the
	// loop reports itself throttled.
	DefaultThrottleWindow = time.Second
)

// Options configures a Loop. All callbacks are optional.
type Options struct {
	TargetFPS      int
	LowFPS         float64
	ThrottleWindow time.Duration

	OnFrame    func(dtMs float64)
	OnFPS      func(fps float64)
	OnThrottle func(throttled bool)
}

// Loop accumulates elapsed time between host frames and invokes OnFrame once
// at least one frame interval has built up.
// Not safe for concurrent use; hosts call it from their update loop.
type Loop struct {
	opts     Options
	interval float64 // ms

	running bool
	gen     uint64

	last time.Time
	acc  float64

	fps     float64
	frames  int
	fpsLast time.Time

	lowSince  time.Time
	throttled bool
}

// New creates a stopped loop.
func New(opts Options) *Loop {
	if opts.TargetFPS <= 0 || opts.TargetFPS > MaxFPS {
		opts.TargetFPS = MaxFPS
	}
	if opts.LowFPS <= 0 {
		opts.LowFPS = DefaultLowFPS
	}
	if opts.ThrottleWindow <= 0 {
		opts.ThrottleWindow = DefaultThrottleWindow
	}
	return &Loop{
		opts:     opts,
		interval: 1000 / float64(opts.TargetFPS),
		fps:      float64(opts.TargetFPS),
	}
}

// Interval returns the frame interval.
func (l *Loop) Interval() time.Duration {
	return time.Duration(l.interval * float64(time.Millisecond))
}

// Start begins a new run. Starting a running loop is a no-op.
func (l *Loop) Start(now time.Time) {
	if l.running {
		return
	}
	l.running = true
	l.gen++
	l.last = time.Time{}
	l.acc = 0
	l.frames = 0
	l.fpsLast = now
	l.lowSince = time.Time{}
}

// Stop ends the current run. Any frame request tagged with the old
// generation becomes stale. Stopping a stopped loop is a no-op.
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	l.gen++
}

// Running reports whether the loop is started.
func (l *Loop) Running() bool {
	return l.running
}

// Generation identifies the current run. Hosts tag frame requests with it
// and drop requests whose generation no longer matches.
func (l *Loop) Generation() uint64 {
	return l.gen
}

// Throttled reports whether frame rate has been low for the throttle window.
func (l *Loop) Throttled() bool {
	return l.throttled
}

// FPS returns the last measured frames per second.
func (l *Loop) FPS() float64 {
	return l.fps
}

// Advance is called by the host on every frame. It returns true when
// OnFrame was invoked.
func (l *Loop) Advance(now time.Time) bool {
	if !l.running {
		return false
	}
	if l.last.IsZero() {
		l.last = now
		return false
	}

	dt := float64(now.Sub(l.last)) / float64(time.Millisecond)
	l.last = now
	if dt < 0 {
		dt = 0
	}
	l.frames++

	l.measure(now)
	l.trackThrottle(now, dt)

	l.acc += min(dt, MaxDeltaMs)
	if l.acc < l.interval {
		return false
	}
	step := l.acc
	l.acc = 0
	if l.opts.OnFrame != nil {
		l.opts.OnFrame(step)
	}
	return true
}

func (l *Loop) measure(now time.Time) {
	elapsed := now.Sub(l.fpsLast)
	if elapsed < time.Second {
		return
	}
	l.fps = float64(l.frames) * float64(time.Second) / float64(elapsed)
	l.frames = 0
	l.fpsLast = now
	if l.opts.OnFPS != nil {
		l.opts.OnFPS(l.fps)
	}
}

func (l *Loop) trackThrottle(now time.Time, dt float64) {
	slow := dt > 0 && 1000/dt < l.opts.LowFPS
	if !slow {
		l.lowSince = time.Time{}
		l.setThrottled(false)
		return
	}
	if l.lowSince.IsZero() {
		l.lowSince = now.Add(-time.Duration(dt * float64(time.Millisecond)))
	}
	if now.Sub(l.lowSince) >= l.opts.ThrottleWindow {
		l.setThrottled(true)
	}
}

func (l *Loop) setThrottled(v bool) {
	if l.throttled == v {
		return
	}
	l.throttled = v
	if l.opts.OnThrottle != nil {
		l.opts.OnThrottle(v)
	}
}

// Run drives the loop from a ticker until ctx is done, for hosts without
// their own frame scheduler. clock may be nil to use time.Now.
func (l *Loop) Run(ctx context.Context, clock func() time.Time) error {
	if clock == nil {
		clock = time.Now
	}
	ticker := time.NewTicker(l.Interval())
	defer ticker.Stop()

	l.Start(clock())
	defer l.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Advance(clock())
		}
	}
}
