package surface

import (
	"time"

	"github.com/ricrios/hero-arcade/internal/core"
)

// DefaultDebounce is the quiet period before a resize is applied.
const DefaultDebounce = 100 * time.Millisecond

// Debouncer coalesces bursts of resize requests so the grid is recomputed
// once per burst and never mid-frame. Only the last request is applied.
type Debouncer struct {
	delay   time.Duration
	pending bool
	size    core.Size
	at      time.Time
}

// NewDebouncer creates a debouncer. A non-positive delay uses DefaultDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Request records a new container size, restarting the quiet period.
func (d *Debouncer) Request(size core.Size, now time.Time) {
	d.pending = true
	d.size = size
	d.at = now
}

// Pending reports whether a request is waiting.
func (d *Debouncer) Pending() bool {
	return d.pending
}

// Due returns the latest size once the quiet period has elapsed.
// It reports each burst exactly once.
func (d *Debouncer) Due(now time.Time) (core.Size, bool) {
	if !d.pending || now.Sub(d.at) < d.delay {
		return core.Size{}, false
	}
	d.pending = false
	return d.size, true
}

// Cancel drops any pending request.
func (d *Debouncer) Cancel() {
	d.pending = false
}
