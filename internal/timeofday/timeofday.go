// Package timeofday supplies the coarse day-part signal that biases cosmetic
// parameters (speed, glow, color). Games never read the wall clock directly:
// they consume an injected Source so tests can pin any day-part.
package timeofday

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// DayPart is a coarse time-of-day classification.
type DayPart string

const (
	Dawn      DayPart = "dawn"
	Morning   DayPart = "morning"
	Afternoon DayPart = "afternoon"
	Dusk      DayPart = "dusk"
	Evening   DayPart = "evening"
)

// All lists the day-parts in chronological order starting at dawn.
var All = []DayPart{Dawn, Morning, Afternoon, Dusk, Evening}

// Resolve classifies a local time.
// Windows: 05-07 dawn, 07-12 morning, 12-17 afternoon, 17-19 dusk, else evening.
func Resolve(t time.Time) DayPart {
	h := t.Hour()
	switch {
	case h >= 5 && h < 7:
		return Dawn
	case h >= 7 && h < 12:
		return Morning
	case h >= 12 && h < 17:
		return Afternoon
	case h >= 17 && h < 19:
		return Dusk
	default:
		return Evening
	}
}

// Parse converts a name to a DayPart.
func Parse(s string) (DayPart, error) {
	p := DayPart(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range All {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("timeofday: unknown day-part %q", s)
}

// SpeedFactor scales the snake step interval. Values above 1 slow the
// snake down, below 1 speed it up.
func SpeedFactor(p DayPart) float64 {
	switch p {
	case Dawn:
		return 1.05
	case Afternoon:
		return 0.95
	case Evening:
		return 1.08
	default:
		return 1.0
	}
}

// Source supplies the current day-part. Implementations may change their
// answer at any time; consumers poll it.
type Source interface {
	DayPart() DayPart
}

// Clock resolves the day-part from an injected time function.
type Clock struct {
	Now func() time.Time
}

// DayPart implements Source.
func (c Clock) DayPart() DayPart {
	if c.Now == nil {
		return Resolve(time.Now())
	}
	return Resolve(c.Now())
}

// Fixed always reports the same day-part.
type Fixed DayPart

// DayPart implements Source.
func (f Fixed) DayPart() DayPart {
	return DayPart(f)
}

// Switchable is a Source whose value can be changed at runtime, for example
// from an SSH control goroutine. Safe for concurrent use.
type Switchable struct {
	mu   sync.RWMutex
	part DayPart
}

// NewSwitchable creates a Switchable starting at p.
func NewSwitchable(p DayPart) *Switchable {
	return &Switchable{part: p}
}

// Set changes the reported day-part.
func (s *Switchable) Set(p DayPart) {
	s.mu.Lock()
	s.part = p
	s.mu.Unlock()
}

// DayPart implements Source.
func (s *Switchable) DayPart() DayPart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.part
}
