package timeofday

import (
	"fmt"
	"time"
)

// Season of the year.
type Season string

const (
	Winter Season = "winter"
	Spring Season = "spring"
	Summer Season = "summer"
	Fall   Season = "fall"
)

// Hemisphere selects how months map to seasons.
type Hemisphere string

const (
	North Hemisphere = "north"
	South Hemisphere = "south"
)

// ResolveSeason maps a date to a meteorological season.
func ResolveSeason(t time.Time, h Hemisphere) Season {
	var s Season
	switch m := t.Month(); {
	case m == time.December || m <= time.February:
		s = Winter
	case m <= time.May:
		s = Spring
	case m <= time.August:
		s = Summer
	default:
		s = Fall
	}
	if h != South {
		return s
	}
	switch s {
	case Winter:
		return Summer
	case Spring:
		return Fall
	case Summer:
		return Winter
	default:
		return Spring
	}
}

// Adjustment is a subtle per-season nudge applied on top of the day-part.
type Adjustment struct {
	Sat        float64 // Accent saturation multiplier
	BaseMsBias int     // Added to the step interval; lower is faster
	PulseAmp   float64 // Pulse amplitude multiplier
	GlowAmp    float64 // Glow radius multiplier
}

// Neutral is the adjustment used when seasonal biasing is disabled.
var Neutral = Adjustment{Sat: 1, BaseMsBias: 0, PulseAmp: 1, GlowAmp: 1}

// Matrix holds one adjustment per (season, day-part).
type Matrix map[Season]map[DayPart]Adjustment

func row(a, b, c, d, e Adjustment) map[DayPart]Adjustment {
	return map[DayPart]Adjustment{Dawn: a, Morning: b, Afternoon: c, Dusk: d, Evening: e}
}

// DefaultMatrix returns the built-in seasonal matrix.
func DefaultMatrix() Matrix {
	return Matrix{
		Winter: row(
			Adjustment{0.97, 2, 0.98, 0.95},
			Adjustment{0.97, 2, 0.98, 0.95},
			Adjustment{0.96, 3, 0.97, 0.94},
			Adjustment{0.98, 1, 0.98, 0.96},
			Adjustment{0.98, 1, 0.98, 0.96},
		),
		Spring: row(
			Adjustment{1.03, -1, 1.02, 1.03},
			Adjustment{1.03, -1, 1.02, 1.03},
			Adjustment{1.02, -1, 1.02, 1.02},
			Adjustment{1.02, -1, 1.01, 1.02},
			Adjustment{1.02, -1, 1.01, 1.02},
		),
		Summer: row(
			Adjustment{1.05, -3, 1.04, 1.06},
			Adjustment{1.05, -3, 1.04, 1.06},
			Adjustment{1.04, -4, 1.05, 1.05},
			Adjustment{1.03, -2, 1.03, 1.04},
			Adjustment{1.03, -2, 1.03, 1.04},
		),
		Fall: row(
			Adjustment{1.01, 0, 1.00, 1.00},
			Adjustment{1.01, 0, 1.00, 1.00},
			Neutral, Neutral, Neutral,
		),
	}
}

// Validate checks that every cell exists and stays inside the subtle ranges.
func (m Matrix) Validate() error {
	for _, s := range []Season{Winter, Spring, Summer, Fall} {
		parts, ok := m[s]
		if !ok {
			return fmt.Errorf("timeofday: missing season %s", s)
		}
		for _, p := range All {
			a, ok := parts[p]
			if !ok {
				return fmt.Errorf("timeofday: missing adjustment for %s.%s", s, p)
			}
			switch {
			case a.Sat < 0.95 || a.Sat > 1.05:
				return fmt.Errorf("timeofday: %s.%s sat %.2f out of range", s, p, a.Sat)
			case a.BaseMsBias < -5 || a.BaseMsBias > 5:
				return fmt.Errorf("timeofday: %s.%s bias %d out of range", s, p, a.BaseMsBias)
			case a.PulseAmp < 0.95 || a.PulseAmp > 1.05:
				return fmt.Errorf("timeofday: %s.%s pulse %.2f out of range", s, p, a.PulseAmp)
			case a.GlowAmp < 0.90 || a.GlowAmp > 1.10:
				return fmt.Errorf("timeofday: %s.%s glow %.2f out of range", s, p, a.GlowAmp)
			}
		}
	}
	return nil
}

// SeasonalConfig enables seasonal biasing.
type SeasonalConfig struct {
	Enabled    bool       `yaml:"enabled"`
	Hemisphere Hemisphere `yaml:"hemisphere"`
}

// Signal is everything a game needs from the binder for one frame.
type Signal struct {
	DayPart DayPart
	Season  Season
	Adj     Adjustment
}

// Binder combines a day-part Source with optional seasonal adjustments.
type Binder struct {
	Source   Source
	Seasonal SeasonalConfig
	Matrix   Matrix
	Now      func() time.Time
}

// NewBinder creates a binder with the default matrix.
func NewBinder(src Source, seasonal SeasonalConfig) *Binder {
	if src == nil {
		src = Clock{}
	}
	return &Binder{Source: src, Seasonal: seasonal, Matrix: DefaultMatrix(), Now: time.Now}
}

// Signal returns the current day-part and its seasonal adjustment.
// With seasonal biasing disabled the adjustment is Neutral.
func (b *Binder) Signal() Signal {
	part := b.Source.DayPart()
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	sig := Signal{DayPart: part, Season: ResolveSeason(now(), b.Seasonal.Hemisphere), Adj: Neutral}
	if !b.Seasonal.Enabled {
		return sig
	}
	if a, ok := b.Matrix[sig.Season][part]; ok {
		sig.Adj = a
	}
	return sig
}

// DayPart implements Source so a Binder can stand in wherever a plain
// source is expected.
func (b *Binder) DayPart() DayPart {
	return b.Source.DayPart()
}
