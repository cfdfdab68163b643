package slap

import "time"

// Points scores one creation:
//
//	max(1, floor(cells/10) + colors*5 + glyphs*3)
func Points(s Stats) int {
	return max(1, s.Cells/10+s.Colors*5+s.Glyphs*3)
}

// FlowWindow is how far back the flow meter counts strokes.
const FlowWindow = 5 * time.Second

// FlowLevel names the drawing tempo.
type FlowLevel string

const (
	FlowIdle        FlowLevel = "idle"
	FlowCalibrating FlowLevel = "calibrating"
	FlowWarmingUp   FlowLevel = "warming up"
	FlowLockedIn    FlowLevel = "locked in"
	FlowOverclocked FlowLevel = "overclocked"
)

// FlowMeter tracks the stroke rate over a sliding window.
// Timestamps come from the caller so the meter follows frame time.
type FlowMeter struct {
	stamps []time.Duration
}

// Record notes one stroke at t.
func (f *FlowMeter) Record(t time.Duration) {
	f.stamps = append(f.stamps, t)
	f.prune(t)
}

// Reset forgets every stroke.
func (f *FlowMeter) Reset() {
	f.stamps = f.stamps[:0]
}

func (f *FlowMeter) prune(now time.Duration) {
	keep := f.stamps[:0]
	for _, s := range f.stamps {
		if now-s <= FlowWindow {
			keep = append(keep, s)
		}
	}
	f.stamps = keep
}

// Rate returns strokes per second over the window ending at now.
func (f *FlowMeter) Rate(now time.Duration) float64 {
	f.prune(now)
	return float64(len(f.stamps)) / FlowWindow.Seconds()
}

// Level classifies the rate at now.
func (f *FlowMeter) Level(now time.Duration) FlowLevel {
	rate := f.Rate(now)
	switch {
	case len(f.stamps) == 0:
		return FlowIdle
	case rate > 12:
		return FlowOverclocked
	case rate > 6:
		return FlowLockedIn
	case rate > 2:
		return FlowWarmingUp
	default:
		return FlowCalibrating
	}
}
