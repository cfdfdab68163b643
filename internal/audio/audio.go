// Package audio plays short synthesized sound effects for game events.
// Playback is optional: hosts without an audio device use Nop.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Effect names a game event with a sound.
type Effect int

const (
	EffectEat Effect = iota
	EffectMilestone
	EffectUnlock
	EffectGameOver
	EffectSlap
)

func (e Effect) String() string {
	switch e {
	case EffectEat:
		return "eat"
	case EffectMilestone:
		return "milestone"
	case EffectUnlock:
		return "unlock"
	case EffectGameOver:
		return "game_over"
	case EffectSlap:
		return "slap"
	default:
		return "unknown"
	}
}

// Player plays effects. Implementations must not block the caller.
type Player interface {
	Play(e Effect)
}

// Nop discards every effect.
type Nop struct{}

// Play implements Player.
func (Nop) Play(Effect) {}

// note is one tone of an effect.
type note struct {
	freq float64
	dur  time.Duration
}

var tunes = map[Effect][]note{
	EffectEat:       {{880, 50 * time.Millisecond}},
	EffectMilestone: {{660, 60 * time.Millisecond}, {990, 90 * time.Millisecond}},
	EffectUnlock:    {{523.25, 70 * time.Millisecond}, {659.25, 70 * time.Millisecond}, {783.99, 120 * time.Millisecond}},
	EffectGameOver:  {{220, 120 * time.Millisecond}, {164.81, 220 * time.Millisecond}},
	EffectSlap:      {{1318.51, 40 * time.Millisecond}},
}

// Streamer builds a finite streamer for an effect at the given volume
// (1 is unchanged, 0 is silent). Returns nil for unknown effects.
func Streamer(e Effect, volume float64) beep.Streamer {
	tune, ok := tunes[e]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(tune))
	for _, n := range tune {
		sine, err := generators.SineTone(sampleRate, n.freq)
		if err != nil {
			continue
		}
		parts = append(parts, fade(beep.Take(sampleRate.N(n.dur), sine), sampleRate.N(n.dur)))
	}
	return withVolume(beep.Seq(parts...), volume)
}

// Samples returns the length of an effect in samples.
func Samples(e Effect) int {
	total := 0
	for _, n := range tunes[e] {
		total += sampleRate.N(n.dur)
	}
	return total
}

// fade applies a linear release over the last third of the tone so notes
// do not click.
func fade(s beep.Streamer, total int) beep.Streamer {
	release := max(1, total/3)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			if left := total - pos; left < release {
				vol := float64(left) / float64(release)
				samples[i][0] *= vol
				samples[i][1] *= vol
			}
			pos++
		}
		return n, ok
	})
}

// withVolume maps a linear gain onto beep's logarithmic volume.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// SoundManager plays effects on the system speaker.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewSoundManager creates a manager; call Initialize before playing.
func NewSoundManager(volume float64) *SoundManager {
	if volume <= 0 {
		volume = 1
	}
	return &SoundManager{mixer: &beep.Mixer{}, volume: volume}
}

// Initialize opens the speaker. Safe to call more than once.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Play implements Player.
func (sm *SoundManager) Play(e Effect) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := Streamer(e, sm.volume)
	if s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Cleanup silences anything still playing.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Recorder collects effects instead of playing them.
type Recorder struct {
	mu     sync.Mutex
	played []Effect
}

// Play implements Player.
func (r *Recorder) Play(e Effect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.played = append(r.played, e)
}

// Played returns the effects seen so far.
func (r *Recorder) Played() []Effect {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Effect, len(r.played))
	copy(out, r.played)
	return out
}

// New returns a speaker-backed player when enabled and a device is
// available, otherwise Nop. The error reports why sound is off.
func New(enabled bool, volume float64) (Player, error) {
	if !enabled {
		return Nop{}, nil
	}
	sm := NewSoundManager(volume)
	if err := sm.Initialize(); err != nil {
		return Nop{}, err
	}
	return sm, nil
}
