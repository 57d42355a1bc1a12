// pkg/audio/cue.go
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/opd-ai/go-chaostheory/pkg/event"
)

// Cue is a short sound tied to a session event
type Cue int

const (
	CueNone Cue = iota
	CuePlace
	CueStart
	CueReset
	CueTouch
	CueBonusTouch
	CueWin
)

// Note is a single sine tone
type Note struct {
	Freq     float64
	Duration time.Duration
}

const (
	baseTouchFreq = 660.0
	// each extra touch raises the bonus cue by a semitone
	semitone     = 1.0594630943592953
	maxBonusStep = 12
)

// CueFor maps a session event to its cue. The second result is the
// touch count for touch cues and zero otherwise.
func CueFor(e event.Event) (Cue, int) {
	switch e.GetType() {
	case event.PointAdded:
		return CuePlace, 0
	case event.RunStarted:
		return CueStart, 0
	case event.SoftReset, event.HardReset:
		return CueReset, 0
	case event.TargetTouched:
		touches := 1
		if te, ok := e.(*event.TargetEvent); ok {
			touches = te.Touches
		}
		if touches > 1 {
			return CueBonusTouch, touches
		}
		return CueTouch, touches
	case event.LevelWon:
		return CueWin, 0
	default:
		return CueNone, 0
	}
}

// Notes returns the melody of a cue
func Notes(c Cue, touches int) []Note {
	switch c {
	case CuePlace:
		return []Note{{Freq: 1200, Duration: 20 * time.Millisecond}}
	case CueStart:
		return []Note{{Freq: 440, Duration: 40 * time.Millisecond}}
	case CueReset:
		return []Note{{Freq: 330, Duration: 40 * time.Millisecond}}
	case CueTouch:
		return []Note{{Freq: baseTouchFreq, Duration: 60 * time.Millisecond}}
	case CueBonusTouch:
		step := touches - 1
		if step > maxBonusStep {
			step = maxBonusStep
		}
		freq := baseTouchFreq * math.Pow(semitone, float64(step))
		return []Note{{Freq: freq, Duration: 60 * time.Millisecond}}
	case CueWin:
		return []Note{
			{Freq: 987.77, Duration: 90 * time.Millisecond},
			{Freq: 1318.51, Duration: 180 * time.Millisecond},
		}
	default:
		return nil
	}
}

// Stream renders notes into a single streamer at the given volume
// (1 is full scale). It returns nil for an empty melody.
func Stream(notes []Note, rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	if len(notes) == 0 {
		return nil, nil
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(rate, n.Freq)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(rate.N(n.Duration), tone))
	}

	seq := beep.Seq(parts...)
	if volume <= 0 {
		return &effects.Volume{Streamer: seq, Base: 2, Silent: true}, nil
	}
	return &effects.Volume{Streamer: seq, Base: 2, Volume: math.Log2(volume)}, nil
}
