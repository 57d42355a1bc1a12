// pkg/audio/cue_test.go
package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/opd-ai/go-chaostheory/pkg/event"
)

func TestCueFor(t *testing.T) {
	tests := []struct {
		name    string
		event   event.Event
		cue     Cue
		touches int
	}{
		{"point added", &event.BaseEvent{EventType: event.PointAdded}, CuePlace, 0},
		{"run started", &event.BaseEvent{EventType: event.RunStarted}, CueStart, 0},
		{"soft reset", &event.BaseEvent{EventType: event.SoftReset}, CueReset, 0},
		{"hard reset", &event.BaseEvent{EventType: event.HardReset}, CueReset, 0},
		{"first touch", event.NewTargetEvent(nil, 0, 1), CueTouch, 1},
		{"bonus touch", event.NewTargetEvent(nil, 1, 4), CueBonusTouch, 4},
		{"win", event.NewWinEvent(nil, 2), CueWin, 0},
		{"silent", &event.BaseEvent{EventType: event.HistoryCleared}, CueNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cue, touches := CueFor(tt.event)
			if cue != tt.cue || touches != tt.touches {
				t.Errorf("CueFor() = (%v, %d), expected (%v, %d)", cue, touches, tt.cue, tt.touches)
			}
		})
	}
}

func TestNotes_BonusPitchRises(t *testing.T) {
	prev := Notes(CueTouch, 1)[0].Freq
	for touches := 2; touches <= 5; touches++ {
		freq := Notes(CueBonusTouch, touches)[0].Freq
		if freq <= prev {
			t.Errorf("touch %d frequency %v should be above %v", touches, freq, prev)
		}
		prev = freq
	}

	capped := Notes(CueBonusTouch, 100)[0].Freq
	if capped != Notes(CueBonusTouch, maxBonusStep+1)[0].Freq {
		t.Error("bonus pitch should stop rising after an octave")
	}
	if Notes(CueNone, 0) != nil {
		t.Error("CueNone should have no notes")
	}
}

func countSamples(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
	t.Fatal("streamer did not finish")
	return 0
}

func TestStream_Length(t *testing.T) {
	rate := beep.SampleRate(8000)
	notes := []Note{
		{Freq: 440, Duration: 50 * time.Millisecond},
		{Freq: 880, Duration: 100 * time.Millisecond},
	}

	s, err := Stream(notes, rate, 0.5)
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}

	want := rate.N(50*time.Millisecond) + rate.N(100*time.Millisecond)
	if got := countSamples(t, s); got != want {
		t.Errorf("streamed %d samples, expected %d", got, want)
	}
}

func TestStream_Errors(t *testing.T) {
	if s, err := Stream(nil, DefaultSampleRate, 1); s != nil || err != nil {
		t.Errorf("empty melody = (%v, %v), expected (nil, nil)", s, err)
	}

	// above the Nyquist frequency
	if _, err := Stream([]Note{{Freq: 9000, Duration: time.Millisecond}}, beep.SampleRate(8000), 1); err == nil {
		t.Error("expected an error for an unplayable frequency")
	}
}
