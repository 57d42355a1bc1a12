// pkg/audio/player.go
package audio

import (
	"context"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-chaostheory/pkg/event"
	"github.com/opd-ai/go-chaostheory/pkg/logging"
)

// DefaultSampleRate is used for every cue
const DefaultSampleRate = beep.SampleRate(44100)

// Sink plays streamers. The speaker package is the production sink.
type Sink interface {
	Play(s ...beep.Streamer)
}

type speakerSink struct{}

func (speakerSink) Play(s ...beep.Streamer) { speaker.Play(s...) }

// Player turns session events into sounds
type Player struct {
	SampleRate beep.SampleRate
	Volume     float64
	Logger     *logging.Logger

	mu   sync.Mutex
	sink Sink
	subs []*event.Subscription
}

// NewPlayer creates a player with no output; call Init or SetSink
func NewPlayer(logger *logging.Logger) *Player {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Player{
		SampleRate: DefaultSampleRate,
		Volume:     0.25,
		Logger:     logger,
	}
}

// Init opens the speaker. On failure the player stays silent and the
// error is returned for the caller to log.
func (p *Player) Init() error {
	if err := speaker.Init(p.SampleRate, p.SampleRate.N(time.Second/10)); err != nil {
		return logging.WrapError(err, "failed to initialize speaker")
	}
	p.SetSink(speakerSink{})
	return nil
}

// SetSink replaces the output
func (p *Player) SetSink(s Sink) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sink = s
}

// Attach subscribes the player to every event that has a cue
func (p *Player) Attach(bus *event.Bus) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, typ := range []event.Type{
		event.PointAdded, event.RunStarted, event.SoftReset,
		event.HardReset, event.TargetTouched, event.LevelWon,
	} {
		p.subs = append(p.subs, bus.Subscribe(typ, p.handle))
	}
}

// Detach cancels all subscriptions
func (p *Player) Detach() {
	p.mu.Lock()
	subs := p.subs
	p.subs = nil
	p.mu.Unlock()

	for _, s := range subs {
		s.Cancel()
	}
}

func (p *Player) handle(e event.Event) {
	cue, touches := CueFor(e)
	p.Play(cue, touches)
}

// Play renders and plays a cue. Without a sink it does nothing.
func (p *Player) Play(cue Cue, touches int) {
	p.mu.Lock()
	sink := p.sink
	p.mu.Unlock()
	if sink == nil || cue == CueNone {
		return
	}

	s, err := Stream(Notes(cue, touches), p.SampleRate, p.Volume)
	if err != nil {
		p.Logger.Error(context.Background(), "failed to build cue", err, "cue", int(cue))
		return
	}
	if s != nil {
		sink.Play(s)
	}
}

// Close stops playback and releases the speaker
func (p *Player) Close() {
	p.Detach()
	p.mu.Lock()
	_, usesSpeaker := p.sink.(speakerSink)
	p.sink = nil
	p.mu.Unlock()
	if usesSpeaker {
		speaker.Close()
	}
}
