// pkg/engine/session.go
package engine

import (
	"context"
	"math/rand/v2"

	"github.com/opd-ai/go-chaostheory/pkg/config"
	"github.com/opd-ai/go-chaostheory/pkg/event"
	"github.com/opd-ai/go-chaostheory/pkg/level"
	"github.com/opd-ai/go-chaostheory/pkg/logging"
	"github.com/opd-ai/go-chaostheory/pkg/physics"
)

// noTarget marks that the tail is inside no target
const noTarget = -1

// WinStatus is the scoring result of a session
type WinStatus struct {
	Won   bool
	Bonus int
}

// Session is one play-through of a level: the live chain, the phase
// machine, trails and scoring. A Session is not safe for concurrent use;
// hosts drive it from a single goroutine.
type Session struct {
	Level    *level.Level
	Config   config.SimulationConfig
	EventBus *event.Bus
	Logger   *logging.Logger
	Random   physics.RandomSource

	targets  []level.Target
	redZones []physics.Zone
	chain    *physics.Chain
	state    simState
	trail    *Ring[physics.Vector2D]
	history  *Ring[[]physics.Vector2D]
	touches  []int
	touching int
	placing  *physics.Vector2D
	win      WinStatus
	tick     uint64
	ctx      context.Context
}

// globalRandom draws from the math/rand/v2 top level source
type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }

// NewSession creates a session in Setup holding the level's initial chain
func NewSession(lvl *level.Level, cfg config.SimulationConfig) *Session {
	targets := lvl.Targets()
	return &Session{
		Level:    lvl,
		Config:   cfg,
		EventBus: event.NewEventBus(),
		Logger:   logging.Discard(),
		Random:   globalRandom{},
		targets:  targets,
		redZones: lvl.RedZones(),
		chain:    lvl.InitialChain(),
		state:    setupState(),
		trail:    NewRing[physics.Vector2D](cfg.TrailCapacity),
		history:  NewRing[[]physics.Vector2D](cfg.HistoryCapacity),
		touches:  make([]int, len(targets)),
		touching: noTarget,
		ctx:      context.Background(),
	}
}

// Tick advances the session by dt seconds. Ticks longer than
// Config.MaxDeltaTime simulate nothing but still apply inertia.
func (s *Session) Tick(dt float64) {
	if s.state.phase == PhaseRunning {
		if dt > s.Config.MaxDeltaTime {
			s.Logger.Warn(s.ctx, "delta time too large, skipping step",
				"delta_time", dt, "max_delta_time", s.Config.MaxDeltaTime)
		}
		// NaN fails both comparisons
		if !(dt >= 0 && dt <= s.Config.MaxDeltaTime) {
			dt = 0
		}
		tail := s.chain.Tail()
		s.chain.Simulate(s.Level.Gravity, dt, s.Config.Iterations)
		s.trail.Push(tail)
	}

	s.updateTouches(s.chain.Tail())
	s.updateWin()
	s.tick++
}

// Advance runs up to ticks fixed steps of dt and stops early once the
// level is won. It returns the number of ticks run.
func (s *Session) Advance(ticks int, dt float64) int {
	for i := 0; i < ticks; i++ {
		s.Tick(dt)
		if s.win.Won {
			return i + 1
		}
	}
	return ticks
}

// updateTouches counts a touch each time the tail enters a target
// after having been outside all targets.
func (s *Session) updateTouches(tail physics.Vector2D) {
	inside := noTarget
	for i, t := range s.targets {
		if !t.Zone.Contains(tail) {
			continue
		}
		if s.touching == noTarget {
			s.touches[i]++
			s.Logger.Debug(s.ctx, "target touched", "target", i, "touches", s.touches[i])
			s.EventBus.Publish(event.NewTargetEvent(s, i, s.touches[i]))
		}
		s.touching = i
		inside = i
	}
	if inside == noTarget {
		s.touching = noTarget
	}
}

// updateWin recomputes the bonus every tick once all targets were touched
func (s *Session) updateWin() {
	sum := 0
	for _, n := range s.touches {
		if n == 0 && !s.win.Won {
			return
		}
		sum += n
	}

	first := !s.win.Won
	s.win = WinStatus{Won: true, Bonus: sum - len(s.touches)}
	if first {
		s.Logger.Info(s.ctx, "level won",
			"level_id", string(s.Level.ID), "bonus", s.win.Bonus, "tick", s.tick)
		s.EventBus.Publish(event.NewWinEvent(s, s.win.Bonus))
	}
}

// transition is the single place where the phase changes
func (s *Session) transition(tr trigger) bool {
	prev := s.state.phase

	switch {
	case tr == triggerToggle && prev == PhaseSetup:
		if s.placing != nil {
			return false
		}
		snapshot := s.chain.Clone()
		s.chain.Jiggle(s.Random)
		s.state = runningState(snapshot)
		s.ctx = logging.WithRunID(context.Background(), "")
		s.publish(event.RunStarted)

	case tr == triggerToggle && prev == PhaseRunning, tr == triggerPause && prev == PhaseRunning:
		s.state = pausedState(s.state.snapshot)
		s.publish(event.RunPaused)

	case tr == triggerToggle && prev == PhasePaused:
		s.state = runningState(s.state.snapshot)
		s.publish(event.RunResumed)

	case tr == triggerSoftReset && prev != PhaseSetup:
		s.clearScore()
		s.chain = s.state.snapshot.Clone()
		s.chain.Jiggle(s.Random)
		s.history.Push(s.trail.Items())
		s.trail.Clear()
		s.state = runningState(s.state.snapshot)
		s.ctx = logging.WithRunID(context.Background(), "")
		s.publish(event.SoftReset)

	case tr == triggerSoftReset, tr == triggerHardReset:
		s.clearScore()
		s.chain = s.Level.InitialChain()
		s.trail.Clear()
		s.history.Clear()
		s.placing = nil
		s.state = setupState()
		s.ctx = context.Background()
		s.publish(event.HardReset)

	default:
		return false
	}

	s.Logger.Debug(s.ctx, "phase transition",
		"trigger", tr.String(), "from", prev.String(), "to", s.state.phase.String())
	return true
}

// clearScore zeroes touch counters and the win result
func (s *Session) clearScore() {
	for i := range s.touches {
		s.touches[i] = 0
	}
	s.touching = noTarget
	s.win = WinStatus{}
}

func (s *Session) publish(t event.Type) {
	s.EventBus.Publish(&event.BaseEvent{EventType: t, Source: s})
}

// ToggleRun starts the simulation from Setup, or flips between Running
// and Paused. Starting is refused while a placement is in progress.
func (s *Session) ToggleRun() bool {
	return s.transition(triggerToggle)
}

// Pause moves a running session to Paused. It does nothing otherwise.
func (s *Session) Pause() bool {
	return s.transition(triggerPause)
}

// SoftReset restarts the run from the snapshot with a fresh jiggle and
// moves the current trail into the history. From Setup it behaves like
// HardReset.
func (s *Session) SoftReset() {
	s.transition(triggerSoftReset)
}

// HardReset reloads the level's initial chain and clears all trails,
// scores and any placement in progress.
func (s *Session) HardReset() {
	s.transition(triggerHardReset)
}

// ClearHistory forgets the trails of previous runs
func (s *Session) ClearHistory() {
	s.history.Clear()
	s.publish(event.HistoryCleared)
}

// Constrain clamps pos out of the first red zone containing it, or
// failing that out of the first closed target zone containing it.
func (s *Session) Constrain(pos physics.Vector2D) physics.Vector2D {
	for _, z := range s.redZones {
		if z.Contains(pos) {
			return z.Project(pos)
		}
	}
	for _, t := range s.targets {
		closed := t.ClosedZone()
		if closed.Contains(pos) {
			return closed.Project(pos)
		}
	}
	return pos
}

// BeginPlacement starts dragging a new link. It is accepted only in
// Setup and only within the grab radius of the tail.
func (s *Session) BeginPlacement(pos physics.Vector2D) bool {
	if s.state.phase != PhaseSetup || s.placing != nil {
		return false
	}
	if s.chain.Tail().Distance(pos) >= s.Config.GrabRadius {
		return false
	}
	p := s.Constrain(pos)
	s.placing = &p
	return true
}

// UpdatePlacement moves the pending point, clamped out of forbidden zones
func (s *Session) UpdatePlacement(pos physics.Vector2D) bool {
	if s.state.phase != PhaseSetup || s.placing == nil {
		return false
	}
	p := s.Constrain(pos)
	s.placing = &p
	return true
}

// CommitPlacement appends the pending point to the chain
func (s *Session) CommitPlacement() bool {
	if s.state.phase != PhaseSetup || s.placing == nil {
		return false
	}
	pos := *s.placing
	s.chain.Add(pos)
	s.placing = nil
	s.Logger.Debug(s.ctx, "point added", "x", pos.X, "y", pos.Y, "links", s.chain.Len())
	s.publish(event.PointAdded)
	return true
}

// CancelPlacement drops the pending point
func (s *Session) CancelPlacement() bool {
	if s.placing == nil {
		return false
	}
	s.placing = nil
	return true
}

// Phase returns the current phase
func (s *Session) Phase() Phase {
	return s.state.phase
}

// Points returns every chain position, root first
func (s *Session) Points() []physics.Vector2D {
	return s.chain.Positions()
}

// Snapshot returns a copy of the layout captured at run start, or nil in Setup
func (s *Session) Snapshot() *physics.Chain {
	if s.state.snapshot == nil {
		return nil
	}
	return s.state.snapshot.Clone()
}

// Trail returns the recent tail positions, oldest first
func (s *Session) Trail() []physics.Vector2D {
	return s.trail.Items()
}

// History returns the trails of previous runs, oldest first. The inner
// slices are shared and must not be modified.
func (s *Session) History() [][]physics.Vector2D {
	return s.history.Items()
}

// TouchLevels returns the touch counter of each target
func (s *Session) TouchLevels() []int {
	return append([]int(nil), s.touches...)
}

// TailDistance returns the distance from pos to the chain tail
func (s *Session) TailDistance(pos physics.Vector2D) float64 {
	return s.chain.Tail().Distance(pos)
}

// WinStatus returns the current scoring result
func (s *Session) WinStatus() WinStatus {
	return s.win
}

// IsPlacing returns the pending point while a drag is in progress
func (s *Session) IsPlacing() (physics.Vector2D, bool) {
	if s.placing == nil {
		return physics.Vector2D{}, false
	}
	return *s.placing, true
}

// Ticks returns the number of ticks processed
func (s *Session) Ticks() uint64 {
	return s.tick
}
