// pkg/engine/command.go
package engine

import "github.com/opd-ai/go-chaostheory/pkg/physics"

// Command is a discrete player action queued by a host
type Command interface {
	apply(s *Session) bool
}

// PlaceBegin starts dragging a new link from the tail
type PlaceBegin struct{ Pos physics.Vector2D }

// PlaceUpdate moves the pending point
type PlaceUpdate struct{ Pos physics.Vector2D }

// PlaceCommit moves the pending point to Pos and appends it
type PlaceCommit struct{ Pos physics.Vector2D }

// PlaceCancel drops the pending point
type PlaceCancel struct{}

// RunToggle starts, pauses or resumes the simulation
type RunToggle struct{}

// RunPause pauses a running simulation
type RunPause struct{}

// Reset restarts the level; Soft keeps the snapshot and history
type Reset struct{ Soft bool }

// HistoryClear forgets previous trails
type HistoryClear struct{}

func (c PlaceBegin) apply(s *Session) bool  { return s.BeginPlacement(c.Pos) }
func (c PlaceUpdate) apply(s *Session) bool { return s.UpdatePlacement(c.Pos) }
func (c PlaceCancel) apply(s *Session) bool { return s.CancelPlacement() }
func (c RunToggle) apply(s *Session) bool   { return s.ToggleRun() }
func (c RunPause) apply(s *Session) bool    { return s.Pause() }

func (c PlaceCommit) apply(s *Session) bool {
	if !s.UpdatePlacement(c.Pos) {
		return false
	}
	return s.CommitPlacement()
}

func (c Reset) apply(s *Session) bool {
	if c.Soft {
		s.SoftReset()
	} else {
		s.HardReset()
	}
	return true
}

func (c HistoryClear) apply(s *Session) bool {
	s.ClearHistory()
	return true
}

// Handle applies a command and reports whether it was accepted.
// A nil command is ignored.
func (s *Session) Handle(cmd Command) bool {
	if cmd == nil {
		return false
	}
	return cmd.apply(s)
}

// Step applies an optional command and then advances one tick. It is the
// per-frame entry point for hosts.
func (s *Session) Step(cmd Command, dt float64) View {
	s.Handle(cmd)
	s.Tick(dt)
	return s.View()
}
