// pkg/engine/phase.go
package engine

import "github.com/opd-ai/go-chaostheory/pkg/physics"

// Phase is the simulation phase of a session
type Phase int

const (
	// PhaseSetup allows editing the chain; nothing is simulated
	PhaseSetup Phase = iota
	// PhaseRunning integrates the chain every tick
	PhaseRunning
	// PhasePaused freezes the chain but keeps the snapshot
	PhasePaused
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// simState pairs the phase with its data. snapshot is the layout
// captured when the run started and is nil exactly when phase is Setup.
type simState struct {
	phase    Phase
	snapshot *physics.Chain
}

func setupState() simState {
	return simState{phase: PhaseSetup}
}

func runningState(snapshot *physics.Chain) simState {
	return simState{phase: PhaseRunning, snapshot: snapshot}
}

func pausedState(snapshot *physics.Chain) simState {
	return simState{phase: PhasePaused, snapshot: snapshot}
}

// trigger is an input to the phase machine
type trigger int

const (
	triggerToggle trigger = iota
	triggerPause
	triggerSoftReset
	triggerHardReset
)

func (t trigger) String() string {
	switch t {
	case triggerToggle:
		return "toggle"
	case triggerPause:
		return "pause"
	case triggerSoftReset:
		return "soft_reset"
	case triggerHardReset:
		return "hard_reset"
	default:
		return "unknown"
	}
}
