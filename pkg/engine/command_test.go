// pkg/engine/command_test.go
package engine

import (
	"testing"

	"github.com/opd-ai/go-chaostheory/pkg/physics"
)

func TestSession_Handle(t *testing.T) {
	s := newTestSession(t)

	steps := []struct {
		name     string
		cmd      Command
		accepted bool
		phase    Phase
	}{
		{"nil ignored", nil, false, PhaseSetup},
		{"grab far away", PlaceBegin{Pos: physics.Vec(100, 100)}, false, PhaseSetup},
		{"grab tail", PlaceBegin{Pos: physics.Vec(3, -302)}, true, PhaseSetup},
		{"drag", PlaceUpdate{Pos: physics.Vec(150, -450)}, true, PhaseSetup},
		{"start refused while dragging", RunToggle{}, false, PhaseSetup},
		{"release", PlaceCommit{Pos: physics.Vec(200, -450)}, true, PhaseSetup},
		{"cancel without drag", PlaceCancel{}, false, PhaseSetup},
		{"start", RunToggle{}, true, PhaseRunning},
		{"pause", RunPause{}, true, PhasePaused},
		{"soft reset", Reset{Soft: true}, true, PhaseRunning},
		{"clear history", HistoryClear{}, true, PhaseRunning},
		{"hard reset", Reset{}, true, PhaseSetup},
	}

	for _, step := range steps {
		if got := s.Handle(step.cmd); got != step.accepted {
			t.Errorf("%s: Handle() = %v, expected %v", step.name, got, step.accepted)
		}
		if s.Phase() != step.phase {
			t.Errorf("%s: Phase() = %v, expected %v", step.name, s.Phase(), step.phase)
		}
	}
}

func TestSession_CommitUsesReleasePosition(t *testing.T) {
	s := newTestSession(t)

	s.Handle(PlaceBegin{Pos: physics.Vec(0, -300)})
	s.Handle(PlaceCommit{Pos: physics.Vec(0, 50)})

	// (0, 50) lies inside the closed margin of the target at the root
	tail := s.Points()[len(s.Points())-1]
	if tail != physics.Vec(0, 300) {
		t.Errorf("tail = %v, expected the clamped point (0, 300)", tail)
	}
}

func TestSession_StepAndView(t *testing.T) {
	s := newTestSession(t)

	v := s.Step(PlaceBegin{Pos: physics.Vec(0, -300)}, frame)
	if !v.Placing || v.Placement != physics.Vec(0, -300) {
		t.Errorf("view should show the placement, got %+v", v.Placement)
	}
	if !v.Editing() || v.Tick != 1 {
		t.Errorf("Editing()=%v Tick=%d", v.Editing(), v.Tick)
	}
	if v.Root() != physics.Vec(0, 0) || v.Tail() != physics.Vec(0, -300) {
		t.Errorf("Root()=%v Tail()=%v", v.Root(), v.Tail())
	}
	if len(v.Targets) != 2 || v.Targets[0].Closed.Radius != 300 {
		t.Errorf("unexpected targets: %+v", v.Targets)
	}

	s.Step(PlaceCancel{}, frame)
	v = s.Step(RunToggle{}, frame)
	if v.Phase != PhaseRunning || len(v.Trail) != 1 || v.Editing() {
		t.Errorf("phase %v with %d trail points", v.Phase, len(v.Trail))
	}
	if v.LevelID != "test" {
		t.Errorf("LevelID = %q", v.LevelID)
	}
}
