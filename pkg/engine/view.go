// pkg/engine/view.go
package engine

import (
	"github.com/opd-ai/go-chaostheory/pkg/level"
	"github.com/opd-ai/go-chaostheory/pkg/physics"
)

// View is a read-only snapshot of a session for renderers
type View struct {
	LevelID  level.ID
	Text     string
	Phase    Phase
	Tick     uint64
	Points   []physics.Vector2D
	Trail    []physics.Vector2D
	History  [][]physics.Vector2D
	Targets  []TargetView
	RedZones []physics.Zone
	Placing  bool
	// Placement is the pending point, valid when Placing is set
	Placement physics.Vector2D
	Win       WinStatus
	// Last is set when the level has no successor
	Last bool
}

// TargetView is a target with its closed margin and touch count
type TargetView struct {
	Zone    physics.Zone
	Closed  physics.Zone
	Touches int
}

// Root returns the anchor position
func (v View) Root() physics.Vector2D {
	return v.Points[0]
}

// Tail returns the free end of the chain
func (v View) Tail() physics.Vector2D {
	return v.Points[len(v.Points)-1]
}

// Editing reports whether placement aids (red zones, closed margins)
// should be shown
func (v View) Editing() bool {
	return v.Phase == PhaseSetup
}

// View builds a snapshot of the current state
func (s *Session) View() View {
	v := View{
		LevelID:  s.Level.ID,
		Text:     s.Level.Text,
		Phase:    s.state.phase,
		Tick:     s.tick,
		Points:   s.chain.Positions(),
		Trail:    s.trail.Items(),
		History:  s.history.Items(),
		RedZones: append([]physics.Zone(nil), s.redZones...),
		Win:      s.win,
		Last:     s.Level.Next == "",
	}
	for i, t := range s.targets {
		v.Targets = append(v.Targets, TargetView{
			Zone:    t.Zone,
			Closed:  t.ClosedZone(),
			Touches: s.touches[i],
		})
	}
	v.Placement, v.Placing = s.IsPlacing()
	return v
}
