// pkg/render/input.go
package render

import (
	"github.com/opd-ai/go-chaostheory/pkg/engine"
	"github.com/opd-ai/go-chaostheory/pkg/physics"
)

// Action is a host-level request that is not a session command
type Action int

const (
	ActionNone Action = iota
	ActionNextLevel
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionNextLevel:
		return "next_level"
	case ActionQuit:
		return "quit"
	}
	return "none"
}

// RuneCommand maps a typed character to a session command or a host
// action. Unbound characters yield (nil, ActionNone).
func RuneCommand(r rune) (engine.Command, Action) {
	switch r {
	case ' ':
		return engine.RunToggle{}, ActionNone
	case 'r':
		return engine.Reset{Soft: true}, ActionNone
	case 'R':
		return engine.Reset{Soft: false}, ActionNone
	case 'c':
		return engine.HistoryClear{}, ActionNone
	case 'p':
		return engine.RunPause{}, ActionNone
	case 'n':
		return nil, ActionNextLevel
	case 'q':
		return nil, ActionQuit
	}
	return nil, ActionNone
}

// Drag turns a stream of primary-button states into placement commands:
// press begins, holding updates, release commits.
type Drag struct {
	down bool
}

// Down reports whether the button is currently held
func (d *Drag) Down() bool {
	return d.down
}

// Update feeds the current button state and pointer position
func (d *Drag) Update(pressed bool, pos physics.Vector2D) engine.Command {
	switch {
	case pressed && !d.down:
		d.down = true
		return engine.PlaceBegin{Pos: pos}
	case pressed:
		return engine.PlaceUpdate{Pos: pos}
	case d.down:
		d.down = false
		return engine.PlaceCommit{Pos: pos}
	}
	return nil
}

// Reset forgets a held button without committing
func (d *Drag) Reset() {
	d.down = false
}
