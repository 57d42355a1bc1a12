// pkg/render/terminal/input.go
package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-chaostheory/pkg/engine"
	"github.com/opd-ai/go-chaostheory/pkg/render"
)

// KeyCommand maps a key press to a session command or a host action
func KeyCommand(key tcell.Key, r rune) (engine.Command, render.Action) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return nil, render.ActionQuit
	case tcell.KeyRune:
		return render.RuneCommand(r)
	}
	return nil, render.ActionNone
}

func primaryPressed(buttons tcell.ButtonMask) bool {
	return buttons&tcell.Button1 != 0
}
