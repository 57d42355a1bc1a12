// pkg/render/engo/input.go
package engo

import (
	"context"
	"errors"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-chaostheory/pkg/engine"
	"github.com/opd-ai/go-chaostheory/pkg/logging"
	"github.com/opd-ai/go-chaostheory/pkg/render"
)

// Registered button names
const (
	ButtonToggle = "toggle"
	ButtonRetry  = "retry"
	ButtonClear  = "clear"
	ButtonPause  = "pause"
	ButtonNext   = "next"
	ButtonQuit   = "quit"
	ButtonShift  = "shift"
)

// buttonOrder is the order buttons are polled in each frame
var buttonOrder = []string{ButtonToggle, ButtonRetry, ButtonClear, ButtonPause, ButtonNext, ButtonQuit}

// ButtonCommand maps a pressed button to a session command or a host
// action. Shift turns a retry into a full reset.
func ButtonCommand(name string, shift bool) (engine.Command, render.Action) {
	var r rune
	switch name {
	case ButtonToggle:
		r = ' '
	case ButtonRetry:
		r = 'r'
		if shift {
			r = 'R'
		}
	case ButtonClear:
		r = 'c'
	case ButtonPause:
		r = 'p'
	case ButtonNext:
		r = 'n'
	case ButtonQuit:
		r = 'q'
	default:
		return nil, render.ActionNone
	}
	return render.RuneCommand(r)
}

// MouseHeld folds one frame's mouse action into the held state of the
// left button
func MouseHeld(held bool, action engo.Action, button engo.MouseButton) bool {
	if button != engo.MouseButtonLeft {
		return held
	}
	switch action {
	case engo.Press:
		return true
	case engo.Release:
		return false
	}
	return held
}

// InputSystem translates engo keyboard and mouse state into session
// commands every frame
type InputSystem struct {
	campaign *engine.Campaign
	renderer *EngoRenderer
	logger   *logging.Logger

	held bool
	drag render.Drag
}

// NewInputSystem creates a new input system
func NewInputSystem(campaign *engine.Campaign, renderer *EngoRenderer, logger *logging.Logger) *InputSystem {
	if logger == nil {
		logger = logging.Discard()
	}
	return &InputSystem{
		campaign: campaign,
		renderer: renderer,
		logger:   logger,
	}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update processes input for one frame
func (is *InputSystem) Update(dt float32) {
	shift := engo.Input.Button(ButtonShift).Down()
	for _, name := range buttonOrder {
		if !engo.Input.Button(name).JustPressed() {
			continue
		}
		cmd, action := ButtonCommand(name, shift)
		switch action {
		case render.ActionQuit:
			engo.Exit()
			return
		case render.ActionNextLevel:
			is.nextLevel()
		default:
			is.campaign.Session().Handle(cmd)
		}
	}

	m := engo.Input.Mouse
	is.held = MouseHeld(is.held, m.Action, m.Button)
	pos := is.renderer.Viewport().ToWorld(float64(m.X), float64(m.Y))
	if cmd := is.drag.Update(is.held, pos); cmd != nil {
		is.campaign.Session().Handle(cmd)
	}
}

func (is *InputSystem) nextLevel() {
	is.drag.Reset()
	is.held = false
	err := is.campaign.Next()
	switch {
	case errors.Is(err, engine.ErrLastLevel):
		is.logger.Info(context.Background(), "already on the last level", "level", string(is.campaign.Level().ID))
	case err != nil:
		is.logger.Error(context.Background(), "failed to switch level", err)
	}
}

// SetupInputBindings registers the key bindings
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonToggle, engo.KeySpace)
	engo.Input.RegisterButton(ButtonRetry, engo.KeyR)
	engo.Input.RegisterButton(ButtonClear, engo.KeyC)
	engo.Input.RegisterButton(ButtonPause, engo.KeyP)
	engo.Input.RegisterButton(ButtonNext, engo.KeyN)
	engo.Input.RegisterButton(ButtonQuit, engo.KeyQ, engo.KeyEscape)
	engo.Input.RegisterButton(ButtonShift, engo.KeyLeftShift, engo.KeyRightShift)
}
