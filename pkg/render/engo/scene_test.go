// pkg/render/engo/scene_test.go
package engo

import (
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-chaostheory/pkg/config"
	"github.com/opd-ai/go-chaostheory/pkg/engine"
	"github.com/opd-ai/go-chaostheory/pkg/level"
	"github.com/opd-ai/go-chaostheory/pkg/render"
)

func newTestCampaign() *engine.Campaign {
	return engine.NewCampaign(level.Builtin(), config.DefaultSimulationConfig(), nil, nil, rand.New(rand.NewPCG(1, 2)))
}

// TestGameScene_Type tests the Type method
func TestGameScene_Type(t *testing.T) {
	scene := NewGameScene(newTestCampaign(), nil)
	if scene.Type() != SceneType {
		t.Errorf("Type() = %q, want %q", scene.Type(), SceneType)
	}
	if scene.logger == nil {
		t.Error("nil logger should be replaced")
	}
}

func TestGameScene_HidePauses(t *testing.T) {
	c := newTestCampaign()
	scene := NewGameScene(c, nil)
	c.Session().ToggleRun()

	scene.Hide()
	if got := c.Session().Phase(); got != engine.PhasePaused {
		t.Errorf("phase after Hide() = %v, want paused", got)
	}
}

func TestButtonCommand(t *testing.T) {
	tests := []struct {
		name       string
		button     string
		shift      bool
		wantCmd    engine.Command
		wantAction render.Action
	}{
		{"toggle", ButtonToggle, false, engine.RunToggle{}, render.ActionNone},
		{"retry", ButtonRetry, false, engine.Reset{Soft: true}, render.ActionNone},
		{"shift retry", ButtonRetry, true, engine.Reset{Soft: false}, render.ActionNone},
		{"clear", ButtonClear, false, engine.HistoryClear{}, render.ActionNone},
		{"pause", ButtonPause, false, engine.RunPause{}, render.ActionNone},
		{"next", ButtonNext, false, nil, render.ActionNextLevel},
		{"quit", ButtonQuit, false, nil, render.ActionQuit},
		{"shift alone", ButtonShift, true, nil, render.ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, action := ButtonCommand(tt.button, tt.shift)
			if cmd != tt.wantCmd {
				t.Errorf("command = %#v, want %#v", cmd, tt.wantCmd)
			}
			if action != tt.wantAction {
				t.Errorf("action = %v, want %v", action, tt.wantAction)
			}
		})
	}
}

func TestMouseHeld(t *testing.T) {
	tests := []struct {
		name   string
		held   bool
		action engo.Action
		button engo.MouseButton
		want   bool
	}{
		{"left press", false, engo.Press, engo.MouseButtonLeft, true},
		{"left move keeps", true, engo.Move, engo.MouseButtonLeft, true},
		{"left release", true, engo.Release, engo.MouseButtonLeft, false},
		{"right press ignored", false, engo.Press, engo.MouseButtonRight, false},
		{"right release ignored", true, engo.Release, engo.MouseButtonRight, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MouseHeld(tt.held, tt.action, tt.button); got != tt.want {
				t.Errorf("MouseHeld() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLineSpace(t *testing.T) {
	tests := []struct {
		name         string
		ax, ay       float64
		bx, by       float64
		wantLength   float32
		wantRotation float32
	}{
		{"horizontal", 0, 0, 10, 0, 10, 0},
		{"downward", 5, 5, 5, 25, 20, 90},
		{"leftward", 10, 0, 0, 0, 10, 180},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			space := lineSpace(tt.ax, tt.ay, tt.bx, tt.by, 4)
			if space.Position.X != float32(tt.ax) || space.Position.Y != float32(tt.ay) {
				t.Errorf("Position = %v, want (%v, %v)", space.Position, tt.ax, tt.ay)
			}
			if math.Abs(float64(space.Width-tt.wantLength)) > 1e-4 {
				t.Errorf("Width = %v, want %v", space.Width, tt.wantLength)
			}
			if math.Abs(float64(space.Rotation-tt.wantRotation)) > 1e-3 {
				t.Errorf("Rotation = %v, want %v", space.Rotation, tt.wantRotation)
			}
			if space.Height != 4 {
				t.Errorf("Height = %v, want 4", space.Height)
			}
		})
	}
}

func TestCircleSpace(t *testing.T) {
	space := circleSpace(100, 50, 20)
	if space.Position.X != 80 || space.Position.Y != 30 {
		t.Errorf("Position = %v, want (80, 30)", space.Position)
	}
	if space.Width != 40 || space.Height != 40 {
		t.Errorf("size = %vx%v, want 40x40", space.Width, space.Height)
	}
}

func TestSegmentStride(t *testing.T) {
	tests := []struct {
		segments int
		want     int
	}{
		{0, 1},
		{1, 1},
		{maxPolylineSegments, 1},
		{maxPolylineSegments + 1, 2},
		{599, 3},
	}
	for _, tt := range tests {
		if got := segmentStride(tt.segments); got != tt.want {
			t.Errorf("segmentStride(%d) = %d, want %d", tt.segments, got, tt.want)
		}
	}
}

func TestStatusLine(t *testing.T) {
	c := newTestCampaign()
	line := StatusLine(c.Session())
	if !strings.HasPrefix(line, "tutorial | setup | targets 0/1") {
		t.Errorf("StatusLine() = %q", line)
	}
}

func TestSimulationSystem_Update(t *testing.T) {
	c := newTestCampaign()
	null := render.NewNullRenderer(nil)
	sys := NewSimulationSystem(c, null, nil)

	sys.Update(1.0 / 60)
	if got := c.Session().Ticks(); got != 1 {
		t.Errorf("Ticks() = %d, want 1", got)
	}
	if null.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", null.Frames())
	}
}

func TestAssetManager_FontBeforeLoad(t *testing.T) {
	am := NewAssetManager()
	if _, err := am.Font(StatusSize); err == nil {
		t.Error("Font() before LoadAssets() should fail")
	}
}
