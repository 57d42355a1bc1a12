// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-chaostheory/pkg/engine"
)

const helpText = "space run  r retry  shift+r reset  c clear  n next  p pause  q quit"

// hudZIndex keeps the status line above every scene sprite
const hudZIndex = 1e6

// StatusLine formats the bottom status text for a session
func StatusLine(s *engine.Session) string {
	levels := s.TouchLevels()
	touched := 0
	for _, n := range levels {
		if n > 0 {
			touched++
		}
	}
	return fmt.Sprintf("%s | %s | targets %d/%d | %s",
		s.Level.ID, s.Phase(), touched, len(levels), helpText)
}

// HUDSystem draws the status line along the bottom edge
type HUDSystem struct {
	campaign *engine.Campaign
	assets   *AssetManager
	system   *common.RenderSystem
	status   *sprite
	added    bool
	last     string
}

// NewHUDSystem creates a new HUD system
func NewHUDSystem(campaign *engine.Campaign, assets *AssetManager) *HUDSystem {
	return &HUDSystem{campaign: campaign, assets: assets}
}

// New is called by the world when the system is added
func (hud *HUDSystem) New(w *ecs.World) {
	hud.status = &sprite{BasicEntity: ecs.NewBasic()}
	hud.status.Color = color.White
	hud.status.SetZIndex(hudZIndex)
	for _, system := range w.Systems() {
		if rs, ok := system.(*common.RenderSystem); ok {
			hud.system = rs
		}
	}
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update refreshes the status text when it changes
func (hud *HUDSystem) Update(dt float32) {
	if hud.status == nil {
		return
	}
	hud.status.Position = engo.Point{X: 8, Y: engo.GameHeight() - 2*StatusSize}

	text := StatusLine(hud.campaign.Session())
	if text == hud.last {
		return
	}
	font, err := hud.assets.Font(StatusSize)
	if err != nil {
		hud.status.Hidden = true
		return
	}
	hud.status.Drawable = common.Text{Font: font, Text: text}
	hud.status.Hidden = false
	hud.last = text

	if !hud.added && hud.system != nil {
		hud.system.Add(&hud.status.BasicEntity, &hud.status.RenderComponent, &hud.status.SpaceComponent)
		hud.added = true
	}
}
