// pkg/render/viewport.go
package render

import (
	"math"

	"github.com/opd-ai/go-chaostheory/pkg/physics"
)

// WorldHalfExtent is the half-size of the region every stock level fits in
var WorldHalfExtent = physics.Vec(1000, 800)

// Viewport maps world coordinates onto a screen. World and screen share
// the same axis directions; y grows downward.
type Viewport struct {
	Center physics.Vector2D
	// Scale is screen units per world unit along x
	Scale float64
	// AspectY stretches the vertical axis; terminal cells use 0.5
	AspectY float64
	Width   float64
	Height  float64
}

// Fit returns a viewport centred on the origin showing WorldHalfExtent
func Fit(width, height, aspectY float64) Viewport {
	if aspectY <= 0 {
		aspectY = 1
	}
	sx := width / (2 * WorldHalfExtent.X)
	sy := height / (2 * WorldHalfExtent.Y * aspectY)
	return Viewport{
		Scale:   math.Min(sx, sy),
		AspectY: aspectY,
		Width:   width,
		Height:  height,
	}
}

// ToScreen converts a world position to screen coordinates
func (vp Viewport) ToScreen(p physics.Vector2D) (float64, float64) {
	x := (p.X-vp.Center.X)*vp.Scale + vp.Width/2
	y := (p.Y-vp.Center.Y)*vp.Scale*vp.AspectY + vp.Height/2
	return x, y
}

// ToWorld converts screen coordinates back to a world position
func (vp Viewport) ToWorld(x, y float64) physics.Vector2D {
	if vp.Scale == 0 {
		return vp.Center
	}
	return physics.Vector2D{
		X: (x-vp.Width/2)/vp.Scale + vp.Center.X,
		Y: (y-vp.Height/2)/(vp.Scale*vp.AspectY) + vp.Center.Y,
	}
}
