// pkg/render/renderer.go
package render

import (
	"context"
	"fmt"
	"strconv"

	"github.com/opd-ai/go-chaostheory/pkg/engine"
	"github.com/opd-ai/go-chaostheory/pkg/logging"
	"github.com/opd-ai/go-chaostheory/pkg/physics"
)

// Radii of the drawn chain markers, in world units
const (
	PointRadius = 7.0
	RootRadius  = 15.0
)

// Renderer is implemented by every drawing backend. Positions are in world
// coordinates; captions are anchored to the top of the screen.
type Renderer interface {
	Clear()
	Line(a, b physics.Vector2D, style Style)
	Polyline(points []physics.Vector2D, style Style)
	Circle(zone physics.Zone, style Style, filled bool)
	Text(pos physics.Vector2D, text string, style Style)
	Caption(row int, text string, style Style)
	Present() error
}

// WinBanner returns the win caption for a status, or "" when not won
func WinBanner(w engine.WinStatus) string {
	if !w.Won {
		return ""
	}
	if w.Bonus == 0 {
		return "You win"
	}
	return fmt.Sprintf("You win (+%d)", w.Bonus)
}

// FinalBanner is shown under the win banner on the last level
const FinalBanner = "That's all there is for now"

// Draw renders one frame of a view, back to front
func Draw(r Renderer, v engine.View) error {
	r.Clear()

	r.Polyline(v.Trail, StyleTrail)
	for _, h := range v.History {
		r.Polyline(h, StyleHistory)
	}

	if v.Editing() {
		for _, z := range v.RedZones {
			r.Circle(z, StyleRedZone, false)
		}
		for _, t := range v.Targets {
			r.Circle(t.Closed, StyleClosed, false)
		}
	}

	for _, t := range v.Targets {
		drawTarget(r, t)
	}

	for i := 1; i < len(v.Points); i++ {
		r.Line(v.Points[i-1], v.Points[i], StyleLink)
		r.Circle(physics.Zone{Center: v.Points[i], Radius: PointRadius}, StylePoint, true)
	}
	if len(v.Points) > 0 {
		r.Circle(physics.Zone{Center: v.Root(), Radius: RootRadius}, StyleRoot, true)
	}

	if v.Text != "" {
		r.Caption(0, v.Text, StyleText)
	}
	if banner := WinBanner(v.Win); banner != "" {
		r.Caption(1, banner, StyleBanner)
		if v.Last {
			r.Caption(2, FinalBanner, StyleBanner)
		}
	}

	if v.Placing && len(v.Points) > 0 {
		tail := v.Tail()
		r.Circle(physics.Zone{Center: tail, Radius: tail.Distance(v.Placement)}, StylePreview, false)
		r.Line(tail, v.Placement, StylePreviewLink)
		r.Circle(physics.Zone{Center: v.Placement, Radius: PointRadius}, StylePoint, true)
	}

	return r.Present()
}

func drawTarget(r Renderer, t engine.TargetView) {
	if t.Touches > 0 {
		fill := StyleTargetTouched
		if t.Touches > 1 {
			fill = StyleBonus
		}
		r.Circle(t.Zone, fill, true)
		if t.Touches > 2 {
			half := t.Zone.Radius / 2
			r.Text(t.Zone.Center.Add(physics.Vec(half, half)), strconv.Itoa(t.Touches), StyleText)
		}
	}
	r.Circle(t.Zone, StyleTarget, false)
}

// NullRenderer discards frames and logs each primitive at debug level.
type NullRenderer struct {
	logger *logging.Logger
	frames int
}

// NewNullRenderer creates a NullRenderer. A nil logger discards output.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{logger: logger}
}

// Frames returns the number of presented frames
func (d *NullRenderer) Frames() int {
	return d.frames
}

// Clear implements Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called")
}

// Line implements Renderer.
func (d *NullRenderer) Line(a, b physics.Vector2D, style Style) {
	d.logger.Debug(context.Background(), "Line called",
		"from", a,
		"to", b,
		"style", style,
	)
}

// Polyline implements Renderer.
func (d *NullRenderer) Polyline(points []physics.Vector2D, style Style) {
	d.logger.Debug(context.Background(), "Polyline called",
		"points", len(points),
		"style", style,
	)
}

// Circle implements Renderer.
func (d *NullRenderer) Circle(zone physics.Zone, style Style, filled bool) {
	d.logger.Debug(context.Background(), "Circle called",
		"center", zone.Center,
		"radius", zone.Radius,
		"style", style,
		"filled", filled,
	)
}

// Text implements Renderer.
func (d *NullRenderer) Text(pos physics.Vector2D, text string, style Style) {
	d.logger.Debug(context.Background(), "Text called", "pos", pos, "text", text)
}

// Caption implements Renderer.
func (d *NullRenderer) Caption(row int, text string, style Style) {
	d.logger.Debug(context.Background(), "Caption called", "row", row, "text", text)
}

// Present implements Renderer.
func (d *NullRenderer) Present() error {
	d.frames++
	d.logger.Debug(context.Background(), "Present called", "frame", d.frames)
	return nil
}
