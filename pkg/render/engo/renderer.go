// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"
	"unicode/utf8"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-chaostheory/pkg/physics"
	"github.com/opd-ai/go-chaostheory/pkg/render"
)

// maxPolylineSegments bounds the entities spent on a single trail
const maxPolylineSegments = 200

// sprite is one pooled render entity
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// EngoRenderer implements render.Renderer on top of engo's RenderSystem.
// Entities are pooled: each frame reuses the sprites of the previous one
// and hides whatever was not drawn again.
type EngoRenderer struct {
	system *common.RenderSystem
	assets *AssetManager
	view   render.Viewport
	pool   []*sprite
	used   int
}

// NewEngoRenderer creates a renderer feeding the given render system
func NewEngoRenderer(system *common.RenderSystem, assets *AssetManager) *EngoRenderer {
	return &EngoRenderer{
		system: system,
		assets: assets,
	}
}

// Viewport returns the mapping used for the current frame
func (r *EngoRenderer) Viewport() render.Viewport {
	return r.view
}

// Clear implements render.Renderer
func (r *EngoRenderer) Clear() {
	r.used = 0
	r.view = render.Fit(float64(engo.GameWidth()), float64(engo.GameHeight()), 1)
}

// Present implements render.Renderer
func (r *EngoRenderer) Present() error {
	for _, s := range r.pool[r.used:] {
		s.Hidden = true
	}
	return nil
}

func (r *EngoRenderer) acquire(d common.Drawable, c color.Color, space common.SpaceComponent) *sprite {
	fresh := r.used >= len(r.pool)
	var s *sprite
	if fresh {
		s = &sprite{BasicEntity: ecs.NewBasic()}
		r.pool = append(r.pool, s)
	} else {
		s = r.pool[r.used]
	}
	s.Drawable = d
	s.Color = c
	s.Hidden = false
	s.SpaceComponent = space
	s.SetZIndex(float32(r.used))
	if fresh {
		r.system.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}
	r.used++
	return s
}

// Line implements render.Renderer
func (r *EngoRenderer) Line(a, b physics.Vector2D, style render.Style) {
	r.line(a, b, style, style.Color())
}

func (r *EngoRenderer) line(a, b physics.Vector2D, style render.Style, c color.Color) {
	ax, ay := r.view.ToScreen(a)
	bx, by := r.view.ToScreen(b)
	r.acquire(common.Rectangle{}, c, lineSpace(ax, ay, bx, by, style.Width()))
}

// Polyline implements render.Renderer, fading in from the oldest point
func (r *EngoRenderer) Polyline(points []physics.Vector2D, style render.Style) {
	if len(points) < 2 {
		return
	}
	stride := segmentStride(len(points) - 1)
	base := style.Color()
	last := len(points) - 1
	prev := points[0]
	for i := stride; ; i += stride {
		j := min(i, last)
		c := base
		c.A = uint8(float64(base.A) * float64(j) / float64(last))
		r.line(prev, points[j], style, c)
		if j == last {
			return
		}
		prev = points[j]
	}
}

// Circle implements render.Renderer
func (r *EngoRenderer) Circle(zone physics.Zone, style render.Style, filled bool) {
	cx, cy := r.view.ToScreen(zone.Center)
	space := circleSpace(cx, cy, zone.Radius*r.view.Scale)
	if filled {
		r.acquire(common.Circle{}, style.Color(), space)
		return
	}
	r.acquire(common.Circle{
		BorderWidth: float32(style.Width()),
		BorderColor: style.Color(),
	}, color.Transparent, space)
}

// Text implements render.Renderer
func (r *EngoRenderer) Text(pos physics.Vector2D, text string, style render.Style) {
	x, y := r.view.ToScreen(pos)
	r.text(x, y, text, LabelSize, style)
}

// Caption implements render.Renderer
func (r *EngoRenderer) Caption(row int, text string, style render.Style) {
	width := float64(utf8.RuneCountInString(text)) * CaptionSize * 0.6
	x := (r.view.Width - width) / 2
	y := CaptionSize/2 + float64(row)*CaptionSize*1.5
	r.text(x, y, text, CaptionSize, style)
}

func (r *EngoRenderer) text(x, y float64, text string, size float64, style render.Style) {
	if r.assets == nil {
		return
	}
	font, err := r.assets.Font(size)
	if err != nil {
		return
	}
	r.acquire(common.Text{Font: font, Text: text}, style.Color(), common.SpaceComponent{
		Position: engo.Point{X: float32(x), Y: float32(y)},
	})
}

// lineSpace places a rectangle of the given thickness from a to b.
// engo rotates a space around its top-left corner.
func lineSpace(ax, ay, bx, by, thickness float64) common.SpaceComponent {
	d := physics.Vec(bx-ax, by-ay)
	return common.SpaceComponent{
		Position: engo.Point{X: float32(ax), Y: float32(ay)},
		Width:    float32(d.Length()),
		Height:   float32(thickness),
		Rotation: float32(d.Angle() * 180 / math.Pi),
	}
}

// circleSpace returns the bounding square of a circle
func circleSpace(cx, cy, radius float64) common.SpaceComponent {
	return common.SpaceComponent{
		Position: engo.Point{X: float32(cx - radius), Y: float32(cy - radius)},
		Width:    float32(2 * radius),
		Height:   float32(2 * radius),
	}
}

// segmentStride returns the point step that keeps a polyline of n
// segments within maxPolylineSegments
func segmentStride(n int) int {
	return max(1, (n+maxPolylineSegments-1)/maxPolylineSegments)
}
