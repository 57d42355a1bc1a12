// pkg/render/export/png.go
package export

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/opd-ai/go-chaostheory/pkg/engine"
	"github.com/opd-ai/go-chaostheory/pkg/physics"
	"github.com/opd-ai/go-chaostheory/pkg/render"
)

// Image defaults
const (
	DefaultWidth  = 1280
	DefaultHeight = 960
)

const (
	gridSpacing = 100.0
	labelSize   = 16.0
	captionSize = 24.0
)

// PNGRenderer implements render.Renderer on a gg raster context
type PNGRenderer struct {
	dc      *gg.Context
	view    render.Viewport
	label   font.Face
	caption font.Face
}

// NewPNGRenderer creates an image of the given size in pixels
func NewPNGRenderer(width, height int) (*PNGRenderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	return &PNGRenderer{
		dc:      gg.NewContext(width, height),
		view:    render.Fit(float64(width), float64(height), 1),
		label:   newFace(ttfFont, labelSize),
		caption: newFace(ttfFont, captionSize),
	}, nil
}

func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Viewport returns the world-to-pixel mapping
func (r *PNGRenderer) Viewport() render.Viewport {
	return r.view
}

// Clear implements render.Renderer, painting the background grid
func (r *PNGRenderer) Clear() {
	r.dc.SetColor(render.Background)
	r.dc.Clear()

	r.dc.SetColor(render.StyleGrid.Color())
	r.dc.SetLineWidth(render.StyleGrid.Width())
	step := gridSpacing * r.view.Scale
	if step < 4 {
		return
	}
	w, h := r.view.Width, r.view.Height
	for x := math.Mod(w/2, step); x < w; x += step {
		r.dc.DrawLine(x, 0, x, h)
	}
	for y := math.Mod(h/2, step); y < h; y += step {
		r.dc.DrawLine(0, y, w, y)
	}
	r.dc.Stroke()
}

func (r *PNGRenderer) stroke(style render.Style, c color.Color, width float64) {
	r.dc.SetColor(c)
	r.dc.SetLineWidth(width)
	switch {
	case style == render.StylePreview:
		r.dc.SetDash(2, 10)
	case style == render.StylePreviewLink:
		r.dc.SetDash(15, 5)
	case style.Dashed():
		r.dc.SetDash(10, 10)
	default:
		r.dc.SetDash()
	}
}

// Line implements render.Renderer
func (r *PNGRenderer) Line(a, b physics.Vector2D, style render.Style) {
	ax, ay := r.view.ToScreen(a)
	bx, by := r.view.ToScreen(b)
	r.stroke(style, style.Color(), style.Width())
	r.dc.DrawLine(ax, ay, bx, by)
	r.dc.Stroke()
	r.dc.SetDash()
}

// Polyline implements render.Renderer. Segments grow more opaque and
// thicker towards the newest point.
func (r *PNGRenderer) Polyline(points []physics.Vector2D, style render.Style) {
	if len(points) < 2 {
		return
	}
	base := style.Color()
	opacity := 0.0
	prevX, prevY := r.view.ToScreen(points[0])
	for _, p := range points[1:] {
		opacity += 1 / float64(len(points))
		c := base
		c.A = uint8(float64(base.A) * opacity)
		x, y := r.view.ToScreen(p)
		r.stroke(style, c, style.Width()+opacity)
		r.dc.DrawLine(prevX, prevY, x, y)
		r.dc.Stroke()
		prevX, prevY = x, y
	}
}

// Circle implements render.Renderer
func (r *PNGRenderer) Circle(zone physics.Zone, style render.Style, filled bool) {
	x, y := r.view.ToScreen(zone.Center)
	radius := zone.Radius * r.view.Scale
	r.dc.DrawCircle(x, y, radius)
	if filled {
		r.dc.SetColor(style.Color())
		r.dc.Fill()
		return
	}
	r.stroke(style, style.Color(), style.Width())
	r.dc.Stroke()
	r.dc.SetDash()
}

// Text implements render.Renderer
func (r *PNGRenderer) Text(pos physics.Vector2D, text string, style render.Style) {
	x, y := r.view.ToScreen(pos)
	r.dc.SetFontFace(r.label)
	r.dc.SetColor(style.Color())
	r.dc.DrawStringAnchored(text, x, y, 0, 0)
}

// Caption implements render.Renderer
func (r *PNGRenderer) Caption(row int, text string, style render.Style) {
	r.dc.SetFontFace(r.caption)
	r.dc.SetColor(style.Color())
	r.dc.DrawStringAnchored(text, r.view.Width/2, captionSize*1.5*float64(row+1), 0.5, 0)
}

// Footer writes a small label in the bottom left corner
func (r *PNGRenderer) Footer(text string) {
	r.dc.SetFontFace(r.label)
	r.dc.SetColor(render.StyleText.Color())
	r.dc.DrawStringAnchored(text, labelSize/2, r.view.Height-labelSize/2, 0, 0)
}

// Present implements render.Renderer
func (r *PNGRenderer) Present() error {
	return nil
}

// Image returns the rendered image
func (r *PNGRenderer) Image() image.Image {
	return r.dc.Image()
}

// Encode writes the image as PNG
func (r *PNGRenderer) Encode(w io.Writer) error {
	return r.dc.EncodePNG(w)
}

// Save writes the image as a PNG file
func (r *PNGRenderer) Save(path string) error {
	if err := r.dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// FooterText summarises a view for the image footer
func FooterText(v engine.View) string {
	text := fmt.Sprintf("level %s  %s  tick %d", v.LevelID, v.Phase, v.Tick)
	if banner := render.WinBanner(v.Win); banner != "" {
		text += "  " + banner
	}
	return text
}

// Snapshot renders a view with a footer and writes it to path
func Snapshot(v engine.View, width, height int, path string) error {
	r, err := NewPNGRenderer(width, height)
	if err != nil {
		return err
	}
	if err := render.Draw(r, v); err != nil {
		return err
	}
	r.Footer(FooterText(v))
	return r.Save(path)
}
