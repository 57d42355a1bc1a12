// pkg/render/style.go
package render

import "image/color"

// Style selects how a primitive is drawn
type Style int

const (
	StyleGrid Style = iota
	StyleTrail
	StyleHistory
	StyleRedZone
	StyleClosed
	StyleTarget
	StyleTargetTouched
	StyleBonus
	StyleLink
	StylePoint
	StyleRoot
	StyleText
	StyleBanner
	StylePreview
	StylePreviewLink
)

var styleNames = map[Style]string{
	StyleGrid:          "grid",
	StyleTrail:         "trail",
	StyleHistory:       "history",
	StyleRedZone:       "red_zone",
	StyleClosed:        "closed",
	StyleTarget:        "target",
	StyleTargetTouched: "target_touched",
	StyleBonus:         "bonus",
	StyleLink:          "link",
	StylePoint:         "point",
	StyleRoot:          "root",
	StyleText:          "text",
	StyleBanner:        "banner",
	StylePreview:       "preview",
	StylePreviewLink:   "preview_link",
}

func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return "unknown"
}

// Background is the clear colour
var Background = color.NRGBA{0, 0, 0, 255}

var palette = map[Style]color.NRGBA{
	StyleGrid:          {0x33, 0x30, 0x40, 255},
	StyleTrail:         {0x77, 0x34, 0xeb, 255},
	StyleHistory:       {0x80, 0x80, 0x80, 255},
	StyleRedZone:       {0x73, 0x0c, 0x05, 255},
	StyleClosed:        {0x73, 0x0c, 0x05, 255},
	StyleTarget:        {0x18, 0x37, 0x69, 255},
	StyleTargetTouched: {0x18, 0x37, 0x69, 128},
	StyleBonus:         {0xff, 0xdf, 0x00, 128},
	StyleLink:          {0xff, 0xff, 0xff, 255},
	StylePoint:         {0xff, 0xff, 0xff, 255},
	StyleRoot:          {0xff, 0xff, 0xff, 255},
	StyleText:          {0xff, 0xff, 0xff, 255},
	StyleBanner:        {0xff, 0xff, 0xff, 255},
	StylePreview:       {0x80, 0x80, 0x80, 255},
	StylePreviewLink:   {0xff, 0xff, 0xff, 255},
}

// Color returns the colour for a style
func (s Style) Color() color.NRGBA {
	if c, ok := palette[s]; ok {
		return c
	}
	return color.NRGBA{255, 255, 255, 255}
}

// Width returns the stroke width in screen pixels
func (s Style) Width() float64 {
	switch s {
	case StyleTrail, StyleHistory, StyleGrid:
		return 1
	case StyleRedZone, StyleClosed, StyleTarget, StyleLink, StylePreview, StylePreviewLink:
		return 4
	default:
		return 2
	}
}

// Dashed reports whether a style is stroked with a dash pattern
func (s Style) Dashed() bool {
	switch s {
	case StyleRedZone, StyleClosed, StylePreview, StylePreviewLink:
		return true
	}
	return false
}
