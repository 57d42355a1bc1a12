// pkg/render/engo/assets.go
package engo

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/gomono"
)

// FontURL is the virtual asset path the embedded monospace font is loaded under
const FontURL = "fonts/gomono.ttf"

// Font sizes in points
const (
	CaptionSize = 24
	StatusSize  = 14
	LabelSize   = 18
)

// AssetManager loads the embedded font and hands out sized faces
type AssetManager struct {
	loaded bool
	fonts  map[float64]*common.Font
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{fonts: make(map[float64]*common.Font)}
}

// LoadAssets registers the embedded font with engo's file loader
func (am *AssetManager) LoadAssets() error {
	if am.loaded {
		return nil
	}
	if err := engo.Files.LoadReaderData(FontURL, bytes.NewReader(gomono.TTF)); err != nil {
		return fmt.Errorf("failed to load font %s: %w", FontURL, err)
	}
	am.loaded = true
	return nil
}

// Font returns a white face of the given size, creating it on first use
func (am *AssetManager) Font(size float64) (*common.Font, error) {
	if f, ok := am.fonts[size]; ok {
		return f, nil
	}
	if !am.loaded {
		return nil, fmt.Errorf("font %s requested before LoadAssets", FontURL)
	}
	f := &common.Font{
		URL:  FontURL,
		FG:   color.White,
		Size: size,
	}
	if err := f.CreatePreloaded(); err != nil {
		return nil, fmt.Errorf("failed to create font of size %v: %w", size, err)
	}
	am.fonts[size] = f
	return f, nil
}
