// Package theme defines the viewer's color palette and loads named themes.
package theme

import (
	"image/color"
)

// Theme defines the colors used to draw the viewer.
type Theme struct {
	Name string

	Background color.RGBA // Area around the image
	Foreground color.RGBA // Placeholder and message text

	StatusBackground color.RGBA
	StatusText       color.RGBA

	// Drawn behind transparent pixels.
	CheckerLight color.RGBA
	CheckerDark  color.RGBA

	OCRBox      color.RGBA
	OCRBoxHover color.RGBA
}

// Default returns the built-in dark theme used when nothing else is
// configured.
func Default() *Theme {
	return &Theme{
		Name:             "Default",
		Background:       color.RGBA{0x02, 0x02, 0x02, 0xD0},
		Foreground:       color.RGBA{230, 230, 230, 255},
		StatusBackground: color.RGBA{24, 24, 24, 230},
		StatusText:       color.RGBA{220, 220, 220, 255},
		CheckerLight:     color.RGBA{90, 90, 90, 255},
		CheckerDark:      color.RGBA{60, 60, 60, 255},
		OCRBox:           color.RGBA{255, 196, 0, 200},
		OCRBoxHover:      color.RGBA{0, 200, 255, 255},
	}
}
