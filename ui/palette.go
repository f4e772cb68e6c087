package ui

import (
	"image/color"

	"github.com/plus3/blockfall/tetris"
)

var pieceColors = [tetris.VariantCount]color.RGBA{
	tetris.Chord:  {102, 191, 255, 255},
	tetris.Square: {255, 203, 0, 255},
	tetris.TBlock: {135, 60, 190, 255},
	tetris.LBlock: {255, 161, 0, 255},
	tetris.JBlock: {0, 121, 241, 255},
	tetris.ZBlock: {230, 41, 55, 255},
	tetris.SBlock: {0, 228, 48, 255},
}

var (
	BorderColor     = color.RGBA{130, 130, 130, 255}
	BackgroundColor = color.RGBA{0, 0, 0, 255}
	GhostColor      = color.RGBA{255, 255, 255, 80}
)

// Color returns the fill color for a piece variant.
func Color(v tetris.Variant) color.RGBA {
	if !v.Valid() {
		return BorderColor
	}
	return pieceColors[v]
}

// OccupantColor returns the fill color for a board cell and whether the
// cell should be drawn at all.
func OccupantColor(o tetris.Occupant) (color.RGBA, bool) {
	switch o {
	case tetris.Vacant:
		return color.RGBA{}, false
	case tetris.Border:
		return BorderColor, true
	}
	v, _ := o.Variant()
	return Color(v), true
}
