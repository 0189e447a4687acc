package render

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mum4k/termdash/cell"
	"github.com/pkg/errors"
)

// defaultPalette are the hex colors cycled over the chart series.
var defaultPalette = []string{
	"#7EB26D",
	"#EAB839",
	"#6ED0E0",
	"#EF843C",
	"#E24D42",
	"#1F78C1",
	"#BA43A9",
	"#705DA0",
}

// colorFromHex maps a hex color to the nearest color of the xterm-256
// palette. Terminals don't take RGB directly, so we pick the closest
// match by perceptual distance.
func colorFromHex(hex string) (cell.Color, error) {
	want, err := colorful.Hex(hex)
	if err != nil {
		return cell.ColorDefault, errors.Wrapf(err, "invalid color %q", hex)
	}

	best := 16
	bestDist := -1.0
	for i := 16; i < 256; i++ {
		d := want.DistanceLab(xtermColor(i))
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return cell.ColorNumber(best), nil
}

// xtermColor returns the RGB value of an xterm-256 palette entry.
// Entries 16-231 form a 6x6x6 color cube, 232-255 a gray ramp.
func xtermColor(i int) colorful.Color {
	if i >= 232 {
		g := float64(8+10*(i-232)) / 255.0
		return colorful.Color{R: g, G: g, B: g}
	}

	levels := []float64{0, 95, 135, 175, 215, 255}
	i -= 16
	r := levels[i/36]
	g := levels[(i/6)%6]
	b := levels[i%6]
	return colorful.Color{R: r / 255.0, G: g / 255.0, B: b / 255.0}
}

// seriesColor returns the palette color for the i-th series.
func seriesColor(i int) cell.Color {
	c, err := colorFromHex(defaultPalette[i%len(defaultPalette)])
	if err != nil {
		return cell.ColorWhite
	}
	return c
}
