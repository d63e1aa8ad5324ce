package mandel

import "image/color"

var (
	Black  = color.RGBA{0, 0, 0, 0xff}
	Violet = color.RGBA{148, 0, 211, 0xff}
	Indigo = color.RGBA{75, 0, 130, 0xff}
	Blue   = color.RGBA{0, 0, 255, 0xff}
	Green  = color.RGBA{0, 255, 0, 0xff}
	Yellow = color.RGBA{255, 255, 0, 0xff}
	Orange = color.RGBA{255, 127, 0, 0xff}
	Red    = color.RGBA{255, 0, 0, 0xff}
	White  = color.RGBA{255, 255, 255, 0xff}
)

// band of intensities [.., max] painted with one color
type paletteBand struct {
	max   uint8
	color color.RGBA
}

// palette is ordered by max; the last entry must cover 255.
var palette = [...]paletteBand{
	{0, Black},
	{35, Violet},
	{70, Indigo},
	{105, Blue},
	{140, Green},
	{175, Yellow},
	{210, Orange},
	{254, Red},
	{255, White},
}

// Quantize maps an intensity byte onto the fixed nine color rainbow.
func Quantize(v uint8) color.RGBA {
	for _, b := range palette {
		if v <= b.max {
			return b.color
		}
	}
	return White
}
