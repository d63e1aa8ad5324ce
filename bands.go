package mandel

import "fmt"

// Band is a horizontal strip of whole pixel rows, rendered as one unit of
// concurrent work.
type Band struct {
	Top  int // first pixel row in the full image
	Rows int

	// Plane is the part of the full image's plane the strip covers.
	Plane Plane

	// Pix holds exactly the strip's bytes. Its capacity ends where the
	// next band begins.
	Pix []uint8
}

// SplitBands cuts pix, the row-major buffer of an image of size b,
// into strips of rowsPerBand rows. The last strip is shorter if the height
// is not divisible, and a rowsPerBand above the height yields one strip.
// Every strip's Plane is mapped through the full image's bounds and plane.
func SplitBands(pix []uint8, b Bounds, plane Plane, channels, rowsPerBand int) []Band {
	if rowsPerBand <= 0 {
		panic("mandel: rows per band must be positive")
	}
	checkChannels(channels)
	checkBounds(b, channels)
	rowsPerBand = min(rowsPerBand, b.Height)
	stride := b.Width * channels
	if len(pix) != stride*b.Height {
		panic(fmt.Sprintf("mandel: pixel buffer holds %d bytes, %s at %d channels needs %d",
			len(pix), b, channels, stride*b.Height))
	}

	bands := make([]Band, 0, BandCount(b.Height, rowsPerBand))
	for top := 0; top < b.Height; top += rowsPerBand {
		rows := min(rowsPerBand, b.Height-top)
		lo, hi := top*stride, (top+rows)*stride
		bands = append(bands, Band{
			Top:  top,
			Rows: rows,
			Plane: Plane{
				UpperLeft:  PixelToPoint(b, 0, top, plane),
				LowerRight: PixelToPoint(b, b.Width, top+rows, plane),
			},
			Pix: pix[lo:hi:hi],
		})
	}
	return bands
}

// BandCount returns how many bands of rowsPerBand rows cover height rows.
// Both must be positive.
func BandCount(height, rowsPerBand int) int {
	return (height-1)/rowsPerBand + 1
}
