package mandel

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// Pixmap is a row-major packed pixel buffer with Channels bytes per pixel
// in R, G, B(, A) order.
type Pixmap struct {
	Pix      []uint8
	Width    int
	Height   int
	Channels int
}

// NewPixmap allocates a zeroed pixmap of the given bounds.
// channels must be 3 (RGB) or 4 (RGBA).
func NewPixmap(b Bounds, channels int) *Pixmap {
	checkChannels(channels)
	checkBounds(b, channels)
	return &Pixmap{
		Pix:      make([]uint8, b.Width*b.Height*channels),
		Width:    b.Width,
		Height:   b.Height,
		Channels: channels,
	}
}

// Size returns the pixel size of the pixmap.
func (p *Pixmap) Size() Bounds {
	return Bounds{Width: p.Width, Height: p.Height}
}

// SetRGBA writes the color of a single pixel. Out of range writes are ignored.
func (p *Pixmap) SetRGBA(x, y int, c color.RGBA) {
	if x < 0 || x >= p.Width || y < 0 || y >= p.Height {
		return
	}
	i := (y*p.Width + x) * p.Channels
	writePixel(p.Pix[i:i+p.Channels], c)
}

// RGBAAt returns the color of a single pixel.
func (p *Pixmap) RGBAAt(x, y int) color.RGBA {
	if x < 0 || x >= p.Width || y < 0 || y >= p.Height {
		return color.RGBA{}
	}
	i := (y*p.Width + x) * p.Channels
	c := color.RGBA{R: p.Pix[i], G: p.Pix[i+1], B: p.Pix[i+2], A: 0xff}
	if p.Channels == 4 {
		c.A = p.Pix[i+3]
	}
	return c
}

// Rows returns the bytes of pixel rows [top, top+rows).
func (p *Pixmap) Rows(top, rows int) []uint8 {
	stride := p.Width * p.Channels
	return p.Pix[top*stride : (top+rows)*stride]
}

// ColorModel implements image.Image.
func (p *Pixmap) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (p *Pixmap) Bounds() image.Rectangle { return image.Rect(0, 0, p.Width, p.Height) }

// At implements image.Image.
func (p *Pixmap) At(x, y int) color.Color { return p.RGBAAt(x, y) }

// Set implements draw.Image.
func (p *Pixmap) Set(x, y int, c color.Color) {
	p.SetRGBA(x, y, color.RGBAModel.Convert(c).(color.RGBA))
}

// Opaque reports whether every pixel is fully opaque, letting encoders
// drop the alpha channel.
func (p *Pixmap) Opaque() bool {
	if p.Channels == 3 {
		return true
	}
	for i := 3; i < len(p.Pix); i += 4 {
		if p.Pix[i] != 0xff {
			return false
		}
	}
	return true
}

// checkLen panics unless p's buffer matches its declared size.
func (p *Pixmap) checkLen() {
	checkChannels(p.Channels)
	checkBounds(p.Size(), p.Channels)
	if want := p.Width * p.Height * p.Channels; len(p.Pix) != want {
		panic(fmt.Sprintf("mandel: pixel buffer holds %d bytes, %s at %d channels needs %d",
			len(p.Pix), p.Size(), p.Channels, want))
	}
}

func writePixel(dst []uint8, c color.RGBA) {
	dst[0] = c.R
	dst[1] = c.G
	dst[2] = c.B
	if len(dst) == 4 {
		dst[3] = c.A
	}
}

func checkChannels(channels int) {
	if channels != 3 && channels != 4 {
		panic(fmt.Sprintf("mandel: unsupported channel count %d", channels))
	}
}

// checkBounds panics unless b is positive and its buffer length fits in an int.
func checkBounds(b Bounds, channels int) {
	if b.Width <= 0 || b.Height <= 0 {
		panic(fmt.Sprintf("mandel: image bounds %s must be positive", b))
	}
	if b.Width > math.MaxInt/b.Height/channels {
		panic(fmt.Sprintf("mandel: image bounds %s at %d channels overflow the buffer length", b, channels))
	}
}
