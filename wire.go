package mandel

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// RenderRequest asks a render server for an image. If Region names a
// landmark, it replaces UpperLeft and LowerRight.
type RenderRequest struct {
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	UpperLeft   [2]float64 `json:"upper_left"`
	LowerRight  [2]float64 `json:"lower_right"`
	Region      string     `json:"region,omitempty"`
	RowsPerBand int        `json:"rows_per_band,omitempty"`
}

// Resolve validates r and returns its bounds and plane.
func (r RenderRequest) Resolve() (Bounds, Plane, error) {
	b := Bounds{Width: r.Width, Height: r.Height}
	if b.Width <= 0 || b.Height <= 0 {
		return b, Plane{}, fmt.Errorf("image bounds %s must be positive", b)
	}
	if r.Region != "" {
		p, ok := Landmark(r.Region)
		if !ok {
			return b, Plane{}, fmt.Errorf("unknown region %q", r.Region)
		}
		return b, p, nil
	}
	return b, Plane{
		UpperLeft:  complex(r.UpperLeft[0], r.UpperLeft[1]),
		LowerRight: complex(r.LowerRight[0], r.LowerRight[1]),
	}, nil
}

// RenderHeader precedes the band frames of a streamed render.
type RenderHeader struct {
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	Channels    int        `json:"channels"`
	RowsPerBand int        `json:"rows_per_band"`
	Bands       int        `json:"bands"`
	UpperLeft   [2]float64 `json:"upper_left"`
	LowerRight  [2]float64 `json:"lower_right"`
}

// bandFrameHeader is the size of the top and rows prefix of a band frame.
const bandFrameHeader = 8

var errShortFrame = errors.New("band frame too short")

// AppendBandFrame appends the frame of a finished band to dst:
// top and rows as big-endian uint32, then the band's pixels.
func AppendBandFrame(dst []byte, band Band) []byte {
	dst = binary.BigEndian.AppendUint32(dst, uint32(band.Top))
	dst = binary.BigEndian.AppendUint32(dst, uint32(band.Rows))
	return append(dst, band.Pix...)
}

// DecodeBandFrame copies the pixels of a band frame into pm.
func DecodeBandFrame(pm *Pixmap, frame []byte) (top, rows int, err error) {
	if len(frame) < bandFrameHeader {
		return 0, 0, errShortFrame
	}
	top = int(binary.BigEndian.Uint32(frame[0:4]))
	rows = int(binary.BigEndian.Uint32(frame[4:8]))
	if top < 0 || rows < 0 || top+rows > pm.Height {
		return 0, 0, fmt.Errorf("band rows [%d,%d) outside image height %d", top, top+rows, pm.Height)
	}
	pix := frame[bandFrameHeader:]
	if want := rows * pm.Width * pm.Channels; len(pix) != want {
		return 0, 0, fmt.Errorf("band at row %d carries %d bytes, want %d", top, len(pix), want)
	}
	copy(pm.Rows(top, rows), pix)
	return top, rows, nil
}

// FrameSize returns the size of a band frame of rows rows in h's image.
func (h RenderHeader) FrameSize(rows int) int {
	return bandFrameHeader + rows*h.Width*h.Channels
}
