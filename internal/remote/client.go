package remote

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/marben/mandel"
)

// Fetch asks the websocket endpoint at url for a render and assembles the
// streamed bands into a pixmap. onBand, if not nil, is called after each
// band is copied in.
func Fetch(ctx context.Context, url string, req mandel.RenderRequest, onBand func(top, rows int)) (*mandel.Pixmap, error) {
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket.Dial: %w", err)
	}
	defer c.CloseNow()

	if err := wsjson.Write(ctx, c, req); err != nil {
		return nil, fmt.Errorf("write request: %w", err)
	}

	var hdr mandel.RenderHeader
	if err := wsjson.Read(ctx, c, &hdr); err != nil {
		return nil, fmt.Errorf("read header: %w", closeError(err))
	}
	if hdr.Width <= 0 || hdr.Height <= 0 || hdr.RowsPerBand <= 0 || (hdr.Channels != 3 && hdr.Channels != 4) ||
		hdr.Width > math.MaxInt/hdr.Height/hdr.Channels {
		return nil, fmt.Errorf("invalid render header %+v", hdr)
	}
	if hdr.Bands != mandel.BandCount(hdr.Height, hdr.RowsPerBand) {
		return nil, fmt.Errorf("render header announces %d bands, %d rows in bands of %d need %d",
			hdr.Bands, hdr.Height, hdr.RowsPerBand, mandel.BandCount(hdr.Height, hdr.RowsPerBand))
	}
	c.SetReadLimit(int64(hdr.FrameSize(hdr.RowsPerBand)))

	pm := mandel.NewPixmap(mandel.Bounds{Width: hdr.Width, Height: hdr.Height}, hdr.Channels)
	painted := make([]bool, hdr.Height)
	for frames := 0; frames < hdr.Bands; frames++ {
		typ, frame, err := c.Read(ctx)
		if err != nil {
			return nil, fmt.Errorf("read band: %w", closeError(err))
		}
		if typ != websocket.MessageBinary {
			return nil, fmt.Errorf("unexpected %v message", typ)
		}
		top, rows, err := mandel.DecodeBandFrame(pm, frame)
		if err != nil {
			return nil, err
		}
		for y := top; y < top+rows; y++ {
			if painted[y] {
				return nil, fmt.Errorf("row %d sent twice", y)
			}
			painted[y] = true
		}
		if onBand != nil {
			onBand(top, rows)
		}
	}

	for y, ok := range painted {
		if !ok {
			return nil, fmt.Errorf("row %d missing after %d bands", y, hdr.Bands)
		}
	}

	// The server closes normally once every band is sent.
	_, _, err = c.Read(ctx)
	if err == nil {
		return nil, errors.New("unexpected message after the last band")
	}
	if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
		return nil, fmt.Errorf("await close: %w", closeError(err))
	}
	return pm, nil
}

// closeError surfaces the reason of a close frame sent by the server.
func closeError(err error) error {
	var ce websocket.CloseError
	if errors.As(err, &ce) && ce.Reason != "" {
		return fmt.Errorf("server closed the connection: %s: %w", ce.Reason, err)
	}
	return err
}
