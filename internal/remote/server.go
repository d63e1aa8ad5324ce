// Package remote serves renders over HTTP and websocket, and fetches them
// back as a client.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/marben/mandel"
)

// DefaultMaxPixels caps the size of a single requested image.
const DefaultMaxPixels = 64 << 20

var errBadRequest = errors.New("bad render request")

// Server renders images on request.
type Server struct {
	// Options used for every render. Requests may override RowsPerBand.
	Options mandel.Options

	// MaxPixels limits Width*Height of a request. 0 means DefaultMaxPixels.
	MaxPixels int
}

// NewServer returns a server rendering with opts.
func NewServer(opts mandel.Options) *Server {
	return &Server{Options: opts}
}

// Handler returns the mux serving GET /render and the /ws endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /render", s.handleRender)
	mux.HandleFunc("/ws", s.handleWebsocket)
	return mux
}

func (s *Server) checkSize(b mandel.Bounds) error {
	limit := s.MaxPixels
	if limit <= 0 {
		limit = DefaultMaxPixels
	}
	if b.Width > limit/b.Height {
		return fmt.Errorf("%w: image %s exceeds %d pixels", errBadRequest, b, limit)
	}
	return nil
}

// handleRender answers
//
//	GET /render?size=WxH&ul=re,im&lr=re,im&mode=Multi&format=png
//
// with the encoded image. region=NAME may replace ul and lr.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, mode, format, err := parseQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b, plane, err := req.Resolve()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.checkSize(b); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	opts := s.Options
	if req.RowsPerBand > 0 {
		opts.RowsPerBand = min(req.RowsPerBand, b.Height)
	}
	pm := mandel.NewPixmap(b, 3)
	mode.Renderer(opts).Render(pm, plane)

	var buf bytes.Buffer
	if err := mandel.Encode(&buf, pm, format); err != nil {
		log.Printf("encode %s: %v", format, err)
		http.Error(w, "encoding failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("write response: %v", err)
	}
}

func parseQuery(r *http.Request) (mandel.RenderRequest, mandel.Mode, mandel.Format, error) {
	var req mandel.RenderRequest
	q := r.URL.Query()

	b, ok := mandel.ParseBounds(q.Get("size"))
	if !ok {
		return req, 0, "", fmt.Errorf("error parsing size %q", q.Get("size"))
	}
	req.Width, req.Height = b.Width, b.Height

	req.Region = q.Get("region")
	if req.Region == "" {
		ul, ok := mandel.ParseComplex(q.Get("ul"))
		if !ok {
			return req, 0, "", fmt.Errorf("error parsing upper left corner point %q", q.Get("ul"))
		}
		lr, ok := mandel.ParseComplex(q.Get("lr"))
		if !ok {
			return req, 0, "", fmt.Errorf("error parsing lower right corner point %q", q.Get("lr"))
		}
		req.UpperLeft = [2]float64{real(ul), imag(ul)}
		req.LowerRight = [2]float64{real(lr), imag(lr)}
	}

	mode := mandel.ModeParallel
	if m := q.Get("mode"); m != "" {
		if mode, ok = mandel.ParseMode(m); !ok {
			return req, 0, "", fmt.Errorf("error parsing mode %q", m)
		}
	}

	format := mandel.PNG
	if f := q.Get("format"); f != "" {
		var err error
		if format, err = mandel.ParseFormat(f); err != nil {
			return req, 0, "", err
		}
	}

	if rows := q.Get("rows"); rows != "" {
		n, err := strconv.Atoi(rows)
		if err != nil || n <= 0 {
			return req, 0, "", fmt.Errorf("error parsing rows %q", rows)
		}
		req.RowsPerBand = n
	}
	return req, mode, format, nil
}

// handleWebsocket streams a banded render. The client sends one
// RenderRequest as JSON, the server answers with a RenderHeader and then
// one binary band frame per band in completion order, and closes
// normally after the last one.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Println(err)
		return
	}
	defer c.CloseNow()

	err = s.stream(r.Context(), c)
	switch {
	case err == nil:
		c.Close(websocket.StatusNormalClosure, "render complete")
	case errors.Is(err, errBadRequest):
		log.Printf("ws %s: %v", r.RemoteAddr, err)
		c.Close(websocket.StatusPolicyViolation, closeReason(err))
	default:
		log.Printf("ws %s: %v", r.RemoteAddr, err)
		c.Close(websocket.StatusInternalError, "render failed")
	}
}

func (s *Server) stream(ctx context.Context, c *websocket.Conn) error {
	var req mandel.RenderRequest
	if err := wsjson.Read(ctx, c, &req); err != nil {
		return fmt.Errorf("%w: read request: %v", errBadRequest, err)
	}
	b, plane, err := req.Resolve()
	if err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if err := s.checkSize(b); err != nil {
		return err
	}

	opts := s.Options
	if req.RowsPerBand > 0 {
		opts.RowsPerBand = req.RowsPerBand
	}
	if opts.RowsPerBand <= 0 {
		opts.RowsPerBand = 1
	}
	opts.RowsPerBand = min(opts.RowsPerBand, b.Height)
	pm := mandel.NewPixmap(b, 3)
	n := mandel.BandCount(b.Height, opts.RowsPerBand)

	hdr := mandel.RenderHeader{
		Width:       b.Width,
		Height:      b.Height,
		Channels:    pm.Channels,
		RowsPerBand: opts.RowsPerBand,
		Bands:       n,
		UpperLeft:   [2]float64{real(plane.UpperLeft), imag(plane.UpperLeft)},
		LowerRight:  [2]float64{real(plane.LowerRight), imag(plane.LowerRight)},
	}
	if err := wsjson.Write(ctx, c, hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	log.Printf("streaming %s of %s in %d bands", b, plane, n)

	// Room for every band, so the render never waits on the connection.
	done := make(chan mandel.Band, n)
	opts.OnBand = func(band mandel.Band) { done <- band }
	go func() {
		mandel.Parallel{Options: opts}.Render(pm, plane)
		close(done)
	}()

	var frame []byte
	for band := range done {
		frame = mandel.AppendBandFrame(frame[:0], band)
		if err := c.Write(ctx, websocket.MessageBinary, frame); err != nil {
			return fmt.Errorf("write band at row %d: %w", band.Top, err)
		}
	}
	return nil
}

// closeReason trims err to fit a websocket close frame.
func closeReason(err error) string {
	const maxLen = 120
	s := err.Error()
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}
