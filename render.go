package mandel

import (
	"image/color"
	"time"

	"github.com/marben/mandel/internal/parallel"
)

// Options configures a banded render. Zero fields take the defaults of
// DefaultOptions.
type Options struct {
	// Limit is the iteration budget per point.
	Limit int

	// Channels is 3 for RGB or 4 for RGBA output.
	Channels int

	// RowsPerBand is the height of one unit of concurrent work.
	RowsPerBand int

	// Workers is the number of goroutines. 0 means GOMAXPROCS.
	Workers int

	// OnBand, if set, is called once for every band after its pixels are
	// final. Calls come from worker goroutines and may overlap.
	OnBand func(Band)
}

// DefaultOptions returns one-row bands of RGB pixels iterated 255 times,
// spread across GOMAXPROCS workers.
func DefaultOptions() Options {
	return Options{
		Limit:       DefaultLimit,
		Channels:    3,
		RowsPerBand: 1,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Limit <= 0 {
		o.Limit = d.Limit
	}
	if o.Channels == 0 {
		o.Channels = d.Channels
	}
	if o.RowsPerBand <= 0 {
		o.RowsPerBand = d.RowsPerBand
	}
	return o
}

// Sequential renders every pixel in row order on the calling goroutine.
type Sequential struct {
	Limit int // 0 means DefaultLimit
}

// Render implements Renderer. It panics if pm's buffer does not match its
// declared size.
func (s Sequential) Render(pm *Pixmap, plane Plane) {
	pm.checkLen()
	limit := s.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	start := time.Now()
	b := pm.Size()
	for y := range b.Height {
		for x := range b.Width {
			pm.SetRGBA(x, y, shade(b, x, y, plane, limit))
		}
	}
	Logger().Debug("mandel: sequential render done",
		"bounds", b, "plane", plane, "elapsed", time.Since(start))
}

// Parallel renders horizontal bands of the image concurrently.
type Parallel struct {
	Options
}

// Render implements Renderer. The channel count of pm overrides
// Options.Channels.
func (r Parallel) Render(pm *Pixmap, plane Plane) {
	pm.checkLen()
	opts := r.Options
	opts.Channels = pm.Channels
	RenderBands(pm.Pix, pm.Size(), plane, opts)
}

// RenderBands paints pix, the packed buffer of an image of size b, by
// splitting it into bands and rendering them on a worker pool.
// It returns once every band is complete. Each band writes only its own
// slice of pix.
func RenderBands(pix []uint8, b Bounds, plane Plane, opts Options) {
	opts = opts.withDefaults()
	opts.RowsPerBand = min(opts.RowsPerBand, max(b.Height, 1))
	bands := SplitBands(pix, b, plane, opts.Channels, opts.RowsPerBand)

	pool := parallel.NewPool(opts.Workers)
	defer pool.Close()

	start := time.Now()
	work := make([]func(), len(bands))
	for i, band := range bands {
		work[i] = func() {
			renderBand(band, b, plane, opts.Limit, opts.Channels)
			Logger().Debug("mandel: band done",
				"top", band.Top, "rows", band.Rows, "plane", band.Plane)
			if opts.OnBand != nil {
				opts.OnBand(band)
			}
		}
	}
	Logger().Debug("mandel: dispatching bands",
		"bounds", b, "bands", len(bands), "rows_per_band", opts.RowsPerBand, "workers", pool.Workers())
	pool.ExecuteAll(work)
	Logger().Debug("mandel: banded render done",
		"bounds", b, "plane", plane, "elapsed", time.Since(start))
}

// renderBand fills band.Pix. Rows are mapped against the full image b and
// plane rather than the band's own sub-plane, so the result matches
// Sequential bit for bit.
func renderBand(band Band, b Bounds, plane Plane, limit, channels int) {
	px := band.Pix
	for r := range band.Rows {
		y := band.Top + r
		for x := range b.Width {
			writePixel(px[:channels], shade(b, x, y, plane, limit))
			px = px[channels:]
		}
	}
}

func shade(b Bounds, x, y int, plane Plane, limit int) color.RGBA {
	n, escaped := EscapeTime(PixelToPoint(b, x, y, plane), limit)
	return Quantize(Intensity(n, escaped, limit))
}
