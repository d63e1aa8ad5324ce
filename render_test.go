package mandel

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"sync"
	"testing"
)

func TestSequentialKnownPixels(t *testing.T) {
	pm := NewPixmap(Bounds{2, 2}, 3)
	Sequential{}.Render(pm, Plane{complex(-1, 1), complex(1, -1)})

	// -1+1i escapes at iteration 3, the rest are members.
	want := map[[2]int]color.RGBA{
		{0, 0}: Red,
		{1, 0}: Black,
		{0, 1}: Black,
		{1, 1}: Black,
	}
	for xy, w := range want {
		if got := pm.RGBAAt(xy[0], xy[1]); got != w {
			t.Errorf("pixel %v = %v, want %v", xy, got, w)
		}
	}
	if !bytes.Equal(pm.Pix[:3], []uint8{255, 0, 0}) {
		t.Errorf("first pixel bytes = %v, want packed RGB red", pm.Pix[:3])
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	planes := map[string]Plane{
		"full":     FullSet,
		"seahorse": SeahorseValley,
		"usage":    {complex(-1.20, 0.35), complex(-1, 0.20)},
		"inverted": {complex(1, -1), complex(-2, 1)},
	}
	sizes := []Bounds{{1, 1}, {7, 5}, {33, 17}, {64, 48}}
	rows := []int{1, 3, 16, 100}

	for name, plane := range planes {
		for _, b := range sizes {
			seq := NewPixmap(b, 3)
			Sequential{}.Render(seq, plane)

			for _, rpb := range rows {
				for _, workers := range []int{1, 4} {
					t.Run(fmt.Sprintf("%s/%s/rows=%d/workers=%d", name, b, rpb, workers), func(t *testing.T) {
						par := NewPixmap(b, 3)
						Parallel{Options{RowsPerBand: rpb, Workers: workers}}.Render(par, plane)
						if !bytes.Equal(seq.Pix, par.Pix) {
							t.Fatal("parallel render differs from sequential render")
						}
					})
				}
			}
		}
	}
}

func TestParallelRGBA(t *testing.T) {
	b := Bounds{40, 30}
	seq := NewPixmap(b, 4)
	Sequential{}.Render(seq, FullSet)
	par := NewPixmap(b, 4)
	Parallel{DefaultOptions()}.Render(par, FullSet)

	if !bytes.Equal(seq.Pix, par.Pix) {
		t.Fatal("parallel render differs from sequential render")
	}
	// Every pixel is written, so every alpha byte is set.
	if !par.Opaque() {
		t.Error("render left unwritten pixels")
	}
}

func TestRenderBandsRawBuffer(t *testing.T) {
	b := Bounds{21, 13}
	pm := NewPixmap(b, 3)
	Sequential{}.Render(pm, SpiralMinibrot)

	pix := make([]uint8, b.Width*b.Height*3)
	RenderBands(pix, b, SpiralMinibrot, Options{RowsPerBand: 2})
	if !bytes.Equal(pm.Pix, pix) {
		t.Fatal("RenderBands differs from sequential render")
	}
}

func TestRenderLimit(t *testing.T) {
	b := Bounds{24, 16}
	seq := NewPixmap(b, 3)
	Sequential{Limit: 1000}.Render(seq, FullSet)
	par := NewPixmap(b, 3)
	Parallel{Options{Limit: 1000}}.Render(par, FullSet)
	if !bytes.Equal(seq.Pix, par.Pix) {
		t.Fatal("parallel render differs from sequential render")
	}

	def := NewPixmap(b, 3)
	Sequential{}.Render(def, FullSet)
	if bytes.Equal(seq.Pix, def.Pix) {
		t.Error("limit 1000 rendered the same image as limit 255")
	}
}

func TestOnBand(t *testing.T) {
	b := Bounds{10, 11}
	var mu sync.Mutex
	seen := make(map[int]int)

	pm := NewPixmap(b, 3)
	Parallel{Options{RowsPerBand: 4, OnBand: func(band Band) {
		mu.Lock()
		defer mu.Unlock()
		seen[band.Top] = band.Rows
	}}}.Render(pm, FullSet)

	want := map[int]int{0: 4, 4: 4, 8: 3}
	if fmt.Sprint(seen) != fmt.Sprint(want) {
		t.Errorf("bands seen = %v, want %v", seen, want)
	}
}

func TestRenderBandsRowsAboveHeight(t *testing.T) {
	b := Bounds{4, 2}
	want := NewPixmap(b, 3)
	Sequential{}.Render(want, FullSet)

	for _, rpb := range []int{2, 3, math.MaxInt} {
		calls := 0
		pm := NewPixmap(b, 3)
		Parallel{Options{RowsPerBand: rpb, OnBand: func(band Band) {
			calls++
			if band.Top != 0 || band.Rows != b.Height {
				t.Errorf("rows per band %d: band [%d,+%d), want [0,+%d)", rpb, band.Top, band.Rows, b.Height)
			}
		}}}.Render(pm, FullSet)
		if calls != 1 {
			t.Errorf("rows per band %d: OnBand called %d times, want 1", rpb, calls)
		}
		if !bytes.Equal(pm.Pix, want.Pix) {
			t.Errorf("rows per band %d: render differs from sequential render", rpb)
		}
	}
}

func TestRenderPanicsOnSizeMismatch(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"sequential", func() {
			pm := &Pixmap{Pix: make([]uint8, 10), Width: 2, Height: 2, Channels: 3}
			Sequential{}.Render(pm, FullSet)
		}},
		{"parallel", func() {
			pm := &Pixmap{Pix: make([]uint8, 13), Width: 2, Height: 2, Channels: 3}
			Parallel{}.Render(pm, FullSet)
		}},
		{"raw", func() {
			RenderBands(make([]uint8, 11), Bounds{2, 2}, FullSet, Options{})
		}},
		{"channels", func() {
			RenderBands(make([]uint8, 8), Bounds{2, 2}, FullSet, Options{Channels: 2})
		}},
		{"zero bounds", func() {
			NewPixmap(Bounds{0, 5}, 3)
		}},
		{"overflowing bounds", func() {
			NewPixmap(Bounds{math.MaxInt / 2, 4}, 3)
		}},
		{"wrapped length", func() {
			// (MaxInt/2+1) * 4 * 4 wraps to zero.
			pm := &Pixmap{Width: math.MaxInt/2 + 1, Height: 4, Channels: 4}
			pm.Pix = make([]uint8, pm.Width*pm.Height*pm.Channels)
			Sequential{}.Render(pm, FullSet)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func BenchmarkSequential(b *testing.B) {
	pm := NewPixmap(Bounds{320, 240}, 3)
	for b.Loop() {
		Sequential{}.Render(pm, FullSet)
	}
}

func BenchmarkParallel(b *testing.B) {
	pm := NewPixmap(Bounds{320, 240}, 3)
	r := Parallel{DefaultOptions()}
	for b.Loop() {
		r.Render(pm, FullSet)
	}
}
