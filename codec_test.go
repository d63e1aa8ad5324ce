package mandel

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"mandel.png", PNG},
		{"out/MANDEL.PNG", PNG},
		{"a.bmp", BMP},
		{"a.tif", TIFF},
		{"a.tiff", TIFF},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if err != nil || got != tt.want {
			t.Errorf("FormatFromPath(%q) = (%q, %v), want %q", tt.path, got, err, tt.want)
		}
	}

	for _, path := range []string{"mandel.jpg", "mandel", "png"} {
		if _, err := FormatFromPath(path); !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("FormatFromPath(%q) error = %v, want ErrUnknownFormat", path, err)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	pm := NewPixmap(Bounds{31, 17}, 3)
	Parallel{DefaultOptions()}.Render(pm, FullSet)

	decoders := map[string]func(*os.File) (image.Image, error){
		"out.png":  func(f *os.File) (image.Image, error) { return png.Decode(f) },
		"out.bmp":  func(f *os.File) (image.Image, error) { return bmp.Decode(f) },
		"out.tiff": func(f *os.File) (image.Image, error) { return tiff.Decode(f) },
	}
	dir := t.TempDir()
	for name, decode := range decoders {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Save(path, pm); err != nil {
				t.Fatalf("Save: %v", err)
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			img, err := decode(f)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}

			if img.Bounds() != pm.Bounds() {
				t.Fatalf("decoded bounds %v, want %v", img.Bounds(), pm.Bounds())
			}
			for y := range pm.Height {
				for x := range pm.Width {
					got := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
					if want := pm.RGBAAt(x, y); got != want {
						t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestSaveErrors(t *testing.T) {
	pm := NewPixmap(Bounds{2, 2}, 3)
	if err := Save(filepath.Join(t.TempDir(), "out.gif"), pm); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Save .gif error = %v, want ErrUnknownFormat", err)
	}
	if err := Save(filepath.Join(t.TempDir(), "missing", "out.png"), pm); err == nil {
		t.Error("Save into a missing directory should fail")
	}
}
