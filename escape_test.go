package mandel

import (
	"math"
	"testing"
)

func TestPixelToPoint(t *testing.T) {
	got := PixelToPoint(Bounds{100, 200}, 25, 175, Plane{complex(-1, 1), complex(1, -1)})
	if want := complex(-0.5, -0.75); got != want {
		t.Errorf("PixelToPoint = %v, want %v", got, want)
	}
}

func TestPixelToPointCorners(t *testing.T) {
	tests := []struct {
		name  string
		b     Bounds
		plane Plane
	}{
		{"unit", Bounds{100, 200}, Plane{complex(-1, 1), complex(1, -1)}},
		{"usage example", Bounds{1000, 750}, Plane{complex(-1.20, 0.35), complex(-1, 0.20)}},
		{"seahorse", Bounds{1920, 1080}, SeahorseValley},
		{"inverted", Bounds{3, 7}, Plane{complex(1, -1), complex(-1, 1)}},
	}
	const eps = 1e-12
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PixelToPoint(tt.b, 0, 0, tt.plane); got != tt.plane.UpperLeft {
				t.Errorf("pixel (0,0) = %v, want %v", got, tt.plane.UpperLeft)
			}
			got := PixelToPoint(tt.b, tt.b.Width, tt.b.Height, tt.plane)
			want := tt.plane.LowerRight
			if math.Abs(real(got)-real(want)) > eps || math.Abs(imag(got)-imag(want)) > eps {
				t.Errorf("pixel (%d,%d) = %v, want %v", tt.b.Width, tt.b.Height, got, want)
			}
		})
	}
}

func TestPixelToPointDirection(t *testing.T) {
	b := Bounds{10, 10}
	p := Plane{complex(-1, 1), complex(1, -1)}
	origin := PixelToPoint(b, 5, 5, p)
	if right := PixelToPoint(b, 6, 5, p); real(right) <= real(origin) || imag(right) != imag(origin) {
		t.Errorf("next column %v should move right of %v", right, origin)
	}
	if down := PixelToPoint(b, 5, 6, p); imag(down) >= imag(origin) || real(down) != real(origin) {
		t.Errorf("next row %v should move below %v", down, origin)
	}
}

func TestEscapeTime(t *testing.T) {
	tests := []struct {
		name        string
		c           complex128
		limit       int
		wantN       int
		wantEscaped bool
	}{
		{"origin", 0, 255, 0, false},
		{"origin limit 1", 0, 1, 0, false},
		{"three", 3, 255, 1, true},
		{"three limit 1", 3, 1, 0, false},
		{"one", 1, 255, 3, true},
		{"minus two stays on radius", -2, 255, 0, false},
		{"minus one cycles", -1, 255, 0, false},
		{"i cycles", complex(0, 1), 255, 0, false},
		{"corner", complex(-1, 1), 255, 3, true},
		{"zero limit", 3, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, escaped := EscapeTime(tt.c, tt.limit)
			if n != tt.wantN || escaped != tt.wantEscaped {
				t.Errorf("EscapeTime(%v, %d) = (%d, %v), want (%d, %v)",
					tt.c, tt.limit, n, escaped, tt.wantN, tt.wantEscaped)
			}
		})
	}
}

func TestIntensity(t *testing.T) {
	tests := []struct {
		n       int
		escaped bool
		limit   int
		want    uint8
	}{
		{0, false, 255, 0},
		{0, true, 255, 255},
		{1, true, 255, 254},
		{254, true, 255, 1},
		{0, true, 510, 255},
		{509, true, 510, 1},
		{99, true, 100, 3},
		{7, false, 100, 0},
	}
	for _, tt := range tests {
		if got := Intensity(tt.n, tt.escaped, tt.limit); got != tt.want {
			t.Errorf("Intensity(%d, %v, %d) = %d, want %d", tt.n, tt.escaped, tt.limit, got, tt.want)
		}
	}
}
