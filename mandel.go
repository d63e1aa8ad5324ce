// Package mandel renders escape-time images of the Mandelbrot set into
// packed pixel buffers.
package mandel

import (
	"fmt"
	"sort"
)

// Bounds is the size of an image in pixels.
type Bounds struct {
	Width, Height int
}

func (b Bounds) String() string {
	return fmt.Sprintf("%dx%d", b.Width, b.Height)
}

// Area of the complex plane covered by an image.
// UpperLeft maps to pixel (0,0), LowerRight to pixel (Width,Height).
// Inverted rectangles are accepted and produce mirrored images.
type Plane struct {
	UpperLeft  complex128
	LowerRight complex128
}

func (p Plane) String() string {
	return fmt.Sprintf("%v..%v", p.UpperLeft, p.LowerRight)
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Whole set
	FullSet = Plane{
		UpperLeft:  complex(-2.5, 1.25),
		LowerRight: complex(1.0, -1.25),
	}

	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Plane{
		UpperLeft:  complex(-0.8, 0.15),
		LowerRight: complex(-0.7, 0.05),
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Plane{
		UpperLeft:  complex(-1.85, -0.02),
		LowerRight: complex(-1.75, -0.10),
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Plane{
		UpperLeft:  complex(-0.7435, 0.1325),
		LowerRight: complex(-0.7420, 0.1310),
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Plane{
		UpperLeft:  complex(-0.7480, 0.0980),
		LowerRight: complex(-0.7450, 0.0950),
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Plane{
		UpperLeft:  complex(-0.7400, 0.1850),
		LowerRight: complex(-0.7350, 0.1800),
	}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Plane{
		UpperLeft:  complex(-1.7390, -0.0220),
		LowerRight: complex(-1.7375, -0.0235),
	}
)

var landmarks = map[string]Plane{
	"full":          FullSet,
	"seahorse":      SeahorseValley,
	"elephant":      ElephantValley,
	"spiral":        SpiralMinibrot,
	"triple-spiral": TripleSpiral,
	"dragon":        ValleyOfTheDragon,
	"mini-spiral":   MinibrotInMiniSpiral,
}

// Landmark returns the named classic region.
func Landmark(name string) (Plane, bool) {
	p, ok := landmarks[name]
	return p, ok
}

// LandmarkNames returns the names accepted by Landmark, sorted.
func LandmarkNames() []string {
	names := make([]string, 0, len(landmarks))
	for n := range landmarks {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
