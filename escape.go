package mandel

// DefaultLimit is the iteration budget matching the 8-bit intensity scale.
const DefaultLimit = 255

// PixelToPoint returns the point of plane p at pixel (x, y) of an image of
// size b. Columns grow toward larger real parts, rows toward smaller
// imaginary parts. b must be non-zero.
func PixelToPoint(b Bounds, x, y int, p Plane) complex128 {
	w := real(p.LowerRight) - real(p.UpperLeft)
	h := imag(p.UpperLeft) - imag(p.LowerRight)
	return complex(
		real(p.UpperLeft)+float64(x)*w/float64(b.Width),
		imag(p.UpperLeft)-float64(y)*h/float64(b.Height),
	)
}

// EscapeTime iterates z = z*z + c from zero for at most limit steps.
// If |z| exceeds 2 it reports the iteration at which that was seen and
// escaped=true. Otherwise c is probably a member of the set and escaped is
// false.
func EscapeTime(c complex128, limit int) (n int, escaped bool) {
	z := complex(0, 0)
	for i := range limit {
		if real(z)*real(z)+imag(z)*imag(z) > 4 {
			return i, true
		}
		z = z*z + c
	}
	return 0, false
}

// Intensity converts an escape result into a byte: 0 for members, and
// 255-n for points escaping after n of limit iterations. Limits other
// than 255 are scaled onto the same range.
func Intensity(n int, escaped bool, limit int) uint8 {
	if !escaped {
		return 0
	}
	if limit != DefaultLimit {
		n = n * DefaultLimit / limit
	}
	return uint8(DefaultLimit - n)
}
