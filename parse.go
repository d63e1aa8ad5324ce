package mandel

import (
	"strconv"
	"strings"
)

// ParsePair parses s of the form <left><sep><right>, splitting at the first
// sep, with both sides parsed by parse. ok is false if sep is missing or
// either side fails to parse.
func ParsePair[T any](s string, sep rune, parse func(string) (T, error)) (left, right T, ok bool) {
	ls, rs, found := strings.Cut(s, string(sep))
	if !found {
		return left, right, false
	}
	l, err := parse(ls)
	if err != nil {
		return left, right, false
	}
	r, err := parse(rs)
	if err != nil {
		return left, right, false
	}
	return l, r, true
}

// ParseInt parses a decimal int.
func ParseInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// ParseFloat parses a float64.
func ParseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// ParseBounds parses image dimensions such as "1000x750".
// Both dimensions must be positive.
func ParseBounds(s string) (Bounds, bool) {
	w, h, ok := ParsePair(s, 'x', ParseInt)
	if !ok || w <= 0 || h <= 0 {
		return Bounds{}, false
	}
	return Bounds{Width: w, Height: h}, true
}

// ParseComplex parses a point such as "-1.20,0.35" as re,im.
func ParseComplex(s string) (complex128, bool) {
	re, im, ok := ParsePair(s, ',', ParseFloat)
	if !ok {
		return 0, false
	}
	return complex(re, im), true
}

// Mode selects a renderer.
type Mode int

const (
	ModeSequential Mode = iota
	ModeParallel
)

func (m Mode) String() string {
	switch m {
	case ModeSequential:
		return "Single"
	case ModeParallel:
		return "Multi"
	default:
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseMode accepts "Single" or "sequential" and "Multi" or "parallel".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "Single", "sequential":
		return ModeSequential, true
	case "Multi", "parallel":
		return ModeParallel, true
	}
	return 0, false
}

// Renderer returns the renderer for m configured with opts.
func (m Mode) Renderer(opts Options) Renderer {
	if m == ModeSequential {
		return Sequential{Limit: opts.Limit}
	}
	return Parallel{Options: opts}
}
