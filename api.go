package mandel

// Renderer paints every pixel of pm with the part of the plane it covers.
type Renderer interface {
	Render(pm *Pixmap, plane Plane)
}

var (
	_ Renderer = Sequential{}
	_ Renderer = Parallel{}
)
