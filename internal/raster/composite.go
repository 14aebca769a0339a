package raster

// Composite writes into dst a copy of src with the shape alpha-blended on
// top. src is never mutated, so candidate buffers can be produced from the
// committed canvas without touching it. dst and src must share dimensions
// and must not alias.
//
// Per covered pixel and channel: out = c*a + in*(1-a), with a = Color.A/255.
// The integer arithmetic is exact at the extremes: A=0 leaves dst equal to
// src byte for byte, A=255 replaces covered pixels with the fill color.
func Composite(dst, src *Buffer, s Shape) {
	dst.CopyFrom(src)
	CompositeOver(dst, s)
}

// CompositeOver blends the shape onto buf in place. Composite is the pure
// entry point; this is the primitive under it.
func CompositeOver(buf *Buffer, s Shape) {
	switch s.Kind {
	case Rectangle:
		fillRectangle(buf, s)
	case Triangle:
		fillTriangle(buf, s)
	}
}

// fillRectangle scans the axis-aligned span between the normalized corners,
// both inclusive.
func fillRectangle(buf *Buffer, s Shape) {
	min, max := normalizeCorners(s.V[0], s.V[1])
	for y := min.Y; y <= max.Y; y++ {
		for x := min.X; x <= max.X; x++ {
			blendPixel(buf, x, y, s.Color)
		}
	}
}

// fillTriangle tests every pixel of the triangle's bounding box with the
// barycentric sign test. Degenerate (zero-area) triangles cover nothing.
func fillTriangle(buf *Buffer, s Shape) {
	a, b, c := s.V[0], s.V[1], s.V[2]
	area := edge(a, b, c)
	if area == 0 {
		return
	}
	// Orient counter-clockwise so all edge functions share a sign inside.
	if area < 0 {
		b, c = c, b
	}

	minX := min3(a.X, b.X, c.X)
	maxX := max3(a.X, b.X, c.X)
	minY := min3(a.Y, b.Y, c.Y)
	maxY := max3(a.Y, b.Y, c.Y)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := Point{X: x, Y: y}
			if edge(a, b, p) >= 0 && edge(b, c, p) >= 0 && edge(c, a, p) >= 0 {
				blendPixel(buf, x, y, s.Color)
			}
		}
	}
}

// blendPixel composites c over the pixel at (x, y). Alpha of the canvas
// stays opaque; the canvas starts opaque and shapes only tint it.
func blendPixel(buf *Buffer, x, y int, c RGBA) {
	i := buf.PixOffset(x, y)
	a := uint32(c.A)
	inv := 255 - a
	buf.Pix[i+0] = uint8((uint32(c.R)*a + uint32(buf.Pix[i+0])*inv + 127) / 255)
	buf.Pix[i+1] = uint8((uint32(c.G)*a + uint32(buf.Pix[i+1])*inv + 127) / 255)
	buf.Pix[i+2] = uint8((uint32(c.B)*a + uint32(buf.Pix[i+2])*inv + 127) / 255)
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func max3(a, b, c int) int {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}
