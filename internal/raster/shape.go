package raster

import (
	"fmt"
	"math/rand"
)

// ShapeKind selects the drawable primitive for a run. The set is closed:
// the compositor and the factory switch exhaustively over it.
type ShapeKind uint8

const (
	// Rectangle is an axis-aligned rectangle defined by two opposite corners.
	Rectangle ShapeKind = iota
	// Triangle is defined by three non-collinear vertices.
	Triangle
)

// String returns the human-readable name of the shape kind.
func (k ShapeKind) String() string {
	switch k {
	case Rectangle:
		return "rectangle"
	case Triangle:
		return "triangle"
	default:
		return fmt.Sprintf("ShapeKind(%d)", uint8(k))
	}
}

// Point is a pixel coordinate.
type Point struct {
	X, Y int
}

// RGBA is a translucent fill color. The blend factor is A/255.
type RGBA struct {
	R, G, B, A uint8
}

// Shape is a tagged variant over the closed kind set. Rectangles use V[0]
// and V[1] as normalized min/max corners; triangles use all three vertices.
// Coordinates are always inside [0,w)x[0,h) for the factory that made them.
type Shape struct {
	Kind  ShapeKind
	V     [3]Point
	Color RGBA
}

// Vertices returns the vertices that are meaningful for the shape's kind.
func (s Shape) Vertices() []Point {
	switch s.Kind {
	case Rectangle:
		return s.V[:2]
	case Triangle:
		return s.V[:]
	default:
		return nil
	}
}

// ShapeFactory generates random shapes and mutates existing ones, keeping
// every coordinate inside the canvas bounds. It draws exclusively from the
// injected random source, so runs are reproducible for a fixed seed.
type ShapeFactory struct {
	kind ShapeKind
	w, h int
	rng  *rand.Rand
}

// NewShapeFactory creates a factory producing shapes of the given kind
// within a w x h canvas.
func NewShapeFactory(kind ShapeKind, w, h int, rng *rand.Rand) *ShapeFactory {
	return &ShapeFactory{kind: kind, w: w, h: h, rng: rng}
}

// Random generates a uniformly random shape of the factory's kind with a
// uniformly random RGBA fill, alpha included.
func (f *ShapeFactory) Random() Shape {
	s := Shape{Kind: f.kind, Color: f.randomColor()}
	switch f.kind {
	case Rectangle:
		a := f.randomPoint()
		b := f.randomPoint()
		s.V[0], s.V[1] = normalizeCorners(a, b)
	case Triangle:
		for {
			s.V[0] = f.randomPoint()
			s.V[1] = f.randomPoint()
			s.V[2] = f.randomPoint()
			if !collinear(s.V[0], s.V[1], s.V[2]) {
				break
			}
		}
	}
	return s
}

// MutationIntensity is the default mutation step bound: vertex deltas are
// drawn from +/- intensity*max(w,h) and color deltas from +/- intensity*255.
const MutationIntensity = 0.1

// Mutate perturbs the vertices and color of an existing shape by random
// deltas bounded by intensity, clipping coordinates back into canvas bounds.
// Degenerate triangles are re-perturbed until valid.
func (f *ShapeFactory) Mutate(s Shape, intensity float64) Shape {
	maxDim := f.w
	if f.h > maxDim {
		maxDim = f.h
	}
	vertexStep := int(intensity * float64(maxDim))
	if vertexStep < 1 {
		vertexStep = 1
	}
	colorStep := int(intensity * 255)
	if colorStep < 1 {
		colorStep = 1
	}

	out := s
	switch s.Kind {
	case Rectangle:
		out.V[0] = f.jitterPoint(s.V[0], vertexStep)
		out.V[1] = f.jitterPoint(s.V[1], vertexStep)
		out.V[0], out.V[1] = normalizeCorners(out.V[0], out.V[1])
	case Triangle:
		for {
			out.V[0] = f.jitterPoint(s.V[0], vertexStep)
			out.V[1] = f.jitterPoint(s.V[1], vertexStep)
			out.V[2] = f.jitterPoint(s.V[2], vertexStep)
			if !collinear(out.V[0], out.V[1], out.V[2]) {
				break
			}
		}
	}
	out.Color = RGBA{
		R: f.jitterChannel(s.Color.R, colorStep),
		G: f.jitterChannel(s.Color.G, colorStep),
		B: f.jitterChannel(s.Color.B, colorStep),
		A: f.jitterChannel(s.Color.A, colorStep),
	}
	return out
}

func (f *ShapeFactory) randomPoint() Point {
	return Point{X: f.rng.Intn(f.w), Y: f.rng.Intn(f.h)}
}

func (f *ShapeFactory) randomColor() RGBA {
	return RGBA{
		R: uint8(f.rng.Intn(256)),
		G: uint8(f.rng.Intn(256)),
		B: uint8(f.rng.Intn(256)),
		A: uint8(f.rng.Intn(256)),
	}
}

// jitterPoint moves p by a uniform delta in [-step, step] on each axis and
// clamps the result into bounds.
func (f *ShapeFactory) jitterPoint(p Point, step int) Point {
	return Point{
		X: clampInt(p.X+f.rng.Intn(2*step+1)-step, 0, f.w-1),
		Y: clampInt(p.Y+f.rng.Intn(2*step+1)-step, 0, f.h-1),
	}
}

func (f *ShapeFactory) jitterChannel(c uint8, step int) uint8 {
	return uint8(clampInt(int(c)+f.rng.Intn(2*step+1)-step, 0, 255))
}

// normalizeCorners orders two opposite corners into (min, max) form.
func normalizeCorners(a, b Point) (Point, Point) {
	if a.X > b.X {
		a.X, b.X = b.X, a.X
	}
	if a.Y > b.Y {
		a.Y, b.Y = b.Y, a.Y
	}
	return a, b
}

// collinear reports whether three points span zero area.
func collinear(a, b, c Point) bool {
	return edge(a, b, c) == 0
}

// edge is the signed area test used both here and by the triangle filler.
func edge(a, b, p Point) int {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
