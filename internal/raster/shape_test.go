package raster

import (
	"math/rand"
	"testing"
)

func TestShapeFactoryRectangleContract(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	f := NewShapeFactory(Rectangle, 64, 48, rng)

	for i := 0; i < 1000; i++ {
		s := f.Random()
		if s.Kind != Rectangle {
			t.Fatalf("expected rectangle, got %v", s.Kind)
		}
		if got := len(s.Vertices()); got != 2 {
			t.Fatalf("rectangle must have 2 corners, got %d", got)
		}
		min, max := s.V[0], s.V[1]
		if min.X > max.X || min.Y > max.Y {
			t.Fatalf("corners not normalized: %v, %v", min, max)
		}
		assertInBounds(t, s, 64, 48)
	}
}

func TestShapeFactoryTriangleContract(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	f := NewShapeFactory(Triangle, 64, 48, rng)

	for i := 0; i < 1000; i++ {
		s := f.Random()
		if s.Kind != Triangle {
			t.Fatalf("expected triangle, got %v", s.Kind)
		}
		if got := len(s.Vertices()); got != 3 {
			t.Fatalf("triangle must have 3 vertices, got %d", got)
		}
		if collinear(s.V[0], s.V[1], s.V[2]) {
			t.Fatalf("degenerate triangle generated: %v", s.V)
		}
		assertInBounds(t, s, 64, 48)
	}
}

func TestShapeFactoryMutateStaysInBounds(t *testing.T) {
	for _, kind := range []ShapeKind{Rectangle, Triangle} {
		t.Run(kind.String(), func(t *testing.T) {
			rng := rand.New(rand.NewSource(3))
			f := NewShapeFactory(kind, 20, 20, rng)
			s := f.Random()
			for i := 0; i < 500; i++ {
				s = f.Mutate(s, MutationIntensity)
				if s.Kind != kind {
					t.Fatalf("mutation changed shape kind to %v", s.Kind)
				}
				assertInBounds(t, s, 20, 20)
				if kind == Triangle && collinear(s.V[0], s.V[1], s.V[2]) {
					t.Fatalf("mutation produced degenerate triangle: %v", s.V)
				}
			}
		})
	}
}

func TestShapeFactoryMutateRespectsIntensity(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	f := NewShapeFactory(Triangle, 200, 150, rng)
	s := f.Random()

	for _, intensity := range []float64{0.05, 0.1, 0.5} {
		vertexStep := int(intensity * 200)
		colorStep := int(intensity * 255)
		for i := 0; i < 300; i++ {
			m := f.Mutate(s, intensity)
			for j := range s.V {
				if dx := abs(m.V[j].X - s.V[j].X); dx > vertexStep {
					t.Fatalf("intensity %v: vertex %d moved %d on x, step is %d", intensity, j, dx, vertexStep)
				}
				if dy := abs(m.V[j].Y - s.V[j].Y); dy > vertexStep {
					t.Fatalf("intensity %v: vertex %d moved %d on y, step is %d", intensity, j, dy, vertexStep)
				}
			}
			for _, d := range []int{
				abs(int(m.Color.R) - int(s.Color.R)),
				abs(int(m.Color.G) - int(s.Color.G)),
				abs(int(m.Color.B) - int(s.Color.B)),
				abs(int(m.Color.A) - int(s.Color.A)),
			} {
				if d > colorStep {
					t.Fatalf("intensity %v: channel moved %d, step is %d", intensity, d, colorStep)
				}
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestShapeFactoryDeterminism(t *testing.T) {
	a := NewShapeFactory(Triangle, 100, 80, rand.New(rand.NewSource(7)))
	b := NewShapeFactory(Triangle, 100, 80, rand.New(rand.NewSource(7)))
	for i := 0; i < 100; i++ {
		sa, sb := a.Random(), b.Random()
		if sa != sb {
			t.Fatalf("same seed produced different shapes at step %d: %v vs %v", i, sa, sb)
		}
	}
}

func assertInBounds(t *testing.T, s Shape, w, h int) {
	t.Helper()
	for _, v := range s.Vertices() {
		if v.X < 0 || v.X >= w || v.Y < 0 || v.Y >= h {
			t.Fatalf("vertex %v outside [0,%d)x[0,%d)", v, w, h)
		}
	}
}
