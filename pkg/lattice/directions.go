package lattice

import "github.com/damien-gal/degree-three-spanners-square-lattice/pkg/exact"

// Direction is one of the eight unit steps together with its exact length.
type Direction struct {
	Vector
	Norm exact.Number // 1 for axial steps, √2 for diagonal ones
}

// Directions lists the eight unit steps. The order (dx outer, dy inner,
// both from -1 to 1) is the exploration order of every search.
var Directions = func() []Direction {
	var out []Direction
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			norm := exact.One
			if dx != 0 && dy != 0 {
				norm = exact.Sqrt2
			}
			out = append(out, Direction{Vector{dx, dy}, norm})
		}
	}
	return out
}()

// Neighbours returns the eight lattice neighbours of p in [Directions] order.
func Neighbours(p Point) [8]Point {
	var out [8]Point
	for i, d := range Directions {
		out[i] = Translate(p, d.Vector)
	}
	return out
}

// StepNorm returns the exact length of the step from p to a neighbour q.
// It returns false if q is not a neighbour of p.
func StepNorm(p, q Point) (exact.Number, bool) {
	if !IsStep(p, q) {
		return exact.Zero, false
	}
	if p.X != q.X && p.Y != q.Y {
		return exact.Sqrt2, true
	}
	return exact.One, true
}

// WalkLength returns the exact length of a walk made of lattice steps.
// Non-step pairs contribute nothing; callers validate walks first.
func WalkLength(path []Point) exact.Number {
	total := exact.Zero
	for _, e := range PathEdges(path) {
		if n, ok := StepNorm(e.A, e.B); ok {
			total = total.Add(n)
		}
	}
	return total
}
