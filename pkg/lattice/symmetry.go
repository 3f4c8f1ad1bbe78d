package lattice

// Transform is an integer 2×2 matrix acting on lattice points:
// (x, y) ↦ (M[0][0]x + M[0][1]y, M[1][0]x + M[1][1]y).
type Transform [2][2]int

// Identity is the identity transform.
var Identity = Transform{{1, 0}, {0, 1}}

var (
	rotation = Transform{{0, -1}, {1, 0}} // 90° counter-clockwise
	flip     = Transform{{-1, 0}, {0, 1}} // x ↦ -x
)

// Symmetries lists the eight symmetries of the square lattice fixing the
// origin: the four rotations R^i, then the four R^i·F where F mirrors
// across the vertical axis.
var Symmetries = func() [8]Transform {
	var out [8]Transform
	r := Identity
	for i := 0; i < 4; i++ {
		out[i] = r
		out[i+4] = r.Compose(flip)
		r = rotation.Compose(r)
	}
	return out
}()

// Compose returns the matrix product t·u (apply u first, then t).
func (t Transform) Compose(u Transform) Transform {
	var out Transform
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = t[i][0]*u[0][j] + t[i][1]*u[1][j]
		}
	}
	return out
}

// Apply maps a point.
func (t Transform) Apply(p Point) Point {
	return Point{
		X: t[0][0]*p.X + t[0][1]*p.Y,
		Y: t[1][0]*p.X + t[1][1]*p.Y,
	}
}

// ApplyEdge maps both endpoints of an edge.
func (t Transform) ApplyEdge(e Edge) Edge {
	return Edge{A: t.Apply(e.A), B: t.Apply(e.B)}
}
