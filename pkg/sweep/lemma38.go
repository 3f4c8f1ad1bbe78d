package sweep

import (
	"slices"
	"time"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/exact"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
)

// Shortcut records why a walk cannot be a shortest path: the subwalk
// between P and Q is longer than (1+√2)|PQ|.
type Shortcut struct {
	P, Q lattice.Point
}

// Rejected is an enumerated walk together with the subwalk that rules it
// out.
type Rejected struct {
	Walk   []lattice.Point
	Reason Shortcut
}

// Lemma38Report lists the candidate walks of Lemma 3.8.
type Lemma38Report struct {
	Report
	Valid    [][]lattice.Point
	Rejected []Rejected
}

// Lemma38 enumerates the cycle-free walks from (0,0) to (1,2) with length
// L in (3+√2, √5(1+√2)] and splits them into those that contain a subwalk
// of dilation greater than 1+√2 and the rest.
func Lemma38() *Lemma38Report {
	start := time.Now()
	from, to := lattice.Pt(0, 0), lattice.Pt(1, 2)
	walks := BoundedWalks(from, to, exact.New(3, 1), exact.Dilation.Pow(2).Scale(5))

	r := &Lemma38Report{Report: Report{Name: "lemma-3.8", Cases: len(walks), Sources: 1}}
	for _, w := range walks {
		if sc, ok := FindObviousShortcut(w); ok {
			r.Rejected = append(r.Rejected, Rejected{Walk: w, Reason: sc})
			continue
		}
		r.Valid = append(r.Valid, w)
	}
	r.Pairs = len(r.Valid)
	r.Duration = time.Since(start)
	return r
}

// BoundedWalks returns every walk from "from" to "to" that visits no
// point twice and whose length L satisfies shortest < L and L² ≤ maxSq. Walks
// are produced in depth-first order over [lattice.Directions].
func BoundedWalks(from, to lattice.Point, shortest, maxSq exact.Number) [][]lattice.Point {
	var out [][]lattice.Point
	onWalk := map[lattice.Point]bool{from: true}
	walk := []lattice.Point{from}

	var dfs func(u lattice.Point, length exact.Number)
	dfs = func(u lattice.Point, length exact.Number) {
		if length.Add(lattice.ManhattanWithDiagonals(u, to)).Pow(2).Greater(maxSq) {
			return
		}
		if u == to {
			if length.Greater(shortest) {
				out = append(out, slices.Clone(walk))
			}
			return
		}
		for _, d := range lattice.Directions {
			v := lattice.Translate(u, d.Vector)
			if onWalk[v] {
				continue
			}
			onWalk[v] = true
			walk = append(walk, v)
			dfs(v, length.Add(d.Norm))
			walk = walk[:len(walk)-1]
			delete(onWalk, v)
		}
	}
	dfs(from, exact.Zero)
	return out
}

// FindObviousShortcut returns the first pair of vertices of walk, in
// lexicographic index order, whose subwalk is longer than 1+√2 times
// their distance.
func FindObviousShortcut(walk []lattice.Point) (Shortcut, bool) {
	prefix := make([]exact.Number, len(walk))
	for i := 1; i < len(walk); i++ {
		step, _ := lattice.StepNorm(walk[i-1], walk[i])
		prefix[i] = prefix[i-1].Add(step)
	}

	dilSq := exact.Dilation.Pow(2)
	for i := range walk {
		for j := i + 1; j < len(walk); j++ {
			sub := prefix[j].Sub(prefix[i])
			if sub.Pow(2).Greater(dilSq.Mul(exact.Int(lattice.DistSquared(walk[i], walk[j])))) {
				return Shortcut{P: walk[i], Q: walk[j]}, true
			}
		}
	}
	return Shortcut{}, false
}
