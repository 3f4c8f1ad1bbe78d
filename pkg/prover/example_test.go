package prover_test

import (
	"context"
	"fmt"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/prover"
)

func ExampleProve() {
	axis := &prover.Claim{
		Name: "axis",
		Seed: []lattice.Point{lattice.Pt(0, 0), lattice.Pt(1, 0)},
	}
	diag := &prover.Claim{
		Name:        "diag",
		Seed:        []lattice.Point{lattice.Pt(0, 0), lattice.Pt(1, 1)},
		Candidates:  []lattice.Edge{lattice.E(lattice.Pt(0, 0), lattice.Pt(1, 0))},
		KnownLemmas: []*prover.Claim{axis},
	}

	res, err := prover.Prove(context.Background(), diag, prover.NoopObserver{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%s: %d branch, %d patterns\n", res.Claim.Name, res.Branches, res.Patterns)
	// Output:
	// diag: 1 branch, 4 patterns
}
