// Package pkg provides the libraries behind the spanners verifier, which
// checks by exhaustive case analysis that periodic graphs on the integer
// lattice are locally optimal degree-3 spanners with dilation 1+sqrt(2).
//
// # Overview
//
// The verifier runs a backtracking search per claim. Each claim fixes a seed
// path and a pair of lattice points, then enumerates every way the spanner
// could connect that pair within the dilation bound. A branch closes on a
// degree contradiction, a known forbidden pattern or a global shortcut.
// A claim is proved when every branch closes.
//
// # Architecture
//
//	catalog.toml
//	     ↓
//	[claims] (parse notation into prover.Claim values)
//	     ↓
//	[prover] (backtracking search over [state] using [oracle] and [pattern])
//	     ↓
//	[store] + [cache] (run reports and reusable results)
//	     ↓
//	[render] / [io] (ASCII, DOT, SVG, PDF, PNG and JSON snapshots)
//
// The [sweep] package holds the finite checks that do not fit the branch
// search: the Lemma 2.4 dilation sweep, Proposition 2.1, Figure 2 and the
// Lemma 3.8 walk enumeration.
//
// # Quick Start
//
//	cat := claims.Default()
//	cl, _ := cat.Get("h1")
//	res, err := prover.Prove(ctx, cl, nil)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Branches, "branches closed")
//
// # Main Packages
//
// ## Geometry
//
// [lattice] - Points, edges, the eight unit steps and the symmetry group of
// the square lattice.
//
// [exact] - Exact arithmetic in Z[sqrt(2)] so that dilation comparisons never
// round.
//
// ## Search
//
// [state] - The partial spanner under construction: chosen edges, forbidden
// edges, degree bookkeeping and undo.
//
// [oracle] - Bounded path queries and shortcut detection against a state.
//
// [pattern] - Forbidden local configurations closed under lattice symmetry.
//
// [prover] - The search engine, its [prover.Observer] hooks and results.
//
// [claims] - The claim catalog and its textual notation.
//
// ## Infrastructure
//
// [store] - Run reports on disk, in memory or in MongoDB.
//
// [cache] - Result caching on disk, in Badger or in Redis.
//
// [observability] - Hooks for proofs, sweeps, caches and HTTP requests.
//
// [httputil] - JSON responses and error mapping for the HTTP server.
//
// [errors] - Coded errors shared by every package.
//
// [buildinfo] - Version metadata stamped at link time.
//
// # Testing
//
//	go test ./pkg/...
//	go test -run Example ./pkg/prover
//
// [lattice]: https://pkg.go.dev/github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice
// [exact]: https://pkg.go.dev/github.com/damien-gal/degree-three-spanners-square-lattice/pkg/exact
// [state]: https://pkg.go.dev/github.com/damien-gal/degree-three-spanners-square-lattice/pkg/state
// [oracle]: https://pkg.go.dev/github.com/damien-gal/degree-three-spanners-square-lattice/pkg/oracle
// [pattern]: https://pkg.go.dev/github.com/damien-gal/degree-three-spanners-square-lattice/pkg/pattern
// [prover]: https://pkg.go.dev/github.com/damien-gal/degree-three-spanners-square-lattice/pkg/prover
// [prover.Observer]: https://pkg.go.dev/github.com/damien-gal/degree-three-spanners-square-lattice/pkg/prover#Observer
// [claims]: https://pkg.go.dev/github.com/damien-gal/degree-three-spanners-square-lattice/pkg/claims
// [sweep]: https://pkg.go.dev/github.com/damien-gal/degree-three-spanners-square-lattice/pkg/sweep
// [store]: https://pkg.go.dev/github.com/damien-gal/degree-three-spanners-square-lattice/pkg/store
// [cache]: https://pkg.go.dev/github.com/damien-gal/degree-three-spanners-square-lattice/pkg/cache
// [observability]: https://pkg.go.dev/github.com/damien-gal/degree-three-spanners-square-lattice/pkg/observability
// [httputil]: https://pkg.go.dev/github.com/damien-gal/degree-three-spanners-square-lattice/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/damien-gal/degree-three-spanners-square-lattice/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/damien-gal/degree-three-spanners-square-lattice/pkg/buildinfo
//
// [render]: https://pkg.go.dev/github.com/damien-gal/degree-three-spanners-square-lattice/pkg/render
// [io]: https://pkg.go.dev/github.com/damien-gal/degree-three-spanners-square-lattice/pkg/io
package pkg
