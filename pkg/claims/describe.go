package claims

import (
	"fmt"
	"strings"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/prover"
)

// Info is the printable form of a claim, used by `claims show` and the
// HTTP API.
type Info struct {
	Name           string   `json:"name"`
	Title          string   `json:"title,omitempty"`
	Target         string   `json:"target,omitempty"`
	Bound          string   `json:"bound,omitempty"`
	BoundApprox    float64  `json:"bound_approx,omitempty"`
	Seed           string   `json:"seed"`
	Candidates     []string `json:"candidates,omitempty"`
	ExpectedLeaves int      `json:"expected_leaves"`
	Lemmas         []string `json:"lemmas"`
}

// Describe converts c to its printable form.
func Describe(c *prover.Claim) Info {
	info := Info{
		Name:           c.Name,
		Title:          c.Description,
		Seed:           FormatPath(c.Seed),
		ExpectedLeaves: c.ExpectedLeaves,
		Lemmas:         c.LemmaNames(),
	}
	if t := c.Target; t != nil {
		info.Target = FormatPoint(t.U) + "-" + FormatPoint(t.V)
		info.Bound = FormatNumber(t.Bound)
		info.BoundApprox = t.Bound.Float64()
	}
	for _, e := range c.Candidates {
		info.Candidates = append(info.Candidates, FormatPoint(e.A)+"-"+FormatPoint(e.B))
	}
	return info
}

// Canonical returns a stable text encoding of everything that influences
// a proof of c, including its lemmas' seeds. Two claims with the same
// encoding produce the same run.
func Canonical(c *prover.Claim) string {
	var b strings.Builder
	fmt.Fprintf(&b, "name=%s\n", c.Name)
	if t := c.Target; t != nil {
		fmt.Fprintf(&b, "target=%s-%s<%s\n", FormatPoint(t.U), FormatPoint(t.V), FormatNumber(t.Bound))
	}
	fmt.Fprintf(&b, "seed=%s\n", FormatPath(c.Seed))
	fmt.Fprintf(&b, "candidates=%s\n", FormatPairs(c.Candidates))
	fmt.Fprintf(&b, "leaves=%d\n", c.ExpectedLeaves)
	for _, l := range c.KnownLemmas {
		fmt.Fprintf(&b, "lemma=%s:%s\n", l.Name, FormatPath(l.Seed))
	}
	return b.String()
}
