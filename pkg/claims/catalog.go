// Package claims loads the catalog of statements checked by the prover.
//
// The catalog is a TOML document. Each [[claim]] table names a seed walk,
// an ordered list of candidate pairs (inline or by reference to a shared
// entry of [lists]), an optional target pair with its bound, the number of
// branches a complete run explores and the names of the lemmas it relies
// on. Geometry is written in a compact notation, see [ParsePath],
// [ParsePairs] and [ParseNumber].
//
// [Default] returns the catalog compiled into the binary.
package claims

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/errors"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/prover"
)

//go:embed catalog.toml
var defaultCatalog []byte

type catalogFile struct {
	Lists  map[string]string `toml:"lists"`
	Claims []claimEntry      `toml:"claim"`
}

type claimEntry struct {
	Name           string   `toml:"name"`
	Title          string   `toml:"title"`
	Target         string   `toml:"target"`
	Bound          string   `toml:"bound"`
	Seed           string   `toml:"seed"`
	Candidates     string   `toml:"candidates"`
	CandidateList  string   `toml:"candidate_list"`
	ExpectedLeaves int      `toml:"expected_leaves"`
	Lemmas         []string `toml:"lemmas"`
}

// Catalog is an ordered, validated set of claims.
type Catalog struct {
	claims []*prover.Claim
	byName map[string]*prover.Claim
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog))
})

// Default returns the built-in catalog. It panics if the embedded file is
// malformed, which the package tests rule out.
func Default() *Catalog {
	c, err := loadDefault()
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultSource returns the embedded catalog file.
func DefaultSource() []byte { return bytes.Clone(defaultCatalog) }

// LoadFile reads a catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "claims file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "claims file %s", path)
	}
	defer f.Close()
	return Load(f)
}

// Load parses and validates a catalog.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read claims")
	}
	var f catalogFile
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode claims")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown keys in claims file: %s", strings.Join(keys, ", "))
	}
	return build(f)
}

func build(f catalogFile) (*Catalog, error) {
	cat := &Catalog{byName: make(map[string]*prover.Claim, len(f.Claims))}
	for _, entry := range f.Claims {
		c, err := entry.claim(f.Lists)
		if err != nil {
			return nil, err
		}
		if _, dup := cat.byName[c.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidClaim, "claim %s defined twice", c.Name)
		}
		cat.byName[c.Name] = c
		cat.claims = append(cat.claims, c)
	}

	for i, entry := range f.Claims {
		c := cat.claims[i]
		for _, name := range entry.Lemmas {
			l, ok := cat.byName[name]
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidClaim, "claim %s: unknown lemma %q", c.Name, name)
			}
			c.KnownLemmas = append(c.KnownLemmas, l)
		}
	}
	if err := checkAcyclic(cat.claims); err != nil {
		return nil, err
	}
	for _, c := range cat.claims {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

func (e claimEntry) claim(lists map[string]string) (*prover.Claim, error) {
	if err := errors.ValidateClaimName(e.Name); err != nil {
		return nil, err
	}
	c := &prover.Claim{
		Name:           e.Name,
		Description:    e.Title,
		ExpectedLeaves: e.ExpectedLeaves,
	}
	if e.ExpectedLeaves < 0 {
		return nil, errors.New(errors.ErrCodeInvalidClaim, "claim %s: expected_leaves is negative", e.Name)
	}

	seed, err := ParsePath(e.Seed)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidClaim, err, "claim %s: seed", e.Name)
	}
	c.Seed = seed

	src := e.Candidates
	if e.CandidateList != "" {
		if e.Candidates != "" {
			return nil, errors.New(errors.ErrCodeInvalidClaim, "claim %s: both candidates and candidate_list are set", e.Name)
		}
		var ok bool
		if src, ok = lists[e.CandidateList]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidClaim, "claim %s: unknown candidate list %q", e.Name, e.CandidateList)
		}
	}
	if c.Candidates, err = ParsePairs(src); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidClaim, err, "claim %s: candidates", e.Name)
	}

	switch {
	case e.Target == "" && e.Bound == "":
	case e.Target == "" || e.Bound == "":
		return nil, errors.New(errors.ErrCodeInvalidClaim, "claim %s: target and bound must be set together", e.Name)
	default:
		uv, err := ParsePair(e.Target)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidClaim, err, "claim %s: target", e.Name)
		}
		bound, err := ParseNumber(e.Bound)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidClaim, err, "claim %s: bound", e.Name)
		}
		c.Target = &prover.Target{U: uv.A, V: uv.B, Bound: bound}
	}
	return c, nil
}

// checkAcyclic rejects lemma references that loop back to a claim.
func checkAcyclic(claims []*prover.Claim) error {
	const (
		unvisited = iota
		active
		done
	)
	mark := make(map[*prover.Claim]int, len(claims))
	var visit func(c *prover.Claim) error
	visit = func(c *prover.Claim) error {
		switch mark[c] {
		case active:
			return errors.New(errors.ErrCodeInvalidClaim, "claim %s: lemma cycle", c.Name)
		case done:
			return nil
		}
		mark[c] = active
		for _, l := range c.KnownLemmas {
			if err := visit(l); err != nil {
				return err
			}
		}
		mark[c] = done
		return nil
	}
	for _, c := range claims {
		if err := visit(c); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of claims.
func (c *Catalog) Len() int { return len(c.claims) }

// Ordered returns the claims in file order.
func (c *Catalog) Ordered() []*prover.Claim { return c.claims }

// Names returns the claim names in file order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.claims))
	for i, cl := range c.claims {
		names[i] = cl.Name
	}
	return names
}

// Get returns the claim with the given name.
func (c *Catalog) Get(name string) (*prover.Claim, error) {
	if err := errors.ValidateClaimName(name); err != nil {
		return nil, err
	}
	cl, ok := c.byName[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeClaimNotFound, "unknown claim %q (known: %s)", name, strings.Join(c.Names(), ", "))
	}
	return cl, nil
}

// Select returns the named claims in catalog order, without duplicates.
func (c *Catalog) Select(names []string) ([]*prover.Claim, error) {
	pos := make(map[*prover.Claim]int, len(names))
	for i, cl := range c.claims {
		pos[cl] = i
	}
	seen := make(map[*prover.Claim]bool, len(names))
	var out []*prover.Claim
	for _, n := range names {
		cl, err := c.Get(n)
		if err != nil {
			return nil, err
		}
		if !seen[cl] {
			seen[cl] = true
			out = append(out, cl)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return pos[out[i]] < pos[out[j]] })
	return out, nil
}
