package claims

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/errors"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/exact"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
)

// Int comes before Punct so that "-1" is a number while the "-" of
// "(0,0)-(1,0)" stays punctuation.
var notationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "whitespace", Pattern: `\s+`},
	{Name: "Sqrt2", Pattern: `sqrt\(2\)|√2`},
	{Name: "Int", Pattern: `-?\d+`},
	{Name: "Punct", Pattern: `[-+*(),]`},
})

type pointNode struct {
	X int `"(" @Int`
	Y int `"," @Int ")"`
}

type pathNode struct {
	Points []*pointNode `@@+`
}

type pairNode struct {
	A *pointNode `@@ "-"`
	B *pointNode `@@`
}

type pairListNode struct {
	Pairs []*pairNode `( @@ ( "," @@ )* )?`
}

type termNode struct {
	Op    string `@( "+" | "-" )?`
	Coef  *int64 `( @Int`
	Times bool   `  ( "*" @Sqrt2 )?`
	Root  bool   `| @Sqrt2 )`
}

type numberNode struct {
	Terms []*termNode `@@+`
}

var (
	parsePoint    = participle.MustBuild[pointNode](participle.Lexer(notationLexer))
	parsePath     = participle.MustBuild[pathNode](participle.Lexer(notationLexer))
	parsePairList = participle.MustBuild[pairListNode](participle.Lexer(notationLexer))
	parseNumber   = participle.MustBuild[numberNode](participle.Lexer(notationLexer))
)

func (n *pointNode) point() lattice.Point { return lattice.Pt(n.X, n.Y) }

// ParsePoint parses "(x,y)".
func ParsePoint(s string) (lattice.Point, error) {
	n, err := parsePoint.ParseString("", s)
	if err != nil {
		return lattice.Point{}, errors.Wrap(errors.ErrCodeInvalidNotation, err, "point %q", s)
	}
	return n.point(), nil
}

// ParsePath parses a whitespace-separated list of points such as
// "(0,0) (-1,0) (0,1)".
func ParsePath(s string) ([]lattice.Point, error) {
	n, err := parsePath.ParseString("", s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidNotation, err, "path %q", abbreviate(s))
	}
	out := make([]lattice.Point, len(n.Points))
	for i, p := range n.Points {
		out[i] = p.point()
	}
	return out, nil
}

// ParsePair parses a single pair "(x,y)-(x,y)".
func ParsePair(s string) (lattice.Edge, error) {
	pairs, err := ParsePairs(s)
	if err != nil {
		return lattice.Edge{}, err
	}
	if len(pairs) != 1 {
		return lattice.Edge{}, errors.New(errors.ErrCodeInvalidNotation, "expected one pair, got %d in %q", len(pairs), s)
	}
	return pairs[0], nil
}

// ParsePairs parses a comma-separated list of pairs such as
// "(1,1)-(2,1), (1,1)-(1,0)". The empty string is the empty list.
func ParsePairs(s string) ([]lattice.Edge, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	n, err := parsePairList.ParseString("", s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidNotation, err, "pair list %q", abbreviate(s))
	}
	out := make([]lattice.Edge, len(n.Pairs))
	for i, p := range n.Pairs {
		out[i] = lattice.E(p.A.point(), p.B.point())
	}
	return out, nil
}

// ParseNumber parses an element of Z[√2] written as a sum of integer and
// √2 terms, e.g. "5", "1 + 3*sqrt(2)", "sqrt(2) - 2" or "-2*√2".
func ParseNumber(s string) (exact.Number, error) {
	n, err := parseNumber.ParseString("", s)
	if err != nil {
		return exact.Zero, errors.Wrap(errors.ErrCodeInvalidNotation, err, "number %q", s)
	}
	x := exact.Zero
	for i, t := range n.Terms {
		if i > 0 && t.Op == "" && (t.Coef == nil || *t.Coef >= 0) {
			return exact.Zero, errors.New(errors.ErrCodeInvalidNotation, "number %q: missing operator before term %d", s, i+1)
		}
		var v exact.Number
		switch {
		case t.Root:
			v = exact.Sqrt2
		case t.Times:
			v = exact.New(0, *t.Coef)
		default:
			v = exact.New(*t.Coef, 0)
		}
		if t.Op == "-" {
			v = v.Neg()
		}
		x = x.Add(v)
	}
	return x, nil
}

// FormatPoint renders p in the notation accepted by [ParsePoint].
func FormatPoint(p lattice.Point) string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// FormatPath renders a walk in the notation accepted by [ParsePath].
func FormatPath(path []lattice.Point) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = FormatPoint(p)
	}
	return strings.Join(parts, " ")
}

// FormatPairs renders pairs in the notation accepted by [ParsePairs].
func FormatPairs(pairs []lattice.Edge) string {
	parts := make([]string, len(pairs))
	for i, e := range pairs {
		parts[i] = FormatPoint(e.A) + "-" + FormatPoint(e.B)
	}
	return strings.Join(parts, ", ")
}

// FormatNumber renders x in the notation accepted by [ParseNumber],
// omitting zero terms.
func FormatNumber(x exact.Number) string {
	switch {
	case x.B == 0:
		return fmt.Sprintf("%d", x.A)
	case x.A == 0:
		return fmt.Sprintf("%d*sqrt(2)", x.B)
	case x.B < 0:
		return fmt.Sprintf("%d - %d*sqrt(2)", x.A, -x.B)
	}
	return fmt.Sprintf("%d + %d*sqrt(2)", x.A, x.B)
}

func abbreviate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 40 {
		return s[:37] + "..."
	}
	return s
}
