package exact

import "fmt"

// Number is the exact value A + B·√2, an element of the ring Z[√2].
//
// Number is a comparable value type: two Numbers are equal exactly when
// their coefficients are equal, since √2 is irrational.
type Number struct {
	A int64 // rational part
	B int64 // coefficient of √2
}

// Frequently used constants.
var (
	Zero  = Number{0, 0}
	One   = Number{1, 0}
	Sqrt2 = Number{0, 1}

	// Dilation is the target dilation factor 1+√2.
	Dilation = Number{1, 1}
)

// New returns a + b·√2.
func New(a, b int64) Number { return Number{A: a, B: b} }

// Int lifts an integer into the ring.
func Int(n int) Number { return Number{A: int64(n)} }

// Add returns x + y.
func (x Number) Add(y Number) Number { return Number{x.A + y.A, x.B + y.B} }

// Sub returns x - y.
func (x Number) Sub(y Number) Number { return Number{x.A - y.A, x.B - y.B} }

// Neg returns -x.
func (x Number) Neg() Number { return Number{-x.A, -x.B} }

// Mul returns x · y.
func (x Number) Mul(y Number) Number {
	return Number{
		A: x.A*y.A + 2*x.B*y.B,
		B: x.A*y.B + x.B*y.A,
	}
}

// Scale returns k · x.
func (x Number) Scale(k int64) Number { return Number{k * x.A, k * x.B} }

// Pow returns x raised to the nonnegative integer power n by repeated
// multiplication. It panics if n is negative.
func (x Number) Pow(n int) Number {
	if n < 0 {
		panic(fmt.Sprintf("exact: negative exponent %d", n))
	}
	r := One
	for i := 0; i < n; i++ {
		r = r.Mul(x)
	}
	return r
}

// IsPositive reports whether x > 0 without any approximation.
func (x Number) IsPositive() bool {
	a, b := x.A, x.B
	if a < 0 {
		if b <= 0 {
			return false
		}
		return 2*b*b > a*a
	}
	if b > 0 {
		return true
	}
	return a*a > 2*b*b
}

// IsZero reports whether x == 0.
func (x Number) IsZero() bool { return x.A == 0 && x.B == 0 }

// Sign returns -1, 0 or +1 according to the sign of x.
func (x Number) Sign() int {
	switch {
	case x.IsZero():
		return 0
	case x.IsPositive():
		return 1
	default:
		return -1
	}
}

// Equal reports whether x == y.
func (x Number) Equal(y Number) bool { return x == y }

// Less reports whether x < y.
func (x Number) Less(y Number) bool { return y.Sub(x).IsPositive() }

// Greater reports whether x > y.
func (x Number) Greater(y Number) bool { return y.Less(x) }

// LessEq reports whether x <= y.
func (x Number) LessEq(y Number) bool { return x == y || x.Less(y) }

// GreaterEq reports whether x >= y.
func (x Number) GreaterEq(y Number) bool { return x == y || x.Greater(y) }

// Cmp returns -1 if x < y, 0 if x == y and +1 if x > y.
func (x Number) Cmp(y Number) int { return x.Sub(y).Sign() }

// Float64 approximates x for display purposes. It is never used in a
// comparison.
func (x Number) Float64() float64 {
	return float64(x.A) + float64(x.B)*1.4142135623730951
}

// String formats x as "a + b*sqrt(2)".
func (x Number) String() string {
	return fmt.Sprintf("%d + %d*sqrt(2)", x.A, x.B)
}

// Compare is a comparator over Numbers for ordered containers.
func Compare(x, y Number) int { return x.Cmp(y) }
