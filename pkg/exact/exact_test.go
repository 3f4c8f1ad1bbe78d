package exact

import "testing"

func TestArithmetic(t *testing.T) {
	x := New(1, 1)
	y := New(2, -3)

	if got := x.Add(y); got != New(3, -2) {
		t.Errorf("Add = %v, want 3 - 2√2", got)
	}
	if got := x.Sub(y); got != New(-1, 4) {
		t.Errorf("Sub = %v, want -1 + 4√2", got)
	}
	// (1+√2)(2-3√2) = 2 - 3√2 + 2√2 - 6 = -4 - √2
	if got := x.Mul(y); got != New(-4, -1) {
		t.Errorf("Mul = %v, want -4 - √2", got)
	}
	if got := x.Neg(); got != New(-1, -1) {
		t.Errorf("Neg = %v", got)
	}
	if got := y.Scale(2); got != New(4, -6) {
		t.Errorf("Scale = %v", got)
	}
}

func TestPow(t *testing.T) {
	tests := []struct {
		x    Number
		n    int
		want Number
	}{
		{New(1, 1), 0, One},
		{New(1, 1), 1, New(1, 1)},
		{New(1, 1), 2, New(3, 2)},
		{New(1, 1), 3, New(7, 5)},
		{Sqrt2, 2, Int(2)},
		{Sqrt2, 3, New(0, 2)},
	}
	for _, tt := range tests {
		if got := tt.x.Pow(tt.n); got != tt.want {
			t.Errorf("%v^%d = %v, want %v", tt.x, tt.n, got, tt.want)
		}
	}
}

func TestPowNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Pow(-1) should panic")
		}
	}()
	One.Pow(-1)
}

func TestIsPositive(t *testing.T) {
	tests := []struct {
		x    Number
		want bool
	}{
		{Zero, false},
		{One, true},
		{Sqrt2, true},
		{New(-1, 0), false},
		{New(-1, -1), false},
		{New(-1, 1), true},  // √2 - 1 > 0
		{New(-2, 1), false}, // √2 - 2 < 0
		{New(-3, 2), false}, // 2√2 - 3 < 0
		{New(3, -2), true},  // 3 - 2√2 > 0
		{New(2, -2), false}, // 2 - 2√2 < 0
		{New(1, -1), false},
		{New(7, -5), false}, // 49 < 50
		{New(-7, 5), true},
	}
	for _, tt := range tests {
		if got := tt.x.IsPositive(); got != tt.want {
			t.Errorf("(%v).IsPositive() = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestOrdering(t *testing.T) {
	// 3 < 3√2 ≈ 4.24
	if !Int(3).Less(New(0, 3)) {
		t.Error("3 should be less than 3√2")
	}
	if New(0, 3).Less(Int(3)) {
		t.Error("3√2 should not be less than 3")
	}
	if !Int(3).LessEq(Int(3)) || !Int(3).GreaterEq(Int(3)) {
		t.Error("LessEq/GreaterEq must hold for equal values")
	}
	if Int(3).Less(Int(3)) || Int(3).Greater(Int(3)) {
		t.Error("strict comparisons must fail for equal values")
	}
	if !Dilation.Greater(Int(2)) || !Dilation.Less(Int(3)) {
		t.Error("2 < 1+√2 < 3")
	}
	if got := New(1, 3).Cmp(Int(5)); got != 1 {
		// 1 + 3√2 ≈ 5.24
		t.Errorf("Cmp = %d, want 1", got)
	}
	if got := Int(5).Cmp(New(1, 3)); got != -1 {
		t.Errorf("Cmp = %d, want -1", got)
	}
}

func TestDilationSquared(t *testing.T) {
	if got := Dilation.Pow(2); got != New(3, 2) {
		t.Errorf("(1+√2)² = %v, want 3 + 2√2", got)
	}
}

func TestString(t *testing.T) {
	if got := New(1, -2).String(); got != "1 + -2*sqrt(2)" {
		t.Errorf("String = %q", got)
	}
}
