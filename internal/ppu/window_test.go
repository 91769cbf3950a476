package ppu

import "testing"

// TestWindowMaskUnpack checks the {W2en, W2inv, W1en, W1inv} bit layout and
// the combinator selection.
func TestWindowMaskUnpack(t *testing.T) {
	m := newWindowMask(0b1010_0000, 4, 0b0000_1100, 2)
	if !m.w2En || m.w2Inv || !m.w1En || m.w1Inv {
		t.Errorf("unexpected mask bits: %+v", m)
	}
	if m.op != windowXnor {
		t.Errorf("op = %d, expected XNOR", m.op)
	}
}

// TestWindowCombinators exercises the full truth table of the four
// combinators with both windows enabled.
func TestWindowCombinators(t *testing.T) {
	cases := []struct {
		op       windowOp
		expected [4]bool // inputs (F,F), (T,F), (F,T), (T,T)
	}{
		{windowOr, [4]bool{false, true, true, true}},
		{windowAnd, [4]bool{false, false, false, true}},
		{windowXor, [4]bool{false, true, true, false}},
		{windowXnor, [4]bool{true, false, false, true}},
	}
	inputs := [4][2]bool{{false, false}, {true, false}, {false, true}, {true, true}}

	for _, c := range cases {
		m := windowMask{w1En: true, w2En: true, op: c.op}
		for i, in := range inputs {
			if got := m.check(in[0], in[1]); got != c.expected[i] {
				t.Errorf("op %d inputs %v: got %v, expected %v", c.op, in, got, c.expected[i])
			}
		}
	}
}

// TestWindowSingleEnable checks that with one window enabled the other is
// ignored, and that both disabled never masks.
func TestWindowSingleEnable(t *testing.T) {
	m := windowMask{w1En: true}
	if !m.check(true, true) || m.check(false, true) {
		t.Error("W1-only mask should follow W1")
	}

	m = windowMask{w2En: true, w2Inv: true}
	if m.check(true, true) || !m.check(true, false) {
		t.Error("W2-only mask should follow inverted W2")
	}

	m = windowMask{}
	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			if m.check(a, b) {
				t.Error("disabled mask must never trigger")
			}
		}
	}
}

// TestWindowSymmetry checks the complement relations: XOR is invariant
// under inverting both windows, XNOR is XOR's complement, and AND over
// inverted inputs is the complement of OR.
func TestWindowSymmetry(t *testing.T) {
	inputs := [4][2]bool{{false, false}, {true, false}, {false, true}, {true, true}}

	xor := windowMask{w1En: true, w2En: true, op: windowXor}
	xorInv := windowMask{w1En: true, w2En: true, w1Inv: true, w2Inv: true, op: windowXor}
	xnor := windowMask{w1En: true, w2En: true, op: windowXnor}
	or := windowMask{w1En: true, w2En: true, op: windowOr}
	andInv := windowMask{w1En: true, w2En: true, w1Inv: true, w2Inv: true, op: windowAnd}

	for _, in := range inputs {
		if xor.check(in[0], in[1]) != xorInv.check(in[0], in[1]) {
			t.Errorf("XOR not invariant under double inversion at %v", in)
		}
		if xnor.check(in[0], in[1]) == xor.check(in[0], in[1]) {
			t.Errorf("XNOR is not XOR's complement at %v", in)
		}
		if andInv.check(in[0], in[1]) == or.check(in[0], in[1]) {
			t.Errorf("De Morgan violated at %v", in)
		}
	}
}

// TestWindowRangeHalfOpen checks that window ranges are half-open, so a
// window with equal bounds is empty.
func TestWindowRangeHalfOpen(t *testing.T) {
	p := newTestPPU()
	p.wh = [4]uint8{10, 20, 30, 30}

	p.x = 10
	inW1, inW2 := p.inWindows()
	if !inW1 {
		t.Error("x=10 should be inside W1 [10,20)")
	}
	if inW2 {
		t.Error("W2 [30,30) should be empty")
	}

	p.x = 20
	inW1, _ = p.inWindows()
	if inW1 {
		t.Error("x=20 should be outside W1 [10,20)")
	}

	p.x = 30
	_, inW2 = p.inWindows()
	if inW2 {
		t.Error("W2 [30,30) should be empty at its own bound")
	}
}
