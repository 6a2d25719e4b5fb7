package ntt_test

import (
	"errors"
	"testing"

	"stark-arith/field"
	"stark-arith/ntt"
	"stark-arith/sampling"
	"stark-arith/xfield"
)

func TestRoundTrip(t *testing.T) {
	s := sampling.MustNew([]byte("ntt-roundtrip"))
	for n := 1; n <= 1<<12; n <<= 1 {
		v := s.FieldElements(n)
		evals, err := ntt.Forward(v)
		if err != nil {
			t.Fatalf("forward length %d: %v", n, err)
		}
		back, err := ntt.Inverse(evals)
		if err != nil {
			t.Fatalf("inverse length %d: %v", n, err)
		}
		for i := range v {
			if back[i] != v[i] {
				t.Fatalf("length %d: slot %d changed after round trip", n, i)
			}
		}
	}
}

func TestForwardMatchesDirectEvaluation(t *testing.T) {
	s := sampling.MustNew([]byte("ntt-direct"))
	const n = 16
	coeffs := s.FieldElements(n)
	evals, err := ntt.Forward(coeffs)
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	omega, err := field.PrimitiveRoot(n)
	if err != nil {
		t.Fatalf("primitive root: %v", err)
	}
	for i := 0; i < n; i++ {
		point := omega.Pow(uint64(i))
		var want field.Element
		for j := n - 1; j >= 0; j-- {
			want = want.Mul(point).Add(coeffs[j])
		}
		if evals[i] != want {
			t.Fatalf("evaluation %d: got %v, want %v", i, evals[i], want)
		}
	}
}

func TestLengthTwoIsSumAndDifference(t *testing.T) {
	a := field.New(17)
	b := field.New(99)
	evals, err := ntt.Forward([]field.Element{a, b})
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	if evals[0] != a.Add(b) || evals[1] != a.Sub(b) {
		t.Fatalf("length-2 transform: got %v, want [%v %v]", evals, a.Add(b), a.Sub(b))
	}
}

func TestLinearity(t *testing.T) {
	s := sampling.MustNew([]byte("ntt-linear"))
	const n = 64
	a := s.FieldElements(n)
	b := s.FieldElements(n)
	c := s.FieldElement()

	sum := make([]field.Element, n)
	for i := range sum {
		sum[i] = a[i].Mul(c).Add(b[i])
	}
	lhs, err := ntt.Forward(sum)
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	fa, _ := ntt.Forward(a)
	fb, _ := ntt.Forward(b)
	for i := 0; i < n; i++ {
		if want := fa[i].Mul(c).Add(fb[i]); lhs[i] != want {
			t.Fatalf("linearity fails at slot %d", i)
		}
	}
}

func TestExtensionSlices(t *testing.T) {
	s := sampling.MustNew([]byte("ntt-extension"))
	const n = 32
	v := make([]xfield.Element, n)
	parts := [3][]field.Element{}
	for k := range parts {
		parts[k] = make([]field.Element, n)
	}
	for i := range v {
		v[i] = xfield.New(s.FieldElement(), s.FieldElement(), s.FieldElement())
		c := v[i].Coefficients()
		for k := range parts {
			parts[k][i] = c[k]
		}
	}
	evals, err := ntt.Forward(v)
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	// Twiddles live in the base field, so the transform must commute with
	// the coordinate decomposition.
	for k := range parts {
		partEvals, _ := ntt.Forward(parts[k])
		for i := range evals {
			if evals[i].Coefficients()[k] != partEvals[i] {
				t.Fatalf("coordinate %d slot %d diverges from base transform", k, i)
			}
		}
	}
	back, err := ntt.Inverse(evals)
	if err != nil {
		t.Fatalf("inverse: %v", err)
	}
	for i := range v {
		if !back[i].Equal(v[i]) {
			t.Fatalf("extension round trip: slot %d changed", i)
		}
	}
}

func TestUnsupportedLengths(t *testing.T) {
	for _, n := range []int{0, 3, 5, 6, 12, 1000} {
		if _, err := ntt.Forward(make([]field.Element, n)); !errors.Is(err, ntt.ErrUnsupportedLength) {
			t.Fatalf("length %d: got %v, want ErrUnsupportedLength", n, err)
		}
		if _, err := ntt.Inverse(make([]field.Element, n)); !errors.Is(err, ntt.ErrUnsupportedLength) {
			t.Fatalf("inverse length %d: got %v, want ErrUnsupportedLength", n, err)
		}
	}
}
