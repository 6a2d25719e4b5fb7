package poly

import (
	"stark-arith/field"
	"stark-arith/ntt"
)

// EvaluateOverDomain evaluates p at all n-th roots of unity in one forward
// transform. Coefficients of degree n and above are folded into their
// residue slot first: x^n = 1 on the domain, so coefficient i contributes
// to slot i mod n. Fails with ntt.ErrUnsupportedLength for unsupported n.
func (p Polynomial[E]) EvaluateOverDomain(n int) ([]E, error) {
	if n == 0 || n&(n-1) != 0 || uint64(n) > ntt.MaxLength {
		return nil, ntt.ErrUnsupportedLength
	}
	folded := padded(p.coeffs, n)
	for i := n; i < len(p.coeffs); i++ {
		folded[i%n] = folded[i%n].Add(p.coeffs[i])
	}
	return ntt.Forward(folded)
}

// InterpolateOverDomain recovers the unique polynomial of degree below
// len(values) whose evaluations over the matching roots-of-unity domain are
// the given values. This is a single inverse transform.
func InterpolateOverDomain[E Scalar[E]](values []E) (Polynomial[E], error) {
	coeffs, err := ntt.Inverse(values)
	if err != nil {
		return Polynomial[E]{}, err
	}
	return New(coeffs), nil
}

// MultiEvaluate evaluates p at every point. When the points are exactly a
// roots-of-unity domain (in order: 1, w, w^2, ...), the evaluations come
// from one forward transform; any other point set falls back to repeated
// Horner evaluation.
func (p Polynomial[E]) MultiEvaluate(points []E) []E {
	if isDomain(points) {
		if out, err := p.EvaluateOverDomain(len(points)); err == nil {
			return out
		}
	}
	out := make([]E, len(points))
	for i, pt := range points {
		out[i] = p.Evaluate(pt)
	}
	return out
}

// Domain returns the canonical evaluation domain of size n lifted into the
// coefficient type: successive powers of the primitive n-th root of unity.
func Domain[E Scalar[E]](n int) ([]E, error) {
	omega, err := field.PrimitiveRoot(uint64(n))
	if err != nil {
		return nil, ntt.ErrUnsupportedLength
	}
	var e E
	one := e.One()
	out := make([]E, n)
	out[0] = one
	for i := 1; i < n; i++ {
		out[i] = out[i-1].MulBase(omega)
	}
	return out, nil
}

// isDomain reports whether points is exactly the canonical roots-of-unity
// domain of its length.
func isDomain[E Scalar[E]](points []E) bool {
	n := len(points)
	if n == 0 || n&(n-1) != 0 || uint64(n) > ntt.MaxLength {
		return false
	}
	omega, err := field.PrimitiveRoot(uint64(n))
	if err != nil {
		return false
	}
	var e E
	cur := e.One()
	for _, pt := range points {
		if !pt.Equal(cur) {
			return false
		}
		cur = cur.MulBase(omega)
	}
	return true
}
