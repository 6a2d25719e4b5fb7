package poly

import (
	"math/bits"

	"stark-arith/ntt"
)

// schoolbookThreshold is the product size (in coefficients) under which the
// quadratic convolution beats the transform.
const schoolbookThreshold = 32

// Mul returns p * q. Products small enough to stay under
// schoolbookThreshold coefficients use the quadratic convolution; larger
// ones evaluate both operands over a roots-of-unity domain of the next
// power of two, multiply pointwise and transform back. A zero operand
// short-circuits to the zero polynomial without touching the transform.
func (p Polynomial[E]) Mul(q Polynomial[E]) Polynomial[E] {
	if p.IsZero() || q.IsZero() {
		return Polynomial[E]{}
	}
	resLen := p.Degree() + q.Degree() + 1
	if resLen < schoolbookThreshold {
		return p.mulSchoolbook(q)
	}
	n := nextPowerOfTwo(resLen)
	if uint64(n) > ntt.MaxLength {
		return p.mulSchoolbook(q)
	}
	left, err := ntt.Forward(padded(p.coeffs, n))
	if err != nil {
		return p.mulSchoolbook(q)
	}
	right, err := ntt.Forward(padded(q.coeffs, n))
	if err != nil {
		return p.mulSchoolbook(q)
	}
	for i := range left {
		left[i] = left[i].Mul(right[i])
	}
	coeffs, err := ntt.Inverse(left)
	if err != nil {
		return p.mulSchoolbook(q)
	}
	return New(coeffs)
}

func (p Polynomial[E]) mulSchoolbook(q Polynomial[E]) Polynomial[E] {
	var e E
	zero := e.Zero()
	out := make([]E, len(p.coeffs)+len(q.coeffs)-1)
	for i := range out {
		out[i] = zero
	}
	for i, a := range p.coeffs {
		if a.IsZero() {
			continue
		}
		for j, b := range q.coeffs {
			out[i+j] = out[i+j].Add(a.Mul(b))
		}
	}
	return New(out)
}

// padded copies coeffs into a fresh slice of length n, filling the tail
// with zeros.
func padded[E Scalar[E]](coeffs []E, n int) []E {
	var e E
	zero := e.Zero()
	out := make([]E, n)
	copy(out, coeffs)
	for i := len(coeffs); i < n; i++ {
		out[i] = zero
	}
	return out
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
