// Package ntt implements the number-theoretic transform over power-of-two
// domains in F_p. Forward evaluates the polynomial implied by a coefficient
// slice at all n-th roots of unity; Inverse recovers the coefficients. The
// two are exact algebraic inverses for every supported length.
//
// The transform is generic over the slice element: twiddle factors always
// live in the base field, so the same butterflies serve base-field slices
// and extension-field slices scaled coordinate-wise.
package ntt

import (
	"errors"

	"stark-arith/field"
)

// MaxLength is the largest supported transform size, fixed by the 2-adic
// valuation of p-1.
const MaxLength = 1 << field.TwoAdicity

// ErrUnsupportedLength rejects lengths that are not powers of two or that
// exceed MaxLength.
var ErrUnsupportedLength = errors.New("ntt: length must be a power of two not exceeding 2^32")

// Element is the capability set the butterflies need: addition, subtraction
// and scaling by a base-field twiddle.
type Element[E any] interface {
	Add(E) E
	Sub(E) E
	MulBase(field.Element) E
}

// Forward transforms coefficients into evaluations over the roots-of-unity
// domain of size len(v). The input is not modified.
func Forward[E Element[E]](v []E) ([]E, error) {
	d, err := lookupDomain(len(v))
	if err != nil {
		return nil, err
	}
	return transform(v, d, d.forward), nil
}

// Inverse transforms evaluations back into coefficients. The input is not
// modified.
func Inverse[E Element[E]](v []E) ([]E, error) {
	d, err := lookupDomain(len(v))
	if err != nil {
		return nil, err
	}
	out := transform(v, d, d.inverse)
	for i := range out {
		out[i] = out[i].MulBase(d.lengthInv)
	}
	return out, nil
}

// transform runs the iterative radix-2 decimation: bit-reversal permutation
// followed by log2(n) butterfly stages. Stages are strictly sequential;
// within a stage every butterfly pair touches a disjoint index pair.
func transform[E Element[E]](in []E, d *domain, twiddles []field.Element) []E {
	n := len(in)
	out := make([]E, n)
	for i, r := range d.rev {
		out[i] = in[r]
	}
	for length := 2; length <= n; length <<= 1 {
		half := length >> 1
		stride := n / length
		for start := 0; start < n; start += length {
			for j := 0; j < half; j++ {
				u := out[start+j]
				t := out[start+j+half].MulBase(twiddles[j*stride])
				out[start+j] = u.Add(t)
				out[start+j+half] = u.Sub(t)
			}
		}
	}
	return out
}
