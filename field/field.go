// Package field implements arithmetic over the prime field F_p with
// p = 2^64 - 2^32 + 1. The prime has 2-adic valuation 32, so the
// multiplicative group contains subgroups of every power-of-two order up
// to 2^32, which is what makes the number-theoretic transform in the ntt
// package possible. Every Element stores the canonical least non-negative
// residue; no operation ever returns a value outside [0, p).
package field

import (
	"errors"
	"fmt"
	"math/bits"
)

// Modulus is the field characteristic p = 2^64 - 2^32 + 1.
const Modulus uint64 = 0xFFFFFFFF00000001

// Generator is a fixed generator of the multiplicative group F_p^*.
const Generator uint64 = 7

// TwoAdicity is the 2-adic valuation of p-1. Power-of-two subgroups, and
// therefore NTT domains, exist for every order up to 2^TwoAdicity.
const TwoAdicity = 32

// epsilon = 2^64 mod p = 2^32 - 1. The reduction routines fold high words
// into the low word through this constant.
const epsilon uint64 = 0xFFFFFFFF

// ErrNotInvertible is returned when inverting the additive identity.
var ErrNotInvertible = errors.New("field: zero has no multiplicative inverse")

// ErrUnsupportedOrder is returned by PrimitiveRoot for orders without a
// primitive root of unity in F_p.
var ErrUnsupportedOrder = errors.New("field: order must be a power of two not exceeding 2^32")

// Element is an element of F_p held as its canonical least non-negative
// residue. The zero value is the additive identity.
type Element uint64

// New returns the element representing v modulo p.
func New(v uint64) Element {
	if v >= Modulus {
		v -= Modulus
	}
	return Element(v)
}

// Zero returns the additive identity. The receiver is ignored; the method
// exists so generic code can produce identities from any element.
func (Element) Zero() Element { return 0 }

// One returns the multiplicative identity. The receiver is ignored.
func (Element) One() Element { return 1 }

// Uint64 returns the canonical residue as an integer.
func (a Element) Uint64() uint64 { return uint64(a) }

// IsZero reports whether a is the additive identity.
func (a Element) IsZero() bool { return a == 0 }

// Equal reports whether a and b represent the same field element.
func (a Element) Equal(b Element) bool { return a == b }

func (a Element) String() string { return fmt.Sprintf("%d", uint64(a)) }

// Add returns a + b. The 65-bit intermediate is folded through epsilon:
// with both operands below p the wrapped sum plus epsilon stays below p,
// so a single conditional correction restores the canonical range.
func (a Element) Add(b Element) Element {
	s, carry := bits.Add64(uint64(a), uint64(b), 0)
	if carry != 0 {
		s += epsilon
	}
	if s >= Modulus {
		s -= Modulus
	}
	return Element(s)
}

// Sub returns a - b. On borrow the wrapped difference is at least 2^32, so
// subtracting epsilon cannot underflow.
func (a Element) Sub(b Element) Element {
	d, borrow := bits.Sub64(uint64(a), uint64(b), 0)
	if borrow != 0 {
		d -= epsilon
	}
	return Element(d)
}

// Neg returns -a.
func (a Element) Neg() Element {
	if a == 0 {
		return 0
	}
	return Element(Modulus - uint64(a))
}

// Mul returns a * b via a widening multiply and the special-form reduction.
func (a Element) Mul(b Element) Element {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	return Element(reduce128(hi, lo))
}

// MulBase is Mul under the name generic transform code expects: scaling an
// element by a base-field twiddle. For the base field itself the two
// operations coincide.
func (a Element) MulBase(b Element) Element { return a.Mul(b) }

// Double returns 2a.
func (a Element) Double() Element { return a.Add(a) }

// Square returns a^2.
func (a Element) Square() Element { return a.Mul(a) }

// reduce128 folds the 128-bit value hi*2^64 + lo into [0, p) using
// 2^64 = epsilon and 2^96 = -1 (mod p). Writing hi = hiHi*2^32 + hiLo the
// value is congruent to lo + hiLo*epsilon - hiHi. Both corrections stay
// below 2^64: hiLo*epsilon < 2^64, and the wrapped subtrahend exceeds
// epsilon whenever a borrow occurs, so each step needs at most one fold.
func reduce128(hi, lo uint64) uint64 {
	hiHi := hi >> 32
	hiLo := hi & epsilon
	t, borrow := bits.Sub64(lo, hiHi, 0)
	if borrow != 0 {
		t -= epsilon
	}
	r, carry := bits.Add64(t, hiLo*epsilon, 0)
	if carry != 0 {
		r += epsilon
	}
	if r >= Modulus {
		r -= Modulus
	}
	return r
}

// Pow returns a^exp by square-and-multiply. Pow(0) is one for every base,
// including zero.
func (a Element) Pow(exp uint64) Element {
	result := Element(1)
	base := a
	for e := exp; e > 0; e >>= 1 {
		if e&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
	}
	return result
}

// Inverse returns a^-1, or ErrNotInvertible for the additive identity.
// Computed as a^(p-2) (Fermat); p is prime so the exponentiation is exact.
func (a Element) Inverse() (Element, error) {
	if a == 0 {
		return 0, ErrNotInvertible
	}
	return a.Pow(Modulus - 2), nil
}

// BatchInverse inverts every element of xs with the running-product trick:
// one field inversion plus 3(n-1) multiplications. The whole batch fails if
// any element is zero; the error names the first offending position.
func BatchInverse(xs []Element) ([]Element, error) {
	if len(xs) == 0 {
		return nil, nil
	}
	prefix := make([]Element, len(xs))
	acc := Element(1)
	for i, x := range xs {
		if x == 0 {
			return nil, fmt.Errorf("batch inverse at position %d: %w", i, ErrNotInvertible)
		}
		prefix[i] = acc
		acc = acc.Mul(x)
	}
	inv, err := acc.Inverse()
	if err != nil {
		return nil, err
	}
	out := make([]Element, len(xs))
	for i := len(xs) - 1; i >= 0; i-- {
		out[i] = inv.Mul(prefix[i])
		inv = inv.Mul(xs[i])
	}
	return out, nil
}
