// Package xfield implements the cubic extension F_p[x]/(x^3 - x + 1) of
// the base field. Elements are triples (a0, a1, a2) representing
// a0 + a1*x + a2*x^2 in the power basis; the defining polynomial is
// irreducible over F_p and fixed for the lifetime of the process.
// Multiplication reduces through x^3 = x - 1, and the base field embeds by
// zero-extending the higher coefficients.
package xfield

import (
	"fmt"

	"stark-arith/field"
	"stark-arith/poly"
)

// Element is an extension-field element in the power basis, lowest power
// first. The zero value is the additive identity.
type Element [3]field.Element

// New builds an element from its three power-basis coefficients.
func New(c0, c1, c2 field.Element) Element {
	return Element{c0, c1, c2}
}

// FromBase embeds a base-field element via the zero-coefficient extension.
func FromBase(b field.Element) Element {
	return Element{b, 0, 0}
}

// Zero returns the additive identity. The receiver is ignored.
func (Element) Zero() Element { return Element{} }

// One returns the multiplicative identity. The receiver is ignored.
func (Element) One() Element { return Element{1, 0, 0} }

// Coefficients returns the three power-basis coefficients, lowest first.
func (a Element) Coefficients() [3]field.Element { return a }

// IsZero reports whether a is the additive identity.
func (a Element) IsZero() bool { return a == Element{} }

// IsBase reports whether a lies in the embedded base field.
func (a Element) IsBase() bool { return a[1] == 0 && a[2] == 0 }

// Equal reports whether a and b are the same element.
func (a Element) Equal(b Element) bool { return a == b }

func (a Element) String() string {
	return fmt.Sprintf("(%v, %v, %v)", a[0], a[1], a[2])
}

// Add returns a + b coefficient-wise.
func (a Element) Add(b Element) Element {
	return Element{a[0].Add(b[0]), a[1].Add(b[1]), a[2].Add(b[2])}
}

// Sub returns a - b coefficient-wise.
func (a Element) Sub(b Element) Element {
	return Element{a[0].Sub(b[0]), a[1].Sub(b[1]), a[2].Sub(b[2])}
}

// Neg returns -a.
func (a Element) Neg() Element {
	return Element{a[0].Neg(), a[1].Neg(), a[2].Neg()}
}

// MulBase scales every coefficient by a base-field element.
func (a Element) MulBase(b field.Element) Element {
	return Element{a[0].Mul(b), a[1].Mul(b), a[2].Mul(b)}
}

// Mul multiplies the two triples as polynomials and reduces the degree-3
// and degree-4 terms through x^3 = x - 1 and x^4 = x^2 - x.
func (a Element) Mul(b Element) Element {
	p0 := a[0].Mul(b[0])
	p1 := a[0].Mul(b[1]).Add(a[1].Mul(b[0]))
	p2 := a[0].Mul(b[2]).Add(a[1].Mul(b[1])).Add(a[2].Mul(b[0]))
	p3 := a[1].Mul(b[2]).Add(a[2].Mul(b[1]))
	p4 := a[2].Mul(b[2])
	return Element{
		p0.Sub(p3),
		p1.Add(p3).Sub(p4),
		p2.Add(p4),
	}
}

// Square returns a^2.
func (a Element) Square() Element { return a.Mul(a) }

// Pow returns a^exp by square-and-multiply; Pow(0) is one for every base.
func (a Element) Pow(exp uint64) Element {
	result := a.One()
	base := a
	for e := exp; e > 0; e >>= 1 {
		if e&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
	}
	return result
}

// Inverse returns a^-1, or field.ErrNotInvertible for the additive
// identity. The inverse comes from the extended Euclidean algorithm over
// F_p[x]: with u*a + v*chi = g and chi irreducible, g is a non-zero
// constant and u/g is the inverse modulo chi.
func (a Element) Inverse() (Element, error) {
	if a.IsZero() {
		return Element{}, field.ErrNotInvertible
	}
	g, u, _ := poly.XGCD(a.asPolynomial(), definingPolynomial())
	gInv, err := g.Coefficient(0).Inverse()
	if err != nil {
		return Element{}, err
	}
	scaled := u.ScalarMul(gInv)
	return Element{scaled.Coefficient(0), scaled.Coefficient(1), scaled.Coefficient(2)}, nil
}

func (a Element) asPolynomial() poly.Polynomial[field.Element] {
	return poly.New([]field.Element{a[0], a[1], a[2]})
}

// definingPolynomial is chi(x) = x^3 - x + 1.
func definingPolynomial() poly.Polynomial[field.Element] {
	return poly.New([]field.Element{1, field.Element(1).Neg(), 0, 1})
}

// EvaluateBasePoly evaluates a base-field coefficient sequence at an
// extension point by Horner's rule, lifting each coefficient through the
// canonical embedding.
func EvaluateBasePoly(coeffs []field.Element, at Element) Element {
	var acc Element
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc = acc.Mul(at).Add(FromBase(coeffs[i]))
	}
	return acc
}
