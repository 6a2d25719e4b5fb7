// Package poly implements dense univariate polynomials over F_p and its
// extensions. A single generic implementation serves every coefficient type
// that carries the ring capability set in Scalar; coefficients are stored
// lowest degree first and values are never mutated in place, every
// operation returns a fresh polynomial.
package poly

import (
	"errors"
	"fmt"
	"strings"

	"stark-arith/field"
)

// Scalar is the capability set a coefficient type must provide. The
// constraint is self-referential so that arithmetic stays closed over the
// concrete type; field.Element and xfield.Element both satisfy it.
type Scalar[E any] interface {
	Add(E) E
	Sub(E) E
	Neg() E
	Mul(E) E
	MulBase(field.Element) E
	Inverse() (E, error)
	IsZero() bool
	Equal(E) bool
	Zero() E
	One() E
}

var (
	// ErrDivisionByZero rejects Euclidean division by the zero polynomial.
	ErrDivisionByZero = errors.New("poly: division by the zero polynomial")
	// ErrDuplicatePoint rejects interpolation inputs with a repeated
	// x-coordinate.
	ErrDuplicatePoint = errors.New("poly: duplicate interpolation point")
	// ErrEmptyInput rejects interpolation with no points at all.
	ErrEmptyInput = errors.New("poly: empty interpolation input")
)

// Polynomial is a dense coefficient sequence, index = degree. The zero
// value is the zero polynomial. Trailing zero coefficients are trimmed on
// construction, so Degree is always the index of the highest non-zero
// coefficient and the leading coefficient of a non-zero polynomial is
// never zero.
type Polynomial[E Scalar[E]] struct {
	coeffs []E
}

// New builds a polynomial from coefficients, lowest degree first. The slice
// is copied and trailing zeros are trimmed.
func New[E Scalar[E]](coeffs []E) Polynomial[E] {
	end := len(coeffs)
	for end > 0 && coeffs[end-1].IsZero() {
		end--
	}
	if end == 0 {
		return Polynomial[E]{}
	}
	out := make([]E, end)
	copy(out, coeffs[:end])
	return Polynomial[E]{coeffs: out}
}

// Constant returns the degree-zero polynomial c, or the zero polynomial if
// c is zero.
func Constant[E Scalar[E]](c E) Polynomial[E] {
	if c.IsZero() {
		return Polynomial[E]{}
	}
	return Polynomial[E]{coeffs: []E{c}}
}

// Degree reports the index of the highest non-zero coefficient. The zero
// polynomial reports -1.
func (p Polynomial[E]) Degree() int { return len(p.coeffs) - 1 }

// IsZero reports whether p is the zero polynomial.
func (p Polynomial[E]) IsZero() bool { return len(p.coeffs) == 0 }

// Coefficient returns the coefficient of x^i; indices beyond the degree
// yield zero.
func (p Polynomial[E]) Coefficient(i int) E {
	if i < 0 || i >= len(p.coeffs) {
		var e E
		return e.Zero()
	}
	return p.coeffs[i]
}

// Coefficients returns a copy of the trimmed coefficient slice.
func (p Polynomial[E]) Coefficients() []E {
	out := make([]E, len(p.coeffs))
	copy(out, p.coeffs)
	return out
}

// LeadingCoefficient returns the coefficient of the highest power, or zero
// for the zero polynomial.
func (p Polynomial[E]) LeadingCoefficient() E {
	return p.Coefficient(p.Degree())
}

// Equal reports whether p and q have identical coefficients.
func (p Polynomial[E]) Equal(q Polynomial[E]) bool {
	if len(p.coeffs) != len(q.coeffs) {
		return false
	}
	for i := range p.coeffs {
		if !p.coeffs[i].Equal(q.coeffs[i]) {
			return false
		}
	}
	return true
}

// Add returns p + q.
func (p Polynomial[E]) Add(q Polynomial[E]) Polynomial[E] {
	n := len(p.coeffs)
	if len(q.coeffs) > n {
		n = len(q.coeffs)
	}
	out := make([]E, n)
	for i := range out {
		out[i] = p.Coefficient(i).Add(q.Coefficient(i))
	}
	return New(out)
}

// Sub returns p - q.
func (p Polynomial[E]) Sub(q Polynomial[E]) Polynomial[E] {
	n := len(p.coeffs)
	if len(q.coeffs) > n {
		n = len(q.coeffs)
	}
	out := make([]E, n)
	for i := range out {
		out[i] = p.Coefficient(i).Sub(q.Coefficient(i))
	}
	return New(out)
}

// Neg returns -p.
func (p Polynomial[E]) Neg() Polynomial[E] {
	out := make([]E, len(p.coeffs))
	for i := range out {
		out[i] = p.coeffs[i].Neg()
	}
	return Polynomial[E]{coeffs: out}
}

// ScalarMul multiplies every coefficient by c.
func (p Polynomial[E]) ScalarMul(c E) Polynomial[E] {
	out := make([]E, len(p.coeffs))
	for i := range out {
		out[i] = p.coeffs[i].Mul(c)
	}
	return New(out)
}

// Evaluate computes p(point) by Horner's rule in O(degree) multiplications.
func (p Polynomial[E]) Evaluate(point E) E {
	var e E
	acc := e.Zero()
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		acc = acc.Mul(point).Add(p.coeffs[i])
	}
	return acc
}

func (p Polynomial[E]) String() string {
	if p.IsZero() {
		return "0"
	}
	var sb strings.Builder
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		if p.coeffs[i].IsZero() {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" + ")
		}
		switch i {
		case 0:
			fmt.Fprintf(&sb, "%v", p.coeffs[i])
		case 1:
			fmt.Fprintf(&sb, "%v*x", p.coeffs[i])
		default:
			fmt.Fprintf(&sb, "%v*x^%d", p.coeffs[i], i)
		}
	}
	return sb.String()
}
