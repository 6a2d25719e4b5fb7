package poly

import "fmt"

// Interpolate reconstructs the unique polynomial of minimal degree passing
// through all (points[i], values[i]) pairs. When the points are exactly a
// roots-of-unity domain the reconstruction is one inverse transform;
// arbitrary distinct points use quadratic Lagrange interpolation. Fails
// with ErrEmptyInput for no points and ErrDuplicatePoint for a repeated
// x-coordinate.
func Interpolate[E Scalar[E]](points, values []E) (Polynomial[E], error) {
	if len(points) == 0 {
		return Polynomial[E]{}, ErrEmptyInput
	}
	if len(points) != len(values) {
		return Polynomial[E]{}, fmt.Errorf("poly: %d points but %d values", len(points), len(values))
	}
	if isDomain(points) {
		return InterpolateOverDomain(values)
	}
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if points[i].Equal(points[j]) {
				return Polynomial[E]{}, fmt.Errorf("positions %d and %d: %w", i, j, ErrDuplicatePoint)
			}
		}
	}
	return lagrange(points, values), nil
}

// lagrange sums y_i * l(x)/(x - x_i) * 1/l'(x_i) where l is the master
// polynomial prod (x - x_i). Each numerator comes from synthetic division
// of the master polynomial, and the scaling denominator is the numerator
// evaluated at its own point.
func lagrange[E Scalar[E]](points, values []E) Polynomial[E] {
	var e E
	one := e.One()
	master := Constant(one)
	for _, pt := range points {
		master = master.Mul(New([]E{pt.Neg(), one}))
	}
	acc := Polynomial[E]{}
	for i, pt := range points {
		num := divideOutLinear(master, pt)
		denom := num.Evaluate(pt)
		// Points are distinct, so the denominator is a product of non-zero
		// differences and inversion cannot fail.
		dInv, _ := denom.Inverse()
		acc = acc.Add(num.ScalarMul(values[i].Mul(dInv)))
	}
	return acc
}

// divideOutLinear divides p by the monic linear factor (x - root), which is
// assumed to divide p exactly.
func divideOutLinear[E Scalar[E]](p Polynomial[E], root E) Polynomial[E] {
	deg := p.Degree()
	out := make([]E, deg)
	carry := p.coeffs[deg]
	for j := deg - 1; j >= 0; j-- {
		out[j] = carry
		carry = p.coeffs[j].Add(root.Mul(carry))
	}
	return New(out)
}
