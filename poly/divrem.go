package poly

// DivRem performs Euclidean division of p by d, returning quotient and
// remainder with p = q*d + r and Degree(r) < Degree(d). Division by the
// zero polynomial fails with ErrDivisionByZero.
func (p Polynomial[E]) DivRem(d Polynomial[E]) (Polynomial[E], Polynomial[E], error) {
	if d.IsZero() {
		return Polynomial[E]{}, Polynomial[E]{}, ErrDivisionByZero
	}
	if p.Degree() < d.Degree() {
		return Polynomial[E]{}, p, nil
	}
	// The leading coefficient of a trimmed non-zero polynomial is non-zero,
	// so this inversion cannot fail.
	lcInv, err := d.LeadingCoefficient().Inverse()
	if err != nil {
		return Polynomial[E]{}, Polynomial[E]{}, err
	}
	rem := make([]E, len(p.coeffs))
	copy(rem, p.coeffs)
	quot := make([]E, p.Degree()-d.Degree()+1)
	for k := p.Degree() - d.Degree(); k >= 0; k-- {
		c := rem[k+d.Degree()].Mul(lcInv)
		quot[k] = c
		if c.IsZero() {
			continue
		}
		for j, dc := range d.coeffs {
			rem[k+j] = rem[k+j].Sub(c.Mul(dc))
		}
	}
	return New(quot), New(rem[:d.Degree()]), nil
}

// XGCD runs the extended Euclidean algorithm over the polynomial ring,
// returning (g, u, v) with u*a + v*b = g = gcd(a, b). The gcd is not
// normalized to be monic; callers scale by the leading coefficient when
// they need that. XGCD(0, 0) reports a zero gcd.
func XGCD[E Scalar[E]](a, b Polynomial[E]) (g, u, v Polynomial[E]) {
	var e E
	one := Constant(e.One())
	r0, r1 := a, b
	s0, s1 := one, Polynomial[E]{}
	t0, t1 := Polynomial[E]{}, one
	for !r1.IsZero() {
		q, r, _ := r0.DivRem(r1)
		r0, r1 = r1, r
		s0, s1 = s1, s0.Sub(q.Mul(s1))
		t0, t1 = t1, t0.Sub(q.Mul(t1))
	}
	return r0, s0, t0
}
