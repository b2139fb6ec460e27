// Package polynomial implements dense polynomial arithmetic over a curve's
// scalar field: addition, multiplication (schoolbook, Karatsuba, and a
// parallel Karatsuba variant for large degree), evaluation, derivative, and
// product-of-many-factors via balanced divide-and-conquer.
package polynomial

import (
	"io"

	"github.com/teenet-io/tss-vault/pkg/curves"
)

// schoolbookThreshold and karatsubaThreshold pick the multiplication
// algorithm by operand length: schoolbook up to 64 coefficients (lowest
// constant-factor overhead at small sizes), single-threaded Karatsuba up to
// 1024, and a goroutine-parallel Karatsuba above that.
const (
	schoolbookThreshold = 64
	karatsubaThreshold  = 1024
)

// Polynomial is a dense polynomial with coefficients ordered from the
// constant term (Coeffs[0]) to the leading term.
type Polynomial struct {
	Curve  *curves.Curve
	Coeffs []curves.Scalar
}

// New wraps coeffs as a Polynomial, trimming trailing zero coefficients
// except for the zero polynomial itself (which keeps one zero coefficient).
func New(curve *curves.Curve, coeffs []curves.Scalar) *Polynomial {
	p := &Polynomial{Curve: curve, Coeffs: append([]curves.Scalar(nil), coeffs...)}
	return p.trim()
}

func (p *Polynomial) trim() *Polynomial {
	n := len(p.Coeffs)
	for n > 1 && p.Coeffs[n-1].IsZero() {
		n--
	}
	p.Coeffs = p.Coeffs[:n]
	return p
}

// Random builds a degree-`degree` polynomial whose constant term is fixed
// to constantTerm and whose remaining `degree` coefficients are sampled
// uniformly. This is the standard Shamir/Feldman sharing polynomial shape:
// f(x) = secret + a1*x + ... + a_degree*x^degree.
func Random(curve *curves.Curve, degree int, constantTerm curves.Scalar, reader io.Reader) *Polynomial {
	coeffs := make([]curves.Scalar, degree+1)
	coeffs[0] = constantTerm
	for i := 1; i <= degree; i++ {
		coeffs[i] = curve.Scalar.Random(reader)
	}
	return &Polynomial{Curve: curve, Coeffs: coeffs}
}

// Degree returns the polynomial's degree; the zero polynomial has degree 0
// by convention (a single zero coefficient), matching trim's invariant.
func (p *Polynomial) Degree() int { return len(p.Coeffs) - 1 }

// Clone returns a deep copy.
func (p *Polynomial) Clone() *Polynomial {
	out := make([]curves.Scalar, len(p.Coeffs))
	for i, c := range p.Coeffs {
		out[i] = c.Clone()
	}
	return &Polynomial{Curve: p.Curve, Coeffs: out}
}

func (p *Polynomial) zero() curves.Scalar { return p.Curve.Scalar.Zero() }

func (p *Polynomial) coeffAt(coeffs []curves.Scalar, i int) curves.Scalar {
	if i < len(coeffs) {
		return coeffs[i]
	}
	return p.zero()
}

// Add returns p + rhs.
func (p *Polynomial) Add(rhs *Polynomial) *Polynomial {
	n := len(p.Coeffs)
	if len(rhs.Coeffs) > n {
		n = len(rhs.Coeffs)
	}
	out := make([]curves.Scalar, n)
	for i := 0; i < n; i++ {
		out[i] = p.coeffAt(p.Coeffs, i).Add(p.coeffAt(rhs.Coeffs, i))
	}
	return New(p.Curve, out)
}

// Sub returns p - rhs.
func (p *Polynomial) Sub(rhs *Polynomial) *Polynomial {
	n := len(p.Coeffs)
	if len(rhs.Coeffs) > n {
		n = len(rhs.Coeffs)
	}
	out := make([]curves.Scalar, n)
	for i := 0; i < n; i++ {
		out[i] = p.coeffAt(p.Coeffs, i).Sub(p.coeffAt(rhs.Coeffs, i))
	}
	return New(p.Curve, out)
}

// Mul returns p * rhs, dispatching to schoolbook, Karatsuba, or parallel
// Karatsuba by operand size.
func (p *Polynomial) Mul(rhs *Polynomial) *Polynomial {
	n := len(p.Coeffs)
	if len(rhs.Coeffs) > n {
		n = len(rhs.Coeffs)
	}
	switch {
	case n <= schoolbookThreshold:
		return New(p.Curve, naiveMul(p, rhs))
	case n <= karatsubaThreshold:
		return New(p.Curve, karatsubaMul(p, rhs))
	default:
		return New(p.Curve, parallelKaratsubaMul(p, rhs))
	}
}

func naiveMul(a, b *Polynomial) []curves.Scalar {
	if isEmptyZero(a) || isEmptyZero(b) {
		return []curves.Scalar{a.zero()}
	}
	out := make([]curves.Scalar, len(a.Coeffs)+len(b.Coeffs)-1)
	zero := a.zero()
	for i := range out {
		out[i] = zero
	}
	for i, ac := range a.Coeffs {
		if ac.IsZero() {
			continue
		}
		for j, bc := range b.Coeffs {
			out[i+j] = out[i+j].Add(ac.Mul(bc))
		}
	}
	return out
}

func isEmptyZero(p *Polynomial) bool {
	return p.Degree() == 0 && p.Coeffs[0].IsZero()
}

// padded returns a's coefficients zero-extended to length n.
func padded(a *Polynomial, n int) []curves.Scalar {
	out := make([]curves.Scalar, n)
	zero := a.zero()
	for i := 0; i < n; i++ {
		if i < len(a.Coeffs) {
			out[i] = a.Coeffs[i]
		} else {
			out[i] = zero
		}
	}
	return out
}

func sliceToPoly(curve *curves.Curve, c []curves.Scalar) *Polynomial {
	return &Polynomial{Curve: curve, Coeffs: c}
}

func addSlices(curve *curves.Curve, a, b []curves.Scalar) []curves.Scalar {
	return sliceToPoly(curve, a).Add(sliceToPoly(curve, b)).Coeffs
}

func subSlices(curve *curves.Curve, a, b []curves.Scalar) []curves.Scalar {
	return sliceToPoly(curve, a).Sub(sliceToPoly(curve, b)).Coeffs
}

// karatsubaMul implements the standard three-multiplication recursive
// Karatsuba split. Base case falls back to naiveMul below the schoolbook
// threshold.
func karatsubaMul(a, b *Polynomial) []curves.Scalar {
	n := len(a.Coeffs)
	if len(b.Coeffs) > n {
		n = len(b.Coeffs)
	}
	if n <= schoolbookThreshold {
		return naiveMul(a, b)
	}
	half := n / 2
	ap, bp := padded(a, n), padded(b, n)
	aLo, aHi := sliceToPoly(a.Curve, ap[:half]), sliceToPoly(a.Curve, ap[half:])
	bLo, bHi := sliceToPoly(a.Curve, bp[:half]), sliceToPoly(a.Curve, bp[half:])

	z0 := karatsubaMul(aLo, bLo)
	z2 := karatsubaMul(aHi, bHi)
	aSum := aLo.Add(aHi)
	bSum := bLo.Add(bHi)
	z1 := karatsubaMul(aSum, bSum)
	z1 = subSlices(a.Curve, z1, z0)
	z1 = subSlices(a.Curve, z1, z2)

	out := make([]curves.Scalar, 2*n-1)
	zero := a.zero()
	for i := range out {
		out[i] = zero
	}
	for i, c := range z0 {
		out[i] = out[i].Add(c)
	}
	for i, c := range z1 {
		out[half+i] = out[half+i].Add(c)
	}
	for i, c := range z2 {
		out[2*half+i] = out[2*half+i].Add(c)
	}
	return out
}

// parallelKaratsubaMul runs the three recursive Karatsuba sub-products
// concurrently. Used only above karatsubaThreshold, where the recursion
// depth is large enough that goroutine overhead is negligible next to the
// multiplication work it overlaps.
func parallelKaratsubaMul(a, b *Polynomial) []curves.Scalar {
	n := len(a.Coeffs)
	if len(b.Coeffs) > n {
		n = len(b.Coeffs)
	}
	if n <= karatsubaThreshold {
		return karatsubaMul(a, b)
	}
	half := n / 2
	ap, bp := padded(a, n), padded(b, n)
	aLo, aHi := sliceToPoly(a.Curve, ap[:half]), sliceToPoly(a.Curve, ap[half:])
	bLo, bHi := sliceToPoly(a.Curve, bp[:half]), sliceToPoly(a.Curve, bp[half:])
	aSum := aLo.Add(aHi)
	bSum := bLo.Add(bHi)

	var z0, z1, z2 []curves.Scalar
	done := make(chan struct{}, 3)
	go func() { z0 = parallelKaratsubaMul(aLo, bLo); done <- struct{}{} }()
	go func() { z2 = parallelKaratsubaMul(aHi, bHi); done <- struct{}{} }()
	go func() { z1 = parallelKaratsubaMul(aSum, bSum); done <- struct{}{} }()
	<-done
	<-done
	<-done

	z1 = subSlices(a.Curve, z1, z0)
	z1 = subSlices(a.Curve, z1, z2)

	out := make([]curves.Scalar, 2*n-1)
	zero := a.zero()
	for i := range out {
		out[i] = zero
	}
	for i, c := range z0 {
		out[i] = out[i].Add(c)
	}
	for i, c := range z1 {
		out[half+i] = out[half+i].Add(c)
	}
	for i, c := range z2 {
		out[2*half+i] = out[2*half+i].Add(c)
	}
	return out
}

// Evaluate computes p(x) via Horner's rule.
func (p *Polynomial) Evaluate(x curves.Scalar) curves.Scalar {
	acc := p.zero()
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		acc = acc.Mul(x).Add(p.Coeffs[i])
	}
	return acc
}

// Derivative returns p'.
func (p *Polynomial) Derivative() *Polynomial {
	if p.Degree() == 0 {
		return New(p.Curve, []curves.Scalar{p.zero()})
	}
	out := make([]curves.Scalar, p.Degree())
	for i := 1; i <= p.Degree(); i++ {
		out[i-1] = p.Coeffs[i].Mul(p.Curve.Scalar.New(i))
	}
	return New(p.Curve, out)
}

// Product multiplies many polynomials together via balanced
// divide-and-conquer, recursing in parallel once the factor count is large
// enough to make goroutine overhead worthwhile. An empty factor list
// returns the constant polynomial 1.
func Product(curve *curves.Curve, factors []*Polynomial) *Polynomial {
	if len(factors) == 0 {
		return New(curve, []curves.Scalar{curve.Scalar.One()})
	}
	if len(factors) == 1 {
		return factors[0]
	}
	mid := len(factors) / 2
	if len(factors) <= 8 {
		return Product(curve, factors[:mid]).Mul(Product(curve, factors[mid:]))
	}
	var left, right *Polynomial
	done := make(chan struct{}, 2)
	go func() { left = Product(curve, factors[:mid]); done <- struct{}{} }()
	go func() { right = Product(curve, factors[mid:]); done <- struct{}{} }()
	<-done
	<-done
	return left.Mul(right)
}
