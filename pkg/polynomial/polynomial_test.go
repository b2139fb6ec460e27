package polynomial

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/teenet-io/tss-vault/pkg/curves"
)

func testCurve() *curves.Curve { return curves.DefaultCurve() }

func scalarInt(c *curves.Curve, v int) curves.Scalar { return c.Scalar.New(v) }

func TestEvaluateConstant(t *testing.T) {
	c := testCurve()
	p := New(c, []curves.Scalar{scalarInt(c, 7)})
	x := c.Scalar.Random(rand.Reader)
	require.Equal(t, 0, p.Evaluate(x).Cmp(scalarInt(c, 7)))
}

func TestEvaluateLinear(t *testing.T) {
	c := testCurve()
	// f(x) = 3 + 2x, f(5) = 13
	p := New(c, []curves.Scalar{scalarInt(c, 3), scalarInt(c, 2)})
	require.Equal(t, 0, p.Evaluate(scalarInt(c, 5)).Cmp(scalarInt(c, 13)))
}

func TestMulMatchesSchoolbookAcrossSizes(t *testing.T) {
	c := testCurve()
	for _, n := range []int{1, 2, 5, 70, 130} {
		a := randPoly(c, n)
		b := randPoly(c, n)
		want := naiveMul(a, b)
		got := a.Mul(b).Coeffs
		require.Equal(t, len(want), len(got), "n=%d", n)
		for i := range want {
			require.Equal(t, 0, want[i].Cmp(got[i]), "n=%d i=%d", n, i)
		}
	}
}

func randPoly(c *curves.Curve, n int) *Polynomial {
	coeffs := make([]curves.Scalar, n)
	for i := range coeffs {
		coeffs[i] = c.Scalar.Random(rand.Reader)
	}
	return New(c, coeffs)
}

func TestAddSubInverse(t *testing.T) {
	c := testCurve()
	a := randPoly(c, 10)
	b := randPoly(c, 7)
	sum := a.Add(b)
	back := sum.Sub(b)
	require.Equal(t, a.Degree(), back.Degree())
	for i := range a.Coeffs {
		require.Equal(t, 0, a.Coeffs[i].Cmp(back.Coeffs[i]))
	}
}

func TestDerivativeOfConstantIsZero(t *testing.T) {
	c := testCurve()
	p := New(c, []curves.Scalar{scalarInt(c, 42)})
	d := p.Derivative()
	require.True(t, d.Evaluate(scalarInt(c, 9)).IsZero())
}

func TestDerivativeLinear(t *testing.T) {
	c := testCurve()
	// f(x) = 3 + 2x -> f'(x) = 2
	p := New(c, []curves.Scalar{scalarInt(c, 3), scalarInt(c, 2)})
	d := p.Derivative()
	require.Equal(t, 0, d.Evaluate(scalarInt(c, 100)).Cmp(scalarInt(c, 2)))
}

func TestProductOfLinearFactorsMatchesExpansion(t *testing.T) {
	c := testCurve()
	// (x - 1)(x - 2)(x - 3) evaluated at x=10 should equal 9*8*7 = 504.
	roots := []int{1, 2, 3}
	factors := make([]*Polynomial, len(roots))
	for i, r := range roots {
		factors[i] = New(c, []curves.Scalar{scalarInt(c, -r), scalarInt(c, 1)})
	}
	prod := Product(c, factors)
	got := prod.Evaluate(scalarInt(c, 10))
	require.Equal(t, 0, got.Cmp(scalarInt(c, 504)))
}

func TestProductEmptyIsOne(t *testing.T) {
	c := testCurve()
	prod := Product(c, nil)
	require.True(t, prod.Evaluate(scalarInt(c, 77)).IsOne())
}
