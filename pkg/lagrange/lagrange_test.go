package lagrange

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/teenet-io/tss-vault/pkg/curves"
	"github.com/teenet-io/tss-vault/pkg/polynomial"
)

func testCurve() *curves.Curve { return curves.DefaultCurve() }

func shareAt(curve *curves.Curve, poly *polynomial.Polynomial, idx uint32) Share {
	return Share{Index: idx, Value: poly.Evaluate(curve.Scalar.New(int(idx)))}
}

func TestRecoverSecretExactThreshold(t *testing.T) {
	curve := testCurve()
	secret := curve.Scalar.Random(rand.Reader)
	poly := polynomial.Random(curve, 2, secret, rand.Reader)

	shares := []Share{shareAt(curve, poly, 1), shareAt(curve, poly, 2), shareAt(curve, poly, 3)}
	got, err := RecoverSecret(curve, shares)
	require.NoError(t, err)
	require.Equal(t, 0, got.Cmp(secret))
}

func TestRecoverSecretAnyThresholdSubset(t *testing.T) {
	curve := testCurve()
	secret := curve.Scalar.Random(rand.Reader)
	poly := polynomial.Random(curve, 3, secret, rand.Reader)

	all := []Share{
		shareAt(curve, poly, 1), shareAt(curve, poly, 2),
		shareAt(curve, poly, 3), shareAt(curve, poly, 4), shareAt(curve, poly, 5),
	}
	subsets := [][]int{{0, 1, 2, 3}, {1, 2, 3, 4}, {0, 2, 3, 4}}
	for _, idxs := range subsets {
		var subset []Share
		for _, i := range idxs {
			subset = append(subset, all[i])
		}
		got, err := RecoverSecret(curve, subset)
		require.NoError(t, err)
		require.Equal(t, 0, got.Cmp(secret))
	}
}

func TestRecoverSecretDuplicateIndex(t *testing.T) {
	curve := testCurve()
	secret := curve.Scalar.Random(rand.Reader)
	poly := polynomial.Random(curve, 1, secret, rand.Reader)
	shares := []Share{shareAt(curve, poly, 1), shareAt(curve, poly, 1)}
	_, err := RecoverSecret(curve, shares)
	require.ErrorIs(t, err, ErrDuplicateShareIndex)
}

func TestRecoverSecretInsufficientShares(t *testing.T) {
	curve := testCurve()
	_, err := RecoverSecret(curve, nil)
	require.ErrorIs(t, err, ErrInsufficientShares)
}

func TestRecoverSecretDirectEscapeHatchAgrees(t *testing.T) {
	curve := testCurve()
	secret := curve.Scalar.Random(rand.Reader)
	poly := polynomial.Random(curve, 1, secret, rand.Reader)
	shares := []Share{
		{Index: 0, Value: secret},
		shareAt(curve, poly, 1), shareAt(curve, poly, 2),
	}
	got, err := RecoverSecret(curve, shares)
	require.NoError(t, err)
	require.Equal(t, 0, got.Cmp(secret))
}

func TestRecoverSecretDirectEscapeHatchDisagrees(t *testing.T) {
	curve := testCurve()
	secret := curve.Scalar.Random(rand.Reader)
	wrong := curve.Scalar.Random(rand.Reader)
	poly := polynomial.Random(curve, 1, secret, rand.Reader)
	shares := []Share{
		{Index: 0, Value: wrong},
		shareAt(curve, poly, 1), shareAt(curve, poly, 2),
	}
	_, err := RecoverSecret(curve, shares)
	require.ErrorIs(t, err, ErrNumericalInstability)
}

func TestRecoverSecretsBatchIndependentSets(t *testing.T) {
	curve := testCurve()
	var batches [][]Share
	var secrets []curves.Scalar
	for i := 0; i < 4; i++ {
		secret := curve.Scalar.Random(rand.Reader)
		poly := polynomial.Random(curve, 2, secret, rand.Reader)
		secrets = append(secrets, secret)
		batches = append(batches, []Share{
			shareAt(curve, poly, 1), shareAt(curve, poly, 2), shareAt(curve, poly, 3),
		})
	}
	got, err := RecoverSecretsBatch(curve, batches)
	require.NoError(t, err)
	require.Len(t, got, 4)
	for i := range got {
		require.Equal(t, 0, got[i].Cmp(secrets[i]))
	}
}

func TestCombinePointsMatchesGeneratorOfSecret(t *testing.T) {
	curve := testCurve()
	secret := curve.Scalar.Random(rand.Reader)
	poly := polynomial.Random(curve, 2, secret, rand.Reader)

	points := map[uint32]curves.Point{
		1: curve.Point.Generator().Mul(poly.Evaluate(curve.Scalar.New(1))),
		2: curve.Point.Generator().Mul(poly.Evaluate(curve.Scalar.New(2))),
		3: curve.Point.Generator().Mul(poly.Evaluate(curve.Scalar.New(3))),
	}
	got, err := CombinePoints(curve, points)
	require.NoError(t, err)
	want := curve.Point.Generator().Mul(secret)
	require.True(t, got.Equal(want))
}
