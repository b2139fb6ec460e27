package schnorr

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/teenet-io/tss-vault/pkg/curves"
)

func testCurve() *curves.Curve { return curves.DefaultCurve() }

func TestProveVerifyRoundTrip(t *testing.T) {
	curve := testCurve()
	secret := curve.Scalar.Random(rand.Reader)
	randomness := curve.Scalar.Random(rand.Reader)
	commitment := Commit(curve, secret, randomness)

	proof, err := Prove(curve, 7, secret, randomness, commitment, rand.Reader)
	require.NoError(t, err)
	require.NoError(t, Verify(curve, 7, commitment, proof))
}

func TestVerifyRejectsWrongIndex(t *testing.T) {
	curve := testCurve()
	secret := curve.Scalar.Random(rand.Reader)
	randomness := curve.Scalar.Random(rand.Reader)
	commitment := Commit(curve, secret, randomness)

	proof, err := Prove(curve, 3, secret, randomness, commitment, rand.Reader)
	require.NoError(t, err)
	require.ErrorIs(t, Verify(curve, 4, commitment, proof), ErrInvalidProof)
}

func TestVerifyRejectsForgedCommitment(t *testing.T) {
	curve := testCurve()
	secret := curve.Scalar.Random(rand.Reader)
	randomness := curve.Scalar.Random(rand.Reader)
	commitment := Commit(curve, secret, randomness)
	proof, err := Prove(curve, 1, secret, randomness, commitment, rand.Reader)
	require.NoError(t, err)

	other := Commit(curve, curve.Scalar.Random(rand.Reader), curve.Scalar.Random(rand.Reader))
	require.ErrorIs(t, Verify(curve, 1, other, proof), ErrInvalidProof)
}

func TestCommitmentBytesRoundTrip(t *testing.T) {
	curve := testCurve()
	secret := curve.Scalar.Random(rand.Reader)
	randomness := curve.Scalar.Random(rand.Reader)
	commitment := Commit(curve, secret, randomness)

	back, err := CommitmentFromBytes(curve, commitment.Bytes())
	require.NoError(t, err)
	require.True(t, back.Point.Equal(commitment.Point))
}

func TestCommitmentFromBytesRejectsIdentity(t *testing.T) {
	curve := testCurve()
	identity := curve.Point.Identity()
	_, err := CommitmentFromBytes(curve, identity.ToAffineCompressed())
	require.ErrorIs(t, err, ErrIdentityCommitment)
}

func TestProofBytesRoundTrip(t *testing.T) {
	curve := testCurve()
	secret := curve.Scalar.Random(rand.Reader)
	randomness := curve.Scalar.Random(rand.Reader)
	commitment := Commit(curve, secret, randomness)
	proof, err := Prove(curve, 5, secret, randomness, commitment, rand.Reader)
	require.NoError(t, err)

	back, err := ProofFromBytes(curve, proof.Bytes())
	require.NoError(t, err)
	require.NoError(t, Verify(curve, 5, commitment, back))
}
