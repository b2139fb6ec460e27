package mpc

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/teenet-io/tss-vault/pkg/curves"
	"github.com/teenet-io/tss-vault/pkg/sharing"
)

// TestS6MPCGeneration mirrors scenario S6: 4 parties, t=3, n=6; all 6 shares
// verify and any 3 reconstruct to the reported global secret.
func TestS6MPCGeneration(t *testing.T) {
	curve := curves.DefaultCurve()
	result, err := Generate(curve, 4, 3, 6, true, rand.Reader)
	require.NoError(t, err)
	require.Len(t, result.Shares, 6)
	require.True(t, sharing.VerifyShareValidity(result.Shares))

	got, err := sharing.RecoverSecret(curve, result.Shares[:3])
	require.NoError(t, err)
	require.Equal(t, 0, got.Cmp(result.Secret))

	got2, err := sharing.RecoverSecret(curve, result.Shares[3:6])
	require.NoError(t, err)
	require.Equal(t, 0, got2.Cmp(result.Secret))
}

func TestGenerateWithoutRevealLeavesSecretNil(t *testing.T) {
	curve := curves.DefaultCurve()
	result, err := Generate(curve, 3, 2, 5, false, rand.Reader)
	require.NoError(t, err)
	require.Nil(t, result.Secret)
	require.True(t, sharing.VerifyShareValidity(result.Shares))

	_, err = sharing.RecoverSecret(curve, result.Shares[:2])
	require.NoError(t, err)
}

func TestGenerateRejectsZeroParties(t *testing.T) {
	curve := curves.DefaultCurve()
	_, err := Generate(curve, 0, 2, 5, false, rand.Reader)
	require.ErrorIs(t, err, sharing.ErrValidation)
}

func TestGenerateRejectsBadThreshold(t *testing.T) {
	curve := curves.DefaultCurve()
	_, err := Generate(curve, 3, 6, 5, false, rand.Reader)
	require.ErrorIs(t, err, sharing.ErrValidation)
}

func TestGenerateRejectsExcessiveShareCount(t *testing.T) {
	curve := curves.DefaultCurve()
	_, err := Generate(curve, 3, 2, sharing.MaxShares+1, false, rand.Reader)
	require.ErrorIs(t, err, sharing.ErrResourceExhaustion)
}
