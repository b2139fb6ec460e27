package vault

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/teenet-io/tss-vault/pkg/curves"
)

func TestVaultGenerateAndRecover(t *testing.T) {
	v := New(curves.DefaultCurve())
	secret := v.Curve.Scalar.New(42)
	records, err := v.GenerateKeyShares(secret, 3, 5, rand.Reader)
	require.NoError(t, err)
	require.True(t, v.VerifyShareValidity(records))

	got, err := v.RecoverSecret(records[:3])
	require.NoError(t, err)
	require.Equal(t, 0, got.Cmp(secret))
}

func TestVaultGenerateRejectsResourceExhaustion(t *testing.T) {
	v := New(curves.DefaultCurve(), WithMaxShares(4))
	secret := v.Curve.Scalar.New(7)
	_, err := v.GenerateKeyShares(secret, 2, 5, rand.Reader)
	require.Error(t, err)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	require.Equal(t, KindResourceExhaustion, verr.Kind)
}

func TestVaultRecoverSecretTranslatesInsufficientShares(t *testing.T) {
	v := New(curves.DefaultCurve())
	_, err := v.RecoverSecret(nil)
	require.Error(t, err)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	require.Equal(t, KindInsufficientShares, verr.Kind)
}

func TestVaultRefreshAndReshare(t *testing.T) {
	v := New(curves.DefaultCurve())
	secret := v.Curve.Scalar.New(123)
	records, err := v.GenerateKeyShares(secret, 5, 10, rand.Reader)
	require.NoError(t, err)

	refreshed, err := v.RefreshShares(records, 5, rand.Reader)
	require.NoError(t, err)
	got, err := v.RecoverSecret(refreshed[:5])
	require.NoError(t, err)
	require.Equal(t, 0, got.Cmp(secret))

	reshared, err := v.Reshare(records[:3], 3, 4, 8, rand.Reader)
	require.NoError(t, err)
	gotReshared, err := v.RecoverSecret(reshared[:4])
	require.NoError(t, err)
	require.Equal(t, 0, gotReshared.Cmp(secret))
}

func TestVaultMPCGenerate(t *testing.T) {
	v := New(curves.DefaultCurve())
	result, err := v.MPCGenerate(4, 3, 6, true, rand.Reader)
	require.NoError(t, err)
	require.True(t, v.VerifyShareValidity(result.Shares))
	got, err := v.RecoverSecret(result.Shares[:3])
	require.NoError(t, err)
	require.Equal(t, 0, got.Cmp(result.Secret))
}

func TestKeyLifecycleTransitions(t *testing.T) {
	curve := curves.DefaultCurve()
	key := NewKey(curve.Scalar.Random(rand.Reader))
	require.Equal(t, KeyGenerated, key.State)
	require.NoError(t, key.Activate())
	require.Equal(t, KeyActive, key.State)
	require.NoError(t, key.Retire())
	require.Equal(t, KeyRetired, key.State)
	key.Destroy()
	require.Equal(t, KeyDestroyed, key.State)
	require.True(t, key.Secret.IsZero())
}

func TestKeyLifecycleRejectsInvalidTransition(t *testing.T) {
	curve := curves.DefaultCurve()
	key := NewKey(curve.Scalar.Random(rand.Reader))
	require.Error(t, key.Retire())
}

func TestAuditLoggerRecordsEvents(t *testing.T) {
	logger := NewAuditLogger(nil)
	logger.LogEvent(SecurityEvent{Kind: EventKeyGenerated, KeyID: "k1"})
	require.Len(t, logger.Events(), 1)
}
