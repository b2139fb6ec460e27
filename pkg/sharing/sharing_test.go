package sharing

import (
	"crypto/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/teenet-io/tss-vault/internal"
	"github.com/teenet-io/tss-vault/pkg/curves"
)

func testCurve() *curves.Curve { return curves.DefaultCurve() }

// TestS1BasicThreeOfFive mirrors scenario S1: s=42, t=3, n=5; any of three
// named subsets reconstructs 42, and dropping below threshold does not.
func TestS1BasicThreeOfFive(t *testing.T) {
	curve := testCurve()
	secret := curve.Scalar.New(42)
	records, err := GenerateKeyShares(curve, secret, 3, 5, rand.Reader)
	require.NoError(t, err)
	require.True(t, VerifyShareValidity(records))

	byIndex := make(map[uint32]*ShareRecord, len(records))
	for _, r := range records {
		byIndex[r.Index] = r
	}
	subsets := [][]uint32{{1, 2, 3}, {2, 4, 5}, {1, 3, 5}}
	for _, idxs := range subsets {
		var subset []*ShareRecord
		for _, idx := range idxs {
			subset = append(subset, byIndex[idx])
		}
		got, err := RecoverSecret(curve, subset)
		require.NoError(t, err)
		require.Equal(t, 0, got.Cmp(secret))
	}

	pair := []*ShareRecord{byIndex[1], byIndex[2]}
	gotWrong, err := RecoverSecret(curve, pair)
	require.NoError(t, err)
	require.NotEqual(t, 0, gotWrong.Cmp(secret))
}

// TestS2DuplicateRejection mirrors scenario S2.
func TestS2DuplicateRejection(t *testing.T) {
	curve := testCurve()
	secret := curve.Scalar.Random(rand.Reader)
	records, err := GenerateKeyShares(curve, secret, 3, 5, rand.Reader)
	require.NoError(t, err)

	dup := []*ShareRecord{records[0], records[0]}
	_, err = RecoverSecret(curve, dup)
	require.Error(t, err)
}

// TestS3ProofTampering mirrors scenario S3.
func TestS3ProofTampering(t *testing.T) {
	curve := testCurve()
	secret := curve.Scalar.Random(rand.Reader)
	records, err := GenerateKeyShares(curve, secret, 2, 3, rand.Reader)
	require.NoError(t, err)

	tampered := *records[0]
	tampered.Share = tampered.Share.Add(curve.Scalar.One())
	require.Error(t, tampered.Verify())
	require.False(t, VerifyShareValidity([]*ShareRecord{&tampered}))
}

// TestS4RefreshThenRecover mirrors scenario S4.
func TestS4RefreshThenRecover(t *testing.T) {
	curve := testCurve()
	secret := curve.Scalar.New(123)
	records, err := GenerateKeyShares(curve, secret, 5, 10, rand.Reader)
	require.NoError(t, err)

	refreshed, err := UpdateShares(curve, records, 5, rand.Reader)
	require.NoError(t, err)
	require.True(t, VerifyShareValidity(refreshed))

	got, err := RecoverSecret(curve, refreshed[:5])
	require.NoError(t, err)
	require.Equal(t, 0, got.Cmp(secret))

	mixed := append(append([]*ShareRecord{}, records[:3]...), refreshed[3:5]...)
	gotMixed, err := RecoverSecret(curve, mixed)
	require.NoError(t, err)
	require.NotEqual(t, 0, gotMixed.Cmp(secret))
}

// TestS5ResharingChangesThresholdAndCount mirrors scenario S5.
func TestS5ResharingChangesThresholdAndCount(t *testing.T) {
	curve := testCurve()
	secret := curve.Scalar.Random(rand.Reader)
	records, err := GenerateKeyShares(curve, secret, 3, 5, rand.Reader)
	require.NoError(t, err)

	reshared, err := AdjustThreshold(curve, records[:3], 3, 4, 8, rand.Reader)
	require.NoError(t, err)
	require.Len(t, reshared, 8)
	require.True(t, VerifyShareValidity(reshared))

	got, err := RecoverSecret(curve, reshared[:4])
	require.NoError(t, err)
	require.Equal(t, 0, got.Cmp(secret))

	gotShort, err := RecoverSecret(curve, reshared[:3])
	require.NoError(t, err)
	require.NotEqual(t, 0, gotShort.Cmp(secret))
}

// TestReconstructionSoundnessRandomSubsets is invariant 1 of §8: any
// threshold-sized subset of shares reconstructs the secret. It samples
// random subsets across many trials rather than only the scenario's named
// ones, using the index-sampling helper internal.SampleUniqueUint32s.
func TestReconstructionSoundnessRandomSubsets(t *testing.T) {
	curve := testCurve()
	secret := curve.Scalar.New(9001)
	const n, threshold = 9, 4
	records, err := GenerateKeyShares(curve, secret, threshold, n, rand.Reader)
	require.NoError(t, err)

	for trial := 0; trial < 20; trial++ {
		picked, err := internal.SampleUniqueUint32s(threshold, 0, n)
		require.NoError(t, err)
		subset := make([]*ShareRecord, threshold)
		for i, offset := range picked {
			subset[i] = records[offset]
		}
		got, err := RecoverSecret(curve, subset)
		require.NoError(t, err)
		require.Equal(t, 0, got.Cmp(secret))
	}
}

func TestGenerateKeyShareRecordsOrderedAscending(t *testing.T) {
	curve := testCurve()
	secret := curve.Scalar.Random(rand.Reader)
	records, err := GenerateKeyShares(curve, secret, 2, 6, rand.Reader)
	require.NoError(t, err)
	for i, r := range records {
		require.Equal(t, uint32(i+1), r.Index)
	}
}

func TestGenerateKeySharesRejectsBadThreshold(t *testing.T) {
	curve := testCurve()
	secret := curve.Scalar.Random(rand.Reader)
	_, err := GenerateKeyShares(curve, secret, 6, 5, rand.Reader)
	require.ErrorIs(t, err, ErrValidation)
}

func TestGenerateKeySharesRejectsExcessiveShareCount(t *testing.T) {
	curve := testCurve()
	secret := curve.Scalar.Random(rand.Reader)
	_, err := GenerateKeyShares(curve, secret, 2, MaxShares+1, rand.Reader)
	require.ErrorIs(t, err, ErrResourceExhaustion)
}

func TestJSONRoundTrip(t *testing.T) {
	curve := testCurve()
	secret := curve.Scalar.Random(rand.Reader)
	records, err := GenerateKeyShares(curve, secret, 2, 3, rand.Reader)
	require.NoError(t, err)

	data, err := records[0].MarshalJSON()
	require.NoError(t, err)
	back, err := ShareRecordFromJSON(curve, data)
	require.NoError(t, err)
	require.NoError(t, back.Verify())
	require.Equal(t, 0, back.Share.Cmp(records[0].Share))
}

// recordSummary is a plain-data projection of a ShareRecord used only to
// deep-compare batches with go-cmp; ShareRecord itself carries interface
// fields cmp cannot usefully diff.
type recordSummary struct {
	Index      uint32
	Share      string
	Commitment string
}

func summarize(records []*ShareRecord) []recordSummary {
	out := make([]recordSummary, len(records))
	for i, r := range records {
		out[i] = recordSummary{
			Index:      r.Index,
			Share:      hexString(r.Share.Bytes()),
			Commitment: hexString(r.Commitment.Bytes()),
		}
	}
	return out
}

func hexString(b []byte) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexDigits[c>>4]
		out[i*2+1] = hexDigits[c&0x0f]
	}
	return string(out)
}

// TestJSONRoundTripBatchDeepEqual mirrors invariant 9 (§8) across a whole
// batch: decode(encode(batch)) matches the original in every record's
// index, share and commitment.
func TestJSONRoundTripBatchDeepEqual(t *testing.T) {
	curve := testCurve()
	secret := curve.Scalar.Random(rand.Reader)
	records, err := GenerateKeyShares(curve, secret, 3, 6, rand.Reader)
	require.NoError(t, err)

	decoded := make([]*ShareRecord, len(records))
	for i, r := range records {
		data, err := r.MarshalJSON()
		require.NoError(t, err)
		back, err := ShareRecordFromJSON(curve, data)
		require.NoError(t, err)
		decoded[i] = back
	}

	if diff := cmp.Diff(summarize(records), summarize(decoded)); diff != "" {
		t.Fatalf("round-tripped batch differs (-want +got):\n%s", diff)
	}
}

func TestBareRoundTrip(t *testing.T) {
	curve := testCurve()
	secret := curve.Scalar.Random(rand.Reader)
	records, err := GenerateKeyShares(curve, secret, 2, 3, rand.Reader)
	require.NoError(t, err)

	data, err := records[0].MarshalBARE()
	require.NoError(t, err)
	back, err := ShareRecordFromBARE(curve, data)
	require.NoError(t, err)
	require.NoError(t, back.Verify())
}

func TestDestroyZeroizesSecretMaterial(t *testing.T) {
	curve := testCurve()
	secret := curve.Scalar.Random(rand.Reader)
	records, err := GenerateKeyShares(curve, secret, 2, 3, rand.Reader)
	require.NoError(t, err)

	r := records[0]
	r.Destroy()
	require.True(t, r.Share.IsZero())
	require.True(t, r.Random.IsZero())
}
