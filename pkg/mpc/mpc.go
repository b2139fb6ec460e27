// Package mpc simulates a distributed dealing in a single process: multiple
// parties each contribute an independent polynomial, and the resulting
// shares sum the contributions without any one party ever holding the
// global secret.
package mpc

import (
	"fmt"
	"io"

	"github.com/teenet-io/tss-vault/pkg/curves"
	"github.com/teenet-io/tss-vault/pkg/polynomial"
	"github.com/teenet-io/tss-vault/pkg/schnorr"
	"github.com/teenet-io/tss-vault/pkg/sharing"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of a simulated distributed dealing. Secret is
// populated only when Generate is called with revealSecret set, and is the
// assembled global secret no single party would learn in a real deployment.
type Result struct {
	Secret curves.Scalar
	Shares []*sharing.ShareRecord
}

// Generate simulates mpc_generate_shares: each of parties participants
// samples a degree t-1 polynomial; the global secret is the sum of the
// parties' constant terms, never itself computed by any single party in a
// real run. revealSecret must be true only in testing or simulation
// contexts — a production dealing must never assemble s in one place.
func Generate(curve *curves.Curve, parties, t, n uint32, revealSecret bool, reader io.Reader) (*Result, error) {
	if parties == 0 {
		return nil, fmt.Errorf("mpc: %w: parties must be >= 1, got %d", sharing.ErrValidation, parties)
	}
	if t < 1 || t > n {
		return nil, fmt.Errorf("mpc: %w: threshold must satisfy 1 <= t <= n, got t=%d n=%d", sharing.ErrValidation, t, n)
	}
	if n > sharing.MaxShares {
		return nil, fmt.Errorf("mpc: %w: share_count %d exceeds limit %d", sharing.ErrResourceExhaustion, n, sharing.MaxShares)
	}

	contributions := make([]*polynomial.Polynomial, parties)
	for p := uint32(0); p < parties; p++ {
		contributions[p] = polynomial.Random(curve, int(t-1), curve.Scalar.Random(reader), reader)
	}

	randomPolys := make([]*polynomial.Polynomial, parties)
	for p := uint32(0); p < parties; p++ {
		randomPolys[p] = polynomial.Random(curve, int(t-1), curve.Scalar.Zero(), reader)
	}

	records := make([]*sharing.ShareRecord, n)
	var g errgroup.Group
	for i := uint32(1); i <= n; i++ {
		idx := i
		g.Go(func() error {
			x := curve.Scalar.New(int(idx))
			share := curve.Scalar.Zero()
			random := curve.Scalar.Zero()
			for p := uint32(0); p < parties; p++ {
				share = share.Add(contributions[p].Evaluate(x))
				random = random.Add(randomPolys[p].Evaluate(x))
			}
			commitment := schnorr.Commit(curve, share, random)
			proof, err := schnorr.Prove(curve, idx, share, random, commitment, reader)
			if err != nil {
				return fmt.Errorf("mpc: %w: %v", sharing.ErrCryptographicOperation, err)
			}
			records[idx-1] = &sharing.ShareRecord{
				Curve:      curve,
				Index:      idx,
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

	result := &Result{Shares: records}
	if revealSecret {
		secret := curve.Scalar.Zero()
		for _, poly := range contributions {
			secret = secret.Add(poly.Evaluate(curve.Scalar.Zero()))
		}
		result.Secret = secret
	}
	return result, nil
}
