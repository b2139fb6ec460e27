// Package sharing implements the verifiable Shamir secret-sharing service:
// share issuance, proactive refresh, distributed threshold adjustment
// (resharing), and batch proof verification, all built on the
// pkg/polynomial, pkg/lagrange, pkg/schnorr, and pkg/curves primitives.
package sharing

import (
	"github.com/teenet-io/tss-vault/pkg/curves"
	"github.com/teenet-io/tss-vault/pkg/lagrange"
	"github.com/teenet-io/tss-vault/pkg/schnorr"
)

// ShareRecord is the unit the service issues, refreshes, reshares, and
// verifies: a share value bound to a Pedersen commitment and a proof of
// its opening.
type ShareRecord struct {
	Curve      *curves.Curve
	Index      uint32
	Share      curves.Scalar
	Random     curves.Scalar
	Commitment *schnorr.Commitment
	Proof      *schnorr.Proof
}

// Verify checks the record's proof against its own commitment and index.
func (r *ShareRecord) Verify() error {
	if r.Index == 0 {
		return lagrange.ErrInvalidShareIndex
	}
	if err := schnorr.Verify(r.Curve, r.Index, r.Commitment, r.Proof); err != nil {
		return err
	}
	return nil
}

// Destroy zeroizes the record's secret-carrying scalars in place. The
// caller is responsible for calling Destroy on every exit path once a
// record's secret material is no longer needed (§5: "every secret-carrying
// scalar ... must be zeroized when its holding structure is destroyed").
func (r *ShareRecord) Destroy() {
	if r.Share != nil {
		r.Share.Zeroize()
	}
	if r.Random != nil {
		r.Random.Zeroize()
	}
}

// VerifyShareValidity returns true iff every record's proof verifies
// against its own commitment and index. It short-circuits on the first
// failure and never mutates its input.
func VerifyShareValidity(records []*ShareRecord) bool {
	for _, r := range records {
		if err := r.Verify(); err != nil {
			return false
		}
	}
	return true
}
