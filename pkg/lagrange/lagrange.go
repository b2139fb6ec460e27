// Package lagrange reconstructs a Shamir-shared secret (or a batch of
// secrets) from threshold-many shares using the closed-form
// product-and-derivative method: build Q(x) = prod_i (x - x_i), then each
// share's coefficient is -Q(0) / (x_i * Q'(x_i)). This is O(m^2) in the
// share count m rather than the naive O(m^3) pairwise-ratio formula.
package lagrange

import (
	"errors"
	"fmt"

	"github.com/teenet-io/tss-vault/pkg/curves"
	"github.com/teenet-io/tss-vault/pkg/polynomial"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInsufficientShares   = errors.New("lagrange: insufficient shares to reconstruct")
	ErrInvalidShareIndex    = errors.New("lagrange: share index must be nonzero")
	ErrDuplicateShareIndex  = errors.New("lagrange: duplicate share index")
	ErrZeroDerivative       = errors.New("lagrange: zero derivative at a share index, indices are not distinct modulo the field order")
	ErrNumericalInstability = errors.New("lagrange: direct-secret share disagrees with threshold-reconstructed secret")
)

// Share pairs a share's public index with its secret value.
type Share struct {
	Index uint32
	Value curves.Scalar
}

// CoefficientSet maps each share index to its Lagrange coefficient for
// evaluation at x=0.
type CoefficientSet map[uint32]curves.Scalar

// Coefficients computes the Lagrange-at-zero coefficients for the given
// set of distinct, nonzero share indices.
func Coefficients(curve *curves.Curve, indices []uint32) (CoefficientSet, error) {
	if len(indices) == 0 {
		return nil, ErrInsufficientShares
	}
	seen := make(map[uint32]bool, len(indices))
	for _, idx := range indices {
		if idx == 0 {
			return nil, ErrInvalidShareIndex
		}
		if seen[idx] {
			return nil, ErrDuplicateShareIndex
		}
		seen[idx] = true
	}

	factors := make([]*polynomial.Polynomial, len(indices))
	for i, idx := range indices {
		xi := curve.Scalar.New(int(idx))
		factors[i] = polynomial.New(curve, []curves.Scalar{xi.Neg(), curve.Scalar.One()})
	}
	q := polynomial.Product(curve, factors)
	qPrime := q.Derivative()
	q0 := q.Coeffs[0]

	out := make(CoefficientSet, len(indices))
	for _, idx := range indices {
		xi := curve.Scalar.New(int(idx))
		dq := qPrime.Evaluate(xi)
		if dq.IsZero() {
			return nil, ErrZeroDerivative
		}
		denom := xi.Mul(dq)
		inv, err := denom.Invert()
		if err != nil {
			return nil, fmt.Errorf("lagrange: %w", err)
		}
		out[idx] = q0.Neg().Mul(inv)
	}
	return out, nil
}

// RecoverSecret reconstructs f(0) from threshold-many shares. A share with
// index 0 is treated as a direct disclosure of the secret (§9's
// direct-secret escape hatch): when present alongside indexed shares, it
// must agree with the threshold-reconstructed value or reconstruction
// fails with ErrNumericalInstability rather than silently preferring one
// value over the other.
func RecoverSecret(curve *curves.Curve, shares []Share) (curves.Scalar, error) {
	var direct curves.Scalar
	var indexed []Share
	for _, s := range shares {
		if s.Index == 0 {
			if direct != nil && direct.Cmp(s.Value) != 0 {
				return nil, ErrNumericalInstability
			}
			direct = s.Value
			continue
		}
		indexed = append(indexed, s)
	}
	if len(indexed) == 0 {
		if direct != nil {
			return direct, nil
		}
		return nil, ErrInsufficientShares
	}

	idxList := make([]uint32, len(indexed))
	for i, s := range indexed {
		idxList[i] = s.Index
	}
	coeffs, err := Coefficients(curve, idxList)
	if err != nil {
		return nil, err
	}

	secret := curve.Scalar.Zero()
	for _, s := range indexed {
		secret = secret.Add(s.Value.Mul(coeffs[s.Index]))
	}
	if direct != nil && direct.Cmp(secret) != 0 {
		return nil, ErrNumericalInstability
	}
	return secret, nil
}

// RecoverSecretsBatch reconstructs many independent share sets
// concurrently, one goroutine per batch entry.
func RecoverSecretsBatch(curve *curves.Curve, batches [][]Share) ([]curves.Scalar, error) {
	out := make([]curves.Scalar, len(batches))
	var g errgroup.Group
	for i, b := range batches {
		i, b := i, b
		g.Go(func() error {
			secret, err := RecoverSecret(curve, b)
			if err != nil {
				return fmt.Errorf("lagrange: batch %d: %w", i, err)
			}
			out[i] = secret
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// CombinePoints reconstructs a curve point (e.g. a Pedersen commitment's
// public verification point, or a threshold public key) from per-index
// point shares using the same coefficient set as RecoverSecret.
func CombinePoints(curve *curves.Curve, points map[uint32]curves.Point) (curves.Point, error) {
	idxList := make([]uint32, 0, len(points))
	for idx := range points {
		idxList = append(idxList, idx)
	}
	coeffs, err := Coefficients(curve, idxList)
	if err != nil {
		return nil, err
	}
	acc := curve.Point.Identity()
	for idx, pt := range points {
		acc = acc.Add(pt.Mul(coeffs[idx]))
	}
	return acc, nil
}
