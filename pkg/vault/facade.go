// Package vault is the public API facade (§4.G): it wraps pkg/sharing,
// pkg/lagrange, and pkg/mpc behind a single entry point that also carries
// the ambient, non-cryptographic collaborators (config, audit, key
// lifecycle) spec.md names as out-of-scope decoration.
package vault

import (
	"errors"
	"io"
	"time"

	"github.com/teenet-io/tss-vault/pkg/curves"
	"github.com/teenet-io/tss-vault/pkg/lagrange"
	"github.com/teenet-io/tss-vault/pkg/mpc"
	"github.com/teenet-io/tss-vault/pkg/sharing"
	"go.uber.org/zap"
)

// Vault is the facade's entry point: a curve, an optional config, and the
// decorative audit collaborator, none of which affects the underlying
// cryptographic pipeline's soundness.
type Vault struct {
	Curve  *curves.Curve
	Config *Config
	Audit  *AuditLogger
}

// New constructs a Vault over curve with the given options.
func New(curve *curves.Curve, opts ...Option) *Vault {
	cfg := NewConfig(opts...)
	return &Vault{Curve: curve, Config: cfg, Audit: NewAuditLogger(cfg.Logger)}
}

func (v *Vault) trace(op string, start time.Time) {
	v.Config.Logger.Debug("operation complete",
		zap.String("operation", op),
		zap.Duration("duration", time.Since(start)),
	)
}

// GenerateKeyShares issues n verifiable shares of secret under threshold.
func (v *Vault) GenerateKeyShares(secret curves.Scalar, threshold, n uint32, reader io.Reader) ([]*sharing.ShareRecord, error) {
	defer v.trace("generate_key_shares", time.Now())
	if n > v.Config.MaxShares {
		return nil, &Error{Kind: KindResourceExhaustion, Field: "share_count", Wrapped: sharing.ErrResourceExhaustion}
	}
	records, err := sharing.GenerateKeyShares(v.Curve, secret, threshold, n, reader)
	if err != nil {
		return nil, translateErr("generate_key_shares", err)
	}
	if v.Config.AuditEnabled {
		v.Audit.LogEvent(SecurityEvent{Kind: EventKeyGenerated, Detail: "share issuance", Timestamp: time.Now()})
	}
	return records, nil
}

// RefreshShares performs proactive refresh over existing.
func (v *Vault) RefreshShares(existing []*sharing.ShareRecord, threshold uint32, reader io.Reader) ([]*sharing.ShareRecord, error) {
	defer v.trace("update_shares", time.Now())
	records, err := sharing.UpdateShares(v.Curve, existing, threshold, reader)
	if err != nil {
		return nil, translateErr("update_shares", err)
	}
	return records, nil
}

// Reshare performs distributed threshold adjustment.
func (v *Vault) Reshare(existing []*sharing.ShareRecord, thresholdOld, thresholdNew, nNew uint32, reader io.Reader) ([]*sharing.ShareRecord, error) {
	defer v.trace("adjust_threshold", time.Now())
	if nNew > v.Config.MaxShares {
		return nil, &Error{Kind: KindResourceExhaustion, Field: "share_count", Wrapped: sharing.ErrResourceExhaustion}
	}
	records, err := sharing.AdjustThreshold(v.Curve, existing, thresholdOld, thresholdNew, nNew, reader)
	if err != nil {
		return nil, translateErr("adjust_threshold", err)
	}
	return records, nil
}

// RecoverSecret reconstructs the secret from verified share records.
func (v *Vault) RecoverSecret(records []*sharing.ShareRecord) (curves.Scalar, error) {
	defer v.trace("recover_secret", time.Now())
	secret, err := sharing.RecoverSecret(v.Curve, records)
	if err != nil {
		return nil, translateErr("recover_secret", err)
	}
	return secret, nil
}

// VerifyShareValidity checks every record's proof against its commitment.
func (v *Vault) VerifyShareValidity(records []*sharing.ShareRecord) bool {
	defer v.trace("verify_share_validity", time.Now())
	return sharing.VerifyShareValidity(records)
}

// MPCGenerate simulates a distributed dealing. revealSecret must be true
// only in testing or simulation contexts (§4.F).
func (v *Vault) MPCGenerate(parties, t, n uint32, revealSecret bool, reader io.Reader) (*mpc.Result, error) {
	defer v.trace("mpc_generate_shares", time.Now())
	result, err := mpc.Generate(v.Curve, parties, t, n, revealSecret, reader)
	if err != nil {
		return nil, translateErr("mpc_generate_shares", err)
	}
	return result, nil
}

// translateErr maps a lower-layer sentinel error to the facade's typed
// Error, preserving the original as Wrapped so errors.Is/errors.As still
// reach the underlying sentinel (§7: "MUST NOT hide the inner kind").
func translateErr(op string, err error) error {
	kind := KindUnknown
	switch {
	case errors.Is(err, lagrange.ErrInsufficientShares):
		kind = KindInsufficientShares
	case errors.Is(err, lagrange.ErrInvalidShareIndex):
		kind = KindInvalidShareIndex
	case errors.Is(err, lagrange.ErrDuplicateShareIndex):
		kind = KindDuplicateShareIndex
	case errors.Is(err, lagrange.ErrZeroDerivative):
		kind = KindZeroDerivative
	case errors.Is(err, lagrange.ErrNumericalInstability):
		kind = KindNumericalInstability
	case errors.Is(err, sharing.ErrValidation):
		kind = KindValidation
	case errors.Is(err, sharing.ErrResourceExhaustion):
		kind = KindResourceExhaustion
	case errors.Is(err, sharing.ErrCryptographicOperation):
		kind = KindCryptographicOperation
	}
	if kind == KindUnknown {
		return &Error{Kind: kind, Op: op, Wrapped: wrap(op, err)}
	}
	return &Error{Kind: kind, Op: op, Wrapped: err}
}
