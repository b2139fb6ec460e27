package vault

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a vault-level failure without carrying language-specific
// type names across the API boundary.
type Kind int

const (
	KindUnknown Kind = iota
	KindInsufficientShares
	KindInvalidShareIndex
	KindDuplicateShareIndex
	KindZeroDerivative
	KindPolynomialDegreeTooHigh
	KindNumericalInstability
	KindValidation
	KindResourceExhaustion
	KindCryptographicOperation
)

func (k Kind) String() string {
	switch k {
	case KindInsufficientShares:
		return "InsufficientShares"
	case KindInvalidShareIndex:
		return "InvalidShareIndex"
	case KindDuplicateShareIndex:
		return "DuplicateShareIndex"
	case KindZeroDerivative:
		return "ZeroDerivative"
	case KindPolynomialDegreeTooHigh:
		return "PolynomialDegreeTooHigh"
	case KindNumericalInstability:
		return "NumericalInstability"
	case KindValidation:
		return "Validation"
	case KindResourceExhaustion:
		return "ResourceExhaustion"
	case KindCryptographicOperation:
		return "CryptographicOperation"
	default:
		return "Unknown"
	}
}

// Error is the facade's error type: a Kind plus the fields that kind
// carries, wrapping whatever lower-layer error produced it so Unwrap
// (and therefore errors.Is/errors.As) still reaches the original sentinel.
type Error struct {
	Kind    Kind
	Needed  uint32
	Got     uint32
	Index   uint32
	Degree  int
	Field   string
	Reason  string
	Op      string
	Wrapped error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("vault: %s", e.Kind)
	switch e.Kind {
	case KindInsufficientShares:
		msg += fmt.Sprintf("{needed=%d, provided=%d}", e.Needed, e.Got)
	case KindInvalidShareIndex, KindDuplicateShareIndex, KindZeroDerivative:
		msg += fmt.Sprintf("{index=%d}", e.Index)
	case KindPolynomialDegreeTooHigh:
		msg += fmt.Sprintf("{degree=%d}", e.Degree)
	case KindValidation:
		msg += fmt.Sprintf("{field=%s, reason=%s}", e.Field, e.Reason)
	case KindResourceExhaustion:
		msg += fmt.Sprintf("{resource=%s}", e.Field)
	case KindCryptographicOperation:
		msg += fmt.Sprintf("{operation=%s}", e.Op)
	case KindUnknown:
		msg += fmt.Sprintf("{op=%s}", e.Op)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Wrapped }

// wrap attaches a stack trace and an operation tag to err without hiding its
// underlying kind: errors.Cause/errors.Is/errors.As still reach the original
// sentinel through pkg/errors' own Unwrap support. Used by translateErr for
// errors that don't match any known lower-layer sentinel, so the facade
// never returns an unannotated, trace-less error.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "vault: %s", op)
}
