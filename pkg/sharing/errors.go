package sharing

import "errors"

// Sentinel errors specific to the service layer. Leaf-routine errors from
// pkg/lagrange propagate through these functions wrapped with %w, so
// errors.Is still reaches the original sentinel, per
// the rule that service-level code may add operation context but must
// never hide the inner error kind.
var (
	ErrValidation             = errors.New("sharing: precondition violated")
	ErrResourceExhaustion     = errors.New("sharing: configured resource bound exceeded")
	ErrCryptographicOperation = errors.New("sharing: cryptographic operation failed")
)

// MaxShares bounds the share count accepted by GenerateKeyShares,
// AdjustThreshold and mpc.Generate (§6: "max_shares", default 1000). It is
// fixed: this package has no override, so a caller's own limit can only be
// lower than it.
const MaxShares = 1000
