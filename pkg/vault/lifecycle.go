package vault

import (
	"fmt"
	"time"

	"github.com/teenet-io/tss-vault/pkg/curves"
)

// KeyState is the lifecycle stage of a Key, mirroring
// original_source/key_lifecycle.rs's Generated/Active/Retired/Destroyed
// progression (NIST SP 800-57-style bookkeeping). It is named in spec.md
// as an out-of-scope collaborator, not part of the cryptographic
// contract; the facade carries it as ambient scaffolding only.
type KeyState int

const (
	KeyGenerated KeyState = iota
	KeyActive
	KeyRetired
	KeyDestroyed
)

func (s KeyState) String() string {
	switch s {
	case KeyGenerated:
		return "generated"
	case KeyActive:
		return "active"
	case KeyRetired:
		return "retired"
	case KeyDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Key wraps a secret scalar with lifecycle bookkeeping. Only Secret is
// secret-carrying; Destroy zeroizes it and advances the state to
// KeyDestroyed, matching the Rust original's Zeroize/ZeroizeOnDrop split
// between the secret field and the non-secret timestamps.
type Key struct {
	Secret         curves.Scalar
	State          KeyState
	CreationTime   time.Time
	ActivationTime *time.Time
	RetirementTime *time.Time
}

// NewKey wraps secret in a Key in the Generated state.
func NewKey(secret curves.Scalar) *Key {
	return &Key{Secret: secret, State: KeyGenerated, CreationTime: time.Now()}
}

// Activate transitions Generated -> Active.
func (k *Key) Activate() error {
	if k.State != KeyGenerated {
		return fmt.Errorf("vault: invalid key state transition: %s -> %s", k.State, KeyActive)
	}
	now := time.Now()
	k.State = KeyActive
	k.ActivationTime = &now
	return nil
}

// Retire transitions Active -> Retired.
func (k *Key) Retire() error {
	if k.State != KeyActive {
		return fmt.Errorf("vault: invalid key state transition: %s -> %s", k.State, KeyRetired)
	}
	now := time.Now()
	k.State = KeyRetired
	k.RetirementTime = &now
	return nil
}

// Destroy zeroizes the secret immediately and marks the key Destroyed,
// regardless of its prior state — destruction is always permitted.
func (k *Key) Destroy() {
	if k.Secret != nil {
		k.Secret.Zeroize()
	}
	k.State = KeyDestroyed
}
