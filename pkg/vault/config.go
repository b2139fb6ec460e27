package vault

import (
	"hash"

	"github.com/zeebo/blake3"
	"go.uber.org/zap"
)

// SecurityLevel affects only optional parameter selection for external
// hash adapters; it has no effect on the core cryptographic pipeline
// (pkg/curves, pkg/polynomial, pkg/lagrange, pkg/schnorr, pkg/sharing
// never read it).
type SecurityLevel int

const (
	SecurityStandard SecurityLevel = iota
	SecurityHigh
	SecurityMaximum
)

// ComplianceMode decorates a Config for reporting purposes only; it gates
// no cryptographic behavior.
type ComplianceMode int

const (
	ComplianceStandard ComplianceMode = iota
	ComplianceFips140L3
	ComplianceCommonCriteriaEAL4Plus
	ComplianceCustom
)

// Config holds the facade's recognized options (§6), all optional with
// defaults, plus the decorative enterprise fields original_source/main.rs
// carried (audit_enabled, compliance_mode, custom label) that have no
// bearing on the cryptographic contract.
type Config struct {
	SecurityLevel     SecurityLevel
	MaxShares         uint32
	ParallelismHint   int
	AuditEnabled      bool
	ComplianceMode    ComplianceMode
	CustomCompliance  string
	Logger            *zap.Logger
}

// Option configures a Config, matching the teacher's constructor-based
// configuration (explicit parameters on NewFeldman/NewDkgParticipant)
// generalized into the functional-options idiom cobra flags bind into.
type Option func(*Config)

// DefaultConfig mirrors original_source/main.rs's EnterpriseConfig::default:
// High security, audit enabled, standard compliance, and the §6 default
// max_shares bound.
func DefaultConfig() *Config {
	return &Config{
		SecurityLevel:  SecurityHigh,
		MaxShares:      1000,
		AuditEnabled:   true,
		ComplianceMode: ComplianceStandard,
		Logger:         zap.NewNop(),
	}
}

func NewConfig(opts ...Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func WithSecurityLevel(level SecurityLevel) Option {
	return func(c *Config) { c.SecurityLevel = level }
}

func WithMaxShares(n uint32) Option {
	return func(c *Config) { c.MaxShares = n }
}

func WithParallelismHint(n int) Option {
	return func(c *Config) { c.ParallelismHint = n }
}

func WithComplianceMode(mode ComplianceMode, custom string) Option {
	return func(c *Config) { c.ComplianceMode = mode; c.CustomCompliance = custom }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// DigestAdapter is the general-purpose digest collaborator the original
// source's hash_adapter.rs names; spec.md's Non-goals explicitly exclude
// it from the core ("the hash-function adapter for general digest use
// — the system does not depend on digest choice internally"). It exists
// here only for callers who want a BLAKE3-backed hasher for non-core
// data (e.g. hashing an export bundle's filename); the Schnorr challenge
// path in pkg/schnorr never calls this.
func DigestAdapter() hash.Hash {
	return blake3.New()
}
