package vault

import (
	"time"

	"go.uber.org/zap"
)

// EventKind enumerates the security-audit events original_source/error.rs's
// SecurityEvent carried. None of these gate cryptographic behavior; they
// exist purely as an observability collaborator.
type EventKind int

const (
	EventKeyGenerated EventKind = iota
	EventKeyActivated
	EventKeyRetired
	EventKeyDestroyed
	EventUnauthorizedAccess
	EventPolicyViolation
)

func (k EventKind) String() string {
	switch k {
	case EventKeyGenerated:
		return "key_generated"
	case EventKeyActivated:
		return "key_activated"
	case EventKeyRetired:
		return "key_retired"
	case EventKeyDestroyed:
		return "key_destroyed"
	case EventUnauthorizedAccess:
		return "unauthorized_access"
	case EventPolicyViolation:
		return "policy_violation"
	default:
		return "unknown"
	}
}

// SecurityEvent is a single audit-trail entry. It never carries secret
// material — only identifiers, timestamps, and free-text detail.
type SecurityEvent struct {
	Kind      EventKind
	KeyID     string
	Detail    string
	Timestamp time.Time
}

// AuditLogger records SecurityEvents and forwards each to a structured
// logger. It holds no cryptographic state and is never imported by
// pkg/sharing, pkg/lagrange, pkg/schnorr, or pkg/polynomial — the facade
// is the only caller.
type AuditLogger struct {
	logger *zap.Logger
	events []SecurityEvent
}

func NewAuditLogger(logger *zap.Logger) *AuditLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditLogger{logger: logger}
}

// LogEvent records event and emits it at info level, mirroring
// original_source/error.rs's log::info!("Security event: {:?}", event).
func (a *AuditLogger) LogEvent(event SecurityEvent) {
	a.events = append(a.events, event)
	a.logger.Info("security event",
		zap.String("kind", event.Kind.String()),
		zap.String("key_id", event.KeyID),
		zap.String("detail", event.Detail),
		zap.Time("timestamp", event.Timestamp),
	)
}

// Events returns the recorded audit trail. The returned slice is a copy;
// mutating it does not affect the logger's internal state.
func (a *AuditLogger) Events() []SecurityEvent {
	out := make([]SecurityEvent, len(a.events))
	copy(out, a.events)
	return out
}
