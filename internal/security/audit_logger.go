package security

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/rs/zerolog/log"
)

// AuditLogger records tool invocations as structured audit events. Inputs are
// hashed so identifiers (emails, account numbers) don't land in plain logs.
type AuditLogger struct {
	enabled bool
}

func NewAuditLogger(enabled bool) *AuditLogger {
	return &AuditLogger{enabled: enabled}
}

// LogToolCall records one dispatcher invocation.
func (a *AuditLogger) LogToolCall(toolName, inputDigest string, durationMs int64, success bool, errMsg string) {
	if a == nil || !a.enabled {
		return
	}
	evt := log.Info().
		Str("event", "tool_audit").
		Str("tool", toolName).
		Str("input_hash", inputDigest).
		Int64("duration_ms", durationMs).
		Bool("success", success)
	if errMsg != "" {
		evt = evt.Str("error", errMsg)
	}
	evt.Msg("audit")
}

// HashInput digests an arbitrary string for audit records.
func HashInput(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:16]
}
