package security

import (
	"fmt"
	"regexp"
	"strings"
)

const MaxMessageLength = 2000

// injectionPatterns covers the common prompt-injection phrasings seen in
// chat input. The assistant only answers over mock enterprise data, so the
// list is intentionally short.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?previous\s+instructions`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+)?previous\s+instructions`),
	regexp.MustCompile(`(?i)forget\s+(all\s+)?previous\s+instructions`),
	regexp.MustCompile(`(?i)override\s+(all\s+)?previous\s+instructions`),
	regexp.MustCompile(`(?i)new\s+context\s*:`),
	regexp.MustCompile(`(?i)change\s+context\s*:`),
	regexp.MustCompile(`(?i)instead\s+of\s+the\s+above`),
}

// MessageValidator validates inbound chat messages before they reach the
// orchestrator.
type MessageValidator struct{}

func NewMessageValidator() *MessageValidator {
	return &MessageValidator{}
}

type ValidationResult struct {
	Valid   bool
	Message string
}

func (v *MessageValidator) Validate(message string) ValidationResult {
	if strings.TrimSpace(message) == "" {
		return ValidationResult{Valid: false, Message: "message cannot be empty"}
	}
	if len(message) > MaxMessageLength {
		return ValidationResult{
			Valid:   false,
			Message: fmt.Sprintf("message too long: %d chars (max %d)", len(message), MaxMessageLength),
		}
	}
	for _, pattern := range injectionPatterns {
		if pattern.MatchString(message) {
			return ValidationResult{Valid: false, Message: "message contains a disallowed instruction pattern"}
		}
	}
	return ValidationResult{Valid: true, Message: "ok"}
}
