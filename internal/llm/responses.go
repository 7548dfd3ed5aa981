package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

const titleSystem = "You are a helpful assistant that generates concise, descriptive titles for conversations. Always respond with just the title, nothing else."

const notFoundSystem = "You are a helpful assistant that generates professional error messages for enterprise systems. Always respond with just the message, nothing else."

// Title derives a short conversation title (3-8 words) from the first
// exchange. Falls back to a truncated user message when no generator is
// configured or the call fails.
func Title(ctx context.Context, g Generator, userMessage, reply string, toolNames []string) string {
	fallback := userMessage
	if len(fallback) > 50 {
		fallback = fallback[:50] + "..."
	}
	if g == nil {
		return fallback
	}

	prompt := fmt.Sprintf(`Generate a concise, descriptive title for this conversation. The title should be 3-8 words and capture the main intent or result.

User Message: %q

Assistant Response: %q
`, userMessage, reply)
	if len(toolNames) > 0 {
		prompt += fmt.Sprintf("\nTools Used: %s\n", strings.Join(toolNames, ", "))
	}
	prompt += "\nGenerate only the title, no other text:"

	title, err := g.Complete(ctx, titleSystem, nil, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("title generation failed")
		return fallback
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return fallback
	}
	return title
}

// NotFoundMessage produces a polite sentence for a missing entity. Falls back
// to a canned message without a generator.
func NotFoundMessage(ctx context.Context, g Generator, entityType, entityID, systemName string) string {
	fallback := fmt.Sprintf("I couldn't find %s %s in our %s. Please verify the identifier and try again.",
		entityType, entityID, systemName)
	if g == nil {
		return fallback
	}

	prompt := fmt.Sprintf(`Generate a professional, helpful response for when a %s is not found in the %s.

Entity Type: %s
Entity ID: %s
System: %s

The response should be professional, explain that the %s was not found, suggest next steps, and be concise (1-2 sentences).

Generate only the response message:`, entityType, systemName, entityType, entityID, systemName, entityType)

	msg, err := g.Complete(ctx, notFoundSystem, nil, prompt)
	if err != nil {
		log.Warn().Err(err).Str("entity", entityType).Msg("not-found generation failed")
		return fallback
	}
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return fallback
	}
	return msg
}
