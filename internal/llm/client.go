// Package llm wraps the Anthropic SDK behind a small interface so the chat
// orchestrator and tools can be exercised without a live model.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog/log"
)

// Turn is one prior conversation message passed as model context.
type Turn struct {
	Role    string // "user" or "assistant"
	Content string
}

// Generator produces free-form model output.
type Generator interface {
	Complete(ctx context.Context, system string, history []Turn, user string) (string, error)
	Stream(ctx context.Context, system string, history []Turn, user string, emit func(chunk string) error) (string, error)
}

// Anthropic implements Generator on the Anthropic Messages API (or a
// compatible proxy via base URL override).
type Anthropic struct {
	client    *anthropic.Client
	model     string
	maxTokens int
}

func NewAnthropic(apiKey, model, baseURL string) *Anthropic {
	if model == "" {
		model = "claude-sonnet-4-6"
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &Anthropic{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: 1024,
	}
}

func (a *Anthropic) params(system string, history []Turn, user string) anthropic.MessageNewParams {
	messages := make([]anthropic.MessageParam, 0, len(history)+1)
	for _, t := range history {
		if t.Role == "assistant" {
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(t.Content)))
		} else {
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(t.Content)))
		}
	}
	messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(user)))

	params := anthropic.MessageNewParams{
		Model:     anthropic.F(anthropic.Model(a.model)),
		MaxTokens: anthropic.F(int64(a.maxTokens)),
		Messages:  anthropic.F(messages),
	}
	if system != "" {
		params.System = anthropic.F([]anthropic.TextBlockParam{
			anthropic.NewTextBlock(system),
		})
	}
	return params
}

func (a *Anthropic) Complete(ctx context.Context, system string, history []Turn, user string) (string, error) {
	resp, err := a.client.Messages.New(ctx, a.params(system, history, user))
	if err != nil {
		return "", fmt.Errorf("LLM call failed: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if b, ok := block.AsUnion().(anthropic.TextBlock); ok {
			text += b.Text
		}
	}
	return text, nil
}

func (a *Anthropic) Stream(ctx context.Context, system string, history []Turn, user string, emit func(string) error) (string, error) {
	stream := a.client.Messages.NewStreaming(ctx, a.params(system, history, user))

	var full strings.Builder
	for stream.Next() {
		event := stream.Current()
		switch delta := event.Delta.(type) {
		case anthropic.ContentBlockDeltaEventDelta:
			if delta.Text == "" {
				continue
			}
			full.WriteString(delta.Text)
			if err := emit(delta.Text); err != nil {
				// Transport gone; stop emitting but keep what we have.
				log.Debug().Err(err).Msg("stream consumer closed")
				return full.String(), nil
			}
		}
	}
	if err := stream.Err(); err != nil {
		return full.String(), fmt.Errorf("LLM stream failed: %w", err)
	}
	return full.String(), nil
}
