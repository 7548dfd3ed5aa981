package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/enterprisellm/orchestrator/internal/llm"
	"github.com/enterprisellm/orchestrator/internal/mcp"
	"github.com/enterprisellm/orchestrator/internal/store"
)

// ChatResult is the outcome of one chat turn.
type ChatResult struct {
	ThreadID  string
	Reply     string
	ToolCalls []mcp.Invocation
}

// Agent orchestrates one chat turn: thread bookkeeping, classification, tool
// dispatch or free-form fallback, and reply persistence. All persistence goes
// through the injected store; gen may be nil when no model is configured.
type Agent struct {
	store         store.Store
	dispatcher    *mcp.Dispatcher
	gen           llm.Generator
	classifier    *Classifier
	historyWindow int
	streamDelay   time.Duration
}

func New(st store.Store, dispatcher *mcp.Dispatcher, gen llm.Generator, historyWindow int, streamDelay time.Duration) *Agent {
	if historyWindow <= 0 {
		historyWindow = 25
	}
	return &Agent{
		store:         st,
		dispatcher:    dispatcher,
		gen:           gen,
		classifier:    NewClassifier(),
		historyWindow: historyWindow,
		streamDelay:   streamDelay,
	}
}

// Chat produces a complete reply. Tool-level failures are folded into the
// reply text; only store and free-form model failures surface as errors.
func (a *Agent) Chat(ctx context.Context, threadID, message string) (*ChatResult, error) {
	turn, err := a.beginTurn(ctx, threadID, message)
	if err != nil {
		return nil, err
	}

	var reply string
	var invocations []mcp.Invocation

	if cat, ok := a.classifier.Classify(message); ok {
		reply, invocations = a.runTool(ctx, cat, message)
	} else {
		reply, err = a.freeform(ctx, turn.history, message)
		if err != nil {
			return nil, err
		}
	}

	if err := a.finishTurn(ctx, turn, message, reply, invocations); err != nil {
		return nil, err
	}

	return &ChatResult{ThreadID: turn.threadID, Reply: reply, ToolCalls: invocations}, nil
}

// ChatStream behaves like Chat but delivers the reply incrementally through
// emit. Emission stops as soon as emit fails or ctx is done; the full reply
// is still persisted.
func (a *Agent) ChatStream(ctx context.Context, threadID, message string, emit func(chunk string) error) (*ChatResult, error) {
	turn, err := a.beginTurn(ctx, threadID, message)
	if err != nil {
		return nil, err
	}

	var reply string
	var invocations []mcp.Invocation

	if cat, ok := a.classifier.Classify(message); ok {
		// Tool invocation completes fully before any emission begins.
		reply, invocations = a.runTool(ctx, cat, message)
		a.emitWords(ctx, reply, emit)
	} else if a.gen == nil {
		reply = llmDisabledReply
		a.emitWords(ctx, reply, emit)
	} else {
		turns := historyTurns(turn.history)
		reply, err = a.gen.Stream(ctx, systemPrompt, turns, message, emit)
		if err != nil {
			return nil, err
		}
	}

	if err := a.finishTurn(ctx, turn, message, reply, invocations); err != nil {
		return nil, err
	}

	return &ChatResult{ThreadID: turn.threadID, Reply: reply, ToolCalls: invocations}, nil
}

type turnState struct {
	threadID string
	history  []store.Message
}

func (a *Agent) beginTurn(ctx context.Context, threadID, message string) (*turnState, error) {
	id, err := a.store.EnsureThread(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("ensure thread: %w", err)
	}

	history, err := a.store.RecentMessages(ctx, id, a.historyWindow)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}

	if _, err := a.store.AddMessage(ctx, id, "user", message, nil); err != nil {
		return nil, fmt.Errorf("persist user message: %w", err)
	}

	return &turnState{threadID: id, history: history}, nil
}

func (a *Agent) finishTurn(ctx context.Context, turn *turnState, message, reply string, invocations []mcp.Invocation) error {
	meta := map[string]any{"toolCalls": len(invocations) > 0}
	assistantID, err := a.store.AddMessage(ctx, turn.threadID, "assistant", reply, meta)
	if err != nil {
		return fmt.Errorf("persist reply: %w", err)
	}

	for _, inv := range invocations {
		if _, err := a.store.AddToolInvocation(ctx, assistantID, store.ToolInvocation{
			ToolName:   inv.ToolName,
			Input:      inv.Input,
			Output:     inv.Output,
			DurationMs: inv.DurationMs,
		}); err != nil {
			return fmt.Errorf("persist tool invocation: %w", err)
		}
	}

	// First exchange in the thread: derive a short title.
	if len(turn.history) == 0 {
		toolNames := make([]string, 0, len(invocations))
		for _, inv := range invocations {
			toolNames = append(toolNames, inv.ToolName)
		}
		title := llm.Title(ctx, a.gen, message, reply, toolNames)
		if err := a.store.UpdateThreadTitle(ctx, turn.threadID, title); err != nil {
			log.Warn().Err(err).Str("thread", turn.threadID).Msg("title update failed")
		}
	}
	return nil
}

// runTool executes the classified tool path. Never fails: extraction and
// execution problems become user-facing text.
func (a *Agent) runTool(ctx context.Context, cat Category, message string) (string, []mcp.Invocation) {
	ident, ok := a.classifier.Extract(cat, message)
	if !ok {
		return clarificationReply, nil
	}

	input := map[string]any{a.classifier.ArgName(cat): ident}
	inv, err := a.dispatcher.Call(ctx, a.classifier.ToolName(cat), input)
	if err != nil {
		log.Error().Err(err).Str("category", string(cat)).Msg("tool execution error")
		return fmt.Sprintf("I encountered an error while retrieving the requested information: %s", dispatchErrorText(err)), nil
	}

	return a.summarize(cat, ident, inv.Output), []mcp.Invocation{*inv}
}

func dispatchErrorText(err error) string {
	var execErr *mcp.ToolExecutionError
	if errors.As(err, &execErr) {
		return execErr.Err.Error()
	}
	return err.Error()
}

// summarize renders a deterministic field-by-field reply from the tool
// output. A tool-level error field takes precedence.
func (a *Agent) summarize(cat Category, ident string, output map[string]any) string {
	if errText, ok := output["error"].(string); ok && errText != "" {
		return errText
	}

	switch cat {
	case CategoryHR:
		return fmt.Sprintf("I retrieved the leave balance for employee %s:\n\n"+
			"• Annual Leave: %v days\n"+
			"• Sick Leave: %v days\n"+
			"• Remaining: %v days\n\n"+
			"This information was retrieved using the HR system.",
			ident, output["annual"], output["sick"], output["remaining"])

	case CategoryCRM:
		date, value := "", any(0)
		if lo, ok := output["lastOrder"].(map[string]any); ok {
			date, _ = lo["date"].(string)
			value = lo["value"]
		}
		return fmt.Sprintf("I found customer information for %s:\n\n"+
			"• Customer ID: %v\n"+
			"• Tier: %v\n"+
			"• Last Order: %s ($%v)\n\n"+
			"This information was retrieved from the CRM system.",
			ident, output["id"], output["tier"], date, value)

	case CategoryBanking:
		var parts []string
		if hs, ok := output["topHoldings"].([]map[string]any); ok {
			for _, h := range hs {
				weight, _ := h["weight"].(float64)
				parts = append(parts, fmt.Sprintf("%v (%.1f%%)", h["symbol"], weight*100))
			}
		}
		return fmt.Sprintf("I retrieved the portfolio summary for account %s:\n\n"+
			"• Total Value: $%v\n"+
			"• P&L: %v%%\n"+
			"• Top Holdings: %s\n\n"+
			"This information was retrieved from the banking system.",
			ident, output["totalValue"], output["pnlPct"], strings.Join(parts, ", "))
	}
	return ""
}

func (a *Agent) freeform(ctx context.Context, history []store.Message, message string) (string, error) {
	if a.gen == nil {
		return llmDisabledReply, nil
	}
	return a.gen.Complete(ctx, systemPrompt, historyTurns(history), message)
}

// emitWords streams a finished reply word by word with the configured pacing
// delay. Stops on emit failure or context cancellation.
func (a *Agent) emitWords(ctx context.Context, reply string, emit func(string) error) {
	words := strings.Split(reply, " ")
	for i, w := range words {
		chunk := w
		if i > 0 {
			chunk = " " + w
		}
		if err := emit(chunk); err != nil {
			return
		}
		if a.streamDelay > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(a.streamDelay):
			}
		}
	}
}

func historyTurns(history []store.Message) []llm.Turn {
	turns := make([]llm.Turn, 0, len(history))
	for _, m := range history {
		role := "user"
		if m.Role == "assistant" {
			role = "assistant"
		}
		turns = append(turns, llm.Turn{Role: role, Content: m.Content})
	}
	return turns
}
