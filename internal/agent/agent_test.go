package agent

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/enterprisellm/orchestrator/internal/llm"
	"github.com/enterprisellm/orchestrator/internal/mcp"
	"github.com/enterprisellm/orchestrator/internal/security"
	"github.com/enterprisellm/orchestrator/internal/store"
	"github.com/enterprisellm/orchestrator/internal/tools"
)

// fakeGenerator replays a fixed reply for both contracts.
type fakeGenerator struct {
	reply string
	calls int
}

func (f *fakeGenerator) Complete(_ context.Context, _ string, _ []llm.Turn, _ string) (string, error) {
	f.calls++
	return f.reply, nil
}

func (f *fakeGenerator) Stream(_ context.Context, _ string, _ []llm.Turn, _ string, emit func(string) error) (string, error) {
	f.calls++
	for _, w := range strings.SplitAfter(f.reply, " ") {
		if err := emit(w); err != nil {
			return f.reply, nil
		}
	}
	return f.reply, nil
}

func newTestAgent(t *testing.T, gen llm.Generator) (*Agent, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	registry := mcp.NewRegistry(
		tools.HRLeaveBalanceTool(st, nil),
		tools.CRMLookupTool(st, nil),
		tools.BankingPortfolioTool(st, nil),
	)
	dispatcher := mcp.NewDispatcher(registry, time.Second, security.NewAuditLogger(false))
	return New(st, dispatcher, gen, 25, 0), st
}

func TestChatToolPath(t *testing.T) {
	a, st := newTestAgent(t, &fakeGenerator{reply: "unused"})

	res, err := a.Chat(context.Background(), "", "Get leave balance for employee 2345")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if res.ThreadID == "" {
		t.Error("ThreadID is empty")
	}
	if len(res.ToolCalls) != 1 {
		t.Fatalf("got %d tool calls, want 1", len(res.ToolCalls))
	}
	if res.ToolCalls[0].ToolName != "hr.getLeaveBalance" {
		t.Errorf("tool = %q", res.ToolCalls[0].ToolName)
	}
	// Engineering department gets the 1.2 multiplier.
	if !strings.Contains(res.Reply, "Annual Leave: 24 days") {
		t.Errorf("reply = %q, want annual leave line", res.Reply)
	}

	thread, err := st.Thread(context.Background(), res.ThreadID)
	if err != nil {
		t.Fatalf("Thread() error = %v", err)
	}
	if len(thread.Messages) != 2 {
		t.Fatalf("thread has %d messages, want 2", len(thread.Messages))
	}
	if thread.Messages[0].Role != "user" || thread.Messages[1].Role != "assistant" {
		t.Errorf("roles = %q, %q", thread.Messages[0].Role, thread.Messages[1].Role)
	}
	if len(thread.Messages[1].ToolCalls) != 1 {
		t.Errorf("assistant message has %d tool calls, want 1", len(thread.Messages[1].ToolCalls))
	}
	if thread.Title == "" {
		t.Error("first exchange did not set a title")
	}
}

func TestChatClarification(t *testing.T) {
	a, _ := newTestAgent(t, nil)

	res, err := a.Chat(context.Background(), "", "Tell me about leave policy")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if res.Reply != clarificationReply {
		t.Errorf("reply = %q, want clarification", res.Reply)
	}
	if len(res.ToolCalls) != 0 {
		t.Errorf("got %d tool calls, want 0", len(res.ToolCalls))
	}
}

func TestChatFreeform(t *testing.T) {
	gen := &fakeGenerator{reply: "Hi there!"}
	a, _ := newTestAgent(t, gen)

	res, err := a.Chat(context.Background(), "", "Hello, how are you?")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if res.Reply != "Hi there!" {
		t.Errorf("reply = %q", res.Reply)
	}
	if gen.calls == 0 {
		t.Error("generator was not called for a freeform message")
	}
}

func TestChatFreeformWithoutModel(t *testing.T) {
	a, _ := newTestAgent(t, nil)

	res, err := a.Chat(context.Background(), "", "Hello, how are you?")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if res.Reply != llmDisabledReply {
		t.Errorf("reply = %q, want disabled notice", res.Reply)
	}
}

func TestChatUnknownEntity(t *testing.T) {
	a, _ := newTestAgent(t, nil)

	res, err := a.Chat(context.Background(), "", "Get leave balance for employee 9999")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	// Lookup misses surface as the tool's error text, not a failed turn.
	if !strings.Contains(res.Reply, "9999") {
		t.Errorf("reply = %q, want not-found text naming the id", res.Reply)
	}
	if len(res.ToolCalls) != 1 {
		t.Errorf("got %d tool calls, want 1", len(res.ToolCalls))
	}
}

func TestChatContinuesThread(t *testing.T) {
	a, _ := newTestAgent(t, nil)

	first, err := a.Chat(context.Background(), "", "Get leave balance for employee 2345")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	second, err := a.Chat(context.Background(), first.ThreadID, "Portfolio summary for account 12345")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if second.ThreadID != first.ThreadID {
		t.Errorf("thread id changed: %q -> %q", first.ThreadID, second.ThreadID)
	}
}

func TestChatStreamToolPath(t *testing.T) {
	a, _ := newTestAgent(t, nil)

	var chunks []string
	res, err := a.ChatStream(context.Background(), "", "Portfolio summary for account 12345", func(chunk string) error {
		chunks = append(chunks, chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("ChatStream() error = %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want several words", len(chunks))
	}
	if joined := strings.Join(chunks, ""); joined != res.Reply {
		t.Errorf("concatenated chunks != reply:\n%q\n%q", joined, res.Reply)
	}
	if len(res.ToolCalls) != 1 {
		t.Errorf("got %d tool calls, want 1", len(res.ToolCalls))
	}
}

func TestChatStreamStopsOnEmitError(t *testing.T) {
	a, _ := newTestAgent(t, nil)

	emitted := 0
	res, err := a.ChatStream(context.Background(), "", "Get leave balance for employee 2345", func(string) error {
		emitted++
		if emitted >= 3 {
			return context.Canceled
		}
		return nil
	})
	if err != nil {
		t.Fatalf("ChatStream() error = %v", err)
	}
	if emitted != 3 {
		t.Errorf("emit called %d times, want 3 (stop after first failure)", emitted)
	}
	// The full reply is still persisted even though emission stopped.
	if res.Reply == "" {
		t.Error("reply is empty")
	}
}

func TestSummarizeErrorPrecedence(t *testing.T) {
	a, _ := newTestAgent(t, nil)

	got := a.summarize(CategoryHR, "2345", map[string]any{
		"annual": 24,
		"error":  "employee 2345 not found",
	})
	if got != "employee 2345 not found" {
		t.Errorf("summarize() = %q, want the error text", got)
	}
}
