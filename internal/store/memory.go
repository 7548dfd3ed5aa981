package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Store used when no DATABASE_URL is configured and
// by the test suite. Seeded with the demo fixtures.
type Memory struct {
	mu sync.RWMutex

	threads     map[string]*Thread
	threadOrder []string
	messages    map[string][]Message        // threadID -> messages in insertion order
	toolCalls   map[string][]ToolInvocation // messageID -> invocations

	employees []Employee
	customers []Customer
	accounts  []Account
}

func NewMemory() *Memory {
	return &Memory{
		threads:   make(map[string]*Thread),
		messages:  make(map[string][]Message),
		toolCalls: make(map[string][]ToolInvocation),
		employees: append([]Employee(nil), SeedEmployees...),
		customers: append([]Customer(nil), SeedCustomers...),
		accounts:  append([]Account(nil), SeedAccounts...),
	}
}

func (m *Memory) EnsureThread(_ context.Context, threadID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if threadID != "" {
		if _, ok := m.threads[threadID]; ok {
			return threadID, nil
		}
	}

	now := time.Now()
	t := &Thread{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	m.threads[t.ID] = t
	m.threadOrder = append(m.threadOrder, t.ID)
	return t.ID, nil
}

func (m *Memory) Thread(_ context.Context, threadID string) (*Thread, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.threads[threadID]
	if !ok {
		return nil, ErrNotFound
	}
	out := *t
	for _, msg := range m.messages[threadID] {
		msg.ToolCalls = append([]ToolInvocation(nil), m.toolCalls[msg.ID]...)
		out.Messages = append(out.Messages, msg)
	}
	return &out, nil
}

func (m *Memory) AddMessage(_ context.Context, threadID, role, content string, meta map[string]any) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.threads[threadID]
	if !ok {
		return "", ErrNotFound
	}

	msg := Message{
		ID:        uuid.NewString(),
		ThreadID:  threadID,
		Role:      role,
		Content:   content,
		Meta:      meta,
		CreatedAt: time.Now(),
	}
	m.messages[threadID] = append(m.messages[threadID], msg)
	t.UpdatedAt = msg.CreatedAt
	return msg.ID, nil
}

func (m *Memory) RecentMessages(_ context.Context, threadID string, limit int) ([]Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	msgs := m.messages[threadID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]Message, len(msgs))
	for i, msg := range msgs {
		msg.ToolCalls = append([]ToolInvocation(nil), m.toolCalls[msg.ID]...)
		out[i] = msg
	}
	return out, nil
}

func (m *Memory) AddToolInvocation(_ context.Context, messageID string, inv ToolInvocation) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inv.ID = uuid.NewString()
	inv.MessageID = messageID
	inv.CreatedAt = time.Now()
	m.toolCalls[messageID] = append(m.toolCalls[messageID], inv)
	return inv.ID, nil
}

func (m *Memory) UpdateThreadTitle(_ context.Context, threadID, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.threads[threadID]
	if !ok {
		return ErrNotFound
	}
	t.Title = title
	t.UpdatedAt = time.Now()
	return nil
}

func (m *Memory) Employee(_ context.Context, id string) (*Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.employees {
		if e.ID == id {
			out := e
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) Customer(_ context.Context, email string) (*Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.customers {
		if c.Email == email {
			out := c
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) Account(_ context.Context, id string) (*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.accounts {
		if a.ID == id {
			out := a
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListEmployees(_ context.Context) ([]Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := append([]Employee(nil), m.employees...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) ListCustomers(_ context.Context) ([]Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := append([]Customer(nil), m.customers...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) ListAccounts(_ context.Context) ([]Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := append([]Account(nil), m.accounts...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) Stats(_ context.Context) (*Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	totalMessages := 0
	totalToolCalls := 0
	for _, msgs := range m.messages {
		totalMessages += len(msgs)
		for _, msg := range msgs {
			totalToolCalls += len(m.toolCalls[msg.ID])
		}
	}

	recent := m.recentThreadsLocked(5)
	summaries := make([]ThreadSummary, 0, len(recent))
	for _, t := range recent {
		summaries = append(summaries, ThreadSummary{
			ID:          t.ID,
			Title:       t.Title,
			LastMessage: m.lastMessageLocked(t.ID, ""),
			UpdatedAt:   t.UpdatedAt,
		})
	}

	return &Stats{
		TotalThreads:    len(m.threads),
		TotalMessages:   totalMessages,
		ToolInvocations: totalToolCalls,
		RecentThreads:   summaries,
	}, nil
}

func (m *Memory) ToolUsage(_ context.Context) ([]ToolUsage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[string]int)
	for _, invs := range m.toolCalls {
		for _, inv := range invs {
			counts[inv.ToolName]++
		}
	}
	out := make([]ToolUsage, 0, len(counts))
	for name, n := range counts {
		out = append(out, ToolUsage{ToolName: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ToolName < out[j].ToolName
	})
	return out, nil
}

func (m *Memory) RecentConversations(_ context.Context, limit int) ([]Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Conversation, 0, limit)
	for _, t := range m.recentThreadsLocked(limit) {
		conv := Conversation{
			ID:          t.ID,
			Title:       t.Title,
			LastMessage: m.lastMessageLocked(t.ID, "assistant"),
			UpdatedAt:   t.UpdatedAt,
			ToolCalls:   []ToolInvocation{},
		}
		msgs := m.messages[t.ID]
		for i := len(msgs) - 1; i >= 0; i-- {
			if msgs[i].Role != "assistant" {
				continue
			}
			calls := m.toolCalls[msgs[i].ID]
			if len(calls) > 3 {
				calls = calls[len(calls)-3:]
			}
			conv.ToolCalls = append([]ToolInvocation(nil), calls...)
			break
		}
		out = append(out, conv)
	}
	return out, nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close() {}

// recentThreadsLocked returns up to n threads ordered by UpdatedAt descending.
func (m *Memory) recentThreadsLocked(n int) []*Thread {
	threads := make([]*Thread, 0, len(m.threads))
	for _, id := range m.threadOrder {
		threads = append(threads, m.threads[id])
	}
	sort.Slice(threads, func(i, j int) bool { return threads[i].UpdatedAt.After(threads[j].UpdatedAt) })
	if n > 0 && len(threads) > n {
		threads = threads[:n]
	}
	return threads
}

func (m *Memory) lastMessageLocked(threadID, role string) string {
	msgs := m.messages[threadID]
	for i := len(msgs) - 1; i >= 0; i-- {
		if role == "" || msgs[i].Role == role {
			return msgs[i].Content
		}
	}
	return "No messages"
}
