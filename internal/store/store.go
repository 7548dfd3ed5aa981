// Package store persists conversation history (threads, messages, tool
// invocations) and the mock enterprise directory (employees, customers,
// accounts) consumed by the tools.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a looked-up entity does not exist.
var ErrNotFound = errors.New("not found")

type Thread struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Messages  []Message `json:"messages,omitempty"`
}

type Message struct {
	ID        string           `json:"id"`
	ThreadID  string           `json:"threadId"`
	Role      string           `json:"role"`
	Content   string           `json:"content"`
	Meta      map[string]any   `json:"meta,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	ToolCalls []ToolInvocation `json:"toolCalls,omitempty"`
}

type ToolInvocation struct {
	ID         string         `json:"id"`
	MessageID  string         `json:"messageId"`
	ToolName   string         `json:"toolName"`
	Input      map[string]any `json:"input"`
	Output     map[string]any `json:"output"`
	DurationMs int64          `json:"durationMs"`
	CreatedAt  time.Time      `json:"createdAt"`
}

type Employee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Status     string `json:"status"`
}

type Customer struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Tier    string `json:"tier"`
	Status  string `json:"status"`
}

type Account struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Owner    string  `json:"owner"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

// ThreadSummary is a dashboard view of one thread.
type ThreadSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	LastMessage string    `json:"lastMessage"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Stats struct {
	TotalThreads    int             `json:"totalThreads"`
	TotalMessages   int             `json:"totalMessages"`
	ToolInvocations int             `json:"toolInvocations"`
	RecentThreads   []ThreadSummary `json:"recentThreads"`
}

type ToolUsage struct {
	ToolName string `json:"toolName"`
	Count    int    `json:"count"`
}

// Conversation is a dashboard view of one thread plus the tool calls of its
// latest assistant message.
type Conversation struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	LastMessage string           `json:"lastMessage"`
	ToolCalls   []ToolInvocation `json:"toolCalls"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// Store is the persistence contract consumed by the chat orchestrator, the
// tools and the dashboard handlers. Implemented by Postgres (pgx) and by the
// in-memory demo store.
type Store interface {
	// Chat history
	EnsureThread(ctx context.Context, threadID string) (string, error)
	Thread(ctx context.Context, threadID string) (*Thread, error)
	AddMessage(ctx context.Context, threadID, role, content string, meta map[string]any) (string, error)
	RecentMessages(ctx context.Context, threadID string, limit int) ([]Message, error)
	AddToolInvocation(ctx context.Context, messageID string, inv ToolInvocation) (string, error)
	UpdateThreadTitle(ctx context.Context, threadID, title string) error

	// Enterprise directory
	Employee(ctx context.Context, id string) (*Employee, error)
	Customer(ctx context.Context, email string) (*Customer, error)
	Account(ctx context.Context, id string) (*Account, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	ListCustomers(ctx context.Context) ([]Customer, error)
	ListAccounts(ctx context.Context) ([]Account, error)

	// Dashboards
	Stats(ctx context.Context) (*Stats, error)
	ToolUsage(ctx context.Context) ([]ToolUsage, error)
	RecentConversations(ctx context.Context, limit int) ([]Conversation, error)

	Ping(ctx context.Context) error
	Close()
}
