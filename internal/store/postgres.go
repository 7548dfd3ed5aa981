package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Postgres implements Store on a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS threads (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id UUID PRIMARY KEY,
		thread_id UUID NOT NULL REFERENCES threads(id) ON DELETE CASCADE,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		meta JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_thread ON messages(thread_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS tool_invocations (
		id UUID PRIMARY KEY,
		message_id UUID NOT NULL REFERENCES messages(id) ON DELETE CASCADE,
		tool_name TEXT NOT NULL,
		input JSONB NOT NULL DEFAULT '{}',
		output JSONB NOT NULL DEFAULT '{}',
		duration_ms BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tool_invocations_message ON tool_invocations(message_id)`,
	`CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		department TEXT NOT NULL,
		status TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		company TEXT NOT NULL,
		tier TEXT NOT NULL,
		status TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		owner TEXT NOT NULL,
		balance DOUBLE PRECISION NOT NULL,
		currency TEXT NOT NULL
	)`,
}

// NewPostgres connects, ensures the schema and seeds the directory tables
// when they are empty.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	p := &Postgres{pool: pool}
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
	}
	if err := p.seed(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("seed: %w", err)
	}
	return p, nil
}

func (p *Postgres) seed(ctx context.Context) error {
	var n int
	if err := p.pool.QueryRow(ctx, `SELECT count(*) FROM employees`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, e := range SeedEmployees {
		if _, err := p.pool.Exec(ctx,
			`INSERT INTO employees (id, name, department, status) VALUES ($1,$2,$3,$4)`,
			e.ID, e.Name, e.Department, e.Status); err != nil {
			return err
		}
	}
	for _, c := range SeedCustomers {
		if _, err := p.pool.Exec(ctx,
			`INSERT INTO customers (id, email, name, company, tier, status) VALUES ($1,$2,$3,$4,$5,$6)`,
			c.ID, c.Email, c.Name, c.Company, c.Tier, c.Status); err != nil {
			return err
		}
	}
	for _, a := range SeedAccounts {
		if _, err := p.pool.Exec(ctx,
			`INSERT INTO accounts (id, type, owner, balance, currency) VALUES ($1,$2,$3,$4,$5)`,
			a.ID, a.Type, a.Owner, a.Balance, a.Currency); err != nil {
			return err
		}
	}
	log.Info().
		Int("employees", len(SeedEmployees)).
		Int("customers", len(SeedCustomers)).
		Int("accounts", len(SeedAccounts)).
		Msg("seeded directory tables")
	return nil
}

func (p *Postgres) EnsureThread(ctx context.Context, threadID string) (string, error) {
	if threadID != "" {
		var id string
		err := p.pool.QueryRow(ctx, `SELECT id FROM threads WHERE id = $1`, threadID).Scan(&id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return "", err
		}
	}

	id := uuid.NewString()
	if _, err := p.pool.Exec(ctx, `INSERT INTO threads (id) VALUES ($1)`, id); err != nil {
		return "", err
	}
	return id, nil
}

func (p *Postgres) Thread(ctx context.Context, threadID string) (*Thread, error) {
	var t Thread
	err := p.pool.QueryRow(ctx,
		`SELECT id, title, created_at, updated_at FROM threads WHERE id = $1`, threadID).
		Scan(&t.ID, &t.Title, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	msgs, err := p.messagesWithToolCalls(ctx, threadID, 0)
	if err != nil {
		return nil, err
	}
	t.Messages = msgs
	return &t, nil
}

func (p *Postgres) AddMessage(ctx context.Context, threadID, role, content string, meta map[string]any) (string, error) {
	if meta == nil {
		meta = map[string]any{}
	}
	id := uuid.NewString()
	if _, err := p.pool.Exec(ctx,
		`INSERT INTO messages (id, thread_id, role, content, meta) VALUES ($1,$2,$3,$4,$5)`,
		id, threadID, role, content, meta); err != nil {
		return "", err
	}
	if _, err := p.pool.Exec(ctx,
		`UPDATE threads SET updated_at = now() WHERE id = $1`, threadID); err != nil {
		return "", err
	}
	return id, nil
}

func (p *Postgres) RecentMessages(ctx context.Context, threadID string, limit int) ([]Message, error) {
	return p.messagesWithToolCalls(ctx, threadID, limit)
}

// messagesWithToolCalls returns the last limit messages of a thread in
// chronological order (all messages when limit is 0).
func (p *Postgres) messagesWithToolCalls(ctx context.Context, threadID string, limit int) ([]Message, error) {
	q := `SELECT id, thread_id, role, content, meta, created_at FROM messages
		WHERE thread_id = $1 ORDER BY created_at DESC`
	args := []any{threadID}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := p.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.ThreadID, &m.Role, &m.Content, &m.Meta, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Flip newest-first into chronological order.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}

	for i := range msgs {
		calls, err := p.toolCallsFor(ctx, msgs[i].ID)
		if err != nil {
			return nil, err
		}
		msgs[i].ToolCalls = calls
	}
	return msgs, nil
}

func (p *Postgres) toolCallsFor(ctx context.Context, messageID string) ([]ToolInvocation, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, message_id, tool_name, input, output, duration_ms, created_at
		 FROM tool_invocations WHERE message_id = $1 ORDER BY created_at`, messageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ToolInvocation
	for rows.Next() {
		var inv ToolInvocation
		if err := rows.Scan(&inv.ID, &inv.MessageID, &inv.ToolName, &inv.Input, &inv.Output, &inv.DurationMs, &inv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (p *Postgres) AddToolInvocation(ctx context.Context, messageID string, inv ToolInvocation) (string, error) {
	if inv.Input == nil {
		inv.Input = map[string]any{}
	}
	if inv.Output == nil {
		inv.Output = map[string]any{}
	}
	id := uuid.NewString()
	_, err := p.pool.Exec(ctx,
		`INSERT INTO tool_invocations (id, message_id, tool_name, input, output, duration_ms)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		id, messageID, inv.ToolName, inv.Input, inv.Output, inv.DurationMs)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (p *Postgres) UpdateThreadTitle(ctx context.Context, threadID, title string) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE threads SET title = $1, updated_at = now() WHERE id = $2`, title, threadID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) Employee(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	err := p.pool.QueryRow(ctx,
		`SELECT id, name, department, status FROM employees WHERE id = $1`, id).
		Scan(&e.ID, &e.Name, &e.Department, &e.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (p *Postgres) Customer(ctx context.Context, email string) (*Customer, error) {
	var c Customer
	err := p.pool.QueryRow(ctx,
		`SELECT id, email, name, company, tier, status FROM customers WHERE email = $1`, email).
		Scan(&c.ID, &c.Email, &c.Name, &c.Company, &c.Tier, &c.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (p *Postgres) Account(ctx context.Context, id string) (*Account, error) {
	var a Account
	err := p.pool.QueryRow(ctx,
		`SELECT id, type, owner, balance, currency FROM accounts WHERE id = $1`, id).
		Scan(&a.ID, &a.Type, &a.Owner, &a.Balance, &a.Currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (p *Postgres) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, name, department, status FROM employees ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Department, &e.Status); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (p *Postgres) ListCustomers(ctx context.Context) ([]Customer, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, email, name, company, tier, status FROM customers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Email, &c.Name, &c.Company, &c.Tier, &c.Status); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (p *Postgres) ListAccounts(ctx context.Context) ([]Account, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, type, owner, balance, currency FROM accounts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Type, &a.Owner, &a.Balance, &a.Currency); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (p *Postgres) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	if err := p.pool.QueryRow(ctx, `SELECT count(*) FROM threads`).Scan(&s.TotalThreads); err != nil {
		return nil, err
	}
	if err := p.pool.QueryRow(ctx, `SELECT count(*) FROM messages`).Scan(&s.TotalMessages); err != nil {
		return nil, err
	}
	if err := p.pool.QueryRow(ctx, `SELECT count(*) FROM tool_invocations`).Scan(&s.ToolInvocations); err != nil {
		return nil, err
	}

	rows, err := p.pool.Query(ctx, `
		SELECT t.id, t.title, t.updated_at,
		       COALESCE((SELECT content FROM messages m
		                 WHERE m.thread_id = t.id
		                 ORDER BY m.created_at DESC LIMIT 1), 'No messages')
		FROM threads t ORDER BY t.updated_at DESC LIMIT 5`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ts ThreadSummary
		if err := rows.Scan(&ts.ID, &ts.Title, &ts.UpdatedAt, &ts.LastMessage); err != nil {
			return nil, err
		}
		s.RecentThreads = append(s.RecentThreads, ts)
	}
	return &s, rows.Err()
}

func (p *Postgres) ToolUsage(ctx context.Context) ([]ToolUsage, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT tool_name, count(*) FROM tool_invocations
		GROUP BY tool_name ORDER BY count(*) DESC, tool_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ToolUsage
	for rows.Next() {
		var u ToolUsage
		if err := rows.Scan(&u.ToolName, &u.Count); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (p *Postgres) RecentConversations(ctx context.Context, limit int) ([]Conversation, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT t.id, t.title, t.updated_at,
		       COALESCE((SELECT id FROM messages m
		                 WHERE m.thread_id = t.id AND m.role = 'assistant'
		                 ORDER BY m.created_at DESC LIMIT 1), ''),
		       COALESCE((SELECT content FROM messages m
		                 WHERE m.thread_id = t.id AND m.role = 'assistant'
		                 ORDER BY m.created_at DESC LIMIT 1), 'No messages')
		FROM threads t ORDER BY t.updated_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Conversation
	for rows.Next() {
		var conv Conversation
		var lastAssistantID string
		if err := rows.Scan(&conv.ID, &conv.Title, &conv.UpdatedAt, &lastAssistantID, &conv.LastMessage); err != nil {
			return nil, err
		}
		conv.ToolCalls = []ToolInvocation{}
		if lastAssistantID != "" {
			calls, err := p.toolCallsFor(ctx, lastAssistantID)
			if err != nil {
				return nil, err
			}
			if len(calls) > 3 {
				calls = calls[len(calls)-3:]
			}
			if calls != nil {
				conv.ToolCalls = calls
			}
		}
		out = append(out, conv)
	}
	return out, rows.Err()
}

func (p *Postgres) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }

func (p *Postgres) Close() { p.pool.Close() }
