package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/enterprisellm/orchestrator/internal/security"
)

// ToolNotFoundError reports a name absent from the registry.
type ToolNotFoundError struct {
	Name string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("tool %q not found", e.Name)
}

// ToolExecutionError wraps a handler failure with its original cause.
type ToolExecutionError struct {
	Tool string
	Err  error
}

func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("tool %s failed: %v", e.Tool, e.Err)
}

func (e *ToolExecutionError) Unwrap() error { return e.Err }

// ToolTimeoutError reports a handler that exceeded the per-invocation
// deadline.
type ToolTimeoutError struct {
	Tool    string
	Timeout time.Duration
}

func (e *ToolTimeoutError) Error() string {
	return fmt.Sprintf("tool %s timed out after %s", e.Tool, e.Timeout)
}

// Invocation is the record of one completed dispatch. Created once, never
// mutated; ownership passes to the caller.
type Invocation struct {
	ID         string         `json:"id"`
	ToolName   string         `json:"toolName"`
	Input      map[string]any `json:"input"`
	Output     map[string]any `json:"output"`
	DurationMs int64          `json:"durationMs"`
}

// Dispatcher resolves tool names and invokes handlers with timing, a
// per-invocation deadline and structured error wrapping. It exposes two
// contracts: Call (raising, for in-process callers) and CallSafe (always
// returns an envelope, for the protocol router).
type Dispatcher struct {
	reg     *Registry
	timeout time.Duration
	audit   *security.AuditLogger
}

func NewDispatcher(reg *Registry, timeout time.Duration, audit *security.AuditLogger) *Dispatcher {
	return &Dispatcher{reg: reg, timeout: timeout, audit: audit}
}

// Registry exposes the dispatcher's tool set.
func (d *Dispatcher) Registry() *Registry { return d.reg }

// Call invokes a tool and returns its invocation record, or a typed error
// (*ToolNotFoundError, *ToolExecutionError, *ToolTimeoutError).
func (d *Dispatcher) Call(ctx context.Context, name string, input map[string]any) (*Invocation, error) {
	tool, ok := d.reg.Get(name)
	if !ok {
		return nil, &ToolNotFoundError{Name: name}
	}
	if err := checkRequired(tool.InputSchema, input); err != nil {
		return nil, &ToolExecutionError{Tool: name, Err: err}
	}

	callCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	start := time.Now()
	output, err := tool.Execute(callCtx, input)
	durationMs := time.Since(start).Milliseconds()

	inputJSON, _ := json.Marshal(input)
	digest := security.HashInput(string(inputJSON))

	if err != nil {
		d.audit.LogToolCall(name, digest, durationMs, false, err.Error())
		log.Error().
			Err(err).
			Str("tool", name).
			Int64("duration_ms", durationMs).
			RawJSON("input", inputJSON).
			Msg("tool call failed")
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, &ToolTimeoutError{Tool: name, Timeout: d.timeout}
		}
		return nil, &ToolExecutionError{Tool: name, Err: err}
	}

	d.audit.LogToolCall(name, digest, durationMs, true, "")
	log.Info().
		Str("tool", name).
		Int64("duration_ms", durationMs).
		RawJSON("input", inputJSON).
		Msg("tool call")

	return &Invocation{
		ID:         "tool-" + uuid.NewString(),
		ToolName:   name,
		Input:      input,
		Output:     output,
		DurationMs: durationMs,
	}, nil
}

// CallSafe never returns an error: handler failures come back as an envelope
// with isError set and a text description.
func (d *Dispatcher) CallSafe(ctx context.Context, name string, input map[string]any) CallResult {
	inv, err := d.Call(ctx, name, input)
	if err != nil {
		return CallResult{
			Content: []ContentBlock{{Type: "text", Text: "Error: " + callErrorText(err)}},
			IsError: true,
		}
	}

	text, err := json.Marshal(inv.Output)
	if err != nil {
		return CallResult{
			Content: []ContentBlock{{Type: "text", Text: "Error: " + err.Error()}},
			IsError: true,
		}
	}
	return CallResult{
		Content: []ContentBlock{{Type: "text", Text: string(text)}},
		IsError: false,
	}
}

// callErrorText strips the wrapping prefix so envelopes carry the underlying
// message, matching what a direct caller would see from the cause.
func callErrorText(err error) string {
	var execErr *ToolExecutionError
	if errors.As(err, &execErr) {
		return execErr.Err.Error()
	}
	return err.Error()
}

// checkRequired verifies the schema's required keys are present in the input.
// The rest of the schema stays advisory.
func checkRequired(schema, input map[string]any) error {
	required, ok := schema["required"]
	if !ok {
		return nil
	}

	var names []string
	switch req := required.(type) {
	case []string:
		names = req
	case []any:
		for _, v := range req {
			if s, ok := v.(string); ok {
				names = append(names, s)
			}
		}
	}

	for _, name := range names {
		if _, present := input[name]; !present {
			return fmt.Errorf("missing required argument %q", name)
		}
	}
	return nil
}
