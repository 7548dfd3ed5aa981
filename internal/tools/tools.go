// Package tools defines the Tool type and the three mock enterprise tools
// (HR, CRM, banking) exposed through the MCP dispatcher.
package tools

import "context"

// Tool is a named, schema-documented function mapping an input mapping to an
// output mapping.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]any
	Execute     func(ctx context.Context, input map[string]any) (map[string]any, error)
}
