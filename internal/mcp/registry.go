package mcp

import "github.com/enterprisellm/orchestrator/internal/tools"

// Registry is the fixed, insertion-ordered tool set. Populated at startup;
// read-only afterwards.
type Registry struct {
	byName map[string]tools.Tool
	order  []string
}

func NewRegistry(ts ...tools.Tool) *Registry {
	r := &Registry{byName: make(map[string]tools.Tool, len(ts))}
	for _, t := range ts {
		if _, dup := r.byName[t.Name]; dup {
			continue
		}
		r.byName[t.Name] = t
		r.order = append(r.order, t.Name)
	}
	return r
}

// Get resolves a tool by name. Absence is not an error at this level.
func (r *Registry) Get(name string) (tools.Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// List returns all tools in registration order.
func (r *Registry) List() []tools.Tool {
	out := make([]tools.Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}
