package mcp

import (
	"context"
	"testing"

	"github.com/enterprisellm/orchestrator/internal/tools"
)

func stubTool(name string) tools.Tool {
	return tools.Tool{
		Name:        name,
		Description: "stub",
		InputSchema: map[string]any{"type": "object"},
		Execute: func(context.Context, map[string]any) (map[string]any, error) {
			return map[string]any{"ok": true}, nil
		},
	}
}

func TestRegistryOrder(t *testing.T) {
	reg := NewRegistry(stubTool("c"), stubTool("a"), stubTool("b"))

	list := reg.List()
	if len(list) != 3 {
		t.Fatalf("List() returned %d tools, want 3", len(list))
	}
	want := []string{"c", "a", "b"}
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("List()[%d] = %q, want %q (registration order)", i, list[i].Name, name)
		}
	}
}

func TestRegistrySkipsDuplicates(t *testing.T) {
	reg := NewRegistry(stubTool("a"), stubTool("a"))
	if got := len(reg.List()); got != 1 {
		t.Errorf("duplicate registration kept %d tools, want 1", got)
	}
}

func TestRegistryGet(t *testing.T) {
	reg := NewRegistry(stubTool("a"))

	if _, ok := reg.Get("a"); !ok {
		t.Error("Get(a) = not found, want found")
	}
	if _, ok := reg.Get("missing"); ok {
		t.Error("Get(missing) = found, want not found")
	}
}
