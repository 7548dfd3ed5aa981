package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog/log"

	"github.com/enterprisellm/orchestrator/internal/models"
)

// Server routes request envelopes to the dispatcher. Each request is
// independent; no state persists between calls.
type Server struct {
	dispatcher *Dispatcher
}

func NewServer(dispatcher *Dispatcher) *Server {
	return &Server{dispatcher: dispatcher}
}

// Handle dispatches one request and always returns a response with exactly
// one of result/error set. Panics during dispatch are reported as internal
// errors; nothing escapes.
func (s *Server) Handle(ctx context.Context, req Request) (resp Response) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().
				Interface("panic", rec).
				Str("method", req.Method).
				Str("stack", string(debug.Stack())).
				Msg("mcp request panic")
			resp = errorResponse(req.ID, CodeInternalError, "Internal error", fmt.Sprint(rec))
		}
	}()

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	default:
		return errorResponse(req.ID, CodeMethodNotFound, "Method not found", nil)
	}
}

func (s *Server) handleInitialize(req Request) Response {
	return resultResponse(req.ID, map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    serverName,
			"version": serverVersion,
		},
	})
}

func (s *Server) handleToolsList(req Request) Response {
	list := s.dispatcher.Registry().List()
	descriptors := make([]models.ToolDescriptor, 0, len(list))
	for _, t := range list {
		descriptors = append(descriptors, models.ToolDescriptor{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}
	return resultResponse(req.ID, map[string]any{"tools": descriptors})
}

type toolCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

func (s *Server) handleToolsCall(ctx context.Context, req Request) Response {
	var params toolCallParams
	if len(req.Params) == 0 {
		return errorResponse(req.ID, CodeInvalidParams, "Invalid params: missing params", nil)
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, CodeInvalidParams, "Invalid params: "+err.Error(), nil)
	}
	if params.Name == "" {
		return errorResponse(req.ID, CodeInvalidParams, "Invalid params: name is required", nil)
	}
	if params.Arguments == nil {
		return errorResponse(req.ID, CodeInvalidParams, "Invalid params: arguments is required", nil)
	}

	if _, ok := s.dispatcher.Registry().Get(params.Name); !ok {
		return errorResponse(req.ID, CodeInvalidParams,
			fmt.Sprintf("Tool '%s' not found", params.Name), nil)
	}

	return resultResponse(req.ID, s.dispatcher.CallSafe(ctx, params.Name, params.Arguments))
}
