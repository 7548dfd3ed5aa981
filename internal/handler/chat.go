// Package handler holds the HTTP endpoints: chat, tool catalog, the JSON-RPC
// bridge, directory browsing and dashboard data.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/enterprisellm/orchestrator/internal/agent"
	"github.com/enterprisellm/orchestrator/internal/mcp"
	"github.com/enterprisellm/orchestrator/internal/models"
	"github.com/enterprisellm/orchestrator/internal/security"
	"github.com/enterprisellm/orchestrator/internal/sse"
)

// ChatHandler serves POST /chat in both buffered and streaming form.
type ChatHandler struct {
	agent     *agent.Agent
	validator *security.MessageValidator
}

func NewChatHandler(a *agent.Agent) *ChatHandler {
	return &ChatHandler{
		agent:     a,
		validator: security.NewMessageValidator(),
	}
}

func (h *ChatHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if result := h.validator.Validate(req.Message); !result.Valid {
		models.WriteError(w, http.StatusBadRequest, result.Message)
		return
	}

	if isStreamRequest(r) {
		h.stream(w, r, req)
		return
	}

	res, err := h.agent.Chat(r.Context(), req.ThreadID, req.Message)
	if err != nil {
		log.Error().Err(err).Msg("chat failed")
		models.WriteError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	models.WriteJSON(w, http.StatusOK, models.ChatResponse{
		ThreadID:  res.ThreadID,
		Message:   res.Reply,
		ToolCalls: toolCallDTOs(res.ToolCalls),
	})
}

func (h *ChatHandler) stream(w http.ResponseWriter, r *http.Request, req models.ChatRequest) {
	emitter, err := sse.New(w)
	if err != nil {
		models.WriteError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}
	defer emitter.Close()

	_, err = h.agent.ChatStream(r.Context(), req.ThreadID, req.Message, emitter.Chunk)
	if err != nil {
		log.Error().Err(err).Msg("chat stream failed")
		_ = emitter.SendError("failed to process message")
	}
}

func isStreamRequest(r *http.Request) bool {
	switch r.URL.Query().Get("stream") {
	case "1", "true":
		return true
	}
	return false
}

func toolCallDTOs(invocations []mcp.Invocation) []models.ToolCall {
	out := make([]models.ToolCall, 0, len(invocations))
	for _, inv := range invocations {
		out = append(out, models.ToolCall{
			ID:         inv.ID,
			ToolName:   inv.ToolName,
			Input:      inv.Input,
			Output:     inv.Output,
			DurationMs: inv.DurationMs,
		})
	}
	return out
}
