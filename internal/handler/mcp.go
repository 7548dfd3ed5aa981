package handler

import (
	"encoding/json"
	"net/http"

	"github.com/enterprisellm/orchestrator/internal/mcp"
	"github.com/enterprisellm/orchestrator/internal/models"
)

// MCPHandler exposes the JSON-RPC dispatcher over POST /mcp. Protocol-level
// failures come back as JSON-RPC error objects with HTTP 200; only an
// unreadable body gets a parse-error response.
type MCPHandler struct {
	server *mcp.Server
}

func NewMCPHandler(s *mcp.Server) *MCPHandler {
	return &MCPHandler{server: s}
}

func (h *MCPHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req mcp.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteJSON(w, http.StatusOK, mcp.Response{
			Version: "2.0",
			Error:   &mcp.Error{Code: mcp.CodeParseError, Message: "Parse error"},
		})
		return
	}
	models.WriteJSON(w, http.StatusOK, h.server.Handle(r.Context(), req))
}
