package handler

import (
	"net/http"

	"github.com/enterprisellm/orchestrator/internal/mcp"
	"github.com/enterprisellm/orchestrator/internal/models"
)

// ToolsHandler serves GET /tools, the REST view of the tool catalog.
type ToolsHandler struct {
	registry *mcp.Registry
}

func NewToolsHandler(reg *mcp.Registry) *ToolsHandler {
	return &ToolsHandler{registry: reg}
}

func (h *ToolsHandler) List(w http.ResponseWriter, r *http.Request) {
	ts := h.registry.List()
	descriptors := make([]models.ToolDescriptor, 0, len(ts))
	for _, t := range ts {
		descriptors = append(descriptors, models.ToolDescriptor{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}
	models.WriteJSON(w, http.StatusOK, models.ToolsResponse{Tools: descriptors, Count: len(descriptors)})
}
