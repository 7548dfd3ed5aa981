package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/enterprisellm/orchestrator/internal/models"
	"github.com/enterprisellm/orchestrator/internal/store"
)

// DataHandler serves the dashboard data endpoints.
type DataHandler struct {
	store store.Store
}

func NewDataHandler(st store.Store) *DataHandler {
	return &DataHandler{store: st}
}

func (h *DataHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		models.WriteError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	models.WriteJSON(w, http.StatusOK, stats)
}

func (h *DataHandler) ToolStats(w http.ResponseWriter, r *http.Request) {
	usage, err := h.store.ToolUsage(r.Context())
	if err != nil {
		models.WriteError(w, http.StatusInternalServerError, "failed to load tool stats")
		return
	}
	models.WriteJSON(w, http.StatusOK, map[string]any{"tools": usage})
}

func (h *DataHandler) RecentConversations(w http.ResponseWriter, r *http.Request) {
	conversations, err := h.store.RecentConversations(r.Context(), 10)
	if err != nil {
		models.WriteError(w, http.StatusInternalServerError, "failed to load conversations")
		return
	}
	models.WriteJSON(w, http.StatusOK, map[string]any{"conversations": conversations})
}

func (h *DataHandler) Thread(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "thread_id")
	thread, err := h.store.Thread(r.Context(), threadID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			models.WriteError(w, http.StatusNotFound, "thread not found")
			return
		}
		models.WriteError(w, http.StatusInternalServerError, "failed to load thread")
		return
	}
	models.WriteJSON(w, http.StatusOK, thread)
}
