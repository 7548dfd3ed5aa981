package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/enterprisellm/orchestrator/internal/models"
	"github.com/enterprisellm/orchestrator/internal/store"
)

func TestEntitiesEndpoints(t *testing.T) {
	h := NewEntitiesHandler(store.NewMemory())

	t.Run("employees", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Employees(rec, httptest.NewRequest(http.MethodGet, "/entities/hr/employees", nil))

		var resp struct {
			Total       int      `json:"total"`
			Departments []string `json:"departments"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.Total != 10 {
			t.Errorf("total = %d, want 10", resp.Total)
		}
		if len(resp.Departments) == 0 {
			t.Error("departments is empty")
		}
	})

	t.Run("customers", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Customers(rec, httptest.NewRequest(http.MethodGet, "/entities/crm/customers", nil))

		var resp struct {
			Total int      `json:"total"`
			Tiers []string `json:"tiers"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.Total != 10 {
			t.Errorf("total = %d, want 10", resp.Total)
		}
		if len(resp.Tiers) != 4 {
			t.Errorf("tiers = %v, want 4 distinct", resp.Tiers)
		}
	})

	t.Run("accounts", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Accounts(rec, httptest.NewRequest(http.MethodGet, "/entities/banking/accounts", nil))

		var resp struct {
			Total        int     `json:"total"`
			TotalBalance float64 `json:"totalBalance"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.Total != 10 {
			t.Errorf("total = %d, want 10", resp.Total)
		}
		if resp.TotalBalance <= 0 {
			t.Errorf("totalBalance = %v", resp.TotalBalance)
		}
	})

	t.Run("all", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.All(rec, httptest.NewRequest(http.MethodGet, "/entities/all", nil))

		var resp map[string]struct {
			Total int `json:"total"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		for _, system := range []string{"hr", "crm", "banking"} {
			if resp[system].Total != 10 {
				t.Errorf("%s total = %d, want 10", system, resp[system].Total)
			}
		}
	})
}

func TestDataEndpoints(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()
	threadID, _ := st.EnsureThread(ctx, "")
	st.AddMessage(ctx, threadID, "user", "hello", nil)
	msgID, _ := st.AddMessage(ctx, threadID, "assistant", "hi", nil)
	st.AddToolInvocation(ctx, msgID, store.ToolInvocation{ToolName: "hr.getLeaveBalance"})

	h := NewDataHandler(st)

	t.Run("stats", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Stats(rec, httptest.NewRequest(http.MethodGet, "/data/stats", nil))

		var stats store.Stats
		if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if stats.TotalThreads != 1 || stats.TotalMessages != 2 || stats.ToolInvocations != 1 {
			t.Errorf("stats = %+v", stats)
		}
	})

	t.Run("tool stats", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ToolStats(rec, httptest.NewRequest(http.MethodGet, "/data/tool-stats", nil))

		var resp struct {
			Tools []store.ToolUsage `json:"tools"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(resp.Tools) != 1 || resp.Tools[0].Count != 1 {
			t.Errorf("tools = %+v", resp.Tools)
		}
	})

	t.Run("recent conversations", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.RecentConversations(rec, httptest.NewRequest(http.MethodGet, "/data/recent-conversations", nil))

		var resp struct {
			Conversations []store.Conversation `json:"conversations"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(resp.Conversations) != 1 {
			t.Fatalf("conversations = %d, want 1", len(resp.Conversations))
		}
	})

	t.Run("thread", func(t *testing.T) {
		r := chi.NewRouter()
		r.Get("/data/threads/{thread_id}", h.Thread)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/data/threads/"+threadID, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var thread store.Thread
		if err := json.Unmarshal(rec.Body.Bytes(), &thread); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(thread.Messages) != 2 {
			t.Errorf("messages = %d, want 2", len(thread.Messages))
		}

		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/data/threads/missing", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("missing thread status = %d, want 404", rec.Code)
		}
	})
}

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler(store.NewMemory(), "1.0.0")

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp models.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.Version != "1.0.0" {
		t.Errorf("version = %q", resp.Version)
	}
	if resp.Checks["store"] != "ok" {
		t.Errorf("checks = %v", resp.Checks)
	}
}
