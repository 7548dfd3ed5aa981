package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/enterprisellm/orchestrator/internal/agent"
	"github.com/enterprisellm/orchestrator/internal/config"
	"github.com/enterprisellm/orchestrator/internal/mcp"
	"github.com/enterprisellm/orchestrator/internal/security"
	"github.com/enterprisellm/orchestrator/internal/store"
	"github.com/enterprisellm/orchestrator/internal/tools"
)

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	st := store.NewMemory()
	registry := mcp.NewRegistry(
		tools.HRLeaveBalanceTool(st, nil),
		tools.CRMLookupTool(st, nil),
		tools.BankingPortfolioTool(st, nil),
	)
	dispatcher := mcp.NewDispatcher(registry, time.Second, security.NewAuditLogger(false))
	a := agent.New(st, dispatcher, nil, 25, 0)
	return NewRouter(cfg, st, a, registry, mcp.NewServer(dispatcher))
}

func testConfig() *config.Config {
	return &config.Config{
		CORSOrigins:        []string{"*"},
		APIKeyHeader:       "X-API-Key",
		APIKeys:            []string{"test-key"},
		EnableAuth:         true,
		RateLimitPerMinute: 100,
	}
}

func TestHealthIsPublic(t *testing.T) {
	router := newTestRouter(t, testConfig())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("/health without key: status = %d, want 200", rec.Code)
	}
}

func TestProtectedRoutesRequireKey(t *testing.T) {
	router := newTestRouter(t, testConfig())

	paths := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodPost, "/chat", `{"message":"hi"}`},
		{http.MethodGet, "/tools", ""},
		{http.MethodPost, "/mcp", `{"jsonrpc":"2.0","id":1,"method":"initialize"}`},
		{http.MethodGet, "/entities/all", ""},
		{http.MethodGet, "/data/stats", ""},
	}

	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, strings.NewReader(p.body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without key: status = %d, want 401", p.method, p.path, rec.Code)
		}

		req = httptest.NewRequest(p.method, p.path, strings.NewReader(p.body))
		req.Header.Set("X-API-Key", "test-key")
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code == http.StatusUnauthorized {
			t.Errorf("%s %s with key: still 401", p.method, p.path)
		}
	}
}

func TestAuthDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.EnableAuth = false
	router := newTestRouter(t, cfg)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tools", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("/tools with auth disabled: status = %d, want 200", rec.Code)
	}
}

func TestSecurityHeadersApplied(t *testing.T) {
	router := newTestRouter(t, testConfig())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID missing")
	}
}
