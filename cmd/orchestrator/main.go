package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/enterprisellm/orchestrator/internal/agent"
	"github.com/enterprisellm/orchestrator/internal/config"
	"github.com/enterprisellm/orchestrator/internal/llm"
	"github.com/enterprisellm/orchestrator/internal/mcp"
	"github.com/enterprisellm/orchestrator/internal/security"
	"github.com/enterprisellm/orchestrator/internal/server"
	"github.com/enterprisellm/orchestrator/internal/store"
	"github.com/enterprisellm/orchestrator/internal/tools"
)

func main() {
	transport := flag.String("transport", "http", "serving mode: http or stdio")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	zerolog.SetGlobalLevel(cfg.ParsedLogLevel())
	if cfg.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer st.Close()

	var gen llm.Generator
	if cfg.AnthropicAPIKey != "" {
		gen = llm.NewAnthropic(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.AnthropicBaseURL)
		log.Info().Str("model", cfg.AnthropicModel).Msg("anthropic client configured")
	} else {
		log.Warn().Msg("no anthropic API key; free-form replies disabled")
	}

	registry := mcp.NewRegistry(
		tools.HRLeaveBalanceTool(st, gen),
		tools.CRMLookupTool(st, gen),
		tools.BankingPortfolioTool(st, gen),
	)
	audit := security.NewAuditLogger(cfg.EnableAuditLogging)
	dispatcher := mcp.NewDispatcher(registry, time.Duration(cfg.ToolTimeoutSeconds)*time.Second, audit)
	mcpServer := mcp.NewServer(dispatcher)

	if *transport == "stdio" || cfg.MCPStdio {
		log.Info().Msg("serving over stdio")
		if err := mcpServer.ServeStdio(ctx, os.Stdin, os.Stdout); err != nil {
			log.Fatal().Err(err).Msg("stdio loop")
		}
		return
	}

	a := agent.New(st, dispatcher, gen, cfg.HistoryWindow, time.Duration(cfg.StreamDelayMs)*time.Millisecond)
	router := server.NewRouter(cfg, st, a, registry, mcpServer)

	if err := server.New(cfg, router).Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

// openStore prefers Postgres when a DSN is configured and falls back to the
// seeded in-memory store for demo runs.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.DatabaseURL == "" {
		log.Info().Msg("no DATABASE_URL; using in-memory store")
		return store.NewMemory(), nil
	}
	return store.NewPostgres(ctx, cfg.DatabaseURL)
}
