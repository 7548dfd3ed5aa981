package tools

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/enterprisellm/orchestrator/internal/llm"
	"github.com/enterprisellm/orchestrator/internal/store"
)

type holding struct {
	Symbol string  `json:"symbol"`
	Weight float64 `json:"weight"`
}

var holdingsByType = map[string][]holding{
	"investment": {
		{"AAPL", 0.25}, {"MSFT", 0.20}, {"GOOGL", 0.15}, {"TSLA", 0.10},
		{"NVDA", 0.10}, {"META", 0.10}, {"AMZN", 0.10},
	},
	"retirement": {
		{"SPY", 0.40}, {"QQQ", 0.30}, {"VTI", 0.20}, {"BND", 0.10},
	},
	"checking": {{"CASH", 1.0}},
	"savings":  {{"CASH", 1.0}},
}

// BankingPortfolioTool summarizes an account: total value with a simulated
// P&L swing and the top holdings for the account type.
func BankingPortfolioTool(st store.Store, gen llm.Generator) Tool {
	return Tool{
		Name:        "banking.getPortfolioSummary",
		Description: "Get portfolio summary by accountId",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"accountId": map[string]any{
					"type":        "string",
					"description": "Banking account ID to get portfolio summary for",
				},
			},
			"required": []string{"accountId"},
		},
		Execute: func(ctx context.Context, input map[string]any) (map[string]any, error) {
			accountID, _ := input["accountId"].(string)
			if accountID == "" {
				return nil, fmt.Errorf("accountId is required")
			}

			acct, err := st.Account(ctx, accountID)
			if err != nil {
				if !errors.Is(err, store.ErrNotFound) {
					return nil, fmt.Errorf("banking lookup: %w", err)
				}
				return map[string]any{
					"accountId":   accountID,
					"totalValue":  0,
					"pnlPct":      0,
					"topHoldings": []map[string]any{},
					"error":       llm.NotFoundMessage(ctx, gen, "account", accountID, "banking system"),
				}, nil
			}

			// P&L between -10% and +10%.
			pnlPct := (rand.Float64() - 0.5) * 20
			totalValue := int(acct.Balance * (1 + pnlPct/100))

			holdings, ok := holdingsByType[acct.Type]
			if !ok {
				holdings = []holding{{"CASH", 1.0}}
			}
			if len(holdings) > 4 {
				holdings = holdings[:4]
			}
			top := make([]map[string]any, 0, len(holdings))
			for _, h := range holdings {
				top = append(top, map[string]any{"symbol": h.Symbol, "weight": h.Weight})
			}

			return map[string]any{
				"accountId":   acct.ID,
				"totalValue":  totalValue,
				"pnlPct":      math.Round(pnlPct*100) / 100,
				"topHoldings": top,
			}, nil
		},
	}
}
