package tools

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/enterprisellm/orchestrator/internal/llm"
	"github.com/enterprisellm/orchestrator/internal/store"
)

var tierMultipliers = map[string]float64{
	"Bronze":   0.5,
	"Silver":   1.0,
	"Gold":     1.5,
	"Platinum": 2.0,
}

// CRMLookupTool resolves a customer by email and synthesizes a recent last
// order sized by tier.
func CRMLookupTool(st store.Store, gen llm.Generator) Tool {
	return Tool{
		Name:        "crm.lookupCustomer",
		Description: "Look up customer by email",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"email": map[string]any{
					"type":        "string",
					"format":      "email",
					"description": "Customer email address to lookup",
				},
			},
			"required": []string{"email"},
		},
		Execute: func(ctx context.Context, input map[string]any) (map[string]any, error) {
			email, _ := input["email"].(string)
			if email == "" {
				return nil, fmt.Errorf("email is required")
			}

			cust, err := st.Customer(ctx, email)
			if err != nil {
				if !errors.Is(err, store.ErrNotFound) {
					return nil, fmt.Errorf("crm lookup: %w", err)
				}
				return map[string]any{
					"email": email,
					"id":    "",
					"tier":  "",
					"lastOrder": map[string]any{
						"date":  "",
						"value": 0,
					},
					"error": llm.NotFoundMessage(ctx, gen, "customer", email, "CRM system"),
				}, nil
			}

			mult, ok := tierMultipliers[cust.Tier]
			if !ok {
				mult = 1.0
			}
			orderValue := int(500 * mult)
			lastOrderDate := time.Now().AddDate(0, 0, -rand.Intn(180))

			return map[string]any{
				"email": cust.Email,
				"id":    cust.ID,
				"tier":  cust.Tier,
				"lastOrder": map[string]any{
					"date":  lastOrderDate.Format("2006-01-02"),
					"value": orderValue,
				},
			}, nil
		},
	}
}
