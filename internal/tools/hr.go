package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/enterprisellm/orchestrator/internal/llm"
	"github.com/enterprisellm/orchestrator/internal/store"
)

// HRLeaveBalanceTool reports annual/sick/remaining leave for an employee.
// Unknown employees and store failures come back as a zeroed balance with an
// error field rather than a failed call.
func HRLeaveBalanceTool(st store.Store, gen llm.Generator) Tool {
	return Tool{
		Name:        "hr.getLeaveBalance",
		Description: "Get leave balance for employeeId",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"employeeId": map[string]any{
					"type":        "string",
					"description": "Employee ID to lookup leave balance for",
				},
			},
			"required": []string{"employeeId"},
		},
		Execute: func(ctx context.Context, input map[string]any) (map[string]any, error) {
			employeeID, _ := input["employeeId"].(string)
			if employeeID == "" {
				return nil, fmt.Errorf("employeeId is required")
			}

			emp, err := st.Employee(ctx, employeeID)
			if err != nil {
				if !errors.Is(err, store.ErrNotFound) {
					return nil, fmt.Errorf("hr lookup: %w", err)
				}
				return map[string]any{
					"employeeId": employeeID,
					"annual":     0,
					"sick":       0,
					"remaining":  0,
					"error":      llm.NotFoundMessage(ctx, gen, "employee", employeeID, "HR system"),
				}, nil
			}

			// Balance derived from department, matching the demo dataset.
			mult := 1.0
			if emp.Department == "Engineering" {
				mult = 1.2
			}
			annual := int(20 * mult)
			sick := int(10 * mult)
			remaining := int(float64(annual) * 0.3)

			return map[string]any{
				"employeeId": employeeID,
				"annual":     annual,
				"sick":       sick,
				"remaining":  remaining,
			}, nil
		},
	}
}
