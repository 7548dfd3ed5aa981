package handler

import (
	"net/http"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/enterprisellm/orchestrator/internal/models"
	"github.com/enterprisellm/orchestrator/internal/store"
)

// EntitiesHandler serves the directory-browsing endpoints backing the demo
// UI: per-system listings plus a combined view.
type EntitiesHandler struct {
	store store.Store
}

func NewEntitiesHandler(st store.Store) *EntitiesHandler {
	return &EntitiesHandler{store: st}
}

func (h *EntitiesHandler) Employees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.store.ListEmployees(r.Context())
	if err != nil {
		models.WriteError(w, http.StatusInternalServerError, "failed to list employees")
		return
	}
	models.WriteJSON(w, http.StatusOK, map[string]any{
		"employees":   employees,
		"total":       len(employees),
		"departments": distinct(employees, func(e store.Employee) string { return e.Department }),
	})
}

func (h *EntitiesHandler) Customers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.store.ListCustomers(r.Context())
	if err != nil {
		models.WriteError(w, http.StatusInternalServerError, "failed to list customers")
		return
	}
	models.WriteJSON(w, http.StatusOK, map[string]any{
		"customers": customers,
		"total":     len(customers),
		"companies": distinct(customers, func(c store.Customer) string { return c.Company }),
		"tiers":     distinct(customers, func(c store.Customer) string { return c.Tier }),
	})
}

func (h *EntitiesHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.store.ListAccounts(r.Context())
	if err != nil {
		models.WriteError(w, http.StatusInternalServerError, "failed to list accounts")
		return
	}
	var totalBalance float64
	for _, a := range accounts {
		totalBalance += a.Balance
	}
	models.WriteJSON(w, http.StatusOK, map[string]any{
		"accounts":     accounts,
		"total":        len(accounts),
		"types":        distinct(accounts, func(a store.Account) string { return a.Type }),
		"totalBalance": totalBalance,
	})
}

// All fetches the three directories concurrently.
func (h *EntitiesHandler) All(w http.ResponseWriter, r *http.Request) {
	var (
		employees []store.Employee
		customers []store.Customer
		accounts  []store.Account
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		employees, err = h.store.ListEmployees(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		customers, err = h.store.ListCustomers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		accounts, err = h.store.ListAccounts(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		models.WriteError(w, http.StatusInternalServerError, "failed to list entities")
		return
	}

	models.WriteJSON(w, http.StatusOK, map[string]any{
		"hr":      map[string]any{"employees": employees, "total": len(employees)},
		"crm":     map[string]any{"customers": customers, "total": len(customers)},
		"banking": map[string]any{"accounts": accounts, "total": len(accounts)},
	})
}

func distinct[T any](items []T, key func(T) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range items {
		k := key(item)
		if k != "" && !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
