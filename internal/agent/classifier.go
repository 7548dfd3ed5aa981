// Package agent decides, per chat message, whether to route to an enterprise
// tool or fall back to a free-form model call, and assembles the reply.
package agent

import (
	"regexp"
	"strings"
)

// Category is the tool domain a message was classified into.
type Category string

const (
	CategoryHR      Category = "hr"
	CategoryCRM     Category = "crm"
	CategoryBanking Category = "banking"
)

// Keyword sets tried in fixed priority order; first match wins.
var (
	hrKeywords      = []string{"leave", "balance", "employee", "hr", "vacation", "sick"}
	crmKeywords     = []string{"customer", "email", "lookup", "crm", "client"}
	bankingKeywords = []string{"portfolio", "account", "banking", "investment", "holdings"}
)

var (
	employeeIDPattern = regexp.MustCompile(`\d{4}`)
	emailPattern      = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	accountIDPattern  = regexp.MustCompile(`\d{3,}`)
)

// Classifier maps a raw message onto a tool category by keyword membership.
// Deliberately decoupled from the language model so routing is unit-testable.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify returns the first matching category in HR -> CRM -> banking order,
// or false when no keyword set matches.
func (c *Classifier) Classify(message string) (Category, bool) {
	lower := strings.ToLower(message)

	for _, kw := range hrKeywords {
		if strings.Contains(lower, kw) {
			return CategoryHR, true
		}
	}
	for _, kw := range crmKeywords {
		if strings.Contains(lower, kw) {
			return CategoryCRM, true
		}
	}
	for _, kw := range bankingKeywords {
		if strings.Contains(lower, kw) {
			return CategoryBanking, true
		}
	}
	return "", false
}

// Extract pulls the category's identifier out of the message: first 4-digit
// run (HR), first email-shaped substring (CRM) or first numeric run of
// length >= 3 (banking).
func (c *Classifier) Extract(cat Category, message string) (string, bool) {
	var m string
	switch cat {
	case CategoryHR:
		m = employeeIDPattern.FindString(message)
	case CategoryCRM:
		m = emailPattern.FindString(message)
	case CategoryBanking:
		m = accountIDPattern.FindString(message)
	}
	return m, m != ""
}

// ToolName maps a category onto its registered tool.
func (c *Classifier) ToolName(cat Category) string {
	switch cat {
	case CategoryHR:
		return "hr.getLeaveBalance"
	case CategoryCRM:
		return "crm.lookupCustomer"
	case CategoryBanking:
		return "banking.getPortfolioSummary"
	}
	return ""
}

// ArgName maps a category onto its tool's input field.
func (c *Classifier) ArgName(cat Category) string {
	switch cat {
	case CategoryHR:
		return "employeeId"
	case CategoryCRM:
		return "email"
	case CategoryBanking:
		return "accountId"
	}
	return ""
}
