// Package ledger implements the persistent usage ledger: cumulative API
// cost, request and token counters partitioned by calendar month, backed by
// a single JSON file that is rewritten in full on every persist.
//
// Month keys use local wall-clock time in YYYY-MM form. A ledger instance is
// exclusively owned by one process; concurrent writers are unsupported.
package ledger

import (
	"time"
)

// TokenUsage counts generated tokens for a month.
type TokenUsage struct {
	Output int `json:"output"`
}

// MonthlyUsage holds the cumulative usage recorded for one calendar month.
// Cost is monotonically non-decreasing within a month and is never reset.
type MonthlyUsage struct {
	Cost     float64        `json:"cost"`
	Requests int            `json:"requests"`
	Tokens   TokenUsage     `json:"tokens"`
	Purposes map[string]int `json:"purposes,omitempty"`
}

// Ledger is the in-memory usage ledger. All mutations happen in memory;
// Persist writes the full state back to the ledger file.
type Ledger struct {
	budgetLimit float64
	path        string

	monthly       map[string]*MonthlyUsage
	totalCost     float64
	totalRequests int
	lastUpdated   time.Time
}

// MonthKey formats a point in time as a YYYY-MM ledger month key.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// CurrentMonthKey returns the month key for the current local time.
func CurrentMonthKey() string {
	return MonthKey(time.Now())
}

// BudgetLimit returns the configured monthly budget in USD.
func (l *Ledger) BudgetLimit() float64 { return l.budgetLimit }

// Path returns the location of the ledger file.
func (l *Ledger) Path() string { return l.path }

// TotalCost returns the running grand-total cost across all months.
func (l *Ledger) TotalCost() float64 { return l.totalCost }

// TotalRequests returns the running grand-total request count.
func (l *Ledger) TotalRequests() int { return l.totalRequests }

// LastUpdated returns the time of the most recent recorded usage.
func (l *Ledger) LastUpdated() time.Time { return l.lastUpdated }

// EnsureMonth idempotently creates a zeroed entry for the given month key.
func (l *Ledger) EnsureMonth(month string) {
	if _, ok := l.monthly[month]; !ok {
		l.monthly[month] = &MonthlyUsage{}
	}
}

// ApplyUsage adds one recorded request to the given month and to the grand
// totals. A non-empty purpose increments that month's purpose counter. Pure
// in-memory mutation; callers persist separately.
func (l *Ledger) ApplyUsage(month string, cost float64, outputTokens int, purpose string) {
	l.EnsureMonth(month)
	m := l.monthly[month]

	m.Cost += cost
	m.Requests++
	m.Tokens.Output += outputTokens

	l.totalCost += cost
	l.totalRequests++
	l.lastUpdated = time.Now()

	if purpose != "" {
		if m.Purposes == nil {
			m.Purposes = make(map[string]int)
		}
		m.Purposes[purpose]++
	}
}

// MonthlyUsage returns a copy of the usage recorded for the given month key,
// or for the current month when the key is empty. Months with no recorded
// usage yield a zero-valued record; the ledger is never mutated by a query.
func (l *Ledger) MonthlyUsage(month string) MonthlyUsage {
	if month == "" {
		month = CurrentMonthKey()
	}
	m, ok := l.monthly[month]
	if !ok {
		return MonthlyUsage{}
	}
	out := *m
	if m.Purposes != nil {
		out.Purposes = make(map[string]int, len(m.Purposes))
		for k, v := range m.Purposes {
			out.Purposes[k] = v
		}
	}
	return out
}

// RemainingBudget returns how much of the monthly budget is left for the
// current month. Never negative, even when the budget is overspent.
func (l *Ledger) RemainingBudget() float64 {
	remaining := l.budgetLimit - l.MonthlyUsage("").Cost
	if remaining < 0 {
		return 0
	}
	return remaining
}
