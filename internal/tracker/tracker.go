// Package tracker records the cost of generation calls against the usage
// ledger and checks the result against the monthly budget.
package tracker

import (
	"log/slog"

	"github.com/alecgard/quill/internal/ledger"
	"github.com/alecgard/quill/internal/pricing"
)

// Outcome reports the result of recording one usage event. WithinBudget is
// advisory only: callers keep generating when it is false, it exists so they
// can warn or branch without the tracker ever blocking the workflow.
type Outcome struct {
	WithinBudget bool
	Cost         float64
}

// Tracker composes the pricing table and the usage ledger. Construct one per
// run and pass it into the generation pipeline explicitly.
type Tracker struct {
	ledger *ledger.Ledger
}

// New returns a tracker backed by the given ledger.
func New(l *ledger.Ledger) *Tracker {
	return &Tracker{ledger: l}
}

// RecordUsage prices one generation call, applies it to the ledger, persists
// the full ledger state, and checks the month against the budget limit.
//
// An unknown model is logged and skipped: the ledger is left untouched and
// the caller is not blocked. A persist failure is absorbed by the ledger.
// purpose is an optional tag counted per month; pass "" for none.
func (t *Tracker) RecordUsage(model string, outputTokens int, purpose string) Outcome {
	entry, ok := pricing.Lookup(model)
	if !ok {
		slog.Warn("unknown model, cost not tracked", "model", model)
		return Outcome{WithinBudget: true}
	}

	cost := entry.Cost(outputTokens)
	month := ledger.CurrentMonthKey()

	t.ledger.EnsureMonth(month)
	t.ledger.ApplyUsage(month, cost, outputTokens, purpose)
	t.ledger.Persist()

	monthCost := t.ledger.MonthlyUsage(month).Cost
	if monthCost > t.ledger.BudgetLimit() {
		slog.Warn("monthly budget limit exceeded",
			"limit_usd", t.ledger.BudgetLimit(),
			"month_cost_usd", monthCost,
			"month", month,
		)
		return Outcome{WithinBudget: false, Cost: cost}
	}

	return Outcome{WithinBudget: true, Cost: cost}
}
