// Package report formats human-readable usage summaries from ledger state.
package report

import (
	"fmt"
	"strings"

	"github.com/alecgard/quill/internal/ledger"
)

// Render formats the usage report block for the given month key (empty for
// the current month). Pure function of ledger state; the caller decides how
// to emit it.
func Render(l *ledger.Ledger, month string) string {
	if month == "" {
		month = ledger.CurrentMonthKey()
	}
	usage := l.MonthlyUsage(month)

	remaining := l.BudgetLimit() - usage.Cost
	if remaining < 0 {
		remaining = 0
	}

	lines := []string{
		"\n===== API Usage Report =====",
		fmt.Sprintf("Current Month: %s", month),
		fmt.Sprintf("Requests: %d", usage.Requests),
		fmt.Sprintf("Cost: $%.2f", usage.Cost),
		fmt.Sprintf("Budget Remaining: $%.2f", remaining),
		fmt.Sprintf("Output Tokens: %d", usage.Tokens.Output),
		"============================\n",
	}

	return strings.Join(lines, "\n")
}
