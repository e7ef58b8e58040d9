package api

import (
	"net/http"
	"time"

	"github.com/alecgard/quill/internal/ledger"
	"github.com/alecgard/quill/internal/report"
	"github.com/go-chi/chi/v5"
)

// usageHandler serves read-only views over the usage ledger.
type usageHandler struct {
	ledger *ledger.Ledger
}

func newUsageHandler(l *ledger.Ledger) *usageHandler {
	return &usageHandler{ledger: l}
}

// usageResponse is the JSON shape for one month of usage.
type usageResponse struct {
	Month           string         `json:"month"`
	Cost            float64        `json:"cost"`
	Requests        int            `json:"requests"`
	OutputTokens    int            `json:"output_tokens"`
	Purposes        map[string]int `json:"purposes,omitempty"`
	RemainingBudget float64        `json:"remaining_budget"`
	BudgetLimit     float64        `json:"budget_limit"`
	TotalCost       float64        `json:"total_cost"`
	TotalRequests   int            `json:"total_requests"`
	LastUpdated     time.Time      `json:"last_updated"`
}

func (h *usageHandler) usageFor(month string) usageResponse {
	if month == "" {
		month = ledger.CurrentMonthKey()
	}
	usage := h.ledger.MonthlyUsage(month)

	remaining := h.ledger.BudgetLimit() - usage.Cost
	if remaining < 0 {
		remaining = 0
	}

	return usageResponse{
		Month:           month,
		Cost:            usage.Cost,
		Requests:        usage.Requests,
		OutputTokens:    usage.Tokens.Output,
		Purposes:        usage.Purposes,
		RemainingBudget: remaining,
		BudgetLimit:     h.ledger.BudgetLimit(),
		TotalCost:       h.ledger.TotalCost(),
		TotalRequests:   h.ledger.TotalRequests(),
		LastUpdated:     h.ledger.LastUpdated(),
	}
}

// GetUsage returns the current month's usage.
func (h *usageHandler) GetUsage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.usageFor(""))
}

// GetUsageByMonth returns the usage for a specific YYYY-MM month key. Months
// with no recorded usage yield a zero-valued record.
func (h *usageHandler) GetUsageByMonth(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")
	if _, err := time.Parse("2006-01", month); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_month", "month must be in YYYY-MM format")
		return
	}
	writeJSON(w, http.StatusOK, h.usageFor(month))
}

// GetReport returns the rendered usage report as plain text. An optional
// ?month=YYYY-MM query selects a past month.
func (h *usageHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month != "" {
		if _, err := time.Parse("2006-01", month); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_month", "month must be in YYYY-MM format")
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(report.Render(h.ledger, month)))
}
