package metrics

import (
	"encoding/json"
	"net/http"

	dto "github.com/prometheus/client_model/go"
)

// Summary is the JSON response for the metrics summary endpoint.
type Summary struct {
	Mode  string       `json:"mode"`
	Usage usageSummary `json:"usage"`
}

type usageSummary struct {
	Month             string  `json:"month"`
	MonthCost         float64 `json:"monthCost"`
	MonthRequests     float64 `json:"monthRequests"`
	MonthOutputTokens float64 `json:"monthOutputTokens"`
	RemainingBudget   float64 `json:"remainingBudget"`
	BudgetLimit       float64 `json:"budgetLimit"`
	TotalCost         float64 `json:"totalCost"`
	TotalRequests     float64 `json:"totalRequests"`
}

// SummaryHandler returns an http.HandlerFunc that serves live usage metrics
// in JSON format.
func (m *Metrics) SummaryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.handleLive(w)
	}
}

func (m *Metrics) handleLive(w http.ResponseWriter) {
	families, err := m.registry.Gather()
	if err != nil {
		http.Error(w, "failed to gather metrics", http.StatusInternalServerError)
		return
	}

	fam := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		fam[f.GetName()] = f
	}

	summary := Summary{
		Mode: "live",
		Usage: usageSummary{
			Month:             firstLabelValue(fam["quill_usage_current_month_info"], "month"),
			MonthCost:         gaugeValue(fam["quill_usage_month_cost_usd"]),
			MonthRequests:     gaugeValue(fam["quill_usage_month_requests"]),
			MonthOutputTokens: gaugeValue(fam["quill_usage_month_output_tokens"]),
			RemainingBudget:   gaugeValue(fam["quill_usage_remaining_budget_usd"]),
			BudgetLimit:       gaugeValue(fam["quill_budget_limit_usd"]),
			TotalCost:         gaugeValue(fam["quill_usage_total_cost_usd"]),
			TotalRequests:     gaugeValue(fam["quill_usage_total_requests"]),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store")
	_ = json.NewEncoder(w).Encode(summary)
}

// --- Prometheus metric helpers ---

func gaugeValue(f *dto.MetricFamily) float64 {
	if f == nil {
		return 0
	}
	ms := f.GetMetric()
	if len(ms) == 0 {
		return 0
	}
	if ms[0].GetGauge() != nil {
		return ms[0].GetGauge().GetValue()
	}
	return 0
}

func firstLabelValue(f *dto.MetricFamily, name string) string {
	if f == nil {
		return ""
	}
	for _, m := range f.GetMetric() {
		for _, lp := range m.GetLabel() {
			if lp.GetName() == name {
				return lp.GetValue()
			}
		}
	}
	return ""
}
