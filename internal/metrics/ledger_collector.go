package metrics

import "github.com/prometheus/client_golang/prometheus"

// UsageSnapshot is the ledger state exposed as metrics at scrape time.
type UsageSnapshot struct {
	Month             string
	MonthCost         float64
	MonthRequests     int
	MonthOutputTokens int
	RemainingBudget   float64
	BudgetLimit       float64
	TotalCost         float64
	TotalRequests     int
}

// UsageStatFunc returns the current ledger snapshot without importing the
// ledger package.
type UsageStatFunc func() UsageSnapshot

// usageCollector implements prometheus.Collector over ledger state.
type usageCollector struct {
	statFunc UsageStatFunc

	monthInfoDesc     *prometheus.Desc
	monthCostDesc     *prometheus.Desc
	monthRequestsDesc *prometheus.Desc
	monthTokensDesc   *prometheus.Desc
	remainingDesc     *prometheus.Desc
	limitDesc         *prometheus.Desc
	totalCostDesc     *prometheus.Desc
	totalRequestsDesc *prometheus.Desc
}

// NewUsageCollector creates a collector that exposes usage ledger gauges.
func NewUsageCollector(statFunc UsageStatFunc) prometheus.Collector {
	return &usageCollector{
		statFunc: statFunc,
		monthInfoDesc: prometheus.NewDesc(
			"quill_usage_current_month_info",
			"Current ledger month key as a label; value is always 1.",
			[]string{"month"}, nil,
		),
		monthCostDesc: prometheus.NewDesc(
			"quill_usage_month_cost_usd",
			"Cumulative cost recorded for the current month in USD.",
			nil, nil,
		),
		monthRequestsDesc: prometheus.NewDesc(
			"quill_usage_month_requests",
			"Number of generation requests recorded for the current month.",
			nil, nil,
		),
		monthTokensDesc: prometheus.NewDesc(
			"quill_usage_month_output_tokens",
			"Output tokens recorded for the current month.",
			nil, nil,
		),
		remainingDesc: prometheus.NewDesc(
			"quill_usage_remaining_budget_usd",
			"Remaining monthly budget in USD, clamped at zero.",
			nil, nil,
		),
		limitDesc: prometheus.NewDesc(
			"quill_budget_limit_usd",
			"Configured monthly budget limit in USD.",
			nil, nil,
		),
		totalCostDesc: prometheus.NewDesc(
			"quill_usage_total_cost_usd",
			"Grand-total recorded cost across all months in USD.",
			nil, nil,
		),
		totalRequestsDesc: prometheus.NewDesc(
			"quill_usage_total_requests",
			"Grand-total recorded requests across all months.",
			nil, nil,
		),
	}
}

// Describe sends the descriptors of each metric to the channel.
func (c *usageCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.monthInfoDesc
	ch <- c.monthCostDesc
	ch <- c.monthRequestsDesc
	ch <- c.monthTokensDesc
	ch <- c.remainingDesc
	ch <- c.limitDesc
	ch <- c.totalCostDesc
	ch <- c.totalRequestsDesc
}

// Collect fetches the ledger snapshot and sends it as gauges.
func (c *usageCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.statFunc()
	ch <- prometheus.MustNewConstMetric(c.monthInfoDesc, prometheus.GaugeValue, 1, s.Month)
	ch <- prometheus.MustNewConstMetric(c.monthCostDesc, prometheus.GaugeValue, s.MonthCost)
	ch <- prometheus.MustNewConstMetric(c.monthRequestsDesc, prometheus.GaugeValue, float64(s.MonthRequests))
	ch <- prometheus.MustNewConstMetric(c.monthTokensDesc, prometheus.GaugeValue, float64(s.MonthOutputTokens))
	ch <- prometheus.MustNewConstMetric(c.remainingDesc, prometheus.GaugeValue, s.RemainingBudget)
	ch <- prometheus.MustNewConstMetric(c.limitDesc, prometheus.GaugeValue, s.BudgetLimit)
	ch <- prometheus.MustNewConstMetric(c.totalCostDesc, prometheus.GaugeValue, s.TotalCost)
	ch <- prometheus.MustNewConstMetric(c.totalRequestsDesc, prometheus.GaugeValue, float64(s.TotalRequests))
}
