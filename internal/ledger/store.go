package ledger

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"time"
)

// fileState is the serialized shape of the ledger file.
type fileState struct {
	MonthlyUsage  map[string]*MonthlyUsage `json:"monthly_usage"`
	TotalCost     float64                  `json:"total_cost"`
	TotalRequests int                      `json:"total_requests"`
	LastUpdated   time.Time                `json:"last_updated"`
}

// LoadResult reports how the ledger state was obtained. Recovered is true
// when stored content existed but could not be read or parsed, and a fresh
// ledger was initialized in its place.
type LoadResult struct {
	Recovered bool
	Reason    string
}

// New returns an empty ledger bound to the given file path. budgetLimit is
// the monthly budget in USD and must be positive.
func New(path string, budgetLimit float64) *Ledger {
	return &Ledger{
		budgetLimit: budgetLimit,
		path:        path,
		monthly:     make(map[string]*MonthlyUsage),
		lastUpdated: time.Now(),
	}
}

// Load reads the ledger file at path. A missing file yields a fresh empty
// ledger. Unreadable or malformed content also yields a fresh ledger, but
// flags the result as recovered and logs a warning: prior on-disk totals are
// abandoned rather than failing the run.
func Load(path string, budgetLimit float64) (*Ledger, LoadResult) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(path, budgetLimit), LoadResult{}
		}
		slog.Warn("could not read usage ledger, starting fresh", "path", path, "error", err)
		return New(path, budgetLimit), LoadResult{Recovered: true, Reason: err.Error()}
	}

	var st fileState
	if err := json.Unmarshal(data, &st); err != nil {
		slog.Warn("could not parse usage ledger, starting fresh", "path", path, "error", err)
		return New(path, budgetLimit), LoadResult{Recovered: true, Reason: err.Error()}
	}

	l := New(path, budgetLimit)
	if st.MonthlyUsage != nil {
		l.monthly = st.MonthlyUsage
	}
	l.totalCost = st.TotalCost
	l.totalRequests = st.TotalRequests
	if !st.LastUpdated.IsZero() {
		l.lastUpdated = st.LastUpdated
	}
	return l, LoadResult{}
}

// Persist serializes the entire ledger state and overwrites the ledger file.
// Write failures are logged and swallowed: the in-memory state remains the
// source of truth, and the next successful persist carries all missed
// updates since every persist is a full-state write.
func (l *Ledger) Persist() {
	st := fileState{
		MonthlyUsage:  l.monthly,
		TotalCost:     l.totalCost,
		TotalRequests: l.totalRequests,
		LastUpdated:   l.lastUpdated,
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		slog.Error("failed to serialize usage ledger", "path", l.path, "error", err)
		return
	}

	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		slog.Error("failed to persist usage ledger", "path", l.path, "error", err)
	}
}
