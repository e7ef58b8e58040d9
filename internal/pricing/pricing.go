// Package pricing holds the static cost table for the Hugging Face models
// used by the generator. Costs are estimates in USD; actual costs may vary
// with published Hugging Face pricing.
package pricing

// Entry holds the flat per-request cost and the per-output-token cost for a
// single model, in USD.
type Entry struct {
	RequestCost float64
	TokenCost   float64
}

// table maps model identifiers to their estimated costs.
var table = map[string]Entry{
	"gpt2": {
		RequestCost: 0.0001,
		TokenCost:   0.00001,
	},
	"mistralai/Mistral-7B-Instruct-v0.2": {
		RequestCost: 0.0005,
		TokenCost:   0.00005,
	},
}

// Lookup returns the pricing entry for a model identifier. The second return
// value is false when the model is not in the table; callers treat that as a
// non-fatal condition and skip cost tracking.
func Lookup(model string) (Entry, bool) {
	e, ok := table[model]
	return e, ok
}

// Cost computes the total cost of a single request that produced the given
// number of output tokens.
func (e Entry) Cost(outputTokens int) float64 {
	return e.RequestCost + float64(outputTokens)*e.TokenCost
}
