package pipeline

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecgard/quill/internal/contact"
	"github.com/alecgard/quill/internal/draft"
	"github.com/alecgard/quill/internal/generate"
	"github.com/alecgard/quill/internal/ledger"
	"github.com/alecgard/quill/internal/tracker"
)

type fakeSource struct {
	contacts []contact.Contact
	err      error
}

func (s fakeSource) Contacts(ctx context.Context) ([]contact.Contact, error) {
	return s.contacts, s.err
}

type fakeGenerator struct {
	text    string
	failFor map[string]bool // keyed by model
	prompts []string
	models  []string
}

func (g *fakeGenerator) Generate(ctx context.Context, model, prompt string) (*generate.Result, error) {
	g.models = append(g.models, model)
	g.prompts = append(g.prompts, prompt)
	if g.failFor[model] {
		return nil, errors.New("generation failed")
	}
	return &generate.Result{Text: g.text, OutputTokens: generate.WordCount(g.text)}, nil
}

type fakeSink struct {
	drafts []draft.Draft
	err    error
}

func (s *fakeSink) Create(ctx context.Context, d draft.Draft) error {
	if s.err != nil {
		return s.err
	}
	s.drafts = append(s.drafts, d)
	return nil
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func newTestLedger(t *testing.T, budgetLimit float64) *ledger.Ledger {
	t.Helper()
	return ledger.New(filepath.Join(t.TempDir(), "usage.json"), budgetLimit)
}

var testContacts = []contact.Contact{
	{Name: "Ada", Email: "ada@example.com", Context: "follow up", Importance: "Regular"},
	{Name: "Grace", Email: "grace@example.com", Context: "conference invite", Importance: "VIP"},
}

func TestRunRoutesModelsAndDrafts(t *testing.T) {
	gen := &fakeGenerator{text: "one two three four"}
	sink := &fakeSink{}
	l := newTestLedger(t, 50.0)

	r := &Runner{
		Source:       fakeSource{contacts: testContacts},
		Gen:          gen,
		Sink:         sink,
		Tracker:      tracker.New(l),
		DefaultModel: "gpt2",
		PremiumModel: "mistralai/Mistral-7B-Instruct-v0.2",
		now:          func() time.Time { return time.Date(2024, 1, 15, 9, 0, 0, 0, time.Local) },
	}

	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if sum.Contacts != 2 || sum.Generated != 2 || sum.Drafted != 2 || sum.Failed != 0 {
		t.Errorf("summary %+v, want 2 contacts all drafted", sum)
	}

	if gen.models[0] != "gpt2" {
		t.Errorf("regular contact used %q, want gpt2", gen.models[0])
	}
	if gen.models[1] != "mistralai/Mistral-7B-Instruct-v0.2" {
		t.Errorf("vip contact used %q, want the premium model", gen.models[1])
	}

	wantPrompt := "Generate a professional email based on the following context: follow up"
	if gen.prompts[0] != wantPrompt {
		t.Errorf("prompt %q, want %q", gen.prompts[0], wantPrompt)
	}

	if sink.drafts[0].Subject != "Email for Ada - 2024-01-15" {
		t.Errorf("subject %q, want Email for Ada - 2024-01-15", sink.drafts[0].Subject)
	}
	if sink.drafts[0].To != "ada@example.com" || sink.drafts[0].Body != "one two three four" {
		t.Errorf("draft %+v", sink.drafts[0])
	}

	// One gpt2 call (0.0001 + 4*0.00001) and one premium call (0.0005 + 4*0.00005).
	wantCost := 0.0001 + 4*0.00001 + 0.0005 + 4*0.00005
	if !almostEqual(l.TotalCost(), wantCost) {
		t.Errorf("total cost %v, want %v", l.TotalCost(), wantCost)
	}
	if l.TotalRequests() != 2 {
		t.Errorf("total requests %d, want 2", l.TotalRequests())
	}
}

func TestRunSubjectFallbackName(t *testing.T) {
	gen := &fakeGenerator{text: "hi"}
	sink := &fakeSink{}

	r := &Runner{
		Source: fakeSource{contacts: []contact.Contact{
			{Email: "anon@example.com", Context: "ctx"},
		}},
		Gen:          gen,
		Sink:         sink,
		DefaultModel: "gpt2",
		PremiumModel: "gpt2",
		now:          func() time.Time { return time.Date(2024, 1, 15, 9, 0, 0, 0, time.Local) },
	}

	if _, err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := sink.drafts[0].Subject; got != "Email for Recipient - 2024-01-15" {
		t.Errorf("subject %q, want the Recipient fallback", got)
	}
}

func TestRunBudgetExceededKeepsGoing(t *testing.T) {
	gen := &fakeGenerator{text: strings.Repeat("word ", 100)}
	sink := &fakeSink{}
	l := newTestLedger(t, 0.0001) // first call already exceeds it

	r := &Runner{
		Source:       fakeSource{contacts: testContacts},
		Gen:          gen,
		Sink:         sink,
		Tracker:      tracker.New(l),
		DefaultModel: "gpt2",
		PremiumModel: "gpt2",
	}

	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sum.Drafted != 2 {
		t.Errorf("drafted %d, want 2: budget is advisory", sum.Drafted)
	}
	if l.TotalRequests() != 2 {
		t.Errorf("total requests %d, want 2", l.TotalRequests())
	}
}

func TestRunGenerationFailureSkipsContact(t *testing.T) {
	gen := &fakeGenerator{text: "hi", failFor: map[string]bool{"mistralai/Mistral-7B-Instruct-v0.2": true}}
	sink := &fakeSink{}
	l := newTestLedger(t, 50.0)

	r := &Runner{
		Source:       fakeSource{contacts: testContacts},
		Gen:          gen,
		Sink:         sink,
		Tracker:      tracker.New(l),
		DefaultModel: "gpt2",
		PremiumModel: "mistralai/Mistral-7B-Instruct-v0.2",
	}

	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sum.Generated != 1 || sum.Drafted != 1 || sum.Failed != 1 {
		t.Errorf("summary %+v, want one success and one failure", sum)
	}
	if l.TotalRequests() != 1 {
		t.Errorf("total requests %d, want 1: failed generations record nothing", l.TotalRequests())
	}
}

func TestRunSinkFailureStillRecordsUsage(t *testing.T) {
	gen := &fakeGenerator{text: "hi there"}
	sink := &fakeSink{err: errors.New("sink down")}
	l := newTestLedger(t, 50.0)

	r := &Runner{
		Source:       fakeSource{contacts: testContacts[:1]},
		Gen:          gen,
		Sink:         sink,
		Tracker:      tracker.New(l),
		DefaultModel: "gpt2",
		PremiumModel: "gpt2",
	}

	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sum.Drafted != 0 || sum.Failed != 1 || sum.Generated != 1 {
		t.Errorf("summary %+v, want generated but not drafted", sum)
	}
	if l.TotalRequests() != 1 {
		t.Errorf("total requests %d, want 1: usage is recorded before the sink runs", l.TotalRequests())
	}
}

func TestRunNilTrackerDisablesTracking(t *testing.T) {
	gen := &fakeGenerator{text: "hi"}
	sink := &fakeSink{}

	r := &Runner{
		Source:       fakeSource{contacts: testContacts},
		Gen:          gen,
		Sink:         sink,
		DefaultModel: "gpt2",
		PremiumModel: "gpt2",
	}

	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sum.Drafted != 2 {
		t.Errorf("drafted %d, want 2 without any tracker", sum.Drafted)
	}
}

func TestRunSourceError(t *testing.T) {
	r := &Runner{
		Source: fakeSource{err: errors.New("source down")},
		Gen:    &fakeGenerator{},
		Sink:   &fakeSink{},
	}
	if _, err := r.Run(context.Background()); err == nil {
		t.Error("expected error when the source fails")
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &Runner{
		Source:       fakeSource{contacts: testContacts},
		Gen:          &fakeGenerator{text: "hi"},
		Sink:         &fakeSink{},
		DefaultModel: "gpt2",
		PremiumModel: "gpt2",
	}

	sum, err := r.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error %v, want context.Canceled", err)
	}
	if sum.Drafted != 0 {
		t.Errorf("drafted %d, want 0 after cancellation", sum.Drafted)
	}
}
