// Package pipeline runs the end-to-end draft generation flow: read contacts,
// generate a personalized email per contact, record the generation cost, and
// hand the result to the draft sink. Contacts are processed strictly one at
// a time.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alecgard/quill/internal/contact"
	"github.com/alecgard/quill/internal/draft"
	"github.com/alecgard/quill/internal/generate"
	"github.com/alecgard/quill/internal/tracker"
	"github.com/google/uuid"
)

const promptPrefix = "Generate a professional email based on the following context: "

// Runner holds the collaborators for one run. Tracker may be nil to disable
// cost tracking entirely.
type Runner struct {
	Source  contact.Source
	Gen     generate.Generator
	Sink    draft.Sink
	Tracker *tracker.Tracker

	DefaultModel string
	PremiumModel string

	// now allows tests to pin the subject date; nil means time.Now.
	now func() time.Time
}

// Summary counts what happened during a run.
type Summary struct {
	Contacts  int
	Drafted   int
	Generated int
	Failed    int
}

// Run processes every contact from the source in order. Generation failures
// and sink failures are logged and skip the affected contact; they never
// abort the run. The budget outcome of each recorded usage is advisory only
// and never stops generation.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	contacts, err := r.Source.Contacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading contacts: %w", err)
	}

	sum := &Summary{Contacts: len(contacts)}

	for _, c := range contacts {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		requestID := uuid.NewString()
		model := r.DefaultModel
		if c.VIP() {
			model = r.PremiumModel
		}

		slog.Info("generating email",
			"request_id", requestID,
			"recipient", c.Email,
			"vip", c.VIP(),
			"model", model,
		)

		res, err := r.Gen.Generate(ctx, model, promptPrefix+c.Context)
		if err != nil {
			slog.Error("email generation failed", "request_id", requestID, "recipient", c.Email, "error", err)
			sum.Failed++
			continue
		}
		sum.Generated++

		if r.Tracker != nil {
			outcome := r.Tracker.RecordUsage(model, res.OutputTokens, "")
			if !outcome.WithinBudget {
				// Advisory only: the run keeps going.
				slog.Warn("continuing past budget limit", "request_id", requestID)
			}
		}

		d := draft.Draft{
			To:      c.Email,
			Subject: r.subject(c),
			Body:    res.Text,
		}
		if err := r.Sink.Create(ctx, d); err != nil {
			slog.Error("storing draft failed", "request_id", requestID, "recipient", c.Email, "error", err)
			sum.Failed++
			continue
		}
		sum.Drafted++
	}

	return sum, nil
}

func (r *Runner) subject(c contact.Contact) string {
	name := c.Name
	if name == "" {
		name = "Recipient"
	}
	now := time.Now
	if r.now != nil {
		now = r.now
	}
	return fmt.Sprintf("Email for %s - %s", name, now().Format("2006-01-02"))
}
