package contact

import (
	"context"
	"log/slog"
)

// FallbackSource tries a primary source and falls back to a secondary one
// when the primary errors or yields no contacts. The primary failure is
// logged, not returned, so a misconfigured sheet degrades to sample data
// instead of aborting the run.
type FallbackSource struct {
	Primary  Source
	Fallback Source
}

// Contacts returns the primary source's contacts when it produced any, and
// the fallback's otherwise.
func (s *FallbackSource) Contacts(ctx context.Context) ([]Contact, error) {
	contacts, err := s.Primary.Contacts(ctx)
	if err != nil {
		slog.Warn("primary contact source failed, using fallback", "error", err)
		return s.Fallback.Contacts(ctx)
	}
	if len(contacts) == 0 {
		slog.Warn("primary contact source returned no contacts, using fallback")
		return s.Fallback.Contacts(ctx)
	}
	return contacts, nil
}
