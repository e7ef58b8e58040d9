package draft

import (
	"context"
	"fmt"
	"io"
)

// WriterSink echoes drafts to a writer instead of persisting them remotely.
type WriterSink struct {
	W io.Writer
}

// Create renders the draft as a readable block.
func (s *WriterSink) Create(ctx context.Context, d Draft) error {
	_, err := fmt.Fprintf(s.W, "\nEmail Content (would be sent to %s):\n\nSubject: %s\n\n%s\n\n---\n", d.To, d.Subject, d.Body)
	return err
}
