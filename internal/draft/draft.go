// Package draft stores rendered emails: remotely as Gmail drafts or locally
// by echoing them to a writer. Sink failures never affect the usage ledger.
package draft

import "context"

// Draft is one rendered email ready to be stored.
type Draft struct {
	To      string
	Subject string
	Body    string
}

// Sink accepts rendered emails.
type Sink interface {
	Create(ctx context.Context, d Draft) error
}
