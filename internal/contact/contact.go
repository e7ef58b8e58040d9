// Package contact defines the contact record and the sources that yield
// contacts to the generation pipeline: a local CSV file, a Google Sheet's
// CSV export, a Postgres table, and built-in sample data.
package contact

import (
	"context"
	"strings"
)

// Contact is one row of contact data. Email and Context are required by the
// pipeline; Name and Importance are optional.
type Contact struct {
	Name       string
	Email      string
	Context    string
	Importance string
}

// VIP reports whether the contact's importance marks it for the premium
// model tier. Matching is case-insensitive.
func (c Contact) VIP() bool {
	switch strings.ToUpper(strings.TrimSpace(c.Importance)) {
	case "VIP", "HIGH", "IMPORTANT":
		return true
	}
	return false
}

// Source yields the contacts to process in one run.
type Source interface {
	Contacts(ctx context.Context) ([]Contact, error)
}

// Columns maps the logical contact fields to spreadsheet header names.
type Columns struct {
	Name       string
	Email      string
	Context    string
	Importance string
}

// DefaultColumns returns the conventional header names.
func DefaultColumns() Columns {
	return Columns{
		Name:       "Name",
		Email:      "Email",
		Context:    "Context",
		Importance: "Importance",
	}
}
