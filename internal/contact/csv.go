package contact

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CSVSource reads contacts from a local CSV file with a header row.
type CSVSource struct {
	Path    string
	Columns Columns
}

// Contacts parses the CSV file and returns its contact rows.
func (s *CSVSource) Contacts(ctx context.Context) ([]Contact, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening contacts file: %w", err)
	}
	defer f.Close()

	contacts, err := parseCSV(f, s.Columns)
	if err != nil {
		return nil, fmt.Errorf("parsing contacts file %s: %w", s.Path, err)
	}
	return contacts, nil
}

// parseCSV reads header-mapped contact rows. Rows without an email or a
// context are logged and skipped rather than failing the whole read.
func parseCSV(r io.Reader, cols Columns) ([]Contact, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rows may omit trailing optional columns

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header row: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}

	field := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var contacts []Contact
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading contact row: %w", err)
		}

		c := Contact{
			Name:       field(row, cols.Name),
			Email:      field(row, cols.Email),
			Context:    field(row, cols.Context),
			Importance: field(row, cols.Importance),
		}
		if c.Email == "" || c.Context == "" {
			slog.Warn("skipping contact row with missing email or context", "row", row)
			continue
		}
		contacts = append(contacts, c)
	}

	return contacts, nil
}
