package contact

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultSheetBaseURL = "https://docs.google.com"

// SheetSource reads contacts from a Google Sheet via its public CSV export
// URL. The sheet must be publicly accessible or shared with anyone with the
// link; no OAuth is involved.
type SheetSource struct {
	SpreadsheetID string
	Columns       Columns
	BaseURL       string // defaults to docs.google.com
	Client        *http.Client
}

// Contacts fetches the sheet's CSV export and parses its contact rows.
func (s *SheetSource) Contacts(ctx context.Context) ([]Contact, error) {
	base := s.BaseURL
	if base == "" {
		base = defaultSheetBaseURL
	}
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	url := fmt.Sprintf("%s/spreadsheets/d/%s/export?format=csv", base, s.SpreadsheetID)
	slog.Info("fetching contacts from sheet", "spreadsheet_id", s.SpreadsheetID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building sheet export request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching sheet export: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("sheet export returned status %d: %s", resp.StatusCode, string(body))
	}

	contacts, err := parseCSV(resp.Body, s.Columns)
	if err != nil {
		return nil, fmt.Errorf("parsing sheet export: %w", err)
	}
	return contacts, nil
}
