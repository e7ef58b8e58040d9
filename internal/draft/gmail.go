package draft

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultGmailBaseURL = "https://gmail.googleapis.com"

// GmailSink creates drafts in the authenticated user's Gmail account via the
// drafts.create endpoint.
type GmailSink struct {
	accessToken string
	baseURL     string
	client      *http.Client
}

type gmailDraftRequest struct {
	Message gmailMessage `json:"message"`
}

type gmailMessage struct {
	Raw string `json:"raw"`
}

type gmailDraftResponse struct {
	ID string `json:"id"`
}

// NewGmailSink creates a sink using the given OAuth access token. baseURL
// may be empty for the public Gmail endpoint.
func NewGmailSink(accessToken, baseURL string) *GmailSink {
	if baseURL == "" {
		baseURL = defaultGmailBaseURL
	}
	return &GmailSink{
		accessToken: accessToken,
		baseURL:     baseURL,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

// Create builds the RFC 2822 message, base64url-encodes it, and posts it as
// a new draft.
func (s *GmailSink) Create(ctx context.Context, d Draft) error {
	body, err := json.Marshal(gmailDraftRequest{
		Message: gmailMessage{Raw: encodeRawMessage(d)},
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/gmail/v1/users/me/drafts", s.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.accessToken))

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("creating gmail draft: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("gmail api error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var created gmailDraftResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return fmt.Errorf("decoding gmail draft response: %w", err)
	}

	slog.Info("gmail draft created", "draft_id", created.ID, "to", d.To)
	return nil
}

// encodeRawMessage renders the draft as a text/plain MIME message encoded
// with URL-safe base64, the form the Gmail API expects in message.raw.
func encodeRawMessage(d Draft) string {
	msg := fmt.Sprintf(
		"To: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=\"utf-8\"\r\nMIME-Version: 1.0\r\n\r\n%s",
		d.To, d.Subject, d.Body,
	)
	return base64.URLEncoding.EncodeToString([]byte(msg))
}
