package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultHuggingFaceBaseURL = "https://api-inference.huggingface.co"

// HuggingFaceClient calls the Hugging Face Inference API.
type HuggingFaceClient struct {
	apiKey       string
	baseURL      string
	maxNewTokens int
	temperature  float64
	client       *http.Client
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	Temperature  float64 `json:"temperature"`
}

type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}

// NewHuggingFaceClient creates a client with the given bearer key and
// generation parameters. baseURL may be empty for the public endpoint.
func NewHuggingFaceClient(apiKey, baseURL string, maxNewTokens int, temperature float64) *HuggingFaceClient {
	if baseURL == "" {
		baseURL = defaultHuggingFaceBaseURL
	}
	return &HuggingFaceClient{
		apiKey:       apiKey,
		baseURL:      baseURL,
		maxNewTokens: maxNewTokens,
		temperature:  temperature,
		client:       &http.Client{Timeout: 60 * time.Second},
	}
}

// Generate runs the prompt through the given model and returns the generated
// text along with its word-count token approximation.
func (c *HuggingFaceClient) Generate(ctx context.Context, model, prompt string) (*Result, error) {
	body, err := json.Marshal(hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			MaxNewTokens: c.maxNewTokens,
			Temperature:  c.temperature,
		},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s", c.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hugging face api error (status %d): %s", resp.StatusCode, string(respBody))
	}

	text, err := parseGeneratedText(respBody)
	if err != nil {
		return nil, err
	}

	return &Result{Text: text, OutputTokens: WordCount(text)}, nil
}

// parseGeneratedText handles both response shapes the inference API uses:
// a list of generations or a single object.
func parseGeneratedText(body []byte) (string, error) {
	var list []hfGeneration
	if err := json.Unmarshal(body, &list); err == nil && len(list) > 0 {
		return list[0].GeneratedText, nil
	}

	var single hfGeneration
	if err := json.Unmarshal(body, &single); err == nil && single.GeneratedText != "" {
		return single.GeneratedText, nil
	}

	return "", fmt.Errorf("unexpected hugging face response shape: %s", string(body))
}
