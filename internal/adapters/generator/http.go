// Package generator adapts an external AI image-generation HTTP service
// to the Generator port. The wire contract is deliberately small: POST a
// JSON prompt, get encoded image bytes back.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPGenerator implements the Generator port against a remote endpoint
type HTTPGenerator struct {
	endpoint string
	client   *http.Client
}

// NewHTTPGenerator creates a generator talking to endpoint
func NewHTTPGenerator(endpoint string) *HTTPGenerator {
	return &HTTPGenerator{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 120 * time.Second},
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
	Style  string `json:"style"`
}

// Generate submits the prompt and returns the raw image bytes
func (g *HTTPGenerator) Generate(ctx context.Context, prompt, style string) ([]byte, error) {
	if g.endpoint == "" {
		return nil, fmt.Errorf("no generation endpoint configured (set generate_endpoint in config)")
	}

	body, err := json.Marshal(generateRequest{Prompt: prompt, Style: style})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generation service returned %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read generated image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("generation service returned an empty body")
	}
	return data, nil
}
