package figma

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.figma.com"

// Client fetches variable graphs from the design tool's REST API.
type Client struct {
	http    *http.Client
	token   string
	baseURL string
}

// NewClient creates an API client. If token is empty, it falls back to the
// FIGMA_TOKEN env var.
func NewClient(token string) *Client {
	if token == "" {
		token = os.Getenv("FIGMA_TOKEN")
	}
	return &Client{
		http:    &http.Client{Timeout: 60 * time.Second},
		token:   token,
		baseURL: defaultBaseURL,
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimRight(u, "/")
}

// LocalVariables fetches the raw variable graph for a file: every local
// variable and variable collection, keyed by id.
func (c *Client) LocalVariables(ctx context.Context, fileKey string) (*VariablesResponse, error) {
	if strings.TrimSpace(fileKey) == "" {
		return nil, fmt.Errorf("figma: file key is required")
	}
	if strings.TrimSpace(c.token) == "" {
		return nil, fmt.Errorf("figma: access token is required (set FIGMA_TOKEN)")
	}

	url := fmt.Sprintf("%s/v1/files/%s/variables/local", c.baseURL, fileKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Figma-Token", c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("figma: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("figma: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("figma: variables request returned %d: %s", resp.StatusCode, snippet(body))
	}

	var out VariablesResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("figma: decode response: %w", err)
	}
	if out.Error {
		return nil, fmt.Errorf("figma: API error (status %d): %s", out.Status, out.Msg)
	}
	return &out, nil
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
