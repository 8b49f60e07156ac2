// Package ppstructure is a client for a PP-Structure table-recognition
// service: it posts an image and receives layout regions, where a table
// region carries the recovered structure as HTML markup plus the table's
// bounding box.
package ppstructure

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"posyandu/internal/config"
	"posyandu/internal/port"
)

// Client implements port.LayoutAnalyzer against a PP-Structure serving
// endpoint.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates a layout-model client from detector config.
func NewClient(cfg *config.DetectorConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		endpoint: cfg.LayoutEndpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// NewClientWithEndpoint creates a client pointing at a custom endpoint (for testing).
func NewClientWithEndpoint(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type analyzeRequest struct {
	Image string `json:"image"` // base64 JPEG
}

type analyzeResponse struct {
	Regions []struct {
		Type string `json:"type"`
		BBox [4]int `json:"bbox"`
		HTML string `json:"html"`
	} `json:"regions"`
}

func (c *Client) Analyze(ctx context.Context, imageJPEG []byte) ([]port.LayoutRegion, error) {
	if c.endpoint == "" {
		return nil, fmt.Errorf("layout endpoint not configured")
	}

	bodyBytes, err := json.Marshal(analyzeRequest{
		Image: base64.StdEncoding.EncodeToString(imageJPEG),
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling layout model: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("layout model error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	var parsed analyzeResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	regions := make([]port.LayoutRegion, 0, len(parsed.Regions))
	for _, r := range parsed.Regions {
		regions = append(regions, port.LayoutRegion{
			Type:        r.Type,
			BBox:        r.BBox,
			TableMarkup: r.HTML,
		})
	}
	return regions, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
