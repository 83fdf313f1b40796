// Package ocrclient is the HTTP client for the external OCR collaborator.
// The extractor never decodes images or PDFs itself; document uploads are
// forwarded to this service and only its recognized text comes back.
package ocrclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

// ErrUnavailable indicates the OCR service is unreachable or not installed.
// Callers surface this as the "ocr_unavailable" error condition.
var ErrUnavailable = errors.New("ocr service unavailable")

// Client is an HTTP client for the OCR service.
type Client struct {
	baseURL string
	http    *http.Client
}

// recognizeRequest is the request body for POST /recognize.
type recognizeRequest struct {
	ContentBase64 string `json:"content_base64"`
	MimeType      string `json:"mime_type"`
}

// RecognizeResponse is the response body from /recognize.
type RecognizeResponse struct {
	Text             string  `json:"text"`
	Confidence       float64 `json:"confidence"`
	ProcessingTimeMs int64   `json:"processing_time_ms"`
}

// healthResponse is the JSON shape returned by GET /health.
type healthResponse struct {
	Engine string `json:"engine"`
}

// NewClient creates a new OCR client. A zero timeout uses the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Recognize sends a base64-encoded document to the OCR service and returns
// the recognized text. Transport failures wrap ErrUnavailable.
func (c *Client) Recognize(ctx context.Context, contentBase64, mimeType string) (*RecognizeResponse, error) {
	body, err := json.Marshal(recognizeRequest{
		ContentBase64: contentBase64,
		MimeType:      mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/recognize", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusServiceUnavailable:
		return nil, fmt.Errorf("%w: engine not installed", ErrUnavailable)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("ocr service returned %d", resp.StatusCode)
	}

	var result RecognizeResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&result); decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}
	return &result, nil
}

// Health checks if the OCR service is reachable and its engine is installed.
func (c *Client) Health(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unhealthy status %d", ErrUnavailable, resp.StatusCode)
	}

	var health healthResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&health); decodeErr == nil && health.Engine == "" {
		return fmt.Errorf("%w: no ocr engine reported", ErrUnavailable)
	}
	return nil
}
