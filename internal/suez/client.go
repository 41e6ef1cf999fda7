package suez

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/UnknownOlympus/suez-scraper/internal/models"
)

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher returns the parsed location map document.
type Fetcher interface {
	FetchMap(ctx context.Context) (models.MapDocument, error)
}

// Common errors for the SUEZ client.
var (
	ErrUnexpectedStatus = errors.New("location map endpoint returned unexpected status")
	ErrInvalidDocument  = errors.New("location map endpoint returned an invalid document")
)

const (
	userAgent    = "Suez-Services-Scraper/1.0 (https://github.com/UnknownOlympus/suez-scraper)"
	errBodyLimit = 4096
)

// Client fetches the location map document with a single GET request.
type Client struct {
	client HTTPClient   // HTTP client for making requests
	url    string       // Full URL of the InitMap endpoint
	log    *slog.Logger // Logger for logging operations
}

// NewClient creates a client for url. A zero timeout leaves the request unbounded.
func NewClient(url string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		client: &http.Client{Timeout: timeout},
		url:    url,
		log:    log,
	}
}

// NewClientWithHTTP creates a client with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewClientWithHTTP(client HTTPClient, url string, log *slog.Logger) *Client {
	return &Client{
		client: client,
		url:    url,
		log:    log,
	}
}

// FetchMap performs one GET against the endpoint and decodes the body as a JSON object.
// There is no retry: transport errors, non-2xx statuses and malformed bodies are returned as is.
func (c *Client) FetchMap(ctx context.Context) (models.MapDocument, error) {
	c.log.DebugContext(ctx, "Fetching location map", "url", c.url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute location map request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyLimit))
		c.log.ErrorContext(ctx, "Location map API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var doc models.MapDocument
	if err = json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to decode location map: %w", ErrInvalidDocument, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document is null", ErrInvalidDocument)
	}

	c.log.DebugContext(ctx, "Location map fetched", "bytes", len(body), "keys", len(doc))

	return doc, nil
}
