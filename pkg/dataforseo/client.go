package dataforseo

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL      = "https://api.dataforseo.com"
	DefaultLocationCode = 2840 // United States
	DefaultLanguageCode = "en"

	// DefaultBatchSize is how many keywords go into one task by default.
	// MaxKeywordsPerRequest is the hard API limit per task.
	DefaultBatchSize      = 1000
	MaxKeywordsPerRequest = 1000

	searchVolumePath = "/v3/keywords_data/google_ads/search_volume/live"
	clickstreamPath  = "/v3/keywords_data/clickstream_data/global_search_volume/live"
)

// Client talks to the DataForSEO v3 API using HTTP Basic auth.
type Client struct {
	authB64 string
	baseURL string
	http    *retryablehttp.Client
}

// NewClient builds a client from API login and password.
func NewClient(login, password string) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = log.New(io.Discard, "", 0)
	// Failed batches are reported and skipped, never replayed. The
	// passthrough handler hands 5xx responses back with their body instead
	// of a bare giving-up error.
	retryClient.RetryMax = 0
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient.Timeout = 60 * time.Second

	return &Client{
		authB64: base64.StdEncoding.EncodeToString([]byte(login + ":" + password)),
		baseURL: DefaultBaseURL,
		http:    retryClient,
	}
}

// SetBaseURL points the client at a different API host.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimSuffix(u, "/")
}

// SearchVolume calls the Google Ads search volume endpoint for one batch of
// keywords.
func (c *Client) SearchVolume(ctx context.Context, task SearchVolumeTask) (*Response, error) {
	return c.post(ctx, searchVolumePath, []SearchVolumeTask{task})
}

// ClickstreamVolume calls the clickstream global search volume endpoint for
// one batch of keywords.
func (c *Client) ClickstreamVolume(ctx context.Context, task ClickstreamTask) (*Response, error) {
	return c.post(ctx, clickstreamPath, []ClickstreamTask{task})
}

func (c *Client) post(ctx context.Context, path string, payload any) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Basic "+c.authB64)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		// Error bodies are not guaranteed to be JSON, so pick the message
		// out loosely and fall back to the raw body.
		msg := gjson.GetBytes(respBody, "status_message").Str
		if msg == "" {
			msg = strings.TrimSpace(string(respBody))
		}
		return nil, fmt.Errorf("API error: HTTP %d: %s", resp.StatusCode, msg)
	}

	var parsed Response
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("unable to parse API response: %w", err)
	}
	return &parsed, nil
}
