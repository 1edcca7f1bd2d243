package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/devnullvoid/pixgrid/pkg/api/interfaces"
)

const (
	// DefaultBaseURL is the public Unsplash API root.
	DefaultBaseURL = "https://api.unsplash.com"
	// RandomPhotosPath is the endpoint returning a batch of random photos.
	RandomPhotosPath = "/photos/random"
	// DefaultCount is the batch size requested when the config gives none.
	DefaultCount = 20
	// MaxCount is the largest batch the provider accepts.
	MaxCount = 30

	requestTimeout = 30 * time.Second
	maxErrorBody   = 64 << 10
)

// Client is an Unsplash API client with dependency injection for logging.
type Client struct {
	httpClient *http.Client
	config     interfaces.Config
	logger     interfaces.Logger
	baseURL    string
}

// NewClient creates a new API client. The API key is not validated here; it
// is read from cfg on every request.
func NewClient(cfg interfaces.Config, options ...ClientOption) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("api config cannot be nil")
	}

	opts := defaultOptions()
	for _, option := range options {
		option(opts)
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = cfg.GetBaseURL()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
			Timeout:   requestTimeout,
		}
	}

	opts.Logger.Debug("Unsplash API base URL: %s", baseURL)

	return &Client{
		httpClient: httpClient,
		config:     cfg,
		logger:     opts.Logger,
		baseURL:    baseURL,
	}, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// count returns the configured batch size clamped to the provider range.
func (c *Client) count() int {
	n := c.config.GetCount()
	if n <= 0 {
		return DefaultCount
	}
	if n > MaxCount {
		return MaxCount
	}

	return n
}

// randomPhotosURL builds the request URL including the access key.
func (c *Client) randomPhotosURL() string {
	params := url.Values{}
	params.Set("count", strconv.Itoa(c.count()))
	params.Set("client_id", c.config.GetAPIKey())

	return c.baseURL + RandomPhotosPath + "?" + params.Encode()
}

// FetchRandomImages issues one GET for a batch of random photos and returns
// the decoded records exactly as received. It does not retry or cache.
// Every returned error satisfies errors.Is(err, ErrFetchFailed).
func (c *Client) FetchRandomImages(ctx context.Context) ([]Image, error) {
	c.logger.Debug("API GET: %s (count=%d)", RandomPhotosPath, c.count())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.randomPhotosURL(), nil)
	if err != nil {
		return nil, newFetchError(0, err, "failed to create request: %v", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error repeats the full URL, which carries the key.
		cause := err
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			cause = urlErr.Err
		}
		c.logger.Error("Photo request failed: %v", cause)

		return nil, newFetchError(0, err, "request failed: %v", cause)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		fetchErr := newFetchError(resp.StatusCode, nil, "%s", statusMessage(resp, body))
		c.logger.Error("Photo request returned %d: %s", resp.StatusCode, fetchErr.Message)

		return nil, fetchErr
	}

	var images []Image
	if err := json.NewDecoder(resp.Body).Decode(&images); err != nil {
		c.logger.Error("Failed to decode photo response: %v", err)

		return nil, newFetchError(resp.StatusCode, err, "failed to parse response JSON: %v", err)
	}

	c.logger.Debug("Received %d photos", len(images))

	return images, nil
}

// errorBody is the provider's error envelope.
type errorBody struct {
	Errors []string `json:"errors"`
}

// statusMessage renders a non-2xx response as a single line.
func statusMessage(resp *http.Response, body []byte) string {
	msg := fmt.Sprintf("API request failed with status %s", resp.Status)

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && len(eb.Errors) > 0 {
		return msg + ": " + strings.Join(eb.Errors, "; ")
	}

	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 {
		return msg + ": " + text
	}

	return msg
}
