package unsplash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/darkroom/internal/domain"
)

const (
	DefaultBaseURL = "https://api.unsplash.com"
	defaultTimeout = 30 * time.Second
	apiVersion     = "v1"
	searchPath     = "/search/photos"

	// maxBodySize caps how much of a response body is read
	maxBodySize = 4 << 20
)

// Ensure Client implements PhotoRepository at compile time.
var _ domain.PhotoRepository = (*Client)(nil)

// Client implements domain.PhotoRepository for the Unsplash API
type Client struct {
	baseURL    string
	accessKey  string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new Unsplash API client.
// A zero timeout uses the default.
func NewClient(baseURL, accessKey, userAgent string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if userAgent == "" {
		userAgent = "darkroom"
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		accessKey: accessKey,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// doRequest performs an authenticated GET against the API.
// Every failure is reported as domain.ErrFetchFailed; there are no retries.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrFetchFailed, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Version", apiVersion)
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("unsplash request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("unsplash request failed", "error", err)
		return nil, errors.Join(domain.ErrFetchFailed, domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrFetchFailed, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Error("unsplash rejected access key", "status", resp.StatusCode)
		return nil, errors.Join(domain.ErrFetchFailed, domain.ErrAuthFailed)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("unsplash request error",
			"status", resp.StatusCode,
			"body", errorDetail(body),
			"path", path,
		)
		return nil, fmt.Errorf("%w: unexpected status code: %d", domain.ErrFetchFailed, resp.StatusCode)
	}

	return body, nil
}

// SearchPhotos returns one page of photos matching query
func (c *Client) SearchPhotos(ctx context.Context, query string, page, perPage int) (domain.SearchPage, error) {
	if page < 1 {
		return domain.SearchPage{}, fmt.Errorf("%w: %w: %d", domain.ErrFetchFailed, domain.ErrInvalidPage, page)
	}
	if perPage <= 0 {
		perPage = domain.PageSize
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	body, err := c.doRequest(ctx, searchPath, params)
	if err != nil {
		return domain.SearchPage{}, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("unsplash response malformed", "error", err)
		return domain.SearchPage{}, fmt.Errorf("%w: failed to parse response: %v", domain.ErrFetchFailed, err)
	}

	result := MapSearchResponse(resp)
	c.logger.Debug("unsplash search complete",
		"query", query,
		"page", page,
		"results", len(result.Photos),
		"totalPages", result.TotalPages,
	)
	return result, nil
}

// errorDetail extracts the API's error list for logging
func errorDetail(body []byte) string {
	var e ErrorResponse
	if err := json.Unmarshal(body, &e); err == nil && len(e.Errors) > 0 {
		return strings.Join(e.Errors, "; ")
	}
	const max = 200
	if len(body) > max {
		return string(body[:max])
	}
	return string(body)
}
