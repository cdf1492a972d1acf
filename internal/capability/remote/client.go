// Package remote implements the document capabilities against a remote
// Document Understanding API: digitization, classification, extraction,
// validation and resource discovery.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"docflow/internal/config"
)

// Operation statuses reported by the remote platform.
const (
	statusSucceeded = "succeeded"
	statusFailed    = "failed"
)

// Client performs authenticated requests against the remote API and drives
// its start/poll asynchronous operations.
type Client struct {
	baseURL      string
	apiVersion   string
	tokens       TokenSource
	http         *http.Client
	pollInterval time.Duration
	maxWait      time.Duration
	catalog      string
}

// NewClient creates a Client from cfg.
func NewClient(cfg *config.RemoteConfig, tokens TokenSource) *Client {
	timeout := cfg.HTTPTimeout
	if timeout == 0 {
		timeout = 300 * time.Second
	}
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = "1.1"
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiVersion:   apiVersion,
		tokens:       tokens,
		http:         &http.Client{Timeout: timeout},
		pollInterval: pollInterval,
		maxWait:      cfg.OperationMaxWait,
		catalog:      cfg.ValidationCatalog,
	}
}

func (c *Client) endpoint(segments ...string) string {
	escaped := make([]string, 0, len(segments)+1)
	escaped = append(escaped, c.baseURL)
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}
	q := url.Values{"api-version": {c.apiVersion}}
	return strings.Join(escaped, "/") + "?" + q.Encode()
}

// doJSON sends body (JSON-encoded when non-nil) and decodes the response into out.
func (c *Client) doJSON(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	contentType := ""
	if body != nil {
		contentType = "application/json"
	}
	return c.do(ctx, method, endpoint, reader, contentType, out)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, contentType string, out interface{}) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("obtaining bearer token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", method, redact(endpoint), err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			Method:     method,
			URL:        redact(endpoint),
			StatusCode: resp.StatusCode,
			Body:       truncate(string(respBody), 500),
		}
		if apiErr.Temporary() {
			apiErr.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
		}
		return apiErr
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response from %s: %w (raw: %s)", redact(endpoint), err, truncate(string(respBody), 200))
	}
	return nil
}

// redact drops the query string from URLs used in errors and logs.
func redact(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		return endpoint[:i]
	}
	return endpoint
}

// startResponse is returned by every .../start endpoint.
type startResponse struct {
	OperationID string `json:"operationId"`
	DocumentID  string `json:"documentId"`
	ResultURL   string `json:"resultUrl"`
}

// operationResponse is returned by every .../result/{id} endpoint.
type operationResponse struct {
	Status string          `json:"status"`
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// poll fetches resultEndpoint until the operation succeeds or fails, or the
// configured maximum wait elapses.
func (c *Client) poll(ctx context.Context, operation, operationID, resultEndpoint string) (json.RawMessage, error) {
	if c.maxWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.maxWait)
		defer cancel()
	}

	timer := time.NewTimer(0)
	defer timer.Stop()

	for attempt := 1; ; attempt++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for %s operation %s: %w", operation, operationID, ctx.Err())
		case <-timer.C:
		}

		var op operationResponse
		if err := c.doJSON(ctx, http.MethodGet, resultEndpoint, nil, &op); err != nil {
			return nil, fmt.Errorf("polling %s operation %s: %w", operation, operationID, err)
		}

		switch strings.ToLower(op.Status) {
		case statusSucceeded:
			log.Debug().Str("operation", operation).Str("operation_id", operationID).Int("attempts", attempt).
				Msg("remote.poll: operation succeeded")
			return op.Result, nil
		case statusFailed:
			opErr := &OperationError{Operation: operation, OperationID: operationID, Status: op.Status}
			if op.Error != nil {
				opErr.Code = op.Error.Code
				opErr.Message = op.Error.Message
			}
			return nil, opErr
		}

		timer.Reset(c.pollInterval)
	}
}
