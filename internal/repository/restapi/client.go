package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"voltride-backoffice/internal/logger"
)

const (
	maxBackoff  = 5 * time.Second
	bodyExcerpt = 256
)

// Options configures a Client.
type Options struct {
	BaseURL       string
	Timeout       time.Duration
	RetryAttempts int
	RetryBase     time.Duration
	HTTPClient    *http.Client
}

// Client talks JSON to the shared record repository. It sends no
// credentials.
type Client struct {
	baseURL   string
	http      *http.Client
	attempts  int
	retryBase time.Duration
}

func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	attempts := opts.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		http:      hc,
		attempts:  attempts,
		retryBase: opts.RetryBase,
	}
}

// do issues one logical request. GET, PUT and DELETE are retried on
// transient failures; POST is sent exactly once.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
	}

	attempts := c.attempts
	if method == http.MethodPost {
		attempts = 1
	}

	for attempt := 1; ; attempt++ {
		err := c.once(ctx, method, path, payload, out, attempt)
		if err == nil || attempt >= attempts || !retryable(err) {
			return err
		}
		timer := time.NewTimer(c.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.retryBase << (attempt - 1)
	if d <= 0 || d > maxBackoff {
		return maxBackoff
	}
	return d
}

func (c *Client) once(ctx context.Context, method, path string, payload []byte, out any, attempt int) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.APICall(ctx, method, path, attempt)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		err = &TransportError{Method: method, Path: path, Err: err}
		logger.APIResult(ctx, method, path, 0, time.Since(start), err)
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		err = &TransportError{Method: method, Path: path, Err: err}
		logger.APIResult(ctx, method, path, resp.StatusCode, time.Since(start), err)
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err = &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: excerpt(data)}
		logger.APIResult(ctx, method, path, resp.StatusCode, time.Since(start), err)
		return err
	}
	logger.APIResult(ctx, method, path, resp.StatusCode, time.Since(start), nil)

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Method: method, Path: path, Err: err}
	}
	return nil
}

func excerpt(data []byte) string {
	s := strings.TrimSpace(string(data))
	if len(s) > bodyExcerpt {
		return s[:bodyExcerpt] + "..."
	}
	return s
}
