// Package api is the HTTP client for the records service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"feedlog-cli/internal/model"
)

const DefaultTimeout = 10 * time.Second

// maxErrorBody bounds how much of a failure response we read; anything the
// service has to say about a bad request fits well under this.
const maxErrorBody = 1 << 20

// Client talks to the records service. All methods take a context; the
// underlying http.Client timeout is the only cancellation beyond that.
type Client struct {
	http    *http.Client
	baseURL string
}

// New creates a Client for baseURL (e.g. "http://localhost:5000").
func New(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("api: empty base url")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("api: invalid base url: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// RequestError is a non-2xx response from the service. When the body carries
// the structured validation shape {"errors":[{"msg":...}]}, Messages holds
// the individual messages; otherwise it is empty and Error falls back to a
// generic status description.
type RequestError struct {
	StatusCode int
	Messages   []string
}

func (e *RequestError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("records service returned status %d", e.StatusCode)
	}
	return strings.Join(e.Messages, ", ")
}

func (c *Client) List(ctx context.Context) ([]model.Record, error) {
	var out []model.Record
	if err := c.doJSON(ctx, http.MethodGet, "/api/records", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, p model.RecordPayload) (model.Record, error) {
	var out model.Record
	if err := c.doJSON(ctx, http.MethodPost, "/api/records", p, &out); err != nil {
		return model.Record{}, err
	}
	return out, nil
}

func (c *Client) Update(ctx context.Context, id string, p model.RecordPayload) (model.Record, error) {
	var out model.Record
	if err := c.doJSON(ctx, http.MethodPut, "/api/records/"+url.PathEscape(id), p, &out); err != nil {
		return model.Record{}, err
	}
	return out, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/records/"+url.PathEscape(id), nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{
			StatusCode: resp.StatusCode,
			Messages:   decodeErrorMessages(raw),
		}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

func decodeErrorMessages(raw []byte) []string {
	var payload struct {
		Errors []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	msgs := make([]string, 0, len(payload.Errors))
	for _, e := range payload.Errors {
		if strings.TrimSpace(e.Msg) != "" {
			msgs = append(msgs, e.Msg)
		}
	}
	return msgs
}
