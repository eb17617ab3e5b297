// Package client submits orders to the order service on behalf of the form.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Simplici0/octozek/internal/order"
)

const (
	DefaultBaseURL = "http://localhost:3000"
	defaultTimeout = 30 * time.Second
)

// Response is the body returned by POST /order.
type Response struct {
	OK          bool            `json:"ok"`
	Sent        bool            `json:"sent"`
	MessageID   *string         `json:"messageId"`
	ResendError json.RawMessage `json:"resendError,omitempty"`
	Error       string          `json:"error,omitempty"`
	Detail      string          `json:"detail,omitempty"`
}

// SubmitError is the single failure shown to the customer. It covers
// network failures, non-200 statuses and orders that were not sent.
type SubmitError struct {
	Status   int
	Response *Response
	Err      error
}

func (e *SubmitError) Error() string {
	if e.Err != nil {
		return "Network error. Please try again later."
	}
	msg := fmt.Sprintf("Sorry, the email didn't send.\nStatus: %d", e.Status)
	if e.Response != nil {
		if len(e.Response.ResendError) > 0 && string(e.Response.ResendError) != "null" {
			msg += "\nResend: " + string(e.Response.ResendError)
		} else if e.Response.Error != "" {
			msg += "\n" + e.Response.Error
		}
	}
	return msg
}

func (e *SubmitError) Unwrap() error { return e.Err }

// Client talks to the order service.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New returns a client for baseURL; an empty baseURL means DefaultBaseURL.
func New(baseURL string, httpClient *http.Client) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{httpClient: httpClient, baseURL: baseURL}
}

// SubmitOrder posts p and returns the decoded response. The error is a
// *SubmitError unless the order was accepted and sent.
func (c *Client) SubmitOrder(ctx context.Context, p order.Payload) (*Response, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/order", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &SubmitError{Err: err}
	}
	defer resp.Body.Close()

	var out Response
	data, _ := io.ReadAll(resp.Body)
	decodeErr := json.Unmarshal(data, &out)

	if resp.StatusCode != http.StatusOK || decodeErr != nil || !out.OK || !out.Sent {
		se := &SubmitError{Status: resp.StatusCode}
		if decodeErr == nil {
			se.Response = &out
		}
		return nil, se
	}
	return &out, nil
}

// Submit satisfies form.Submitter.
func (c *Client) Submit(ctx context.Context, p order.Payload) error {
	_, err := c.SubmitOrder(ctx, p)
	return err
}
