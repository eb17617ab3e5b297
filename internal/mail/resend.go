package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultResendBaseURL = "https://api.resend.com"
	defaultResendTimeout = 15 * time.Second

	// Cap on provider error bodies read into memory.
	maxErrorBody = 64 << 10
)

// ErrNoAPIKey is returned when a Resend client is built without a credential.
var ErrNoAPIKey = errors.New("mail: no Resend API key configured")

// ResendConfig configures the Resend client.
type ResendConfig struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// ResendClient sends email through the Resend HTTP API.
type ResendClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// NewResendClient creates a Resend client. It fails when cfg has no API key.
func NewResendClient(cfg ResendConfig) (*ResendClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultResendBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = defaultResendTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &ResendClient{
		httpClient: httpClient,
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
	}, nil
}

type resendSendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

type resendSendResponse struct {
	ID string `json:"id"`
}

// Send posts msg to /emails. A non-2xx answer becomes a *RejectionError.
func (c *ResendClient) Send(ctx context.Context, msg Message) (string, error) {
	body, err := json.Marshal(resendSendRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	})
	if err != nil {
		return "", fmt.Errorf("marshal resend request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create resend request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if msg.IdempotencyKey != "" {
		req.Header.Set("Idempotency-Key", msg.IdempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("resend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", decodeRejection(resp)
	}

	var out resendSendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode resend response: %w", err)
	}
	return out.ID, nil
}

func decodeRejection(resp *http.Response) *RejectionError {
	rej := &RejectionError{}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err := json.Unmarshal(data, rej); err != nil || rej.Message == "" {
		rej.Name = "application_error"
		rej.Message = strings.TrimSpace(string(data))
		if rej.Message == "" {
			rej.Message = http.StatusText(resp.StatusCode)
		}
	}
	if rej.StatusCode == 0 {
		rej.StatusCode = resp.StatusCode
	}
	return rej
}
