package mailer

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

	pkgerrors "github.com/aurenecom/storefront-backend/pkg/errors"
)

const (
	defaultBaseURL              = "https://api.resend.com"
	responseBodyReadLimit int64 = 1024
)

var errAPIKeyRequired = errors.New("resend api key is required")

// Email is a single outbound message.
type Email struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Sender is the outbound email surface consumed by notification hooks.
type Sender interface {
	Send(ctx context.Context, email Email) (string, error)
}

// Client wraps the Resend transactional email API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured Resend base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the Resend client given an API key.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	trimmedKey := strings.TrimSpace(apiKey)
	if trimmedKey == "" {
		return nil, errAPIKeyRequired
	}

	client := &Client{
		apiKey:     trimmedKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}

	return client, nil
}

// Send delivers the email and returns the provider message ID.
func (c *Client) Send(ctx context.Context, email Email) (string, error) {
	if c == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "resend client not configured")
	}
	if strings.TrimSpace(email.From) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "sender address is required")
	}
	if len(email.To) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "at least one recipient is required")
	}
	if strings.TrimSpace(email.Subject) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "subject is required")
	}

	payload, err := json.Marshal(email)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal email payload")
	}

	url := strings.TrimRight(c.baseURL, "/") + "/emails"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build send request")
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute send request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "send request failed")
	}

	var apiResp struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode send response")
	}

	return apiResp.ID, nil
}
