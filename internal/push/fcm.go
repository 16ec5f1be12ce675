package push

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

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/aurenecom/storefront-backend/pkg/config"
	pkgerrors "github.com/aurenecom/storefront-backend/pkg/errors"
)

const (
	fcmEndpointFormat           = "https://fcm.googleapis.com/v1/projects/%s/messages:send"
	fcmScope                    = "https://www.googleapis.com/auth/firebase.messaging"
	fcmBodyReadLimit      int64 = 1024
	defaultRequestTimeout       = 10 * time.Second
)

// Message is a single push notification addressed to one device token.
type Message struct {
	Token string            `json:"token"`
	Title string            `json:"-"`
	Body  string            `json:"-"`
	Data  map[string]string `json:"data,omitempty"`
}

// Sender delivers a push message to one device.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// FCMClient talks to the Firebase Cloud Messaging HTTP v1 API.
type FCMClient struct {
	httpClient *http.Client
	endpoint   string
}

// FCMOption configures optional client behavior.
type FCMOption func(*FCMClient)

// WithHTTPClient overrides the authenticated HTTP client. Intended for tests.
func WithHTTPClient(client *http.Client) FCMOption {
	return func(c *FCMClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithEndpoint overrides the messages:send URL. Intended for tests.
func WithEndpoint(endpoint string) FCMOption {
	return func(c *FCMClient) {
		trimmed := strings.TrimSpace(endpoint)
		if trimmed != "" {
			c.endpoint = trimmed
		}
	}
}

// NewFCMClient builds an FCM v1 client authenticated with the configured
// service account.
func NewFCMClient(ctx context.Context, cfg config.FCMConfig, opts ...FCMOption) (*FCMClient, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, errors.New("fcm project id is required")
	}

	client := &FCMClient{
		endpoint: fmt.Sprintf(fcmEndpointFormat, cfg.ProjectID),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		if strings.TrimSpace(cfg.ServiceAccountJSON) == "" {
			return nil, errors.New("fcm service account json is required")
		}
		creds, err := google.CredentialsFromJSON(ctx, []byte(cfg.ServiceAccountJSON), fcmScope)
		if err != nil {
			return nil, fmt.Errorf("parsing fcm credentials: %w", err)
		}
		client.httpClient = oauth2.NewClient(ctx, creds.TokenSource)
		client.httpClient.Timeout = defaultRequestTimeout
	}

	return client, nil
}

type fcmRequest struct {
	Message fcmMessage `json:"message"`
}

type fcmMessage struct {
	Token        string            `json:"token"`
	Notification *fcmNotification  `json:"notification,omitempty"`
	Data         map[string]string `json:"data,omitempty"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Send posts one message to the v1 send endpoint.
func (c *FCMClient) Send(ctx context.Context, msg Message) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "fcm client not configured")
	}
	if strings.TrimSpace(msg.Token) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "device token is required")
	}

	req := fcmRequest{
		Message: fcmMessage{
			Token: msg.Token,
			Data:  msg.Data,
		},
	}
	if msg.Title != "" || msg.Body != "" {
		req.Message.Notification = &fcmNotification{Title: msg.Title, Body: msg.Body}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal fcm payload")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build fcm request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute fcm request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, fcmBodyReadLimit))
		return pkgerrors.Wrap(
			pkgerrors.CodeDependency,
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
			"fcm send failed",
		)
	}

	return nil
}
