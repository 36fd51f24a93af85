// Package notify delivers direct alerts to users through an outgoing
// webhook. The concrete chat transport behind the webhook is a collaborator
// concern; the engine only posts the rendered payload.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/umputun/chatsift/pkg/config"
)

// Webhook posts direct alerts to a configured URL. With no URL configured
// delivery is a no-op, which keeps fallback-only and test deployments simple.
type Webhook struct {
	url    string
	client *http.Client
}

// NewWebhook creates a webhook alerter
func NewWebhook(cfg config.NotifyConfig) *Webhook {
	return &Webhook{
		url:    cfg.WebhookURL,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// SendDirectAlert posts the rendered alert payload for a user. Fire and
// forget from the engine's point of view: the caller logs failures, nothing
// retries here.
func (w *Webhook) SendDirectAlert(ctx context.Context, userID string, payload []byte) error {
	if w.url == "" {
		return nil
	}

	body, err := json.Marshal(map[string]json.RawMessage{
		"user_id": json.RawMessage(fmt.Sprintf("%q", userID)),
		"alert":   json.RawMessage(payload),
	})
	if err != nil {
		return fmt.Errorf("marshal alert body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create alert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post alert: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("alert webhook returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
