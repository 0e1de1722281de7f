package mattermost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const maxErrorBodyBytes = 4 * 1024

// Client posts messages to a Mattermost incoming webhook. One attempt per
// call, no retries; failures surface to the caller.
type Client struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a webhook client for the given incoming webhook URL.
func NewClient(webhookURL string, logger *slog.Logger) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// Send posts the message to the configured webhook. Non-2xx responses are
// an error carrying the status and the (truncated) response body.
func (c *Client) Send(ctx context.Context, post Post) error {
	if c.webhookURL == "" {
		return fmt.Errorf("no webhook URL configured")
	}

	body, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("marshal webhook post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post to webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(respBody))
	}

	c.logger.Debug("webhook post delivered", "status", resp.StatusCode)
	return nil
}
