// internal/notify/webhook.go
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tamzrod/linkstat/internal/status"
)

const (
	requestTimeout = 5 * time.Second
	maxRetries     = 3
)

var httpClient = &http.Client{Timeout: requestTimeout}

// WebhookConfig is one outbound notification target.
type WebhookConfig struct {
	URL     string            `yaml:"url"`
	Events  []string          `yaml:"events"` // connected, disconnected, degraded
	Headers map[string]string `yaml:"headers"`
}

// payload is the body posted to webhooks: the event name plus the
// snapshot that caused it. Beyond being JSON the shape is not a
// stability promise.
type payload struct {
	Event    string           `json:"event"`
	Snapshot *status.Snapshot `json:"snapshot"`
}

// Send posts one event to one webhook with retry on 5xx.
func Send(cfg WebhookConfig, event string, snap *status.Snapshot) error {
	body, err := json.Marshal(payload{Event: event, Snapshot: snap})
	if err != nil {
		return fmt.Errorf("notify: marshal payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * time.Second)
		}

		req, err := http.NewRequest(http.MethodPost, cfg.URL, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("notify: create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		for k, v := range cfg.Headers {
			req.Header.Set(k, v)
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return fmt.Errorf("notify: webhook rejected: HTTP %d", resp.StatusCode)
		}
		lastErr = fmt.Errorf("notify: webhook server error: HTTP %d", resp.StatusCode)
	}

	return fmt.Errorf("notify: webhook failed after %d attempts: %w", maxRetries, lastErr)
}
