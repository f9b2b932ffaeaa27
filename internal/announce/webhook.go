package announce

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// WebhookPublisher posts roster events to a downstream HTTP endpoint.
type WebhookPublisher struct {
	client *http.Client
	url    string
	token  string
}

// NewWebhookPublisher constructs a WebhookPublisher.
func NewWebhookPublisher(endpoint, token string, timeout time.Duration) *WebhookPublisher {
	return &WebhookPublisher{
		client: &http.Client{Timeout: timeout},
		url:    strings.TrimRight(endpoint, "/"),
		token:  token,
	}
}

// Name identifies the sink in logs and metrics.
func (p *WebhookPublisher) Name() string { return "webhook" }

// Publish sends the event envelope as an HTTP POST.
func (p *WebhookPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(map[string]any{
		"event_type": event.Type,
		"payload":    event.Payload,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &DeliveryError{Status: resp.StatusCode}
	}
	return nil
}

// DeliveryError represents a non-successful webhook response.
type DeliveryError struct {
	Status int
}

func (e *DeliveryError) Error() string {
	return "webhook delivery failed with status " + http.StatusText(e.Status)
}
