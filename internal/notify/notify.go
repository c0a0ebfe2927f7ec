// Package notify delivers order notifications to the customer-facing channel.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/stichkala/order-service/internal/contracts"
	"github.com/stichkala/order-service/internal/entities"
)

// WebhookNotifier posts confirmations to a messaging bridge (email/WhatsApp).
type WebhookNotifier struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

func NewWebhookNotifier(logger *slog.Logger, url string, timeout time.Duration) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger.With(slog.String("component", "notifier")),
	}
}

type webhookPayload struct {
	Reason string          `json:"reason"`
	Order  contracts.Order `json:"order"`
}

func (n *WebhookNotifier) SendOrderConfirmation(ctx context.Context, order entities.Order, reason string) error {
	body, err := json.Marshal(webhookPayload{Reason: reason, Order: contracts.Snapshot(order)})
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification endpoint returned %d", resp.StatusCode)
	}

	n.logger.InfoContext(ctx, "notification sent",
		slog.String("order_number", order.OrderNumber),
		slog.String("reason", reason),
	)
	return nil
}

// LogNotifier only logs. Used when no webhook is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With(slog.String("component", "notifier"))}
}

func (n *LogNotifier) SendOrderConfirmation(ctx context.Context, order entities.Order, reason string) error {
	n.logger.InfoContext(ctx, "order notification",
		slog.String("order_number", order.OrderNumber),
		slog.String("email", order.Customer.Email),
		slog.String("reason", reason),
	)
	return nil
}
