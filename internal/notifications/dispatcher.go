package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Dispatcher forwards selected notifications to an operator webhook, the
// "Admin SMS" side of a sale.
type Dispatcher struct {
	url    string
	types  map[Type]bool
	client *http.Client
	logger zerolog.Logger
}

// NewDispatcher creates a Dispatcher posting notifications of the given
// types to url. With no types, sales are forwarded.
func NewDispatcher(url string, logger zerolog.Logger, types ...Type) *Dispatcher {
	if len(types) == 0 {
		types = []Type{TypeSale}
	}
	set := make(map[Type]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	return &Dispatcher{
		url:   url,
		types: set,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger.With().Str("component", "dispatcher").Logger(),
	}
}

// Run forwards matching events from feed until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context, feed *Feed) {
	events, unsubscribe := feed.Subscribe()
	defer unsubscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			if e.Kind != EventAdded || !d.types[e.Notification.Type] {
				continue
			}
			if err := d.Dispatch(ctx, e.Notification); err != nil {
				d.logger.Error().Err(err).Str("id", e.Notification.ID).Msg("webhook delivery failed")
			}
		}
	}
}

// Dispatch sends one notification to the webhook.
func (d *Dispatcher) Dispatch(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}
	return d.SendWebhook(ctx, d.url, payload)
}

// SendWebhook POSTs payload to the given URL.
func (d *Dispatcher) SendWebhook(ctx context.Context, url string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
