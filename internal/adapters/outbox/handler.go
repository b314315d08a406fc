package outbox

import (
	"context"
	"time"

	"github.com/rafaelleal24/smartpantry/internal/adapters/config"
	"github.com/rafaelleal24/smartpantry/internal/core/logger"
	"github.com/rafaelleal24/smartpantry/internal/core/port"
)

// Handler relays recorded events to the broker in creation order.
type Handler struct {
	outbox   Repository
	broker   port.BrokerPort
	interval time.Duration
	batch    int
}

func NewHandler(outbox Repository, broker port.BrokerPort, config config.OutboxConfig) *Handler {
	h := &Handler{
		outbox:   outbox,
		broker:   broker,
		interval: config.Interval,
		batch:    config.BatchSize,
	}
	if h.interval <= 0 {
		h.interval = time.Second
	}
	if h.batch <= 0 {
		h.batch = 100
	}
	return h
}

// Start drains the outbox once and then on every tick until ctx is done.
func (h *Handler) Start(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	h.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.RunOnce(ctx)
		}
	}
}

// RunOnce relays pending events until the outbox is empty or a publish fails.
// It returns the number of events published.
func (h *Handler) RunOnce(ctx context.Context) int {
	published := 0
	for ctx.Err() == nil {
		sent, drained := h.relayBatch(ctx)
		published += sent
		if !drained {
			break
		}
	}
	if published > 0 {
		logger.Debug(ctx, "outbox: relay pass finished", map[string]any{"published": published})
	}
	return published
}

// relayBatch publishes one batch. drained reports whether the batch was full
// and fully relayed, so another fetch may find more work.
func (h *Handler) relayBatch(ctx context.Context) (published int, drained bool) {
	entries, err := h.outbox.FetchPending(ctx, h.batch)
	if err != nil {
		logger.Error(ctx, "outbox: failed to fetch pending events", err, map[string]any{
			"batch": h.batch,
		})
		return 0, false
	}

	for _, entry := range entries {
		attrs := entryAttributes(entry)

		// A failed publish holds back the rest of the batch so status changes
		// of one product reach consumers in the order they were recorded.
		if err := h.broker.PublishRaw(ctx, entry.EventName, entry.EntityName, entry.EventData); err != nil {
			attrs["held_back"] = len(entries) - published - 1
			logger.Error(ctx, "outbox: failed to publish event", err, attrs)
			return published, false
		}

		if err := h.outbox.Delete(ctx, entry.ID); err != nil {
			// Left in place; consumers see it again after the next fetch.
			logger.Error(ctx, "outbox: failed to delete event after publish", err, attrs)
			return published, false
		}

		logger.Debug(ctx, "outbox: event published", attrs)
		published++
	}

	return published, len(entries) == h.batch
}

func entryAttributes(entry Entry) map[string]any {
	attrs := map[string]any{
		"event_id":    entry.ID,
		"event_name":  entry.EventName,
		"entity_name": entry.EntityName,
	}
	if !entry.CreatedAt.IsZero() {
		attrs["event_age_ms"] = time.Since(entry.CreatedAt).Milliseconds()
	}
	return attrs
}
