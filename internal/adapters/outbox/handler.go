package outbox

import (
	"context"
	"time"

	"github.com/rafaelleal24/storefront/internal/adapters/config"
	"github.com/rafaelleal24/storefront/internal/core/logger"
	"github.com/rafaelleal24/storefront/internal/core/port"
)

// Handler relays outbox entries to the broker. Entries are deleted once
// published, so the outbox only ever holds undelivered events.
type Handler struct {
	outbox   Repository
	broker   port.BrokerPort
	interval time.Duration
	batch    int
}

func NewHandler(outbox Repository, broker port.BrokerPort, config config.OutboxConfig) *Handler {
	return &Handler{
		outbox:   outbox,
		broker:   broker,
		interval: config.Interval,
		batch:    config.BatchSize,
	}
}

// Start runs until ctx is done. The first pass runs immediately so entries
// left behind by a previous process are not held back by the interval.
func (h *Handler) Start(ctx context.Context) {
	h.drain(ctx)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.drain(ctx)
		}
	}
}

// drain keeps fetching while full batches are being published.
func (h *Handler) drain(ctx context.Context) {
	for ctx.Err() == nil {
		fetched, published := h.ProcessPending(ctx)
		if fetched < h.batch || published < fetched {
			return
		}
	}
}

// ProcessPending publishes one batch and reports how many entries were
// fetched and how many were published.
func (h *Handler) ProcessPending(ctx context.Context) (fetched int, published int) {
	entries, err := h.outbox.FetchPending(ctx, h.batch)
	if err != nil {
		logger.Error(ctx, "outbox: failed to fetch pending events", err, map[string]any{
			"batch": h.batch,
		})
		return 0, 0
	}

	now := time.Now()
	var maxLag time.Duration
	for _, entry := range entries {
		if ctx.Err() != nil {
			break
		}

		lag := entry.Lag(now)
		maxLag = max(maxLag, lag)
		eventLogAttributes := map[string]any{
			"event_id":    entry.ID,
			"event_name":  entry.EventName,
			"entity_name": entry.EntityName,
			"lag_ms":      lag.Milliseconds(),
		}
		if err := h.broker.PublishRaw(ctx, entry.EventName, entry.EntityName, entry.EventData); err != nil {
			logger.Error(ctx, "outbox: failed to publish event", err, eventLogAttributes)
			continue
		}
		published++

		logger.Debug(ctx, "outbox: event published", eventLogAttributes)

		if err := h.outbox.Delete(ctx, entry.ID); err != nil {
			logger.Error(ctx, "outbox: failed to delete event after publish", err, eventLogAttributes)
		}
	}

	if len(entries) > 0 {
		logger.Info(ctx, "outbox: batch relayed", map[string]any{
			"fetched":    len(entries),
			"published":  published,
			"max_lag_ms": maxLag.Milliseconds(),
		})
	}
	return len(entries), published
}
