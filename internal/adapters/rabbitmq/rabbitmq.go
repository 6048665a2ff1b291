package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/rafaelleal24/storefront/internal/adapters/config"
	"github.com/rafaelleal24/storefront/internal/core/domain"
	"github.com/rafaelleal24/storefront/internal/core/logger"
	"github.com/rafaelleal24/storefront/internal/core/port"
)

var _ port.BrokerPort = (*RabbitMQAdapter)(nil)

var (
	ErrUnknownEntity = errors.New("no exchange configured for entity")
	ErrNotConfirmed  = errors.New("publish not confirmed by broker")
)

const appID = "storefront"

type RabbitMQAdapter struct {
	mu        sync.Mutex
	conn      *amqp.Connection
	channel   *amqp.Channel
	config    config.RabbitMQConfig
	exchanges map[string]string
}

func NewRabbitMQAdapter(cfg config.RabbitMQConfig) (*RabbitMQAdapter, error) {
	exchanges := make(map[string]string, len(cfg.ExchangeConfigs))
	for _, ec := range cfg.ExchangeConfigs {
		exchanges[ec.Entity] = ec.Name
	}
	adapter := &RabbitMQAdapter{config: cfg, exchanges: exchanges}

	if err := adapter.connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	return adapter, nil
}

func (r *RabbitMQAdapter) connect() error {
	conn, err := amqp.Dial(r.config.URL)
	if err != nil {
		return fmt.Errorf("failed to dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	for _, ec := range r.config.ExchangeConfigs {
		if err := ch.ExchangeDeclare(ec.Name, ec.Type, ec.Durable, ec.AutoDelete, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return fmt.Errorf("failed to declare exchange %s: %w", ec.Name, err)
		}
	}

	// Outbox entries are deleted once Publish returns, so every message
	// must be acknowledged by the broker first.
	if err := ch.Confirm(false); err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	r.conn = conn
	r.channel = ch
	return nil
}

func (r *RabbitMQAdapter) reconnect() error {
	if r.channel != nil {
		r.channel.Close()
		r.channel = nil
	}
	if r.conn != nil {
		r.conn.Close()
		r.conn = nil
	}
	return r.connect()
}

func (r *RabbitMQAdapter) Publish(ctx context.Context, event domain.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		logger.Error(ctx, "failed to marshal event", err, map[string]any{
			"event_name":  event.GetName(),
			"entity_name": event.GetEntityName(),
		})
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return r.publish(ctx, event.GetName(), event.GetEntityName(), body)
}

func (r *RabbitMQAdapter) PublishRaw(ctx context.Context, eventName, entityName string, data []byte) error {
	return r.publish(ctx, eventName, entityName, data)
}

// exchangeFor resolves the exchange of an entity. Events of an entity without
// a configured exchange are rejected rather than published to a guessed name.
func (r *RabbitMQAdapter) exchangeFor(entityName string) (string, error) {
	exchange, ok := r.exchanges[entityName]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownEntity, entityName)
	}
	return exchange, nil
}

func (r *RabbitMQAdapter) publish(ctx context.Context, eventName, entityName string, body []byte) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	exchange, err := r.exchangeFor(entityName)
	if err != nil {
		return err
	}
	routingKey := eventName

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		MessageId:    uuid.NewString(),
		Type:         eventName,
		AppId:        appID,
		Headers:      amqp.Table{"entity": entityName},
	}

	var lastErr error
	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := waitRetry(ctx, r.config.RetryDelay); err != nil {
				return fmt.Errorf("publish %s: %w", eventName, err)
			}
		}

		lastErr = r.publishOnce(ctx, exchange, routingKey, msg)
		if lastErr == nil {
			return nil
		}
		logger.Error(ctx, "publish: failed", lastErr, map[string]any{
			"attempt":     attempt + 1,
			"exchange":    exchange,
			"routing_key": routingKey,
			"message_id":  msg.MessageId,
		})
	}

	return fmt.Errorf("failed to publish after %d attempts: %w", r.config.MaxRetries+1, lastErr)
}

// publishOnce sends msg and waits for the broker confirmation. The channel is
// dropped on failure so the next attempt reconnects.
func (r *RabbitMQAdapter) publishOnce(ctx context.Context, exchange, routingKey string, msg amqp.Publishing) error {
	r.mu.Lock()
	if r.channel == nil {
		if err := r.reconnect(); err != nil {
			r.mu.Unlock()
			return fmt.Errorf("reconnect failed: %w", err)
		}
	}

	confirmation, err := r.channel.PublishWithDeferredConfirmWithContext(ctx, exchange, routingKey, false, false, msg)
	if err != nil {
		r.channel = nil
		r.mu.Unlock()
		return err
	}
	r.mu.Unlock()

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !acked {
		return ErrNotConfirmed
	}
	return nil
}

func waitRetry(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (r *RabbitMQAdapter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	if r.channel != nil {
		if err := r.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing channel: %w", err))
		}
		r.channel = nil
	}
	if r.conn != nil {
		if err := r.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing connection: %w", err))
		}
		r.conn = nil
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing RabbitMQ: %v", errs)
	}
	return nil
}

func (r *RabbitMQAdapter) HealthCheck() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn == nil || r.conn.IsClosed() {
		return fmt.Errorf("connection is closed")
	}
	if r.channel == nil {
		return fmt.Errorf("channel is nil")
	}
	return nil
}
