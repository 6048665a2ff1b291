package port

import (
	"context"

	"github.com/rafaelleal24/storefront/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// BrokerPort delivers catalog and checkout events. Events are routed by the
// entity that produced them; a nil error means the broker accepted the message.
type BrokerPort interface {
	Publish(ctx context.Context, event domain.Event) error
	// PublishRaw sends an already serialized event, as relayed from the outbox.
	PublishRaw(ctx context.Context, eventName, entityName string, data []byte) error
	Close() error
}
