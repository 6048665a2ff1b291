package outbox

import (
	"context"
	"time"
)

// Entry is an event waiting to be relayed. EventData is the JSON the broker
// publishes unchanged.
type Entry struct {
	ID         string
	EventName  string
	EntityName string
	EventData  []byte
	CreatedAt  time.Time
}

// Lag is how long the entry has waited for delivery.
func (e Entry) Lag(now time.Time) time.Duration {
	if e.CreatedAt.IsZero() || now.Before(e.CreatedAt) {
		return 0
	}
	return now.Sub(e.CreatedAt)
}

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
type Repository interface {
	Insert(ctx context.Context, entry Entry) error
	// FetchPending returns up to limit entries, oldest first.
	FetchPending(ctx context.Context, limit int) ([]Entry, error)
	Delete(ctx context.Context, id string) error
}
