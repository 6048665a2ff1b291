package port

import (
	"context"

	"github.com/rafaelleal24/storefront/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// EventRecorder stores an event for later delivery. When ctx carries a
// transaction the event is committed together with it.
type EventRecorder interface {
	Record(ctx context.Context, event domain.Event) error
}
