package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rafaelleal24/storefront/internal/adapters/mongo/document"
	"github.com/rafaelleal24/storefront/internal/adapters/outbox"
	"github.com/rafaelleal24/storefront/internal/core/domain"
	"github.com/rafaelleal24/storefront/internal/core/port"
)

var (
	_ outbox.Repository  = (*OutboxRepository)(nil)
	_ port.EventRecorder = (*OutboxRepository)(nil)
)

type OutboxRepository struct {
	*BaseRepository[document.OutboxDocument]
}

func NewOutboxRepository(db *mongo.Database) *OutboxRepository {
	repo := &OutboxRepository{
		BaseRepository: NewBaseRepository[document.OutboxDocument](db, "outbox", "outbox entry"),
	}
	repo.EnsureIndexes(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: 1}},
		Options: options.Index().SetName("created_at"),
	})
	return repo
}

// Record serializes a domain event into the outbox. Called with a transaction
// context, the entry commits or rolls back with the surrounding writes.
func (r *OutboxRepository) Record(ctx context.Context, event domain.Event) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.GetName(), err)
	}

	return r.Insert(ctx, outbox.Entry{
		EventName:  event.GetName(),
		EntityName: event.GetEntityName(),
		EventData:  eventData,
	})
}

func (r *OutboxRepository) Insert(ctx context.Context, entry outbox.Entry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.BaseRepository.Insert(ctx, &document.OutboxDocument{
		EventName:  entry.EventName,
		EntityName: entry.EntityName,
		EventData:  string(entry.EventData),
		CreatedAt:  createdAt,
	})
	return err
}

func (r *OutboxRepository) FetchPending(ctx context.Context, limit int) ([]outbox.Entry, error) {
	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: 1}})

	docs, err := r.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	entries := make([]outbox.Entry, len(docs))
	for i, doc := range docs {
		entries[i] = outbox.Entry{
			ID:         doc.ID.Hex(),
			EventName:  doc.EventName,
			EntityName: doc.EntityName,
			EventData:  []byte(doc.EventData),
			CreatedAt:  doc.CreatedAt,
		}
	}

	return entries, nil
}

func (r *OutboxRepository) Delete(ctx context.Context, id string) error {
	return r.DeleteByID(ctx, id)
}
