package repository_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	mongoadapter "github.com/rafaelleal24/storefront/internal/adapters/mongo"
	"github.com/rafaelleal24/storefront/internal/adapters/mongo/repository"
	"github.com/rafaelleal24/storefront/internal/adapters/outbox"
	"github.com/rafaelleal24/storefront/internal/core/domain"
)

func TestOutboxRepository_Insert(t *testing.T) {
	freshDB := freshDatabase(t)
	repo := repository.NewOutboxRepository(freshDB)
	ctx := context.Background()

	t.Run("inserts entry successfully", func(t *testing.T) {
		entry := outbox.Entry{
			EventName:  "product.created",
			EntityName: "product",
			EventData:  []byte(`{"product_id":"123"}`),
		}

		err := repo.Insert(ctx, entry)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("keeps the creation time of the entry", func(t *testing.T) {
		createdAt := time.Now().Add(-time.Minute).UTC().Truncate(time.Millisecond)
		if err := repo.Insert(ctx, outbox.Entry{EventName: "product.created", EntityName: "product", EventData: []byte(`{}`), CreatedAt: createdAt}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		entries, err := repo.FetchPending(ctx, 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		// oldest first
		if len(entries) != 2 || !entries[0].CreatedAt.Equal(createdAt) {
			t.Fatalf("expected backdated entry first, got %+v", entries)
		}
		if entries[1].CreatedAt.IsZero() {
			t.Fatal("expected creation time to be set on insert")
		}
	})
}

func TestOutboxRepository_FetchPending(t *testing.T) {
	freshDB := freshDatabase(t)
	repo := repository.NewOutboxRepository(freshDB)
	ctx := context.Background()

	t.Run("returns empty when no entries", func(t *testing.T) {
		entries, err := repo.FetchPending(ctx, 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(entries) != 0 {
			t.Fatalf("expected 0 entries, got %d", len(entries))
		}
	})

	t.Run("fetches inserted entries", func(t *testing.T) {
		_ = repo.Insert(ctx, outbox.Entry{EventName: "evt.1", EntityName: "entity", EventData: []byte(`{}`)})
		_ = repo.Insert(ctx, outbox.Entry{EventName: "evt.2", EntityName: "entity", EventData: []byte(`{}`)})

		entries, err := repo.FetchPending(ctx, 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		// Each entry should have an ID
		for i, e := range entries {
			if e.ID == "" {
				t.Fatalf("entry[%d] has empty ID", i)
			}
		}
	})

	t.Run("respects limit", func(t *testing.T) {
		entries, err := repo.FetchPending(ctx, 1)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry (limit=1), got %d", len(entries))
		}
	})
}

func TestOutboxRepository_Delete(t *testing.T) {
	freshDB := freshDatabase(t)
	repo := repository.NewOutboxRepository(freshDB)
	ctx := context.Background()

	t.Run("deletes entry by ID", func(t *testing.T) {
		_ = repo.Insert(ctx, outbox.Entry{EventName: "evt.del", EntityName: "entity", EventData: []byte(`{}`)})

		entries, _ := repo.FetchPending(ctx, 10)
		if len(entries) == 0 {
			t.Fatal("setup: expected at least 1 entry")
		}

		err := repo.Delete(ctx, entries[0].ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		remaining, _ := repo.FetchPending(ctx, 10)
		if len(remaining) != 0 {
			t.Fatalf("expected 0 entries after delete, got %d", len(remaining))
		}
	})

	t.Run("returns error for invalid ID", func(t *testing.T) {
		err := repo.Delete(ctx, "bad-id")
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestOutboxRepository_Record(t *testing.T) {
	freshDB := freshDatabase(t)
	repo := repository.NewOutboxRepository(freshDB)
	ctx := context.Background()

	t.Run("stores serialized event", func(t *testing.T) {
		product := domain.NewProduct("Mug", "kitchen", decimal.RequireFromString("9.99"), 0, "")
		product.ID = "aabbccddee112233aabbccdd"

		if err := repo.Record(ctx, domain.NewProductStockUpdatedEvent(product)); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		entries, err := repo.FetchPending(ctx, 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0].EventName != "product.stock_updated" || entries[0].EntityName != "product" {
			t.Fatalf("unexpected entry: %+v", entries[0])
		}

		var payload domain.ProductStockUpdatedEvent
		if err := json.Unmarshal(entries[0].EventData, &payload); err != nil {
			t.Fatalf("expected valid json, got %v", err)
		}
		if payload.ProductID != product.ID || payload.InStock {
			t.Fatalf("unexpected payload: %+v", payload)
		}
	})
}

func TestOutboxRepository_RecordRollsBackWithTransaction(t *testing.T) {
	freshDB := freshDatabase(t)
	repo := repository.NewOutboxRepository(freshDB)
	txManager := mongoadapter.NewTransactionManager(testClient)
	ctx := context.Background()

	product := domain.NewProduct("Mug", "kitchen", decimal.RequireFromString("1"), 1, "")
	rollback := errors.New("rollback")

	err := txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := repo.Record(txCtx, domain.NewProductCreatedEvent(product)); err != nil {
			return err
		}
		return rollback
	})
	if !errors.Is(err, rollback) {
		t.Fatalf("expected rollback error, got %v", err)
	}

	entries, err := repo.FetchPending(ctx, 10)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries after rollback, got %d", len(entries))
	}
}
