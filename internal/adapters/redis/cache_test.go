package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	adaptredis "github.com/rafaelleal24/storefront/internal/adapters/redis"
	"github.com/rafaelleal24/storefront/internal/core/domain"
	"github.com/rafaelleal24/storefront/internal/core/service"
)

type testCacheItem struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func checkoutResult(reference string) *domain.CheckoutResult {
	quote, _ := domain.NewCheckoutQuote(decimal.RequireFromString("19.01"), "eur", decimal.Zero)
	return domain.NewCheckoutResult(quote, &domain.PaymentAuthorization{Reference: reference, Status: "authorized"})
}

func TestCache_CheckoutResult(t *testing.T) {
	cache := adaptredis.NewCache[domain.CheckoutResult](testClient, "test-checkout")
	ctx := context.Background()

	t.Run("round trips decimals and amounts", func(t *testing.T) {
		result := checkoutResult("pi_round_trip")
		if err := cache.Set(ctx, "key-1", result, time.Minute); err != nil {
			t.Fatalf("expected no error on set, got %v", err)
		}

		got, err := cache.Get(ctx, "key-1")
		if err != nil {
			t.Fatalf("expected no error on get, got %v", err)
		}
		if got == nil {
			t.Fatal("expected result, got nil")
		}
		if !got.Total.Equal(result.Total) {
			t.Fatalf("expected total %s, got %s", result.Total, got.Total)
		}
		if got.Amount != 1901 || got.Reference != "pi_round_trip" {
			t.Fatalf("unexpected result: %+v", got)
		}
	})

	t.Run("missing key is nil without error", func(t *testing.T) {
		got, err := cache.Get(ctx, "never-written")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != nil {
			t.Fatalf("expected nil, got %+v", got)
		}
	})

	t.Run("entry expires with its ttl", func(t *testing.T) {
		if err := cache.Set(ctx, "short-lived", checkoutResult("pi_ttl"), 100*time.Millisecond); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		time.Sleep(200 * time.Millisecond)

		got, err := cache.Get(ctx, "short-lived")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != nil {
			t.Fatalf("expected expired entry, got %+v", got)
		}
	})
}

func TestCache_IdempotencyClaim(t *testing.T) {
	cache := adaptredis.NewCache[service.IdempotencyEntry[domain.CheckoutResult]](testClient, "test-claim")
	ctx := context.Background()

	first := &service.IdempotencyEntry[domain.CheckoutResult]{Status: service.IdempotencyProcessing}
	ok, err := cache.SetNX(ctx, "idem-1", first, time.Minute)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !ok {
		t.Fatal("expected first claim to win")
	}

	second := &service.IdempotencyEntry[domain.CheckoutResult]{Status: service.IdempotencyCompleted}
	ok, err = cache.SetNX(ctx, "idem-1", second, time.Minute)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ok {
		t.Fatal("expected second claim to lose")
	}

	got, err := cache.Get(ctx, "idem-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got == nil || got.Status != service.IdempotencyProcessing {
		t.Fatalf("expected the first claim to be kept, got %+v", got)
	}
}

func TestCache_Del(t *testing.T) {
	cache := adaptredis.NewCache[domain.AdminSession](testClient, "test-logout")
	ctx := context.Background()

	t.Run("logout removes the session", func(t *testing.T) {
		session := domain.NewAdminSession("token-del", "admin", time.Minute)
		_ = cache.Set(ctx, session.Token, session, time.Minute)

		if err := cache.Del(ctx, session.Token); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		got, _ := cache.Get(ctx, session.Token)
		if got != nil {
			t.Fatalf("expected nil after delete, got %+v", got)
		}
	})

	t.Run("deleting a missing session does not error", func(t *testing.T) {
		if err := cache.Del(ctx, "token-missing"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}

func TestCache_AdminSession(t *testing.T) {
	cache := adaptredis.NewCache[domain.AdminSession](testClient, "admin-session")
	ctx := context.Background()

	session := domain.NewAdminSession("token-1", "admin", time.Minute)
	if err := cache.Set(ctx, session.Token, session, time.Minute); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got, err := cache.Get(ctx, session.Token)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Username != "admin" || !got.ExpiresAt.Equal(session.ExpiresAt) {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestCache_CorruptEntry(t *testing.T) {
	cache := adaptredis.NewCache[testCacheItem](testClient, "test-corrupt")
	raw := adaptredis.NewCache[string](testClient, "test-corrupt")
	ctx := context.Background()

	value := "not an object"
	if err := raw.Set(ctx, "bad", &value, time.Minute); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if _, err := cache.Get(ctx, "bad"); err == nil {
		t.Fatal("expected decode error")
	}
}
