package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/rafaelleal24/storefront/internal/core/domain"
	"github.com/rafaelleal24/storefront/internal/core/dto"
	"github.com/rafaelleal24/storefront/internal/core/port/mock"
	"github.com/rafaelleal24/storefront/internal/core/serviceerrors"
)

type checkoutEntry = IdempotencyEntry[domain.CheckoutResult]

const (
	checkoutKey = "checkout-7f3a"
	idemTTL     = 15 * time.Minute
)

func setupIdempotencyService(t *testing.T, pollInterval, pollTimeout time.Duration) (*IdempotencyService[domain.CheckoutResult], *mock.MockCachePort[checkoutEntry]) {
	ctrl := gomock.NewController(t)
	cache := mock.NewMockCachePort[checkoutEntry](ctrl)
	svc := NewIdempotencyService[domain.CheckoutResult](cache, idemTTL, pollInterval, pollTimeout)
	return svc, cache
}

func authorizedResult(t *testing.T, reference, total string) *domain.CheckoutResult {
	t.Helper()
	quote, err := domain.NewCheckoutQuote(decimal.RequireFromString(total), "eur", decimal.RequireFromString("0.21"))
	if err != nil {
		t.Fatalf("setup: quote failed: %v", err)
	}
	return domain.NewCheckoutResult(quote, &domain.PaymentAuthorization{
		Reference:    reference,
		ClientSecret: reference + "_secret",
		Status:       "requires_confirmation",
	})
}

func cartHash(t *testing.T, quantity int) string {
	t.Helper()
	hash, err := HashPayload(&dto.CheckoutRequest{Items: []dto.CheckoutItem{{ProductID: mugID, Quantity: quantity}}})
	if err != nil {
		t.Fatalf("setup: hash failed: %v", err)
	}
	return hash
}

func TestIdempotencyService_Claim(t *testing.T) {
	twoMugs := cartHash(t, 2)
	threeMugs := cartHash(t, 3)

	tests := []struct {
		name          string
		claimed       bool
		claimErr      error
		stored        *checkoutEntry
		wantReference string
		wantKind      *serviceerrors.ErrorKind
		wantErr       bool
	}{
		{
			name:    "first checkout claims the key",
			claimed: true,
		},
		{
			name:          "retry after authorization replays the result",
			stored:        &checkoutEntry{Status: IdempotencyCompleted, PayloadHash: twoMugs, Result: authorizedResult(t, "pi_replay", "200")},
			wantReference: "pi_replay",
		},
		{
			name:     "same key with another cart is rejected",
			stored:   &checkoutEntry{Status: IdempotencyCompleted, PayloadHash: threeMugs, Result: authorizedResult(t, "pi_old", "300")},
			wantKind: kindPtr(serviceerrors.KindUnprocessableEntity),
		},
		{
			name:     "entry vanished after a failed attempt",
			wantKind: kindPtr(serviceerrors.KindConflict),
		},
		{
			name:     "cache unavailable",
			claimErr: errors.New("redis down"),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, cache := setupIdempotencyService(t, 50*time.Millisecond, 500*time.Millisecond)

			cache.EXPECT().
				SetNX(gomock.Any(), checkoutKey, gomock.Any(), idemTTL).
				DoAndReturn(func(_ context.Context, _ string, entry *checkoutEntry, _ time.Duration) (bool, error) {
					if entry.Status != IdempotencyProcessing || entry.PayloadHash != twoMugs {
						t.Errorf("unexpected claim entry: %+v", entry)
					}
					return tt.claimed, tt.claimErr
				})
			if !tt.claimed && tt.claimErr == nil {
				cache.EXPECT().Get(gomock.Any(), checkoutKey).Return(tt.stored, nil)
			}

			result, err := svc.Claim(context.Background(), checkoutKey, twoMugs)

			switch {
			case tt.wantKind != nil:
				if !serviceerrors.IsOfKind(err, *tt.wantKind) {
					t.Fatalf("expected %s error, got %v", *tt.wantKind, err)
				}
			case tt.wantErr:
				if err == nil {
					t.Fatal("expected error, got nil")
				}
			case tt.wantReference != "":
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if result == nil || result.Reference != tt.wantReference {
					t.Fatalf("expected replayed %s, got %+v", tt.wantReference, result)
				}
				if result.Amount != 20000 {
					t.Fatalf("expected replayed amount 20000, got %d", result.Amount)
				}
			default:
				if err != nil || result != nil {
					t.Fatalf("expected a fresh claim, got %+v, %v", result, err)
				}
			}
		})
	}
}

func kindPtr(kind serviceerrors.ErrorKind) *serviceerrors.ErrorKind {
	return &kind
}

func TestIdempotencyService_Claim_InFlight(t *testing.T) {
	hash := cartHash(t, 1)
	processing := &checkoutEntry{Status: IdempotencyProcessing, PayloadHash: hash}

	t.Run("waits for the concurrent checkout to finish", func(t *testing.T) {
		svc, cache := setupIdempotencyService(t, 20*time.Millisecond, 500*time.Millisecond)

		cache.EXPECT().SetNX(gomock.Any(), checkoutKey, gomock.Any(), idemTTL).Return(false, nil)
		gomock.InOrder(
			cache.EXPECT().Get(gomock.Any(), checkoutKey).Return(processing, nil).Times(2),
			cache.EXPECT().Get(gomock.Any(), checkoutKey).Return(&checkoutEntry{
				Status:      IdempotencyCompleted,
				PayloadHash: hash,
				Result:      authorizedResult(t, "pi_concurrent", "100"),
			}, nil),
		)

		result, err := svc.Claim(context.Background(), checkoutKey, hash)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result == nil || result.Reference != "pi_concurrent" {
			t.Fatalf("expected the concurrent result, got %+v", result)
		}
	})

	t.Run("gives up after the poll timeout", func(t *testing.T) {
		svc, cache := setupIdempotencyService(t, 20*time.Millisecond, 80*time.Millisecond)

		cache.EXPECT().SetNX(gomock.Any(), checkoutKey, gomock.Any(), idemTTL).Return(false, nil)
		cache.EXPECT().Get(gomock.Any(), checkoutKey).Return(processing, nil).AnyTimes()

		_, err := svc.Claim(context.Background(), checkoutKey, hash)
		if !serviceerrors.IsOfKind(err, serviceerrors.KindConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	t.Run("stops when the caller goes away", func(t *testing.T) {
		svc, cache := setupIdempotencyService(t, 50*time.Millisecond, 5*time.Second)

		cache.EXPECT().SetNX(gomock.Any(), checkoutKey, gomock.Any(), idemTTL).Return(false, nil)
		cache.EXPECT().Get(gomock.Any(), checkoutKey).Return(processing, nil).AnyTimes()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()

		if _, err := svc.Claim(ctx, checkoutKey, hash); err == nil {
			t.Fatal("expected context error, got nil")
		}
	})
}

func TestIdempotencyService_Complete(t *testing.T) {
	hash := cartHash(t, 2)
	result := authorizedResult(t, "pi_done", "200")

	t.Run("stores the authorization", func(t *testing.T) {
		svc, cache := setupIdempotencyService(t, 50*time.Millisecond, 500*time.Millisecond)

		cache.EXPECT().
			Set(gomock.Any(), checkoutKey, gomock.Any(), idemTTL).
			DoAndReturn(func(_ context.Context, _ string, entry *checkoutEntry, _ time.Duration) error {
				if entry.Status != IdempotencyCompleted || entry.PayloadHash != hash {
					t.Fatalf("unexpected entry: %+v", entry)
				}
				if entry.Result.Reference != "pi_done" || !entry.Result.Total.Equal(decimal.NewFromInt(200)) {
					t.Fatalf("unexpected stored result: %+v", entry.Result)
				}
				return nil
			})

		svc.Complete(context.Background(), checkoutKey, hash, result)
	})

	t.Run("cache failure is only logged", func(t *testing.T) {
		svc, cache := setupIdempotencyService(t, 50*time.Millisecond, 500*time.Millisecond)

		cache.EXPECT().Set(gomock.Any(), checkoutKey, gomock.Any(), idemTTL).Return(errors.New("redis error"))

		svc.Complete(context.Background(), checkoutKey, hash, result)
	})
}

func TestIdempotencyService_Release(t *testing.T) {
	for _, delErr := range []error{nil, errors.New("redis error")} {
		svc, cache := setupIdempotencyService(t, 50*time.Millisecond, 500*time.Millisecond)
		cache.EXPECT().Del(gomock.Any(), checkoutKey).Return(delErr)

		svc.Release(context.Background(), checkoutKey)
	}
}

func TestIdempotencyService_Do(t *testing.T) {
	hash := cartHash(t, 2)

	t.Run("first call authorizes and stores the result", func(t *testing.T) {
		svc, cache := setupIdempotencyService(t, 50*time.Millisecond, 500*time.Millisecond)

		gomock.InOrder(
			cache.EXPECT().SetNX(gomock.Any(), checkoutKey, gomock.Any(), idemTTL).Return(true, nil),
			cache.EXPECT().
				Set(gomock.Any(), checkoutKey, gomock.Any(), idemTTL).
				DoAndReturn(func(_ context.Context, _ string, entry *checkoutEntry, _ time.Duration) error {
					if entry.Status != IdempotencyCompleted || entry.Result == nil || entry.Result.Reference != "pi_fresh" {
						t.Fatalf("unexpected stored entry: %+v", entry)
					}
					return nil
				}),
		)

		calls := 0
		result, err := svc.Do(context.Background(), checkoutKey, hash, func(context.Context) (*domain.CheckoutResult, error) {
			calls++
			return authorizedResult(t, "pi_fresh", "200"), nil
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if calls != 1 {
			t.Fatalf("expected one authorization, got %d", calls)
		}
		if result.Reference != "pi_fresh" {
			t.Fatalf("expected pi_fresh, got %s", result.Reference)
		}
	})

	t.Run("replay does not authorize again", func(t *testing.T) {
		svc, cache := setupIdempotencyService(t, 50*time.Millisecond, 500*time.Millisecond)

		cache.EXPECT().SetNX(gomock.Any(), checkoutKey, gomock.Any(), idemTTL).Return(false, nil)
		cache.EXPECT().Get(gomock.Any(), checkoutKey).Return(&checkoutEntry{
			Status:      IdempotencyCompleted,
			PayloadHash: hash,
			Result:      authorizedResult(t, "pi_stored", "200"),
		}, nil)

		result, err := svc.Do(context.Background(), checkoutKey, hash, func(context.Context) (*domain.CheckoutResult, error) {
			t.Fatal("payment must not be authorized twice")
			return nil, nil
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Reference != "pi_stored" {
			t.Fatalf("expected pi_stored, got %s", result.Reference)
		}
	})

	t.Run("declined payment releases the key", func(t *testing.T) {
		svc, cache := setupIdempotencyService(t, 50*time.Millisecond, 500*time.Millisecond)
		declined := serviceerrors.NewUpstreamPaymentError("Your card was declined.")

		gomock.InOrder(
			cache.EXPECT().SetNX(gomock.Any(), checkoutKey, gomock.Any(), idemTTL).Return(true, nil),
			cache.EXPECT().Del(gomock.Any(), checkoutKey).Return(nil),
		)

		result, err := svc.Do(context.Background(), checkoutKey, hash, func(context.Context) (*domain.CheckoutResult, error) {
			return nil, declined
		})
		if !errors.Is(err, declined) {
			t.Fatalf("expected the decline, got %v", err)
		}
		if result != nil {
			t.Fatal("expected nil result")
		}
	})

	t.Run("claim failure skips authorization", func(t *testing.T) {
		svc, cache := setupIdempotencyService(t, 50*time.Millisecond, 500*time.Millisecond)

		cache.EXPECT().SetNX(gomock.Any(), checkoutKey, gomock.Any(), idemTTL).Return(false, errors.New("redis down"))

		_, err := svc.Do(context.Background(), checkoutKey, hash, func(context.Context) (*domain.CheckoutResult, error) {
			t.Fatal("payment must not be authorized without a claim")
			return nil, nil
		})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("key reused for another cart while in flight", func(t *testing.T) {
		svc, cache := setupIdempotencyService(t, 50*time.Millisecond, 500*time.Millisecond)

		cache.EXPECT().SetNX(gomock.Any(), checkoutKey, gomock.Any(), idemTTL).Return(false, nil)
		cache.EXPECT().Get(gomock.Any(), checkoutKey).Return(&checkoutEntry{
			Status:      IdempotencyProcessing,
			PayloadHash: cartHash(t, 5),
		}, nil)

		_, err := svc.Do(context.Background(), checkoutKey, hash, func(context.Context) (*domain.CheckoutResult, error) {
			t.Fatal("payment must not be authorized for a mismatched cart")
			return nil, nil
		})
		if !serviceerrors.IsOfKind(err, serviceerrors.KindUnprocessableEntity) {
			t.Fatalf("expected unprocessable entity, got %v", err)
		}
	})
}

func TestHashPayload(t *testing.T) {
	first := cartHash(t, 2)
	same := cartHash(t, 2)
	other := cartHash(t, 3)

	if first != same {
		t.Errorf("expected equal carts to hash equally")
	}
	if first == other {
		t.Errorf("expected different carts to hash differently")
	}
	if len(first) != 64 {
		t.Errorf("expected hex sha256, got %q", first)
	}

	if _, err := HashPayload(make(chan int)); err == nil {
		t.Error("expected error for unsupported payload")
	}
}
