package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/rafaelleal24/storefront/internal/core/domain"
	"github.com/rafaelleal24/storefront/internal/core/dto"
	"github.com/rafaelleal24/storefront/internal/core/logger"
	"github.com/rafaelleal24/storefront/internal/core/port"
	"github.com/rafaelleal24/storefront/internal/core/serviceerrors"
)

const (
	CHECKOUT_MAX_ITEMS    = 100
	CHECKOUT_MAX_QUANTITY = 10000
)

type CheckoutService struct {
	productRepository port.ProductPort
	payments          port.PaymentPort
	broker            port.BrokerPort
	idempotency       *IdempotencyService[domain.CheckoutResult]
	currency          string
	// vatRate is reported to the processor and in quotes. It is not added to totals.
	vatRate decimal.Decimal
}

func NewCheckoutService(
	productRepository port.ProductPort,
	payments port.PaymentPort,
	broker port.BrokerPort,
	idempotency *IdempotencyService[domain.CheckoutResult],
	currency string,
	vatRate decimal.Decimal,
) *CheckoutService {
	return &CheckoutService{
		productRepository: productRepository,
		payments:          payments,
		broker:            broker,
		idempotency:       idempotency,
		currency:          currency,
		vatRate:           vatRate,
	}
}

func validateLines(lines []domain.CartLine) error {
	if len(lines) > CHECKOUT_MAX_ITEMS {
		return serviceerrors.NewUnprocessableEntityError("checkout items limit exceeded")
	}
	for _, line := range lines {
		if line.Quantity < 0 {
			return serviceerrors.NewInvalidRequestError("quantity must not be negative")
		}
		if line.Quantity > CHECKOUT_MAX_QUANTITY {
			return serviceerrors.NewUnprocessableEntityError("checkout quantity limit exceeded")
		}
	}
	return nil
}

// ComputeTotal prices lines with catalog prices only. Unknown products add nothing.
func (s *CheckoutService) ComputeTotal(ctx context.Context, lines []domain.CartLine) (decimal.Decimal, error) {
	if len(lines) == 0 {
		return decimal.Zero, nil
	}

	prices, err := s.productRepository.GetPrices(ctx, domain.DistinctProductIDs(lines))
	if err != nil {
		logger.Error(ctx, "checkout: price lookup failed", err, map[string]any{
			"lines": len(lines),
		})
		return decimal.Zero, err
	}

	return domain.CalculateTotal(lines, prices), nil
}

func (s *CheckoutService) Quote(ctx context.Context, request *dto.CheckoutRequest) (*domain.CheckoutQuote, error) {
	lines := request.Lines()
	if err := validateLines(lines); err != nil {
		return nil, err
	}

	total, err := s.ComputeTotal(ctx, lines)
	if err != nil {
		return nil, err
	}

	quote, err := domain.NewCheckoutQuote(total, s.currency, s.vatRate)
	if err != nil {
		if errors.Is(err, domain.ErrAmountOutOfRange) {
			logger.Warn(ctx, "checkout: total out of range", map[string]any{
				"total": total.String(),
			})
			return nil, serviceerrors.NewUnprocessableEntityError("checkout total is too large")
		}
		return nil, err
	}
	return quote, nil
}

func (s *CheckoutService) Checkout(ctx context.Context, idempotencyKey string, request *dto.CheckoutRequest) (*domain.CheckoutResult, error) {
	if err := validateLines(request.Lines()); err != nil {
		return nil, err
	}

	if idempotencyKey == "" {
		return s.processCheckout(ctx, "", request)
	}

	payloadHash, err := HashPayload(request)
	if err != nil {
		return nil, err
	}
	return s.idempotency.Do(ctx, idempotencyKey, payloadHash, func(ctx context.Context) (*domain.CheckoutResult, error) {
		return s.processCheckout(ctx, idempotencyKey, request)
	})
}

func (s *CheckoutService) processCheckout(ctx context.Context, idempotencyKey string, request *dto.CheckoutRequest) (*domain.CheckoutResult, error) {
	quote, err := s.Quote(ctx, request)
	if err != nil {
		return nil, err
	}
	if quote.Amount <= 0 {
		return nil, serviceerrors.NewUnprocessableEntityError("checkout total must be greater than zero")
	}

	authorization, err := s.payments.Authorize(ctx, &domain.PaymentRequest{
		Amount:         quote.Amount,
		Currency:       quote.Currency,
		IdempotencyKey: idempotencyKey,
		Metadata: map[string]string{
			"lines":    strconv.Itoa(len(request.Items)),
			"total":    quote.Total.StringFixed(2),
			"vat_rate": quote.VATRate.String(),
		},
	})
	if err != nil {
		logger.Error(ctx, "checkout: payment authorization failed", err, map[string]any{
			"amount":   int64(quote.Amount),
			"currency": quote.Currency,
		})
		if serviceerrors.IsOfKind(err, serviceerrors.KindUpstreamPayment) {
			return nil, err
		}
		return nil, serviceerrors.NewUpstreamPaymentError("payment could not be processed")
	}

	result := domain.NewCheckoutResult(quote, authorization)

	if err := s.broker.Publish(ctx, domain.NewCheckoutAuthorizedEvent(result, len(request.Items))); err != nil {
		logger.Error(ctx, "checkout: publish authorized event failed", err, map[string]any{
			"reference": result.Reference,
		})
	}

	logger.Info(ctx, "Checkout authorized", map[string]any{
		"reference": result.Reference,
		"amount":    int64(result.Amount),
		"currency":  result.Currency,
	})
	return result, nil
}
